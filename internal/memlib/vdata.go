package memlib

import (
	"fmt"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

type vdataHandle struct {
	file *fileHandle
	vd   *vdata
	pos  int // read position, in records
}

// VSAttach attaches to an existing Vdata by reference number, or creates
// a new one when ref is FAIL.
func (l *Lib) VSAttach(id sdlib.FileID, ref int32, mode sdlib.AccessMode) (sdlib.VDataID, error) {
	f, err := l.vFile(id)
	if err != nil {
		return sdlib.VDataID(sdlib.FAIL), err
	}

	var vd *vdata
	if ref == sdlib.FAIL {
		if !f.mode.Writable() || !mode.Writable() {
			return sdlib.VDataID(sdlib.FAIL), fmt.Errorf("file %s is read-only: %w", f.path, sdlib.ErrFail)
		}
		vd = &vdata{Ref: f.c.ref()}
		f.c.VDatas = append(f.c.VDatas, vd)
		f.dirty = true
	} else {
		for _, v := range f.c.VDatas {
			if v.Ref == ref {
				vd = v
				break
			}
		}
		if vd == nil {
			return sdlib.VDataID(sdlib.FAIL), fmt.Errorf("no vdata with ref %d: %w", ref, sdlib.ErrFail)
		}
	}

	vdID := sdlib.VDataID(l.id())
	l.vdatas[vdID] = &vdataHandle{file: f, vd: vd}
	return vdID, nil
}

// VSDetach releases a Vdata handle.
func (l *Lib) VSDetach(vd sdlib.VDataID) error {
	if _, err := l.vdata(vd); err != nil {
		return err
	}
	delete(l.vdatas, vd)
	return nil
}

// VSRef reports the reference number of an attached Vdata.
func (l *Lib) VSRef(vd sdlib.VDataID) (int32, error) {
	h, err := l.vdata(vd)
	if err != nil {
		return sdlib.FAIL, err
	}
	return h.vd.Ref, nil
}

// VSName reports a Vdata's name.
func (l *Lib) VSName(vd sdlib.VDataID) (string, error) {
	h, err := l.vdata(vd)
	if err != nil {
		return "", err
	}
	return h.vd.Name, nil
}

// VSSetName sets a Vdata's name.
func (l *Lib) VSSetName(vd sdlib.VDataID, name string) error {
	h, err := l.writableVdata(vd)
	if err != nil {
		return err
	}
	h.vd.Name = name
	h.file.dirty = true
	return nil
}

// VSClass reports a Vdata's class string.
func (l *Lib) VSClass(vd sdlib.VDataID) (string, error) {
	h, err := l.vdata(vd)
	if err != nil {
		return "", err
	}
	return h.vd.Class, nil
}

// VSSetClass sets a Vdata's class string.
func (l *Lib) VSSetClass(vd sdlib.VDataID, class string) error {
	h, err := l.writableVdata(vd)
	if err != nil {
		return err
	}
	h.vd.Class = class
	h.file.dirty = true
	return nil
}

// VSSetFields defines the record layout. Frozen once records exist.
func (l *Lib) VSSetFields(vd sdlib.VDataID, fields []sdlib.VField) error {
	h, err := l.writableVdata(vd)
	if err != nil {
		return err
	}
	if h.vd.Records > 0 {
		return fmt.Errorf("vdata %d already holds records, fields are frozen: %w", h.vd.Ref, sdlib.ErrFail)
	}
	if len(fields) == 0 {
		return fmt.Errorf("vdata %d: empty field list: %w", h.vd.Ref, sdlib.ErrFail)
	}
	seen := make(map[string]bool)
	for _, f := range fields {
		if f.Name == "" || !f.Type.Valid() || f.Order < 1 {
			return fmt.Errorf("vdata %d: invalid field %+v: %w", h.vd.Ref, f, sdlib.ErrFail)
		}
		if seen[f.Name] {
			return fmt.Errorf("vdata %d: duplicate field %q: %w", h.vd.Ref, f.Name, sdlib.ErrFail)
		}
		seen[f.Name] = true
	}
	h.vd.Fields = append([]sdlib.VField(nil), fields...)
	h.file.dirty = true
	return nil
}

// VSFields reports the record layout.
func (l *Lib) VSFields(vd sdlib.VDataID) ([]sdlib.VField, error) {
	h, err := l.vdata(vd)
	if err != nil {
		return nil, err
	}
	return append([]sdlib.VField(nil), h.vd.Fields...), nil
}

// VSWrite appends n packed records and returns the number written.
func (l *Lib) VSWrite(vd sdlib.VDataID, records []byte, n int) (int, error) {
	h, err := l.writableVdata(vd)
	if err != nil {
		return sdlib.FAIL, err
	}
	if len(h.vd.Fields) == 0 {
		return sdlib.FAIL, fmt.Errorf("vdata %d has no fields defined: %w", h.vd.Ref, sdlib.ErrFail)
	}
	size := sdlib.RecordSize(h.vd.Fields)
	if n < 0 || len(records) != n*size {
		return sdlib.FAIL, fmt.Errorf("vdata %d: %d bytes for %d records of %d bytes: %w",
			h.vd.Ref, len(records), n, size, sdlib.ErrFail)
	}
	h.vd.Data = append(h.vd.Data, records...)
	h.vd.Records += n
	h.file.dirty = true
	return n, nil
}

// VSRead reads up to n records from the current position.
func (l *Lib) VSRead(vd sdlib.VDataID, n int) ([]byte, int, error) {
	h, err := l.vdata(vd)
	if err != nil {
		return nil, sdlib.FAIL, err
	}
	if len(h.vd.Fields) == 0 {
		return nil, sdlib.FAIL, fmt.Errorf("vdata %d has no fields defined: %w", h.vd.Ref, sdlib.ErrFail)
	}
	if n < 0 {
		return nil, sdlib.FAIL, fmt.Errorf("vdata %d: negative record count %d: %w", h.vd.Ref, n, sdlib.ErrFail)
	}
	size := sdlib.RecordSize(h.vd.Fields)
	remaining := h.vd.Records - h.pos
	if n > remaining {
		n = remaining
	}
	out := append([]byte(nil), h.vd.Data[h.pos*size:(h.pos+n)*size]...)
	h.pos += n
	return out, n, nil
}

// VSCount reports the number of records stored.
func (l *Lib) VSCount(vd sdlib.VDataID) (int, error) {
	h, err := l.vdata(vd)
	if err != nil {
		return sdlib.FAIL, err
	}
	return h.vd.Records, nil
}

func (l *Lib) vdata(vd sdlib.VDataID) (*vdataHandle, error) {
	h, ok := l.vdatas[vd]
	if !ok {
		return nil, fmt.Errorf("invalid vdata handle %d: %w", vd, sdlib.ErrFail)
	}
	return h, nil
}

func (l *Lib) writableVdata(vd sdlib.VDataID) (*vdataHandle, error) {
	h, err := l.vdata(vd)
	if err != nil {
		return nil, err
	}
	if !h.file.mode.Writable() {
		return nil, fmt.Errorf("file %s is read-only: %w", h.file.path, sdlib.ErrFail)
	}
	return h, nil
}
