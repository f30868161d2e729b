package hdf4

import (
	"fmt"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// Field describes one field of a Vdata record.
type Field = sdlib.VField

// VData is an attached Vdata: a named table of fixed-layout records. The
// record layout is frozen by the first write. Record payloads are
// exchanged as packed bytes; the binding does not interpret them.
type VData struct {
	file *File
	id   sdlib.VDataID
	ref  int32
}

// CreateVData creates a new Vdata with the given name, class and record
// layout.
func (f *File) CreateVData(name, class string, fields []Field) (*VData, error) {
	if err := f.ensureV(); err != nil {
		return nil, err
	}
	if !f.writable {
		return nil, ErrReadOnly
	}
	id, err := f.lib.VSAttach(f.id, sdlib.FAIL, sdlib.ReadWrite)
	if err != nil {
		return nil, fmt.Errorf("creating vdata %q: %w: %w", name, err, ErrWrite)
	}
	vd := &VData{file: f, id: id}
	f.vdatas[id] = struct{}{}
	fail := func(err error) (*VData, error) {
		vd.Detach()
		return nil, fmt.Errorf("creating vdata %q: %w: %w", name, err, ErrWrite)
	}
	if err := f.lib.VSSetName(id, name); err != nil {
		return fail(err)
	}
	if class != "" {
		if err := f.lib.VSSetClass(id, class); err != nil {
			return fail(err)
		}
	}
	if err := f.lib.VSSetFields(id, fields); err != nil {
		return fail(err)
	}
	ref, err := f.lib.VSRef(id)
	if err != nil {
		return fail(err)
	}
	vd.ref = ref
	return vd, nil
}

// VData attaches to an existing Vdata by reference number.
func (f *File) VData(ref int32) (*VData, error) {
	if err := f.ensureV(); err != nil {
		return nil, err
	}
	id, err := f.lib.VSAttach(f.id, ref, f.vMode())
	if err != nil {
		return nil, fmt.Errorf("vdata %d: %w: %w", ref, err, ErrNotFound)
	}
	f.vdatas[id] = struct{}{}
	return &VData{file: f, id: id, ref: ref}, nil
}

// Ref returns the Vdata's reference number.
func (v *VData) Ref() int32 {
	return v.ref
}

// Name returns the Vdata's name.
func (v *VData) Name() (string, error) {
	name, err := v.file.lib.VSName(v.id)
	if err != nil {
		return "", fmt.Errorf("vdata %d name: %w: %w", v.ref, err, ErrQuery)
	}
	return name, nil
}

// SetName renames the Vdata.
func (v *VData) SetName(name string) error {
	if !v.file.writable {
		return ErrReadOnly
	}
	if err := v.file.lib.VSSetName(v.id, name); err != nil {
		return fmt.Errorf("naming vdata %d: %w: %w", v.ref, err, ErrWrite)
	}
	return nil
}

// Class returns the Vdata's class string.
func (v *VData) Class() (string, error) {
	class, err := v.file.lib.VSClass(v.id)
	if err != nil {
		return "", fmt.Errorf("vdata %d class: %w: %w", v.ref, err, ErrQuery)
	}
	return class, nil
}

// SetClass sets the Vdata's class string.
func (v *VData) SetClass(class string) error {
	if !v.file.writable {
		return ErrReadOnly
	}
	if err := v.file.lib.VSSetClass(v.id, class); err != nil {
		return fmt.Errorf("classing vdata %d: %w: %w", v.ref, err, ErrWrite)
	}
	return nil
}

// Fields returns the record layout.
func (v *VData) Fields() ([]Field, error) {
	fields, err := v.file.lib.VSFields(v.id)
	if err != nil {
		return nil, fmt.Errorf("vdata %d fields: %w: %w", v.ref, err, ErrQuery)
	}
	return fields, nil
}

// RecordSize returns the packed byte size of one record.
func (v *VData) RecordSize() (int, error) {
	fields, err := v.Fields()
	if err != nil {
		return 0, err
	}
	return sdlib.RecordSize(fields), nil
}

// WriteRecords appends n records supplied as packed field-interlaced
// bytes and returns the number written.
func (v *VData) WriteRecords(records []byte, n int) (int, error) {
	if !v.file.writable {
		return 0, ErrReadOnly
	}
	written, err := v.file.lib.VSWrite(v.id, records, n)
	if err != nil {
		return written, fmt.Errorf("writing vdata %d: %w: %w", v.ref, err, ErrWrite)
	}
	return written, nil
}

// ReadRecords reads up to n records from the current position and
// returns the packed bytes plus the number read.
func (v *VData) ReadRecords(n int) ([]byte, int, error) {
	records, read, err := v.file.lib.VSRead(v.id, n)
	if err != nil {
		return nil, 0, fmt.Errorf("reading vdata %d: %w: %w", v.ref, err, ErrQuery)
	}
	return records, read, nil
}

// Count returns the number of records stored.
func (v *VData) Count() (int, error) {
	n, err := v.file.lib.VSCount(v.id)
	if err != nil {
		return 0, fmt.Errorf("vdata %d count: %w: %w", v.ref, err, ErrQuery)
	}
	return n, nil
}

// Detach releases the Vdata handle. The VData must not be used
// afterwards. Handles never detached are released by the file's Close.
func (v *VData) Detach() error {
	if _, ok := v.file.vdatas[v.id]; !ok {
		return nil
	}
	delete(v.file.vdatas, v.id)
	if err := v.file.lib.VSDetach(v.id); err != nil {
		return fmt.Errorf("detaching vdata %d: %w: %w", v.ref, err, ErrWrite)
	}
	return nil
}
