//go:build hdf4cgo

package native

/*
#include <stdlib.h>
#include "mfhdf.h"
#include "vg.h"
*/
import "C"

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

func vAccess(mode sdlib.AccessMode) *C.char {
	if mode.Writable() {
		return C.CString("w")
	}
	return C.CString("r")
}

func (l *lib) vHandle(id sdlib.FileID) (C.int32, error) {
	vf, ok := l.files[id]
	if !ok {
		return C.int32(sdlib.FAIL), fmt.Errorf("invalid file handle %d: %w", id, sdlib.ErrFail)
	}
	if vf.hid == C.int32(sdlib.FAIL) {
		return C.int32(sdlib.FAIL), fmt.Errorf("V interface not started on %s: %w", vf.path, sdlib.ErrFail)
	}
	return vf.hid, nil
}

// VStart opens the H-level handle for the file and initializes the V
// interface on it.
func (l *lib) VStart(id sdlib.FileID) error {
	vf, ok := l.files[id]
	if !ok {
		return fmt.Errorf("invalid file handle %d: %w", id, sdlib.ErrFail)
	}
	if vf.hid != C.int32(sdlib.FAIL) {
		return nil
	}
	cpath := C.CString(vf.path)
	defer C.free(unsafe.Pointer(cpath))
	hid := C.Hopen(cpath, C.intn(vf.mode), 0)
	if hid == C.int32(sdlib.FAIL) {
		return fmt.Errorf("Hopen(%s): %w", vf.path, sdlib.ErrFail)
	}
	if err := failed(C.Vstart(hid), "Vstart"); err != nil {
		C.Hclose(hid)
		return err
	}
	vf.hid = hid
	return nil
}

// VEnd shuts the V interface down for the file.
func (l *lib) VEnd(id sdlib.FileID) error {
	vf, ok := l.files[id]
	if !ok {
		return fmt.Errorf("invalid file handle %d: %w", id, sdlib.ErrFail)
	}
	if vf.hid == C.int32(sdlib.FAIL) {
		return nil
	}
	err := failed(C.Vend(vf.hid), "Vend")
	C.Hclose(vf.hid)
	vf.hid = C.int32(sdlib.FAIL)
	return err
}

func (l *lib) VAttach(id sdlib.FileID, ref int32, mode sdlib.AccessMode) (sdlib.VGroupID, error) {
	hid, err := l.vHandle(id)
	if err != nil {
		return sdlib.VGroupID(sdlib.FAIL), err
	}
	access := vAccess(mode)
	defer C.free(unsafe.Pointer(access))
	vg := C.Vattach(hid, C.int32(ref), access)
	if vg == C.int32(sdlib.FAIL) {
		return sdlib.VGroupID(sdlib.FAIL), fmt.Errorf("Vattach(ref=%d): %w", ref, sdlib.ErrFail)
	}
	return sdlib.VGroupID(vg), nil
}

func (l *lib) VDetach(vg sdlib.VGroupID) error {
	if C.Vdetach(C.int32(vg)) == C.int32(sdlib.FAIL) {
		return fmt.Errorf("Vdetach: %w", sdlib.ErrFail)
	}
	return nil
}

func (l *lib) VRef(vg sdlib.VGroupID) (int32, error) {
	ref := C.VQueryref(C.int32(vg))
	if ref == C.int32(sdlib.FAIL) {
		return sdlib.FAIL, fmt.Errorf("VQueryref: %w", sdlib.ErrFail)
	}
	return int32(ref), nil
}

func (l *lib) VName(vg sdlib.VGroupID) (string, error) {
	var name [C.VGNAMELENMAX + 1]C.char
	if C.Vgetname(C.int32(vg), &name[0]) == C.int32(sdlib.FAIL) {
		return "", fmt.Errorf("Vgetname: %w", sdlib.ErrFail)
	}
	return C.GoString(&name[0]), nil
}

func (l *lib) VSetName(vg sdlib.VGroupID, name string) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	if C.Vsetname(C.int32(vg), cname) == C.int32(sdlib.FAIL) {
		return fmt.Errorf("Vsetname: %w", sdlib.ErrFail)
	}
	return nil
}

func (l *lib) VClass(vg sdlib.VGroupID) (string, error) {
	var class [C.VGNAMELENMAX + 1]C.char
	if C.Vgetclass(C.int32(vg), &class[0]) == C.int32(sdlib.FAIL) {
		return "", fmt.Errorf("Vgetclass: %w", sdlib.ErrFail)
	}
	return C.GoString(&class[0]), nil
}

func (l *lib) VSetClass(vg sdlib.VGroupID, class string) error {
	cclass := C.CString(class)
	defer C.free(unsafe.Pointer(cclass))
	if C.Vsetclass(C.int32(vg), cclass) == C.int32(sdlib.FAIL) {
		return fmt.Errorf("Vsetclass: %w", sdlib.ErrFail)
	}
	return nil
}

func (l *lib) VTagRefs(vg sdlib.VGroupID) ([]sdlib.TagRef, error) {
	n := C.Vntagrefs(C.int32(vg))
	if n == C.int32(sdlib.FAIL) {
		return nil, fmt.Errorf("Vntagrefs: %w", sdlib.ErrFail)
	}
	if n == 0 {
		return nil, nil
	}
	tags := make([]C.int32, n)
	refs := make([]C.int32, n)
	if C.Vgettagrefs(C.int32(vg), &tags[0], &refs[0], n) == C.int32(sdlib.FAIL) {
		return nil, fmt.Errorf("Vgettagrefs: %w", sdlib.ErrFail)
	}
	out := make([]sdlib.TagRef, n)
	for i := range out {
		out[i] = sdlib.TagRef{Tag: int32(tags[i]), Ref: int32(refs[i])}
	}
	return out, nil
}

func (l *lib) VInsert(vg sdlib.VGroupID, member sdlib.TagRef) error {
	if C.Vaddtagref(C.int32(vg), C.int32(member.Tag), C.int32(member.Ref)) == C.int32(sdlib.FAIL) {
		return fmt.Errorf("Vaddtagref(tag=%d, ref=%d): %w", member.Tag, member.Ref, sdlib.ErrFail)
	}
	return nil
}

func (l *lib) VLone(id sdlib.FileID) ([]int32, error) {
	hid, err := l.vHandle(id)
	if err != nil {
		return nil, err
	}
	n := C.Vlone(hid, nil, 0)
	if n == C.int32(sdlib.FAIL) {
		return nil, fmt.Errorf("Vlone: %w", sdlib.ErrFail)
	}
	if n == 0 {
		return nil, nil
	}
	refs := make([]C.int32, n)
	if C.Vlone(hid, &refs[0], n) == C.int32(sdlib.FAIL) {
		return nil, fmt.Errorf("Vlone: %w", sdlib.ErrFail)
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(refs[i])
	}
	return out, nil
}

func (l *lib) VSAttach(id sdlib.FileID, ref int32, mode sdlib.AccessMode) (sdlib.VDataID, error) {
	hid, err := l.vHandle(id)
	if err != nil {
		return sdlib.VDataID(sdlib.FAIL), err
	}
	access := vAccess(mode)
	defer C.free(unsafe.Pointer(access))
	vd := C.VSattach(hid, C.int32(ref), access)
	if vd == C.int32(sdlib.FAIL) {
		return sdlib.VDataID(sdlib.FAIL), fmt.Errorf("VSattach(ref=%d): %w", ref, sdlib.ErrFail)
	}
	return sdlib.VDataID(vd), nil
}

func (l *lib) VSDetach(vd sdlib.VDataID) error {
	if C.VSdetach(C.int32(vd)) == C.int32(sdlib.FAIL) {
		return fmt.Errorf("VSdetach: %w", sdlib.ErrFail)
	}
	return nil
}

func (l *lib) VSRef(vd sdlib.VDataID) (int32, error) {
	ref := C.VSQueryref(C.int32(vd))
	if ref == C.int32(sdlib.FAIL) {
		return sdlib.FAIL, fmt.Errorf("VSQueryref: %w", sdlib.ErrFail)
	}
	return int32(ref), nil
}

func (l *lib) VSName(vd sdlib.VDataID) (string, error) {
	var name [C.VSNAMELENMAX + 1]C.char
	if failed(C.VSgetname(C.int32(vd), &name[0]), "VSgetname") != nil {
		return "", fmt.Errorf("VSgetname: %w", sdlib.ErrFail)
	}
	return C.GoString(&name[0]), nil
}

func (l *lib) VSSetName(vd sdlib.VDataID, name string) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return failed(C.VSsetname(C.int32(vd), cname), "VSsetname")
}

func (l *lib) VSClass(vd sdlib.VDataID) (string, error) {
	var class [C.VSNAMELENMAX + 1]C.char
	if failed(C.VSgetclass(C.int32(vd), &class[0]), "VSgetclass") != nil {
		return "", fmt.Errorf("VSgetclass: %w", sdlib.ErrFail)
	}
	return C.GoString(&class[0]), nil
}

func (l *lib) VSSetClass(vd sdlib.VDataID, class string) error {
	cclass := C.CString(class)
	defer C.free(unsafe.Pointer(cclass))
	return failed(C.VSsetclass(C.int32(vd), cclass), "VSsetclass")
}

func (l *lib) VSSetFields(vd sdlib.VDataID, fields []sdlib.VField) error {
	names := make([]string, len(fields))
	for i, f := range fields {
		cname := C.CString(f.Name)
		status := C.VSfdefine(C.int32(vd), cname, C.int32(f.Type), C.int32(f.Order))
		C.free(unsafe.Pointer(cname))
		if status == C.intn(sdlib.FAIL) {
			return fmt.Errorf("VSfdefine(%s): %w", f.Name, sdlib.ErrFail)
		}
		names[i] = f.Name
	}
	return l.vsSelectFields(vd, names)
}

func (l *lib) vsSelectFields(vd sdlib.VDataID, names []string) error {
	cfields := C.CString(strings.Join(names, ","))
	defer C.free(unsafe.Pointer(cfields))
	return failed(C.VSsetfields(C.int32(vd), cfields), "VSsetfields")
}

func (l *lib) VSFields(vd sdlib.VDataID) ([]sdlib.VField, error) {
	n := C.VFnfields(C.int32(vd))
	if n == C.int32(sdlib.FAIL) {
		return nil, fmt.Errorf("VFnfields: %w", sdlib.ErrFail)
	}
	out := make([]sdlib.VField, n)
	for i := C.int32(0); i < n; i++ {
		out[i] = sdlib.VField{
			Name:  C.GoString(C.VFfieldname(C.int32(vd), i)),
			Type:  sdlib.TypeCode(C.VFfieldtype(C.int32(vd), i)),
			Order: int(C.VFfieldorder(C.int32(vd), i)),
		}
	}
	return out, nil
}

func (l *lib) VSWrite(vd sdlib.VDataID, records []byte, n int) (int, error) {
	if n == 0 {
		return 0, nil
	}
	written := C.VSwrite(C.int32(vd), (*C.uint8)(unsafe.Pointer(&records[0])), C.int32(n), C.FULL_INTERLACE)
	if written == C.int32(sdlib.FAIL) {
		return sdlib.FAIL, fmt.Errorf("VSwrite(%d records): %w", n, sdlib.ErrFail)
	}
	return int(written), nil
}

func (l *lib) VSRead(vd sdlib.VDataID, n int) ([]byte, int, error) {
	fields, err := l.VSFields(vd)
	if err != nil {
		return nil, sdlib.FAIL, err
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	// The library requires an explicit field selection before reading.
	if err := l.vsSelectFields(vd, names); err != nil {
		return nil, sdlib.FAIL, err
	}
	buf := make([]byte, n*sdlib.RecordSize(fields))
	if len(buf) == 0 {
		return nil, 0, nil
	}
	read := C.VSread(C.int32(vd), (*C.uint8)(unsafe.Pointer(&buf[0])), C.int32(n), C.FULL_INTERLACE)
	if read == C.int32(sdlib.FAIL) {
		return nil, sdlib.FAIL, fmt.Errorf("VSread(%d records): %w", n, sdlib.ErrFail)
	}
	return buf[:int(read)*sdlib.RecordSize(fields)], int(read), nil
}

func (l *lib) VSCount(vd sdlib.VDataID) (int, error) {
	n := C.VSelts(C.int32(vd))
	if n == C.int32(sdlib.FAIL) {
		return sdlib.FAIL, fmt.Errorf("VSelts: %w", sdlib.ErrFail)
	}
	return int(n), nil
}
