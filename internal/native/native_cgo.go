//go:build hdf4cgo

// Package native binds the external HDF4 C library (libmfhdf/libdf).
package native

/*
#cgo LDFLAGS: -lmfhdf -ldf -ljpeg -lz
#include <stdlib.h>
#include <string.h>
#include "mfhdf.h"
#include "vg.h"

// SDsetchunk takes a HDF_CHUNK_DEF union by value; populate it in C where
// the union members are addressable.
static intn gohdf4_set_chunk(int32 sdsid, int32 *lengths, int32 rank, int32 comp, int32 level) {
	HDF_CHUNK_DEF cdef;
	int32 flags = HDF_CHUNK;
	int i;
	memset(&cdef, 0, sizeof cdef);
	for (i = 0; i < rank; i++) {
		cdef.chunk_lengths[i] = lengths[i];
		cdef.comp.chunk_lengths[i] = lengths[i];
	}
	if (comp != COMP_CODE_NONE) {
		flags = HDF_CHUNK | HDF_COMP;
		cdef.comp.comp_type = comp;
		if (comp == COMP_CODE_DEFLATE)
			cdef.comp.cinfo.deflate.level = level;
		if (comp == COMP_CODE_SKPHUFF)
			cdef.comp.cinfo.skphuff.skp_size = 1;
	}
	return SDsetchunk(sdsid, cdef, flags);
}

static intn gohdf4_set_compress(int32 sdsid, int32 comp, int32 level) {
	comp_info cinfo;
	memset(&cinfo, 0, sizeof cinfo);
	if (comp == COMP_CODE_DEFLATE)
		cinfo.deflate.level = level;
	if (comp == COMP_CODE_SKPHUFF)
		cinfo.skphuff.skp_size = 1;
	return SDsetcompress(sdsid, (comp_coder_t)comp, &cinfo);
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// Available reports whether the native backend was compiled in.
func Available() bool {
	return true
}

// lib implements sdlib.Library over the C call surface. The SD and V
// interfaces take different file handles in C (SDstart vs Hopen), so the
// binding keeps both per opened file and exposes the SD one as the FileID.
type lib struct {
	files map[sdlib.FileID]*vfile
}

// vfile carries the V-interface side of an opened file.
type vfile struct {
	path string
	mode sdlib.AccessMode
	hid  C.int32 // Hopen handle, FAIL until VStart
}

var _ sdlib.Library = (*lib)(nil)

// New returns the native library binding.
func New() (sdlib.Library, error) {
	return &lib{files: make(map[sdlib.FileID]*vfile)}, nil
}

func failed(status C.intn, op string) error {
	if status == C.intn(sdlib.FAIL) {
		return fmt.Errorf("%s: %w", op, sdlib.ErrFail)
	}
	return nil
}

func (l *lib) Start(path string, mode sdlib.AccessMode) (sdlib.FileID, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	id := C.SDstart(cpath, C.int32(mode))
	if id == C.int32(sdlib.FAIL) {
		return sdlib.FileID(sdlib.FAIL), fmt.Errorf("SDstart(%s, %s): %w", path, mode, sdlib.ErrFail)
	}
	fid := sdlib.FileID(id)
	l.files[fid] = &vfile{path: path, mode: mode, hid: C.int32(sdlib.FAIL)}
	return fid, nil
}

func (l *lib) End(id sdlib.FileID) error {
	if vf, ok := l.files[id]; ok {
		if vf.hid != C.int32(sdlib.FAIL) {
			C.Vend(vf.hid)
			C.Hclose(vf.hid)
		}
		delete(l.files, id)
	}
	return failed(C.SDend(C.int32(id)), "SDend")
}

func (l *lib) FileInfo(id sdlib.FileID) (int, int, error) {
	var nds, nattr C.int32
	if err := failed(C.SDfileinfo(C.int32(id), &nds, &nattr), "SDfileinfo"); err != nil {
		return sdlib.FAIL, sdlib.FAIL, err
	}
	return int(nds), int(nattr), nil
}

func (l *lib) Select(id sdlib.FileID, index int) (sdlib.DatasetID, error) {
	ds := C.SDselect(C.int32(id), C.int32(index))
	if ds == C.int32(sdlib.FAIL) {
		return sdlib.DatasetID(sdlib.FAIL), fmt.Errorf("SDselect(%d): %w", index, sdlib.ErrFail)
	}
	return sdlib.DatasetID(ds), nil
}

func (l *lib) CreateDataset(id sdlib.FileID, name string, typ sdlib.TypeCode, dims []int) (sdlib.DatasetID, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cdims := cInt32s(dims)
	ds := C.SDcreate(C.int32(id), cname, C.int32(typ), C.int32(len(dims)), &cdims[0])
	if ds == C.int32(sdlib.FAIL) {
		return sdlib.DatasetID(sdlib.FAIL), fmt.Errorf("SDcreate(%s): %w", name, sdlib.ErrFail)
	}
	return sdlib.DatasetID(ds), nil
}

func (l *lib) EndAccess(ds sdlib.DatasetID) error {
	return failed(C.SDendaccess(C.int32(ds)), "SDendaccess")
}

func (l *lib) DatasetInfo(ds sdlib.DatasetID) (sdlib.DatasetInfo, error) {
	var name [sdlib.MaxNameLen + 1]C.char
	var rank, typ, nattrs C.int32
	var dims [sdlib.MaxRank]C.int32
	if err := failed(C.SDgetinfo(C.int32(ds), &name[0], &rank, &dims[0], &typ, &nattrs), "SDgetinfo"); err != nil {
		return sdlib.DatasetInfo{}, err
	}
	info := sdlib.DatasetInfo{
		Name:     C.GoString(&name[0]),
		Rank:     int(rank),
		Type:     sdlib.TypeCode(typ),
		NumAttrs: int(nattrs),
	}
	info.Dims = make([]int, info.Rank)
	for i := range info.Dims {
		info.Dims[i] = int(dims[i])
	}
	// SDgetinfo reports the current record count on an unbounded axis;
	// the declared size comes from SDdiminfo. Normalize to declared sizes
	// here, since UnlimitedExtent is the dedicated current-extent query.
	if C.SDisrecord(C.int32(ds)) != 0 && info.Rank > 0 {
		info.Dims[0] = sdlib.Unlimited
	}
	return info, nil
}

func (l *lib) UnlimitedExtent(ds sdlib.DatasetID) (int, error) {
	var name [sdlib.MaxNameLen + 1]C.char
	var rank, typ, nattrs C.int32
	var dims [sdlib.MaxRank]C.int32
	if err := failed(C.SDgetinfo(C.int32(ds), &name[0], &rank, &dims[0], &typ, &nattrs), "SDgetinfo"); err != nil {
		return sdlib.FAIL, err
	}
	if rank == 0 {
		return 0, nil
	}
	return int(dims[0]), nil
}

func (l *lib) DatasetRef(ds sdlib.DatasetID) (int32, error) {
	ref := C.SDidtoref(C.int32(ds))
	if ref == C.int32(sdlib.FAIL) {
		return sdlib.FAIL, fmt.Errorf("SDidtoref: %w", sdlib.ErrFail)
	}
	return int32(ref), nil
}

func (l *lib) DimID(ds sdlib.DatasetID, index int) (sdlib.DimID, error) {
	dim := C.SDgetdimid(C.int32(ds), C.intn(index))
	if dim == C.int32(sdlib.FAIL) {
		return sdlib.DimID(sdlib.FAIL), fmt.Errorf("SDgetdimid(%d): %w", index, sdlib.ErrFail)
	}
	return sdlib.DimID(dim), nil
}

func (l *lib) DimInfo(dim sdlib.DimID) (sdlib.DimInfo, error) {
	var name [sdlib.MaxNameLen + 1]C.char
	var size, typ, nattrs C.int32
	if err := failed(C.SDdiminfo(C.int32(dim), &name[0], &size, &typ, &nattrs), "SDdiminfo"); err != nil {
		return sdlib.DimInfo{}, err
	}
	return sdlib.DimInfo{
		Name:     C.GoString(&name[0]),
		Size:     int(size),
		Type:     sdlib.TypeCode(typ),
		NumAttrs: int(nattrs),
	}, nil
}

func (l *lib) SetDimName(dim sdlib.DimID, name string) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return failed(C.SDsetdimname(C.int32(dim), cname), "SDsetdimname")
}

func (l *lib) AttrInfo(obj sdlib.ID, index int) (sdlib.AttrInfo, error) {
	var name [sdlib.MaxNameLen + 1]C.char
	var typ, count C.int32
	if err := failed(C.SDattrinfo(C.int32(obj), C.int32(index), &name[0], &typ, &count), "SDattrinfo"); err != nil {
		return sdlib.AttrInfo{}, err
	}
	return sdlib.AttrInfo{
		Name:  C.GoString(&name[0]),
		Type:  sdlib.TypeCode(typ),
		Count: int(count),
	}, nil
}

func (l *lib) ReadAttr(obj sdlib.ID, index int) ([]byte, error) {
	info, err := l.AttrInfo(obj, index)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, info.Count*info.Type.Size())
	if len(buf) == 0 {
		return buf, nil
	}
	if err := failed(C.SDreadattr(C.int32(obj), C.int32(index), unsafe.Pointer(&buf[0])), "SDreadattr"); err != nil {
		return nil, err
	}
	return buf, nil
}

func (l *lib) SetAttr(obj sdlib.ID, name string, typ sdlib.TypeCode, count int, data []byte) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var p unsafe.Pointer
	if len(data) > 0 {
		p = unsafe.Pointer(&data[0])
	}
	return failed(C.SDsetattr(C.int32(obj), cname, C.int32(typ), C.int32(count), p), "SDsetattr")
}

func (l *lib) ReadData(ds sdlib.DatasetID, start, stride, edges []int) ([]byte, error) {
	info, err := l.DatasetInfo(ds)
	if err != nil {
		return nil, err
	}
	n := info.Type.Size()
	for _, e := range edges {
		n *= e
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	cstart, cstride, cedges := cInt32s(start), cInt32s(stride), cInt32s(edges)
	if err := failed(C.SDreaddata(C.int32(ds), &cstart[0], &cstride[0], &cedges[0],
		unsafe.Pointer(&buf[0])), "SDreaddata"); err != nil {
		return nil, err
	}
	return buf, nil
}

func (l *lib) WriteData(ds sdlib.DatasetID, start, stride, edges []int, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	cstart, cstride, cedges := cInt32s(start), cInt32s(stride), cInt32s(edges)
	return failed(C.SDwritedata(C.int32(ds), &cstart[0], &cstride[0], &cedges[0],
		unsafe.Pointer(&data[0])), "SDwritedata")
}

func (l *lib) SetChunk(ds sdlib.DatasetID, lengths []int, comp sdlib.CompCode, level int) error {
	clengths := cInt32s(lengths)
	return failed(C.gohdf4_set_chunk(C.int32(ds), &clengths[0], C.int32(len(lengths)),
		C.int32(comp), C.int32(level)), "SDsetchunk")
}

func (l *lib) SetChunkCache(ds sdlib.DatasetID, maxChunks int) error {
	if C.SDsetchunkcache(C.int32(ds), C.int32(maxChunks), 0) == C.intn(sdlib.FAIL) {
		return fmt.Errorf("SDsetchunkcache: %w", sdlib.ErrFail)
	}
	return nil
}

func (l *lib) SetCompress(ds sdlib.DatasetID, comp sdlib.CompCode, level int) error {
	return failed(C.gohdf4_set_compress(C.int32(ds), C.int32(comp), C.int32(level)), "SDsetcompress")
}

func cInt32s(v []int) []C.int32 {
	out := make([]C.int32, len(v))
	for i, x := range v {
		out[i] = C.int32(x)
	}
	return out
}
