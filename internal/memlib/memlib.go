// Package memlib emulates the external HDF4 library surface in pure Go.
//
// It implements sdlib.Library over an in-process container that persists
// to a sidecar encoding on End. The emulation honors the contract the
// binding depends on (index-ordered metadata queries, FAIL-style errors,
// frozen chunk geometry, unbounded record axes) without reproducing the
// HDF4 on-disk format. It backs the portable fallback backend and the
// test suite; files written by the real library are not readable here.
//
// Like the library it stands in for, it performs no locking and is not
// safe for concurrent use against the same file handle.
package memlib

import (
	"fmt"
	"os"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// Lib is an in-process emulation of the HDF4 library. The zero value is
// not usable; construct with New.
type Lib struct {
	files    map[sdlib.FileID]*fileHandle
	datasets map[sdlib.DatasetID]*datasetHandle
	dims     map[sdlib.DimID]*dimHandle
	vgroups  map[sdlib.VGroupID]*vgroupHandle
	vdatas   map[sdlib.VDataID]*vdataHandle
	nextID   sdlib.ID
}

var _ sdlib.Library = (*Lib)(nil)

// New returns an empty library instance. Instances are independent; a
// handle from one is meaningless to another.
func New() *Lib {
	return &Lib{
		files:    make(map[sdlib.FileID]*fileHandle),
		datasets: make(map[sdlib.DatasetID]*datasetHandle),
		dims:     make(map[sdlib.DimID]*dimHandle),
		vgroups:  make(map[sdlib.VGroupID]*vgroupHandle),
		vdatas:   make(map[sdlib.VDataID]*vdataHandle),
		nextID:   1,
	}
}

type fileHandle struct {
	path     string
	mode     sdlib.AccessMode
	c        *container
	open     int // outstanding dataset handles
	vStarted bool
	dirty    bool
}

type datasetHandle struct {
	file *fileHandle
	ds   *dataset
}

type dimHandle struct {
	file  *fileHandle
	ds    *dataset
	index int
}

func (l *Lib) id() sdlib.ID {
	id := l.nextID
	l.nextID++
	return id
}

// Start opens or creates the container at path.
func (l *Lib) Start(path string, mode sdlib.AccessMode) (sdlib.FileID, error) {
	var c *container
	switch mode {
	case sdlib.Create:
		c = newContainer()
	case sdlib.ReadOnly, sdlib.WriteOnly, sdlib.ReadWrite:
		loaded, err := load(path)
		if err != nil {
			if os.IsNotExist(err) && mode.Writable() {
				// Opening a missing file for writing creates it.
				c = newContainer()
				break
			}
			return sdlib.FileID(sdlib.FAIL), fmt.Errorf("loading container %s: %w", path, err)
		}
		c = loaded
	default:
		return sdlib.FileID(sdlib.FAIL), fmt.Errorf("invalid access mode %d", mode)
	}

	fid := sdlib.FileID(l.id())
	l.files[fid] = &fileHandle{path: path, mode: mode, c: c, dirty: mode == sdlib.Create}
	return fid, nil
}

// End flushes and releases a file handle. Fails while dataset handles
// obtained from the file are still open.
func (l *Lib) End(id sdlib.FileID) error {
	f, err := l.file(id)
	if err != nil {
		return err
	}
	if f.open != 0 {
		return fmt.Errorf("%d dataset handle(s) still open on %s", f.open, f.path)
	}
	if f.mode.Writable() && f.dirty {
		if err := save(f.path, f.c); err != nil {
			return fmt.Errorf("saving container %s: %w", f.path, err)
		}
	}
	delete(l.files, id)
	return nil
}

// FileInfo reports dataset and global-attribute counts.
func (l *Lib) FileInfo(id sdlib.FileID) (int, int, error) {
	f, err := l.file(id)
	if err != nil {
		return sdlib.FAIL, sdlib.FAIL, err
	}
	return len(f.c.Datasets), len(f.c.GlobalAttrs), nil
}

func (l *Lib) file(id sdlib.FileID) (*fileHandle, error) {
	f, ok := l.files[id]
	if !ok {
		return nil, fmt.Errorf("invalid file handle %d: %w", id, sdlib.ErrFail)
	}
	return f, nil
}

func (l *Lib) dataset(id sdlib.DatasetID) (*datasetHandle, error) {
	h, ok := l.datasets[id]
	if !ok {
		return nil, fmt.Errorf("invalid dataset handle %d: %w", id, sdlib.ErrFail)
	}
	return h, nil
}

func (l *Lib) dim(id sdlib.DimID) (*dimHandle, error) {
	h, ok := l.dims[id]
	if !ok {
		return nil, fmt.Errorf("invalid dimension handle %d: %w", id, sdlib.ErrFail)
	}
	return h, nil
}
