package hdf4

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-hdf4/internal/dtype"
	"github.com/robert-malhotra/go-hdf4/internal/memlib"
	"github.com/robert-malhotra/go-hdf4/internal/native"
	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// File is an open HDF4 container. It owns the external file handle, the
// metadata catalog built at open, and every per-dataset handle derived
// from it; all of those are released together by Close.
type File struct {
	path     string
	mode     sdlib.AccessMode
	lib      sdlib.Library
	id       sdlib.FileID
	types    *dtype.Table
	opts     *fileOptions
	catalog  *catalog
	writable bool
	closed   bool

	vStarted bool
	vgroups  map[sdlib.VGroupID]struct{}
	vdatas   map[sdlib.VDataID]struct{}
}

// Open opens an existing file for reading.
func Open(path string, opts ...FileOption) (*File, error) {
	return open(path, sdlib.ReadOnly, opts)
}

// OpenReadWrite opens an existing file for reading and writing. A
// missing file is created.
func OpenReadWrite(path string, opts ...FileOption) (*File, error) {
	return open(path, sdlib.ReadWrite, opts)
}

// Create creates a new file, clobbering any existing one.
func Create(path string, opts ...FileOption) (*File, error) {
	return open(path, sdlib.Create, opts)
}

func open(path string, mode sdlib.AccessMode, opts []FileOption) (*File, error) {
	options := defaultFileOptions()
	for _, opt := range opts {
		opt(options)
	}

	var (
		lib sdlib.Library
		err error
	)
	switch options.backend {
	case BackendMemory:
		lib = memlib.New()
	case BackendNative:
		lib, err = native.New()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", err, ErrOpen)
		}
	default:
		return nil, fmt.Errorf("unknown backend %d: %w", options.backend, ErrOpen)
	}

	id, err := lib.Start(path, mode)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w: %w", path, err, ErrOpen)
	}

	f := &File{
		path:     path,
		mode:     mode,
		lib:      lib,
		id:       id,
		types:    dtype.Standard(),
		opts:     options,
		writable: mode.Writable(),
		vgroups:  make(map[sdlib.VGroupID]struct{}),
		vdatas:   make(map[sdlib.VDataID]struct{}),
	}

	cat, err := buildCatalog(f)
	if err != nil {
		lib.End(id)
		return nil, fmt.Errorf("cataloging %s: %w", path, err)
	}
	f.catalog = cat
	return f, nil
}

// Close releases everything the file owns: outstanding Vdata and Vgroup
// handles, then every per-dataset handle, then the file handle itself.
// Dataset handles are always released before the file handle. Close is
// idempotent.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	var errs []error
	for vd := range f.vdatas {
		if err := f.lib.VSDetach(vd); err != nil {
			errs = append(errs, err)
		}
	}
	f.vdatas = nil
	for vg := range f.vgroups {
		if err := f.lib.VDetach(vg); err != nil {
			errs = append(errs, err)
		}
	}
	f.vgroups = nil
	if f.vStarted {
		if err := f.lib.VEnd(f.id); err != nil {
			errs = append(errs, err)
		}
	}

	f.catalog.release(f)

	if err := f.lib.End(f.id); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// IsWritable reports whether the file was opened for writing.
func (f *File) IsWritable() bool {
	return f.writable
}

// Datasets returns dataset names in the library's index order.
func (f *File) Datasets() []string {
	return append([]string(nil), f.catalog.datasetNames...)
}

// Dataset returns a dataset by name.
func (f *File) Dataset(name string) (*Dataset, error) {
	if f.closed {
		return nil, ErrClosed
	}
	ds, ok := f.catalog.datasets[name]
	if !ok {
		return nil, fmt.Errorf("dataset %q: %w", name, ErrNotFound)
	}
	return ds, nil
}

// HasDataset reports whether a dataset exists in the catalog.
func (f *File) HasDataset(name string) bool {
	_, ok := f.catalog.datasets[name]
	return ok
}

// Attributes returns global attribute names in the library's index order.
func (f *File) Attributes() []string {
	return append([]string(nil), f.catalog.globalNames...)
}

// Attr returns a global attribute by name.
func (f *File) Attr(name string) (*Attribute, error) {
	if f.closed {
		return nil, ErrClosed
	}
	a, ok := f.catalog.globals[name]
	if !ok {
		return nil, fmt.Errorf("global attribute %q: %w", name, ErrNotFound)
	}
	return a, nil
}

// SetAttr creates or replaces a global attribute. The value may be a
// typed slice, a scalar, or a string (stored as character data). The
// catalog is updated only after the library accepts the write.
func (f *File) SetAttr(name string, value interface{}) error {
	if f.closed {
		return ErrClosed
	}
	if !f.writable {
		return ErrReadOnly
	}
	a, err := stageAttribute(f.types, name, value)
	if err != nil {
		return fmt.Errorf("global attribute %q: %w: %w", name, err, ErrWrite)
	}
	if err := writeAttribute(f.lib, sdlib.ID(f.id), a); err != nil {
		return fmt.Errorf("global attribute %q: %w: %w", name, err, ErrWrite)
	}
	f.catalog.putGlobal(a)
	return nil
}
