package hdf4

import (
	"fmt"

	"github.com/robert-malhotra/go-hdf4/internal/dtype"
	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// Dataset is a named, typed, multi-dimensional array stored in the file.
// Its metadata lives in the catalog; element data moves through the
// external library on every read and write. The external handle is held
// open until the owning File closes.
type Dataset struct {
	file *File
	id   sdlib.DatasetID
	ref  int32

	name      string
	typ       TypeCode
	rank      int
	dims      []*Dimension // storage order
	attrs     map[string]*Attribute
	attrNames []string
}

// Name returns the dataset name.
func (d *Dataset) Name() string {
	return d.name
}

// Type returns the element type code.
func (d *Dataset) Type() TypeCode {
	return d.typ
}

// Rank returns the number of dimensions.
func (d *Dataset) Rank() int {
	return d.rank
}

// Ref returns the dataset's reference number, usable as a Vgroup member
// with TagSDS.
func (d *Dataset) Ref() int32 {
	return d.ref
}

// Dim returns the dimension at the given storage-order index.
func (d *Dataset) Dim(index int) (*Dimension, error) {
	if index < 0 || index >= len(d.dims) {
		return nil, fmt.Errorf("dimension %d of %q: %w", index, d.name, ErrNotFound)
	}
	return d.dims[index], nil
}

// Dimensions returns the dimensions in storage order.
func (d *Dataset) Dimensions() []*Dimension {
	return append([]*Dimension(nil), d.dims...)
}

// Shape returns the declared shape in caller order. An Unlimited entry
// marks an unbounded axis; CurrentShape resolves it.
func (d *Dataset) Shape() []int {
	dims := make([]int, len(d.dims))
	for i, dim := range d.dims {
		dims[i] = dim.size
	}
	return reverseInts(dims)
}

// CurrentShape returns the usable shape in caller order, with any
// unbounded axis resolved to its current real extent.
func (d *Dataset) CurrentShape() ([]int, error) {
	dims, err := d.currentStorageShape()
	if err != nil {
		return nil, err
	}
	return reverseInts(dims), nil
}

// currentStorageShape returns current extents in storage order.
func (d *Dataset) currentStorageShape() ([]int, error) {
	dims := make([]int, len(d.dims))
	for i, dim := range d.dims {
		n, err := dim.Length()
		if err != nil {
			return nil, err
		}
		dims[i] = n
	}
	return dims, nil
}

// Attributes returns attribute names in the library's index order.
func (d *Dataset) Attributes() []string {
	return append([]string(nil), d.attrNames...)
}

// Attr returns an attribute by name.
func (d *Dataset) Attr(name string) (*Attribute, error) {
	if d.file.closed {
		return nil, ErrClosed
	}
	a, ok := d.attrs[name]
	if !ok {
		return nil, fmt.Errorf("attribute %q of %q: %w", name, d.name, ErrNotFound)
	}
	return a, nil
}

// HasAttr reports whether the dataset has an attribute with the given
// name.
func (d *Dataset) HasAttr(name string) bool {
	_, ok := d.attrs[name]
	return ok
}

// SetAttr creates or replaces an attribute on the dataset. The catalog
// is updated only after the library accepts the write.
func (d *Dataset) SetAttr(name string, value interface{}) error {
	if d.file.closed {
		return ErrClosed
	}
	if !d.file.writable {
		return ErrReadOnly
	}
	a, err := stageAttribute(d.file.types, name, value)
	if err != nil {
		return fmt.Errorf("attribute %q of %q: %w: %w", name, d.name, err, ErrWrite)
	}
	return d.commitAttr(a)
}

func (d *Dataset) commitAttr(a *Attribute) error {
	if err := writeAttribute(d.file.lib, sdlib.ID(d.id), a); err != nil {
		return fmt.Errorf("attribute %q of %q: %w: %w", a.name, d.name, err, ErrWrite)
	}
	d.putAttr(a)
	return nil
}

func (d *Dataset) putAttr(a *Attribute) {
	if _, ok := d.attrs[a.name]; !ok {
		d.attrNames = append(d.attrNames, a.name)
	}
	d.attrs[a.name] = a
}

// Read reads the whole dataset into dest, a pointer to a slice of the
// matching element type (or *string for character data).
func (d *Dataset) Read(dest interface{}) error {
	return d.ReadSlice(dest, nil, nil, nil)
}

// ReadSlice reads a hyperslab into dest. start, extent and stride are in
// caller order; nil defaults are all-zero start, the current shape
// (resolving unbounded axes to their real extent) and all-one stride.
func (d *Dataset) ReadSlice(dest interface{}, start, extent, stride []int) error {
	raw, count, err := d.readRaw(start, extent, stride)
	if err != nil {
		return err
	}
	return dtype.Decode(d.typ, raw, count, dest)
}

// Values reads the whole dataset and returns an auto-typed value: a
// string for character data, otherwise a typed slice.
func (d *Dataset) Values() (interface{}, error) {
	raw, count, err := d.readRaw(nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return dtype.Value(d.typ, raw, count)
}

func (d *Dataset) readRaw(start, extent, stride []int) ([]byte, int, error) {
	if d.file.closed {
		return nil, 0, ErrClosed
	}
	sStart, sStride, sEdges, err := d.storageTriple(start, extent, stride)
	if err != nil {
		return nil, 0, err
	}
	raw, err := d.file.lib.ReadData(d.id, sStart, sStride, sEdges)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %q: %w: %w", d.name, err, ErrQuery)
	}
	return raw, volume(sEdges), nil
}

// storageTriple applies caller-order defaults and converts the triple to
// storage order.
func (d *Dataset) storageTriple(start, extent, stride []int) (sStart, sStride, sEdges []int, err error) {
	rank := d.rank
	if start == nil {
		start = zeros(rank)
	}
	if stride == nil {
		stride = ones(rank)
	}
	if len(start) != rank || len(stride) != rank {
		return nil, nil, nil, fmt.Errorf("dataset %q has rank %d, got start/stride of %d/%d: %w",
			d.name, rank, len(start), len(stride), ErrQuery)
	}
	if extent == nil {
		shape, err := d.CurrentShape()
		if err != nil {
			return nil, nil, nil, err
		}
		extent = shape
		for i := range extent {
			extent[i] -= start[i]
		}
	}
	if len(extent) != rank {
		return nil, nil, nil, fmt.Errorf("dataset %q has rank %d, got extent of %d: %w",
			d.name, rank, len(extent), ErrQuery)
	}
	return reverseInts(start), reverseInts(stride), reverseInts(extent), nil
}

// ReadFloat64 reads the dataset as float64 values.
func (d *Dataset) ReadFloat64() ([]float64, error) {
	var result []float64
	err := d.Read(&result)
	return result, err
}

// ReadFloat32 reads the dataset as float32 values.
func (d *Dataset) ReadFloat32() ([]float32, error) {
	var result []float32
	err := d.Read(&result)
	return result, err
}

// ReadInt32 reads the dataset as int32 values.
func (d *Dataset) ReadInt32() ([]int32, error) {
	var result []int32
	err := d.Read(&result)
	return result, err
}

// ReadInt16 reads the dataset as int16 values.
func (d *Dataset) ReadInt16() ([]int16, error) {
	var result []int16
	err := d.Read(&result)
	return result, err
}

// ReadInt8 reads the dataset as int8 values.
func (d *Dataset) ReadInt8() ([]int8, error) {
	var result []int8
	err := d.Read(&result)
	return result, err
}

// ReadUint8 reads the dataset as uint8 values.
func (d *Dataset) ReadUint8() ([]uint8, error) {
	var result []uint8
	err := d.Read(&result)
	return result, err
}

// ReadString reads a character dataset as a string.
func (d *Dataset) ReadString() (string, error) {
	var result string
	err := d.Read(&result)
	return result, err
}
