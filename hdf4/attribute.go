package hdf4

import (
	"fmt"

	"github.com/robert-malhotra/go-hdf4/internal/dtype"
	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// Attribute is a named, typed side-value attached to the file or to one
// dataset. Values are materialized during the catalog build: character
// data as a string, everything else as a typed slice.
type Attribute struct {
	name  string
	typ   TypeCode
	count int
	value interface{}
}

// Name returns the attribute name.
func (a *Attribute) Name() string {
	return a.name
}

// Type returns the element type code.
func (a *Attribute) Type() TypeCode {
	return a.typ
}

// Len returns the element count of the stored value.
func (a *Attribute) Len() int {
	return a.count
}

// Value returns the materialized value: a string for the character kind,
// otherwise a typed slice ([]int32, []float64, ...).
func (a *Attribute) Value() interface{} {
	return a.value
}

// Text returns the value as a string. ok is false for non-character
// attributes.
func (a *Attribute) Text() (text string, ok bool) {
	text, ok = a.value.(string)
	return text, ok
}

// Float64s returns the value converted to float64 elements.
func (a *Attribute) Float64s() ([]float64, error) {
	var out []float64
	if err := convertSlice(a.value, &out); err != nil {
		return nil, fmt.Errorf("attribute %q: %w", a.name, err)
	}
	return out, nil
}

// Int64s returns the value converted to int64 elements.
func (a *Attribute) Int64s() ([]int64, error) {
	var out []int64
	if err := convertSlice(a.value, &out); err != nil {
		return nil, fmt.Errorf("attribute %q: %w", a.name, err)
	}
	return out, nil
}

// Scalar returns the single element of a one-element attribute.
func (a *Attribute) Scalar() (interface{}, error) {
	if s, ok := a.value.(string); ok {
		return s, nil
	}
	if a.count != 1 {
		return nil, fmt.Errorf("attribute %q holds %d elements, not a scalar", a.name, a.count)
	}
	return scalarOf(a.value), nil
}

// stageAttribute prepares the catalog entry for a pending attribute
// write. The value is encoded and decoded back, so the staged entry holds
// exactly what a later catalog build would read and its stored type
// always matches its metadata type.
func stageAttribute(types *dtype.Table, name string, value interface{}) (*Attribute, error) {
	if name == "" {
		return nil, fmt.Errorf("empty attribute name")
	}
	code, err := types.CodeOf(value)
	if err != nil {
		return nil, err
	}
	raw, err := dtype.Encode(code, value)
	if err != nil {
		return nil, err
	}
	count := len(raw) / code.Size()
	if count == 0 {
		return nil, fmt.Errorf("empty attribute value")
	}
	materialized, err := dtype.Value(code, raw, count)
	if err != nil {
		return nil, err
	}
	return &Attribute{name: name, typ: code, count: count, value: materialized}, nil
}

// writeAttribute forwards a staged attribute to the library. The caller
// commits the catalog entry only after this succeeds.
func writeAttribute(lib sdlib.Library, obj sdlib.ID, a *Attribute) error {
	raw, err := dtype.Encode(a.typ, a.value)
	if err != nil {
		return err
	}
	return lib.SetAttr(obj, a.name, a.typ, a.count, raw)
}

// readAttribute queries one attribute by index and materializes it, per
// the catalog build procedure: exact element count, padded name trimmed,
// character buffers decoded byte-for-byte.
func readAttribute(lib sdlib.Library, obj sdlib.ID, index int) (*Attribute, error) {
	info, err := lib.AttrInfo(obj, index)
	if err != nil {
		return nil, err
	}
	raw, err := lib.ReadAttr(obj, index)
	if err != nil {
		return nil, err
	}
	value, err := dtype.Value(info.Type, raw, info.Count)
	if err != nil {
		return nil, err
	}
	return &Attribute{
		name:  dtype.TrimName(info.Name),
		typ:   info.Type,
		count: info.Count,
		value: value,
	}, nil
}
