// Package dtype maps HDF4 numeric type codes to Go element types and
// converts raw element buffers to and from Go values.
//
// The correspondence lives in a Table built once at startup and shared by
// reference; it is never mutated after construction.
package dtype

import (
	"fmt"
	"reflect"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// Table is the bidirectional correspondence between HDF4 type codes and Go
// element types. Immutable after construction.
type Table struct {
	goType map[sdlib.TypeCode]reflect.Type
	code   map[reflect.Kind]sdlib.TypeCode
}

var standard = newTable()

// Standard returns the shared table covering the full supported code set.
func Standard() *Table {
	return standard
}

func newTable() *Table {
	return &Table{
		goType: map[sdlib.TypeCode]reflect.Type{
			sdlib.Char8:   reflect.TypeOf(""),
			sdlib.UChar8:  reflect.TypeOf(uint8(0)),
			sdlib.Int8:    reflect.TypeOf(int8(0)),
			sdlib.UInt8:   reflect.TypeOf(uint8(0)),
			sdlib.Int16:   reflect.TypeOf(int16(0)),
			sdlib.UInt16:  reflect.TypeOf(uint16(0)),
			sdlib.Int32:   reflect.TypeOf(int32(0)),
			sdlib.UInt32:  reflect.TypeOf(uint32(0)),
			sdlib.Float32: reflect.TypeOf(float32(0)),
			sdlib.Float64: reflect.TypeOf(float64(0)),
		},
		code: map[reflect.Kind]sdlib.TypeCode{
			reflect.String:  sdlib.Char8,
			reflect.Int8:    sdlib.Int8,
			reflect.Uint8:   sdlib.UInt8,
			reflect.Int16:   sdlib.Int16,
			reflect.Uint16:  sdlib.UInt16,
			reflect.Int32:   sdlib.Int32,
			reflect.Uint32:  sdlib.UInt32,
			reflect.Float32: sdlib.Float32,
			reflect.Float64: sdlib.Float64,
			// Untyped Go ints narrow to the library's widest integer.
			reflect.Int:  sdlib.Int32,
			reflect.Uint: sdlib.UInt32,
		},
	}
}

// GoType returns the Go element type for an HDF4 type code.
func (t *Table) GoType(code sdlib.TypeCode) (reflect.Type, error) {
	rt, ok := t.goType[code]
	if !ok {
		return nil, fmt.Errorf("unsupported type code %s", code)
	}
	return rt, nil
}

// Code returns the HDF4 type code for a Go element type.
func (t *Table) Code(rt reflect.Type) (sdlib.TypeCode, error) {
	code, ok := t.code[rt.Kind()]
	if !ok {
		return 0, fmt.Errorf("no HDF4 type code for Go type %s", rt)
	}
	return code, nil
}

// CodeOf returns the HDF4 type code for a Go value. Slices and arrays
// resolve to their element type; a string resolves to the character kind.
func (t *Table) CodeOf(v interface{}) (sdlib.TypeCode, error) {
	rt := reflect.TypeOf(v)
	if rt == nil {
		return 0, fmt.Errorf("cannot infer type code from nil value")
	}
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() == reflect.Slice || rt.Kind() == reflect.Array {
		rt = rt.Elem()
	}
	return t.Code(rt)
}
