package sdlib

import "fmt"

// TypeCode is an HDF4 numeric type code (DFNT_*). The set is closed; the
// binding rejects codes outside it.
type TypeCode int32

const (
	UChar8  TypeCode = 3  // DFNT_UCHAR8
	Char8   TypeCode = 4  // DFNT_CHAR8
	Float32 TypeCode = 5  // DFNT_FLOAT32
	Float64 TypeCode = 6  // DFNT_FLOAT64
	Int8    TypeCode = 20 // DFNT_INT8
	UInt8   TypeCode = 21 // DFNT_UINT8
	Int16   TypeCode = 22 // DFNT_INT16
	UInt16  TypeCode = 23 // DFNT_UINT16
	Int32   TypeCode = 24 // DFNT_INT32
	UInt32  TypeCode = 25 // DFNT_UINT32
)

// Size returns the element size in bytes, or 0 for an unknown code.
func (t TypeCode) Size() int {
	switch t {
	case UChar8, Char8, Int8, UInt8:
		return 1
	case Int16, UInt16:
		return 2
	case Float32, Int32, UInt32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

// IsChar reports whether the code is the character kind, whose attribute
// values decode to text rather than a numeric slice.
func (t TypeCode) IsChar() bool {
	return t == Char8
}

// Valid reports whether the code belongs to the supported set.
func (t TypeCode) Valid() bool {
	return t.Size() != 0
}

// String returns the conventional short name of the code.
func (t TypeCode) String() string {
	switch t {
	case UChar8:
		return "uchar8"
	case Char8:
		return "char8"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int8:
		return "int8"
	case UInt8:
		return "uint8"
	case Int16:
		return "int16"
	case UInt16:
		return "uint16"
	case Int32:
		return "int32"
	case UInt32:
		return "uint32"
	default:
		return fmt.Sprintf("typecode(%d)", int32(t))
	}
}
