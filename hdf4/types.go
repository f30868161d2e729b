package hdf4

import "github.com/robert-malhotra/go-hdf4/internal/sdlib"

// TypeCode identifies an HDF4 element type (DFNT_*).
type TypeCode = sdlib.TypeCode

// Element type codes.
const (
	UChar8  = sdlib.UChar8
	Char8   = sdlib.Char8
	Float32 = sdlib.Float32
	Float64 = sdlib.Float64
	Int8    = sdlib.Int8
	UInt8   = sdlib.UInt8
	Int16   = sdlib.Int16
	UInt16  = sdlib.UInt16
	Int32   = sdlib.Int32
	UInt32  = sdlib.UInt32
)

// CompCode identifies a compression method for chunked storage.
type CompCode = sdlib.CompCode

// Compression codes.
const (
	CompNone        = sdlib.CompNone
	CompRLE         = sdlib.CompRLE
	CompNBit        = sdlib.CompNBit
	CompSkipHuffman = sdlib.CompSkipHuffman
	CompDeflate     = sdlib.CompDeflate
)

// Unlimited marks an unbounded axis in a dataset shape. Only the slowest
// varying storage axis may be unbounded.
const Unlimited = sdlib.Unlimited

// Reserved attribute names with dedicated accessors. They are ordinary
// attributes at storage level; only the exact names below are recognized.
const (
	AttrFillValue      = "_FillValue"
	AttrValidRange     = "valid_range"
	AttrScaleFactor    = "scale_factor"
	AttrScaleFactorErr = "scale_factor_err"
	AttrAddOffset      = "add_offset"
	AttrAddOffsetErr   = "add_offset_err"
	AttrCalibratedNT   = "calibrated_nt"
)
