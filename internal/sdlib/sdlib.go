// Package sdlib defines the HDF4 library surface consumed by the binding.
//
// The Library interface mirrors the SD (Scientific Dataset) and V/VS
// (Vgroup/Vdata) call families of the external HDF4 library. Two
// implementations exist: internal/native binds the real C library, and
// internal/memlib emulates the same contract in pure Go for portable use
// and for the test suite.
package sdlib

import "errors"

// ID is a generic identifier as handed out by the library. File, dataset,
// dimension, Vgroup and Vdata identifiers are distinct named types over it;
// calls that accept more than one identifier kind (the attribute family)
// take a plain ID.
type ID int32

// Identifier kinds.
type (
	FileID    ID
	DatasetID ID
	DimID     ID
	VGroupID  ID
	VDataID   ID
)

// FAIL is the external library's universal failure sentinel.
const FAIL = -1

// ErrFail is returned by backends when a library call reports FAIL without
// further detail.
var ErrFail = errors.New("hdf4 library call failed")

// AccessMode selects how a file is opened. The values are the DFACC_*
// flags consumed directly by the external library.
type AccessMode int

const (
	ReadOnly  AccessMode = 1 // DFACC_READ
	WriteOnly AccessMode = 2 // DFACC_WRITE
	ReadWrite AccessMode = 3 // DFACC_RDWR
	Create    AccessMode = 4 // DFACC_CREATE, clobbers an existing file
)

// Writable reports whether the mode permits mutation.
func (m AccessMode) Writable() bool {
	return m != ReadOnly
}

// String returns the conventional name of the mode.
func (m AccessMode) String() string {
	switch m {
	case ReadOnly:
		return "read"
	case WriteOnly:
		return "write"
	case ReadWrite:
		return "rdwr"
	case Create:
		return "create"
	default:
		return "unknown"
	}
}

// CompCode selects a compression method for chunked storage. The values
// are the external library's COMP_CODE_* constants.
type CompCode int

const (
	CompNone        CompCode = 0
	CompRLE         CompCode = 1
	CompNBit        CompCode = 2
	CompSkipHuffman CompCode = 3
	CompDeflate     CompCode = 4
)

// MaxNameLen is the largest name the external library will report for a
// dataset, dimension or attribute (H4_MAX_NC_NAME).
const MaxNameLen = 256

// MaxRank is the largest dimension count the external library supports
// (H4_MAX_VAR_DIMS).
const MaxRank = 32

// Unlimited is the declared size of an unbounded dimension. A dimension
// reporting this size grows with appended writes; its current extent must
// be queried through Library.UnlimitedExtent, never assumed.
const Unlimited = 0
