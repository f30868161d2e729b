// Package hdf4 provides Go bindings for the HDF4 SD (Scientific Dataset)
// and V/VS (Vgroup/Vdata) interfaces.
//
// Opening a file builds an in-memory catalog of its datasets, dimensions
// and attributes; all later lookups consult the catalog and forward data
// access to the external library. The package performs no locking: at most
// one goroutine may use a File and its derived objects at a time.
package hdf4

import "errors"

// Error kinds. Every error returned by the package wraps exactly one of
// these, so callers can discriminate with errors.Is.
var (
	// ErrOpen: the external library rejected a file open or create call.
	ErrOpen = errors.New("open failed")
	// ErrQuery: a metadata query failed while building the catalog. The
	// open is aborted; no partial catalog is ever exposed.
	ErrQuery = errors.New("metadata query failed")
	// ErrNotFound: a dataset or attribute name is absent from the catalog.
	// No external call is attempted for unknown names.
	ErrNotFound = errors.New("not found")
	// ErrWrite: the external library rejected a write or storage
	// configuration call.
	ErrWrite = errors.New("write failed")

	// ErrClosed: the file has already been closed.
	ErrClosed = errors.New("file is closed")
	// ErrReadOnly: a mutation was attempted on a read-only file.
	ErrReadOnly = errors.New("file is read-only")
)
