//go:build !hdf4cgo

// Package native binds the external HDF4 C library (libmfhdf/libdf).
//
// The real binding compiles only under the hdf4cgo build tag, since it
// needs the HDF4 headers and libraries at build time. Without the tag this
// stub reports the backend unavailable so the rest of the module stays
// buildable everywhere.
package native

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// ErrUnavailable is returned when the module was built without the
// hdf4cgo tag.
var ErrUnavailable = errors.New("native HDF4 backend unavailable")

// Available reports whether the native backend was compiled in.
func Available() bool {
	return false
}

// New returns the native library binding.
func New() (sdlib.Library, error) {
	return nil, fmt.Errorf("build with -tags hdf4cgo and the HDF4 libraries installed: %w", ErrUnavailable)
}
