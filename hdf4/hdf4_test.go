package hdf4

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Tests run against the memory backend so they need no installed HDF4
// library. The backend persists on Close, so create/close/reopen cycles
// exercise the full catalog build.

func testPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func createFile(t *testing.T, path string, opts ...FileOption) *File {
	t.Helper()
	f, err := Create(path, append(opts, WithBackend(BackendMemory))...)
	require.NoError(t, err)
	return f
}

func openFile(t *testing.T, path string, opts ...FileOption) *File {
	t.Helper()
	f, err := Open(path, append(opts, WithBackend(BackendMemory))...)
	require.NoError(t, err)
	return f
}

func openFileRW(t *testing.T, path string, opts ...FileOption) *File {
	t.Helper()
	f, err := OpenReadWrite(path, append(opts, WithBackend(BackendMemory))...)
	require.NoError(t, err)
	return f
}
