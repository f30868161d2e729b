package memlib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

func tmp(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "container.hdf")
}

func TestCreateWriteReload(t *testing.T) {
	path := tmp(t)

	l := New()
	fid, err := l.Start(path, sdlib.Create)
	require.NoError(t, err)
	ds, err := l.CreateDataset(fid, "v", sdlib.Int32, []int{4})
	require.NoError(t, err)
	require.NoError(t, l.WriteData(ds, []int{0}, []int{1}, []int{4}, []byte{
		1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0, 4, 0, 0, 0,
	}))
	require.NoError(t, l.SetAttr(sdlib.ID(fid), "title", sdlib.Char8, 2, []byte("hi")))
	require.NoError(t, l.EndAccess(ds))
	require.NoError(t, l.End(fid))

	// A fresh instance sees only what was persisted.
	l2 := New()
	fid2, err := l2.Start(path, sdlib.ReadOnly)
	require.NoError(t, err)
	nds, nattrs, err := l2.FileInfo(fid2)
	require.NoError(t, err)
	assert.Equal(t, 1, nds)
	assert.Equal(t, 1, nattrs)

	ds2, err := l2.Select(fid2, 0)
	require.NoError(t, err)
	info, err := l2.DatasetInfo(ds2)
	require.NoError(t, err)
	assert.Equal(t, "v", info.Name)
	assert.Equal(t, []int{4}, info.Dims)
	assert.Equal(t, sdlib.Int32, info.Type)

	raw, err := l2.ReadData(ds2, []int{1}, []int{1}, []int{2})
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 0, 0, 0, 3, 0, 0, 0}, raw)
	require.NoError(t, l2.EndAccess(ds2))
	require.NoError(t, l2.End(fid2))
}

func TestEndRefusesOpenDatasetHandles(t *testing.T) {
	l := New()
	fid, err := l.Start(tmp(t), sdlib.Create)
	require.NoError(t, err)
	ds, err := l.CreateDataset(fid, "v", sdlib.Int8, []int{1})
	require.NoError(t, err)

	require.Error(t, l.End(fid))
	require.NoError(t, l.EndAccess(ds))
	require.NoError(t, l.End(fid))
}

func TestHyperslabStride2D(t *testing.T) {
	l := New()
	fid, err := l.Start(tmp(t), sdlib.Create)
	require.NoError(t, err)
	ds, err := l.CreateDataset(fid, "grid", sdlib.UInt8, []int{4, 4})
	require.NoError(t, err)

	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i)
	}
	require.NoError(t, l.WriteData(ds, []int{0, 0}, []int{1, 1}, []int{4, 4}, data))

	// Every other row and column.
	raw, err := l.ReadData(ds, []int{0, 0}, []int{2, 2}, []int{2, 2})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 2, 8, 10}, raw)

	// Strided write lands on the same lattice.
	require.NoError(t, l.WriteData(ds, []int{0, 0}, []int{2, 2}, []int{2, 2}, []byte{100, 101, 102, 103}))
	raw, err = l.ReadData(ds, []int{0, 0}, []int{1, 1}, []int{1, 4})
	require.NoError(t, err)
	assert.Equal(t, []byte{100, 1, 101, 3}, raw)
}

func TestSlabBoundsChecked(t *testing.T) {
	l := New()
	fid, err := l.Start(tmp(t), sdlib.Create)
	require.NoError(t, err)
	ds, err := l.CreateDataset(fid, "v", sdlib.UInt8, []int{4})
	require.NoError(t, err)

	_, err = l.ReadData(ds, []int{2}, []int{1}, []int{3})
	assert.ErrorIs(t, err, sdlib.ErrFail)
	_, err = l.ReadData(ds, []int{-1}, []int{1}, []int{1})
	assert.ErrorIs(t, err, sdlib.ErrFail)
	_, err = l.ReadData(ds, []int{0}, []int{0}, []int{1})
	assert.ErrorIs(t, err, sdlib.ErrFail)

	// A bounded dataset never grows.
	err = l.WriteData(ds, []int{3}, []int{1}, []int{2}, []byte{1, 2})
	assert.ErrorIs(t, err, sdlib.ErrFail)
}

func TestRecordAxisGrowthUsesFill(t *testing.T) {
	l := New()
	fid, err := l.Start(tmp(t), sdlib.Create)
	require.NoError(t, err)
	ds, err := l.CreateDataset(fid, "log", sdlib.UInt8, []int{sdlib.Unlimited, 2})
	require.NoError(t, err)
	require.NoError(t, l.SetAttr(sdlib.ID(ds), "_FillValue", sdlib.UInt8, 1, []byte{0xAA}))

	require.NoError(t, l.WriteData(ds, []int{2, 0}, []int{1, 1}, []int{1, 2}, []byte{1, 2}))
	n, err := l.UnlimitedExtent(ds)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	raw, err := l.ReadData(ds, []int{0, 0}, []int{1, 1}, []int{3, 2})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xAA, 0xAA, 0xAA, 1, 2}, raw)
}

func TestChunkGeometryFrozenAfterWrite(t *testing.T) {
	l := New()
	fid, err := l.Start(tmp(t), sdlib.Create)
	require.NoError(t, err)
	ds, err := l.CreateDataset(fid, "v", sdlib.UInt8, []int{4})
	require.NoError(t, err)

	require.NoError(t, l.SetChunk(ds, []int{2}, sdlib.CompNone, 0))
	require.NoError(t, l.WriteData(ds, []int{0}, []int{1}, []int{4}, []byte{1, 2, 3, 4}))
	assert.ErrorIs(t, l.SetChunk(ds, []int{4}, sdlib.CompNone, 0), sdlib.ErrFail)
	assert.ErrorIs(t, l.SetCompress(ds, sdlib.CompRLE, 0), sdlib.ErrFail)
}

func TestDeflatePersistence(t *testing.T) {
	path := tmp(t)
	data := make([]byte, 1024) // highly compressible: all zero

	l := New()
	fid, err := l.Start(path, sdlib.Create)
	require.NoError(t, err)
	ds, err := l.CreateDataset(fid, "z", sdlib.UInt8, []int{1024})
	require.NoError(t, err)
	require.NoError(t, l.SetCompress(ds, sdlib.CompDeflate, 6))
	require.NoError(t, l.WriteData(ds, []int{0}, []int{1}, []int{1024}, data))
	require.NoError(t, l.EndAccess(ds))
	require.NoError(t, l.End(fid))

	l2 := New()
	fid2, err := l2.Start(path, sdlib.ReadOnly)
	require.NoError(t, err)
	ds2, err := l2.Select(fid2, 0)
	require.NoError(t, err)
	raw, err := l2.ReadData(ds2, []int{0}, []int{1}, []int{1024})
	require.NoError(t, err)
	assert.Equal(t, data, raw)
	require.NoError(t, l2.EndAccess(ds2))
	require.NoError(t, l2.End(fid2))
}

func TestReadOnlyOpenDoesNotRewrite(t *testing.T) {
	path := tmp(t)

	l := New()
	fid, err := l.Start(path, sdlib.Create)
	require.NoError(t, err)
	require.NoError(t, l.SetAttr(sdlib.ID(fid), "k", sdlib.Char8, 1, []byte("x")))
	require.NoError(t, l.End(fid))

	before, err := os.Stat(path)
	require.NoError(t, err)

	l2 := New()
	fid2, err := l2.Start(path, sdlib.ReadOnly)
	require.NoError(t, err)
	assert.ErrorIs(t, l2.SetAttr(sdlib.ID(fid2), "k2", sdlib.Char8, 1, []byte("y")), sdlib.ErrFail)
	require.NoError(t, l2.End(fid2))

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
	assert.Equal(t, before.Size(), after.Size())
}

func TestDuplicateDatasetNameRejected(t *testing.T) {
	l := New()
	fid, err := l.Start(tmp(t), sdlib.Create)
	require.NoError(t, err)
	ds, err := l.CreateDataset(fid, "v", sdlib.Int32, []int{1})
	require.NoError(t, err)
	require.NoError(t, l.EndAccess(ds))

	_, err = l.CreateDataset(fid, "v", sdlib.Int32, []int{1})
	assert.ErrorIs(t, err, sdlib.ErrFail)
}
