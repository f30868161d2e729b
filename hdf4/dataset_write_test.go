package hdf4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := testPath(t, "roundtrip.hdf")
	data := []int32{1, 2, 3, 4, 5}

	f := createFile(t, path)
	ds, err := f.Write("integers", data)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, ds.Shape())
	assert.Equal(t, Int32, ds.Type())
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()
	assert.Equal(t, []string{"integers"}, f2.Datasets())

	ds2, err := f2.Dataset("integers")
	require.NoError(t, err)
	assert.Equal(t, 1, ds2.Rank())
	assert.Equal(t, []int{5}, ds2.Shape())

	result, err := ds2.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, data, result)
}

func TestWriteWithShape(t *testing.T) {
	path := testPath(t, "shaped.hdf")
	data := make([]float64, 12)
	for i := range data {
		data[i] = float64(i) / 2
	}

	f := createFile(t, path)
	_, err := f.Write("grid", data, WithShape(4, 3))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()
	ds, err := f2.Dataset("grid")
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Rank())
	assert.Equal(t, []int{4, 3}, ds.Shape())
	assert.Equal(t, Float64, ds.Type())

	result, err := ds.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, data, result)
}

func TestReadSliceReversesAxisOrder(t *testing.T) {
	path := testPath(t, "slices.hdf")
	data := []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

	f := createFile(t, path)
	defer f.Close()
	ds, err := f.Write("grid", data, WithShape(4, 3))
	require.NoError(t, err)

	// The first caller axis is the fastest varying one in the flat
	// buffer: a full run of it at the second axis's origin is the first
	// four elements.
	var run []int32
	require.NoError(t, ds.ReadSlice(&run, []int{0, 0}, []int{4, 1}, nil))
	assert.Equal(t, []int32{0, 1, 2, 3}, run)

	// Fixing the first caller axis steps through the buffer four apart.
	var column []int32
	require.NoError(t, ds.ReadSlice(&column, []int{1, 0}, []int{1, 3}, nil))
	assert.Equal(t, []int32{1, 5, 9}, column)

	// A nil extent reaches from start to the end of each axis.
	var tail []int32
	require.NoError(t, ds.ReadSlice(&tail, []int{2, 2}, nil, nil))
	assert.Equal(t, []int32{10, 11}, tail)
}

func TestReadSliceWithStride(t *testing.T) {
	path := testPath(t, "strided.hdf")
	data := []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	f := createFile(t, path)
	defer f.Close()
	ds, err := f.Write("evens", data)
	require.NoError(t, err)

	var result []int32
	require.NoError(t, ds.ReadSlice(&result, []int{0}, []int{5}, []int{2}))
	assert.Equal(t, []int32{0, 2, 4, 6, 8}, result)
}

func TestWriteSliceUpdatesInPlace(t *testing.T) {
	path := testPath(t, "update.hdf")

	f := createFile(t, path)
	_, err := f.Write("v", make([]int32, 5))
	require.NoError(t, err)
	_, err = f.Write("v", []int32{9, 9}, WithStart(2), WithShape(2))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()
	ds, err := f2.Dataset("v")
	require.NoError(t, err)
	result, err := ds.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 0, 9, 9, 0}, result)
}

func TestUnlimitedDatasetGrows(t *testing.T) {
	path := testPath(t, "records.hdf")

	f := createFile(t, path)
	ds, err := f.Write("samples", []int32{1, 2, 3, 4, 5, 6}, WithShape(3, Unlimited))
	require.NoError(t, err)

	assert.Equal(t, []int{3, Unlimited}, ds.Shape())
	shape, err := ds.CurrentShape()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, shape)

	recordAxis, err := ds.Dim(0)
	require.NoError(t, err)
	assert.True(t, recordAxis.IsUnlimited())
	n, err := recordAxis.Length()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Appending past the current extent grows the record axis; the
	// reported extent follows without a reopen.
	require.NoError(t, ds.WriteSlice([]int32{7, 8, 9}, []int{0, 2}, []int{3, 1}))
	n, err = recordAxis.Length()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()
	ds2, err := f2.Dataset("samples")
	require.NoError(t, err)
	shape, err = ds2.CurrentShape()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3}, shape)

	result, err := ds2.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6, 7, 8, 9}, result)
}

func TestCharacterDataset(t *testing.T) {
	path := testPath(t, "chars.hdf")

	f := createFile(t, path)
	_, err := f.Write("station", "MLO-19")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()
	ds, err := f2.Dataset("station")
	require.NoError(t, err)
	assert.Equal(t, Char8, ds.Type())

	text, err := ds.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "MLO-19", text)

	value, err := ds.Values()
	require.NoError(t, err)
	assert.Equal(t, "MLO-19", value)
}

func TestValuesAutoTypes(t *testing.T) {
	path := testPath(t, "values.hdf")

	f := createFile(t, path)
	defer f.Close()
	ds, err := f.Write("temps", []float32{21.5, 22.0})
	require.NoError(t, err)

	value, err := ds.Values()
	require.NoError(t, err)
	assert.Equal(t, []float32{21.5, 22.0}, value)
}

func TestReadConvertsElements(t *testing.T) {
	path := testPath(t, "convert.hdf")

	f := createFile(t, path)
	defer f.Close()
	ds, err := f.Write("small", []int16{1, 2, 3})
	require.NoError(t, err)

	var wide []int64
	require.NoError(t, ds.Read(&wide))
	assert.Equal(t, []int64{1, 2, 3}, wide)
}

func TestCompressedDatasetRoundTrip(t *testing.T) {
	path := testPath(t, "deflate.hdf")
	data := make([]int32, 256)
	for i := range data {
		data[i] = int32(i % 8)
	}

	f := createFile(t, path)
	_, err := f.Write("z", data, WithCompression(CompDeflate, 6), WithDatasetChunking(false))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()
	ds, err := f2.Dataset("z")
	require.NoError(t, err)
	result, err := ds.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, data, result)
}

func TestExplicitChunkLengths(t *testing.T) {
	path := testPath(t, "chunked.hdf")
	data := make([]int16, 600)

	f := createFile(t, path)
	defer f.Close()
	_, err := f.Write("tiled", data, WithShape(30, 20), WithChunkLengths(10, 5))
	require.NoError(t, err)
}

func TestWriteCountMismatch(t *testing.T) {
	path := testPath(t, "mismatch.hdf")

	f := createFile(t, path)
	defer f.Close()
	_, err := f.Write("bad", []int32{1, 2, 3}, WithShape(2, 2))
	assert.ErrorIs(t, err, ErrWrite)
	assert.False(t, f.HasDataset("bad"))
}

func TestFailedCreateLeavesNoCatalogEntry(t *testing.T) {
	path := testPath(t, "aborted.hdf")

	f := createFile(t, path)
	defer f.Close()
	_, err := f.Write("bad", []int32{1, 2}, WithShape(-3))
	require.Error(t, err)
	assert.False(t, f.HasDataset("bad"))
	assert.Empty(t, f.Datasets())
}

func TestDimensionNamesPersist(t *testing.T) {
	path := testPath(t, "dims.hdf")

	f := createFile(t, path)
	ds, err := f.Write("grid", make([]float32, 6), WithShape(2, 3))
	require.NoError(t, err)
	row, err := ds.Dim(0)
	require.NoError(t, err)
	require.NoError(t, row.SetName("scanline"))
	assert.Equal(t, "scanline", row.Name())
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()
	ds2, err := f2.Dataset("grid")
	require.NoError(t, err)
	row2, err := ds2.Dim(0)
	require.NoError(t, err)
	assert.Equal(t, "scanline", row2.Name())

	// SetName on a read-only file is refused before touching the library.
	assert.ErrorIs(t, row2.SetName("x"), ErrReadOnly)
}
