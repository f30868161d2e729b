package hdf4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalAttributesRoundTrip(t *testing.T) {
	path := testPath(t, "globals.hdf")

	f := createFile(t, path)
	require.NoError(t, f.SetAttr("title", "ozone columns"))
	require.NoError(t, f.SetAttr("levels", []float64{1.5, 2.5, 3.5}))
	require.NoError(t, f.SetAttr("revision", int32(7)))
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()

	assert.Equal(t, []string{"title", "levels", "revision"}, f2.Attributes())

	title, err := f2.Attr("title")
	require.NoError(t, err)
	text, ok := title.Text()
	require.True(t, ok)
	assert.Equal(t, "ozone columns", text)
	assert.Equal(t, Char8, title.Type())
	assert.Equal(t, len("ozone columns"), title.Len())

	levels, err := f2.Attr("levels")
	require.NoError(t, err)
	vals, err := levels.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, vals)

	revision, err := f2.Attr("revision")
	require.NoError(t, err)
	scalar, err := revision.Scalar()
	require.NoError(t, err)
	assert.Equal(t, int32(7), scalar)
	assert.Equal(t, Int32, revision.Type())
}

func TestStagedAttributeMatchesReopen(t *testing.T) {
	path := testPath(t, "staged.hdf")

	f := createFile(t, path)
	require.NoError(t, f.SetAttr("gain", []float32{0.5, 1.5}))

	// The staged catalog entry must already hold what a reopen will read.
	staged, err := f.Attr("gain")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()
	reread, err := f2.Attr("gain")
	require.NoError(t, err)

	assert.Equal(t, staged.Type(), reread.Type())
	assert.Equal(t, staged.Len(), reread.Len())
	assert.Equal(t, staged.Value(), reread.Value())
}

func TestAttributeReplacementKeepsOrder(t *testing.T) {
	path := testPath(t, "replace.hdf")

	f := createFile(t, path)
	defer f.Close()
	require.NoError(t, f.SetAttr("a", int32(1)))
	require.NoError(t, f.SetAttr("b", int32(2)))
	require.NoError(t, f.SetAttr("a", int32(3)))

	assert.Equal(t, []string{"a", "b"}, f.Attributes())
	a, err := f.Attr("a")
	require.NoError(t, err)
	scalar, err := a.Scalar()
	require.NoError(t, err)
	assert.Equal(t, int32(3), scalar)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(testPath(t, "nope.hdf"), WithBackend(BackendMemory))
	assert.ErrorIs(t, err, ErrOpen)
}

func TestOpenReadWriteCreatesMissingFile(t *testing.T) {
	path := testPath(t, "fresh.hdf")

	f := openFileRW(t, path)
	require.NoError(t, f.SetAttr("note", "created on first open"))
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()
	a, err := f2.Attr("note")
	require.NoError(t, err)
	text, _ := a.Text()
	assert.Equal(t, "created on first open", text)
}

func TestReadOnlyRejectsMutation(t *testing.T) {
	path := testPath(t, "readonly.hdf")
	f := createFile(t, path)
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()
	assert.False(t, f2.IsWritable())
	assert.ErrorIs(t, f2.SetAttr("x", int32(1)), ErrReadOnly)
	_, err := f2.Write("d", []int32{1, 2, 3})
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestClosedFileRejectsUse(t *testing.T) {
	path := testPath(t, "closed.hdf")
	f := createFile(t, path)
	require.NoError(t, f.Close())
	require.NoError(t, f.Close()) // idempotent

	_, err := f.Dataset("anything")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = f.Attr("anything")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, f.SetAttr("x", int32(1)), ErrClosed)
}

func TestUnknownNamesAreNotFound(t *testing.T) {
	path := testPath(t, "lookup.hdf")
	f := createFile(t, path)
	defer f.Close()

	_, err := f.Dataset("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.Attr("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, f.HasDataset("missing"))
}
