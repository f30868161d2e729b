package hdf4

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// packCalibRecords builds the packed payload for a (time int32, gain
// float32) record layout.
func packCalibRecords(times []int32, gains []float32) []byte {
	out := make([]byte, 0, len(times)*8)
	for i := range times {
		out = binary.LittleEndian.AppendUint32(out, uint32(times[i]))
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(gains[i]))
	}
	return out
}

func TestVGroupHierarchyRoundTrip(t *testing.T) {
	path := testPath(t, "grouped.hdf")
	fields := []Field{
		{Name: "time", Type: Int32, Order: 1},
		{Name: "gain", Type: Float32, Order: 1},
	}
	records := packCalibRecords([]int32{10, 20}, []float32{0.5, 0.75})

	f := createFile(t, path)
	ds, err := f.Write("temps", []int32{1, 2, 3})
	require.NoError(t, err)

	root, err := f.CreateVGroup("Science", "experiment")
	require.NoError(t, err)
	raw, err := f.CreateVGroup("Raw", "")
	require.NoError(t, err)
	require.NoError(t, root.AddVGroup(raw))
	require.NoError(t, raw.AddDataset(ds))

	vd, err := f.CreateVData("calib", "coeffs", fields)
	require.NoError(t, err)
	n, err := vd.WriteRecords(records, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, root.AddVData(vd))

	rootRef := root.Ref()
	vdRef := vd.Ref()
	require.NoError(t, f.Close()) // detaches everything still attached

	f2 := openFile(t, path)
	defer f2.Close()

	lone, err := f2.LoneVGroups()
	require.NoError(t, err)
	assert.Equal(t, []int32{rootRef}, lone)

	root2, err := f2.VGroup(rootRef)
	require.NoError(t, err)
	name, err := root2.Name()
	require.NoError(t, err)
	assert.Equal(t, "Science", name)
	class, err := root2.Class()
	require.NoError(t, err)
	assert.Equal(t, "experiment", class)

	members, err := root2.Members()
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, TagVGroup, members[0].Tag)
	assert.Equal(t, TagVData, members[1].Tag)
	assert.Equal(t, vdRef, members[1].Ref)
	require.NoError(t, root2.Detach())

	vd2, err := f2.VData(vdRef)
	require.NoError(t, err)
	gotFields, err := vd2.Fields()
	require.NoError(t, err)
	assert.Equal(t, fields, gotFields)
	size, err := vd2.RecordSize()
	require.NoError(t, err)
	assert.Equal(t, 8, size)
	count, err := vd2.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	got, n, err := vd2.ReadRecords(5)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, records, got)
}

func TestWalkVisitsHierarchy(t *testing.T) {
	path := testPath(t, "walk.hdf")

	f := createFile(t, path)
	ds, err := f.Write("temps", []int32{1, 2, 3})
	require.NoError(t, err)
	root, err := f.CreateVGroup("Science", "")
	require.NoError(t, err)
	raw, err := f.CreateVGroup("Raw", "")
	require.NoError(t, err)
	require.NoError(t, root.AddVGroup(raw))
	require.NoError(t, raw.AddDataset(ds))
	vd, err := f.CreateVData("calib", "", []Field{{Name: "time", Type: Int32, Order: 1}})
	require.NoError(t, err)
	require.NoError(t, root.AddVData(vd))
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()

	var paths []string
	var datasetPath string
	err = f2.Walk(func(p string, m Member) error {
		paths = append(paths, p)
		if m.Tag == TagSDS {
			require.NotNil(t, m.Dataset)
			assert.Equal(t, "temps", m.Dataset.Name())
			datasetPath = p
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/Science",
		"/Science/Raw",
		"/Science/Raw/temps",
		"/Science/calib",
	}, paths)
	assert.Equal(t, "/Science/Raw/temps", datasetPath)
}

func TestVGroupReadOnly(t *testing.T) {
	path := testPath(t, "rogroups.hdf")

	f := createFile(t, path)
	g, err := f.CreateVGroup("G", "")
	require.NoError(t, err)
	ref := g.Ref()
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()
	_, err = f2.CreateVGroup("H", "")
	assert.ErrorIs(t, err, ErrReadOnly)
	_, err = f2.CreateVData("V", "", nil)
	assert.ErrorIs(t, err, ErrReadOnly)

	g2, err := f2.VGroup(ref)
	require.NoError(t, err)
	assert.ErrorIs(t, g2.SetName("renamed"), ErrReadOnly)
	assert.ErrorIs(t, g2.Insert(TagRef{Tag: TagVData, Ref: 1}), ErrReadOnly)
}

func TestVGroupUnknownRef(t *testing.T) {
	path := testPath(t, "norefs.hdf")
	f := createFile(t, path)
	defer f.Close()

	_, err := f.VGroup(12345)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.VData(12345)
	assert.ErrorIs(t, err, ErrNotFound)
}
