package hdf4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillValueAndValidRange(t *testing.T) {
	path := testPath(t, "calibrated.hdf")
	data := make([]int32, 2500)
	for i := range data {
		data[i] = int32(i % 2000)
	}

	f := createFile(t, path)
	ds, err := f.Write("myData", data, WithShape(500, 5), WithFillValue(int32(0)))
	require.NoError(t, err)
	require.NoError(t, ds.SetValidRange(int32(0), int32(2000)))
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()
	ds2, err := f2.Dataset("myData")
	require.NoError(t, err)
	assert.Equal(t, []int{500, 5}, ds2.Shape())

	fill, err := ds2.FillValue()
	require.NoError(t, err)
	assert.Equal(t, int32(0), fill)

	min, max, err := ds2.ValidRange()
	require.NoError(t, err)
	assert.Equal(t, float64(0), min)
	assert.Equal(t, float64(2000), max)

	// Reserved attributes stay visible as ordinary ones, stored with the
	// dataset's own element type.
	a, err := ds2.Attr(AttrValidRange)
	require.NoError(t, err)
	assert.Equal(t, Int32, a.Type())
	assert.Equal(t, []int32{0, 2000}, a.Value())
	a, err = ds2.Attr(AttrFillValue)
	require.NoError(t, err)
	assert.Equal(t, Int32, a.Type())
}

func TestSetFillValueAfterCreate(t *testing.T) {
	path := testPath(t, "fill.hdf")

	f := createFile(t, path)
	defer f.Close()
	ds, err := f.Write("temps", []float32{1, 2, 3})
	require.NoError(t, err)

	require.NoError(t, ds.SetFillValue(-999))
	fill, err := ds.FillValue()
	require.NoError(t, err)
	assert.Equal(t, float32(-999), fill)
}

func TestCalibrationRoundTrip(t *testing.T) {
	path := testPath(t, "cal.hdf")
	cal := Calibration{
		ScaleFactor:    0.01,
		ScaleFactorErr: 0.001,
		AddOffset:      273.15,
		AddOffsetErr:   0.1,
		CalibratedType: Float32,
	}

	f := createFile(t, path)
	ds, err := f.Write("radiance", []int16{100, 200, 300})
	require.NoError(t, err)
	require.NoError(t, ds.SetCalibration(cal))
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()
	ds2, err := f2.Dataset("radiance")
	require.NoError(t, err)

	got, err := ds2.Calibration()
	require.NoError(t, err)
	assert.Equal(t, cal, got)

	a, err := ds2.Attr(AttrScaleFactor)
	require.NoError(t, err)
	assert.Equal(t, Float64, a.Type())
	a, err = ds2.Attr(AttrCalibratedNT)
	require.NoError(t, err)
	assert.Equal(t, Int32, a.Type())
}

func TestReservedAttributesMissing(t *testing.T) {
	path := testPath(t, "bare.hdf")

	f := createFile(t, path)
	defer f.Close()
	ds, err := f.Write("plain", []int32{1})
	require.NoError(t, err)

	_, err = ds.FillValue()
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = ds.ValidRange()
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ds.Calibration()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnwrittenCellsTakeFillValue(t *testing.T) {
	path := testPath(t, "growfill.hdf")

	f := createFile(t, path)
	// Two records written, fill committed at creation; skipping a record
	// on append leaves it holding the fill value.
	ds, err := f.Write("log", []int32{1, 2}, WithShape(1, Unlimited), WithFillValue(int32(-1)))
	require.NoError(t, err)
	require.NoError(t, ds.WriteSlice([]int32{5}, []int{0, 3}, []int{1, 1}))
	require.NoError(t, f.Close())

	f2 := openFile(t, path)
	defer f2.Close()
	ds2, err := f2.Dataset("log")
	require.NoError(t, err)
	result, err := ds2.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, -1, 5}, result)
}
