package dtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

func TestCodeOf(t *testing.T) {
	table := Standard()

	cases := []struct {
		value interface{}
		want  sdlib.TypeCode
	}{
		{"text", sdlib.Char8},
		{int8(1), sdlib.Int8},
		{[]int16{1}, sdlib.Int16},
		{[]uint16{1}, sdlib.UInt16},
		{int32(1), sdlib.Int32},
		{[]float32{1}, sdlib.Float32},
		{[]float64{1}, sdlib.Float64},
		// Untyped Go ints narrow to the widest library integer.
		{7, sdlib.Int32},
		{uint(7), sdlib.UInt32},
		{&[]int32{1}, sdlib.Int32},
	}
	for _, c := range cases {
		code, err := table.CodeOf(c.value)
		require.NoError(t, err)
		assert.Equal(t, c.want, code, "value %#v", c.value)
	}

	_, err := table.CodeOf(nil)
	assert.Error(t, err)
	_, err = table.CodeOf(struct{}{})
	assert.Error(t, err)
}

func TestEncodeValueRoundTrip(t *testing.T) {
	cases := []struct {
		code  sdlib.TypeCode
		src   interface{}
		count int
	}{
		{sdlib.Int16, []int16{-5, 0, 300}, 3},
		{sdlib.UInt16, []uint16{0, 65535}, 2},
		{sdlib.Int32, []int32{-100000, 100000}, 2},
		{sdlib.Float32, []float32{1.5, -2.25}, 2},
		{sdlib.Float64, []float64{3.14159, -1e300}, 2},
		{sdlib.Int8, []int8{-128, 127}, 2},
		{sdlib.UInt8, []uint8{0, 255}, 2},
	}
	for _, c := range cases {
		raw, err := Encode(c.code, c.src)
		require.NoError(t, err)
		assert.Len(t, raw, c.count*c.code.Size())

		val, err := Value(c.code, raw, c.count)
		require.NoError(t, err)
		assert.Equal(t, c.src, val, "code %s", c.code)
	}
}

func TestEncodeScalarWraps(t *testing.T) {
	raw, err := EncodeScalar(sdlib.Int32, 42)
	require.NoError(t, err)
	assert.Len(t, raw, 4)

	val, err := Value(sdlib.Int32, raw, 1)
	require.NoError(t, err)
	assert.Equal(t, []int32{42}, val)
}

func TestEncodeRangeChecked(t *testing.T) {
	_, err := Encode(sdlib.Int8, []int{300})
	assert.Error(t, err)
	_, err = Encode(sdlib.UInt16, []int{-1})
	assert.Error(t, err)
}

func TestCharacterDataDecodesToString(t *testing.T) {
	raw, err := Encode(sdlib.Char8, "hello")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), raw)

	val, err := Value(sdlib.Char8, raw, 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", val)

	// The unsigned character kind stays numeric.
	val, err = Value(sdlib.UChar8, raw, 5)
	require.NoError(t, err)
	assert.Equal(t, []uint8("hello"), val)
}

func TestValueIgnoresBufferSlack(t *testing.T) {
	raw := []byte{1, 0, 2, 0, 99, 99}
	val, err := Value(sdlib.Int16, raw, 2)
	require.NoError(t, err)
	assert.Equal(t, []int16{1, 2}, val)

	_, err = Value(sdlib.Int16, raw[:3], 2)
	assert.Error(t, err)
}

func TestDecodeConverts(t *testing.T) {
	raw, err := Encode(sdlib.Int32, []int32{1, 2, 3})
	require.NoError(t, err)

	var wide []int64
	require.NoError(t, Decode(sdlib.Int32, raw, 3, &wide))
	assert.Equal(t, []int64{1, 2, 3}, wide)

	var iface interface{}
	require.NoError(t, Decode(sdlib.Int32, raw, 3, &iface))
	assert.Equal(t, []int32{1, 2, 3}, iface)

	var text string
	assert.Error(t, Decode(sdlib.Int32, raw, 3, &text))
	assert.Error(t, Decode(sdlib.Int32, raw, 3, nil))
}

func TestDecodeStringNotNulTerminated(t *testing.T) {
	assert.Equal(t, "ab\x00c", DecodeString([]byte("ab\x00cdef"), 4))
}

func TestTrimName(t *testing.T) {
	assert.Equal(t, "temp", TrimName("temp\x00\x00\x00"))
	assert.Equal(t, "name", TrimName("name   "))
	assert.Equal(t, "a b", TrimName("a b\x00junk"))
	assert.Equal(t, "", TrimName("\x00"))
}
