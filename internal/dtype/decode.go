package dtype

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// Value decodes a raw element buffer into an auto-typed Go value: a string
// for the character kind, otherwise a freshly allocated typed slice.
// Exactly count elements are decoded; trailing buffer slack is ignored.
func Value(code sdlib.TypeCode, raw []byte, count int) (interface{}, error) {
	if count < 0 {
		return nil, fmt.Errorf("negative element count %d", count)
	}
	size := code.Size()
	if size == 0 {
		return nil, fmt.Errorf("unsupported type code %s", code)
	}
	if len(raw) < count*size {
		return nil, fmt.Errorf("buffer holds %d bytes, need %d for %d %s elements",
			len(raw), count*size, count, code)
	}

	if code.IsChar() {
		return DecodeString(raw, count), nil
	}

	switch code {
	case sdlib.Int8:
		out := make([]int8, count)
		for i := range out {
			out[i] = int8(raw[i])
		}
		return out, nil
	case sdlib.UInt8, sdlib.UChar8:
		out := make([]uint8, count)
		copy(out, raw[:count])
		return out, nil
	case sdlib.Int16:
		out := make([]int16, count)
		for i := range out {
			out[i] = int16(byteOrder.Uint16(raw[i*2:]))
		}
		return out, nil
	case sdlib.UInt16:
		out := make([]uint16, count)
		for i := range out {
			out[i] = byteOrder.Uint16(raw[i*2:])
		}
		return out, nil
	case sdlib.Int32:
		out := make([]int32, count)
		for i := range out {
			out[i] = int32(byteOrder.Uint32(raw[i*4:]))
		}
		return out, nil
	case sdlib.UInt32:
		out := make([]uint32, count)
		for i := range out {
			out[i] = byteOrder.Uint32(raw[i*4:])
		}
		return out, nil
	case sdlib.Float32:
		out := make([]float32, count)
		for i := range out {
			out[i] = math.Float32frombits(byteOrder.Uint32(raw[i*4:]))
		}
		return out, nil
	case sdlib.Float64:
		out := make([]float64, count)
		for i := range out {
			out[i] = math.Float64frombits(byteOrder.Uint64(raw[i*8:]))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type code %s", code)
	}
}

// Decode decodes a raw element buffer into dest, which must be a non-nil
// pointer to a slice (or to a string for the character kind). Element
// types convert where Go conversion is defined, so int32 file data can
// land in a []int64 destination.
func Decode(code sdlib.TypeCode, raw []byte, count int, dest interface{}) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("dest must be a non-nil pointer, got %T", dest)
	}
	target := rv.Elem()

	val, err := Value(code, raw, count)
	if err != nil {
		return err
	}
	sv := reflect.ValueOf(val)

	if sv.Type().AssignableTo(target.Type()) {
		target.Set(sv)
		return nil
	}

	// interface{} destination takes the auto-typed value as-is.
	if target.Kind() == reflect.Interface && target.NumMethod() == 0 {
		target.Set(sv)
		return nil
	}

	if sv.Kind() == reflect.String {
		return fmt.Errorf("character data needs a *string destination, got %T", dest)
	}
	if target.Kind() != reflect.Slice {
		return fmt.Errorf("dest must point to a slice, got %T", dest)
	}
	if !sv.Type().Elem().ConvertibleTo(target.Type().Elem()) {
		return fmt.Errorf("cannot convert %s elements to %s", sv.Type().Elem(), target.Type().Elem())
	}

	out := reflect.MakeSlice(target.Type(), sv.Len(), sv.Len())
	for i := 0; i < sv.Len(); i++ {
		out.Index(i).Set(sv.Index(i).Convert(target.Type().Elem()))
	}
	target.Set(out)
	return nil
}

// DecodeString decodes character data by mapping each of the first count
// stored bytes to a character. The buffer is not treated as
// NUL-terminated: slack beyond count never leaks into the result.
func DecodeString(raw []byte, count int) string {
	if count > len(raw) {
		count = len(raw)
	}
	var b strings.Builder
	b.Grow(count)
	for i := 0; i < count; i++ {
		b.WriteByte(raw[i])
	}
	return b.String()
}

// TrimName removes the fixed-width padding the library leaves in name
// buffers: everything from the first NUL on, plus trailing blanks.
func TrimName(name string) string {
	if i := strings.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return strings.TrimRight(name, " ")
}
