package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// Buffers are exchanged with the library in little-endian element order;
// the library owns any conversion to its on-disk representation.
var byteOrder = binary.LittleEndian

// Encode converts a Go value into a raw element buffer for the given type
// code. src may be a slice, an array, a scalar, or (for the character
// kind) a string; pointers are dereferenced first.
func Encode(code sdlib.TypeCode, src interface{}) ([]byte, error) {
	if !code.Valid() {
		return nil, fmt.Errorf("unsupported type code %s", code)
	}

	srcVal := reflect.ValueOf(src)
	for srcVal.Kind() == reflect.Ptr {
		srcVal = srcVal.Elem()
	}

	if code.IsChar() {
		return encodeChar(srcVal)
	}

	switch srcVal.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		// Scalar: wrap in a one-element slice.
		sliceVal := reflect.MakeSlice(reflect.SliceOf(srcVal.Type()), 1, 1)
		sliceVal.Index(0).Set(srcVal)
		srcVal = sliceVal
	}

	n := srcVal.Len()
	size := code.Size()
	data := make([]byte, n*size)

	for i := 0; i < n; i++ {
		if err := putElement(code, data[i*size:], srcVal.Index(i)); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return data, nil
}

// EncodeScalar encodes a single value as a one-element buffer.
func EncodeScalar(code sdlib.TypeCode, src interface{}) ([]byte, error) {
	return Encode(code, src)
}

func encodeChar(srcVal reflect.Value) ([]byte, error) {
	switch srcVal.Kind() {
	case reflect.String:
		return []byte(srcVal.String()), nil
	case reflect.Slice, reflect.Array:
		if srcVal.Type().Elem().Kind() == reflect.Uint8 {
			out := make([]byte, srcVal.Len())
			reflect.Copy(reflect.ValueOf(out), srcVal)
			return out, nil
		}
	}
	return nil, fmt.Errorf("cannot encode %s as character data", srcVal.Kind())
}

func putElement(code sdlib.TypeCode, dst []byte, elem reflect.Value) error {
	switch code {
	case sdlib.Int8:
		v, err := elemInt(elem, math.MinInt8, math.MaxInt8)
		if err != nil {
			return err
		}
		dst[0] = byte(int8(v))
	case sdlib.UInt8, sdlib.UChar8:
		v, err := elemUint(elem, math.MaxUint8)
		if err != nil {
			return err
		}
		dst[0] = byte(v)
	case sdlib.Int16:
		v, err := elemInt(elem, math.MinInt16, math.MaxInt16)
		if err != nil {
			return err
		}
		byteOrder.PutUint16(dst, uint16(int16(v)))
	case sdlib.UInt16:
		v, err := elemUint(elem, math.MaxUint16)
		if err != nil {
			return err
		}
		byteOrder.PutUint16(dst, uint16(v))
	case sdlib.Int32:
		v, err := elemInt(elem, math.MinInt32, math.MaxInt32)
		if err != nil {
			return err
		}
		byteOrder.PutUint32(dst, uint32(int32(v)))
	case sdlib.UInt32:
		v, err := elemUint(elem, math.MaxUint32)
		if err != nil {
			return err
		}
		byteOrder.PutUint32(dst, uint32(v))
	case sdlib.Float32:
		v, err := elemFloat(elem)
		if err != nil {
			return err
		}
		byteOrder.PutUint32(dst, math.Float32bits(float32(v)))
	case sdlib.Float64:
		v, err := elemFloat(elem)
		if err != nil {
			return err
		}
		byteOrder.PutUint64(dst, math.Float64bits(v))
	default:
		return fmt.Errorf("unsupported type code %s", code)
	}
	return nil
}

func elemInt(v reflect.Value, min, max int64) (int64, error) {
	var n int64
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows signed element", u)
		}
		n = int64(u)
	default:
		return 0, fmt.Errorf("cannot encode %s as integer", v.Kind())
	}
	if n < min || n > max {
		return 0, fmt.Errorf("value %d out of range [%d, %d]", n, min, max)
	}
	return n, nil
}

func elemUint(v reflect.Value, max uint64) (uint64, error) {
	var n uint64
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n = v.Uint()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := v.Int()
		if i < 0 {
			return 0, fmt.Errorf("negative value %d for unsigned element", i)
		}
		n = uint64(i)
	default:
		return 0, fmt.Errorf("cannot encode %s as unsigned integer", v.Kind())
	}
	if n > max {
		return 0, fmt.Errorf("value %d out of range [0, %d]", n, max)
	}
	return n, nil
}

func elemFloat(v reflect.Value) (float64, error) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	default:
		return 0, fmt.Errorf("cannot encode %s as float", v.Kind())
	}
}
