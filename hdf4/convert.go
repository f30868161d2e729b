package hdf4

import (
	"fmt"
	"reflect"
)

// convertSlice converts a typed slice to the destination slice type,
// element by element. dest must be a non-nil pointer to a slice.
func convertSlice(src, dest interface{}) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("dest must be a non-nil pointer, got %T", dest)
	}
	target := rv.Elem()
	sv := reflect.ValueOf(src)
	if sv.Kind() != reflect.Slice {
		return fmt.Errorf("value is %T, not a slice", src)
	}
	if sv.Type().AssignableTo(target.Type()) {
		target.Set(sv)
		return nil
	}
	if target.Kind() != reflect.Slice || !sv.Type().Elem().ConvertibleTo(target.Type().Elem()) {
		return fmt.Errorf("cannot convert %T to %s", src, target.Type())
	}
	out := reflect.MakeSlice(target.Type(), sv.Len(), sv.Len())
	for i := 0; i < sv.Len(); i++ {
		out.Index(i).Set(sv.Index(i).Convert(target.Type().Elem()))
	}
	target.Set(out)
	return nil
}

// scalarOf returns the first element of a typed slice, or the value
// itself when it is not a slice.
func scalarOf(v interface{}) interface{} {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Len() > 0 {
		return rv.Index(0).Interface()
	}
	return v
}

// lenOf returns the element count of a slice or string value, or 1 for a
// scalar.
func lenOf(v interface{}) int {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.String:
		return rv.Len()
	default:
		return 1
	}
}
