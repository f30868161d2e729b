package hdf4

import (
	"fmt"

	"github.com/robert-malhotra/go-hdf4/internal/dtype"
)

// Reserved attributes are ordinary attributes with conventional names and
// shapes. The accessors here enforce the conventions: a fill value is a
// scalar of the dataset's own type, a valid range is a [min, max] pair of
// it, and calibration is a set of five scalar attributes.

// FillValue returns the dataset's fill value, ErrNotFound when none is
// set.
func (d *Dataset) FillValue() (interface{}, error) {
	a, err := d.Attr(AttrFillValue)
	if err != nil {
		return nil, err
	}
	return a.Scalar()
}

// SetFillValue sets the dataset's fill value. The value is stored with
// the dataset's own element type; it applies to elements never written.
func (d *Dataset) SetFillValue(v interface{}) error {
	return d.setTypedAttr(AttrFillValue, v, 1)
}

// ValidRange returns the dataset's declared [min, max] range of valid
// values, ErrNotFound when none is set.
func (d *Dataset) ValidRange() (min, max interface{}, err error) {
	a, err := d.Attr(AttrValidRange)
	if err != nil {
		return nil, nil, err
	}
	if a.count != 2 {
		return nil, nil, fmt.Errorf("attribute %q of %q holds %d elements, want 2: %w",
			AttrValidRange, d.name, a.count, ErrQuery)
	}
	pair, err := a.Float64s()
	if err == nil {
		return pair[0], pair[1], nil
	}
	// Character range: split the two bytes.
	if text, ok := a.Text(); ok && len(text) == 2 {
		return text[:1], text[1:], nil
	}
	return nil, nil, fmt.Errorf("attribute %q of %q: %w: %w", AttrValidRange, d.name, err, ErrQuery)
}

// SetValidRange declares the [min, max] range of valid values, stored
// with the dataset's own element type.
func (d *Dataset) SetValidRange(min, max interface{}) error {
	return d.setTypedAttr(AttrValidRange, []interface{}{min, max}, 2)
}

// Calibration holds the linear calibration of a dataset:
//
//	calibrated = ScaleFactor * (stored - AddOffset)
//
// CalibratedType is the element type the calibrated values are meant to
// be interpreted as.
type Calibration struct {
	ScaleFactor    float64
	ScaleFactorErr float64
	AddOffset      float64
	AddOffsetErr   float64
	CalibratedType TypeCode
}

// Calibration returns the dataset's calibration, ErrNotFound when any of
// its five attributes is missing.
func (d *Dataset) Calibration() (Calibration, error) {
	var c Calibration
	fields := []struct {
		name string
		dest *float64
	}{
		{AttrScaleFactor, &c.ScaleFactor},
		{AttrScaleFactorErr, &c.ScaleFactorErr},
		{AttrAddOffset, &c.AddOffset},
		{AttrAddOffsetErr, &c.AddOffsetErr},
	}
	for _, field := range fields {
		a, err := d.Attr(field.name)
		if err != nil {
			return Calibration{}, err
		}
		vals, err := a.Float64s()
		if err != nil || len(vals) != 1 {
			return Calibration{}, fmt.Errorf("attribute %q of %q is not a numeric scalar: %w",
				field.name, d.name, ErrQuery)
		}
		*field.dest = vals[0]
	}

	a, err := d.Attr(AttrCalibratedNT)
	if err != nil {
		return Calibration{}, err
	}
	codes, err := a.Int64s()
	if err != nil || len(codes) != 1 {
		return Calibration{}, fmt.Errorf("attribute %q of %q is not an integer scalar: %w",
			AttrCalibratedNT, d.name, ErrQuery)
	}
	c.CalibratedType = TypeCode(codes[0])
	return c, nil
}

// SetCalibration stores the dataset's calibration as its five reserved
// attributes. The four coefficients are stored as 64-bit floats and the
// calibrated type as a 32-bit integer.
func (d *Dataset) SetCalibration(c Calibration) error {
	writes := []struct {
		name  string
		typ   TypeCode
		value interface{}
	}{
		{AttrScaleFactor, Float64, c.ScaleFactor},
		{AttrScaleFactorErr, Float64, c.ScaleFactorErr},
		{AttrAddOffset, Float64, c.AddOffset},
		{AttrAddOffsetErr, Float64, c.AddOffsetErr},
		{AttrCalibratedNT, Int32, int32(c.CalibratedType)},
	}
	for _, w := range writes {
		if err := d.commitTyped(w.name, w.typ, w.value, 1); err != nil {
			return err
		}
	}
	return nil
}

// setTypedAttr stores an attribute with the dataset's own element type,
// converting the supplied value as needed.
func (d *Dataset) setTypedAttr(name string, value interface{}, count int) error {
	return d.commitTyped(name, d.typ, value, count)
}

func (d *Dataset) commitTyped(name string, code TypeCode, value interface{}, count int) error {
	if d.file.closed {
		return ErrClosed
	}
	if !d.file.writable {
		return ErrReadOnly
	}
	raw, err := encodeTyped(code, value)
	if err != nil {
		return fmt.Errorf("attribute %q of %q: %w: %w", name, d.name, err, ErrWrite)
	}
	if len(raw) != count*code.Size() {
		return fmt.Errorf("attribute %q of %q: %d elements, want %d: %w",
			name, d.name, len(raw)/code.Size(), count, ErrWrite)
	}
	materialized, err := dtype.Value(code, raw, count)
	if err != nil {
		return fmt.Errorf("attribute %q of %q: %w: %w", name, d.name, err, ErrWrite)
	}
	a := &Attribute{name: name, typ: code, count: count, value: materialized}
	return d.commitAttr(a)
}

// encodeTyped encodes value with a forced type code, flattening mixed
// []interface{} element lists first.
func encodeTyped(code TypeCode, value interface{}) ([]byte, error) {
	if elems, ok := value.([]interface{}); ok {
		var raw []byte
		for _, elem := range elems {
			b, err := dtype.EncodeScalar(code, elem)
			if err != nil {
				return nil, err
			}
			raw = append(raw, b...)
		}
		return raw, nil
	}
	return dtype.Encode(code, value)
}
