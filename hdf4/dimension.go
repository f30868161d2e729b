package hdf4

import (
	"fmt"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// Dimension is one axis of a Dataset, at a fixed storage-order index.
type Dimension struct {
	ds    *Dataset
	id    sdlib.DimID
	index int
	name  string
	size  int // declared; Unlimited means unbounded
}

// Name returns the dimension name, or "" when unnamed.
func (d *Dimension) Name() string {
	return d.name
}

// Index returns the dimension's storage-order index within its dataset.
func (d *Dimension) Index() int {
	return d.index
}

// Size returns the declared size. Unlimited (0) marks an unbounded axis;
// use Length for the usable extent.
func (d *Dimension) Size() int {
	return d.size
}

// IsUnlimited reports whether the axis is unbounded.
func (d *Dimension) IsUnlimited() bool {
	return d.size == Unlimited
}

// Length returns the usable extent: the declared size for a bounded axis,
// or the current real extent for an unbounded one. The real extent is
// queried on every call, never cached, since appended writes move it.
func (d *Dimension) Length() (int, error) {
	if d.ds.file.closed {
		return 0, ErrClosed
	}
	if !d.IsUnlimited() {
		return d.size, nil
	}
	n, err := d.ds.file.lib.UnlimitedExtent(d.ds.id)
	if err != nil {
		return 0, fmt.Errorf("querying extent of axis %d of %q: %w: %w", d.index, d.ds.name, err, ErrQuery)
	}
	return n, nil
}

// SetName names the dimension. The catalog is updated only after the
// library accepts the change.
func (d *Dimension) SetName(name string) error {
	if d.ds.file.closed {
		return ErrClosed
	}
	if !d.ds.file.writable {
		return ErrReadOnly
	}
	if err := d.ds.file.lib.SetDimName(d.id, name); err != nil {
		return fmt.Errorf("naming axis %d of %q: %w: %w", d.index, d.ds.name, err, ErrWrite)
	}
	d.name = name
	return nil
}
