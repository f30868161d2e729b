package hdf4

import (
	"fmt"

	"github.com/robert-malhotra/go-hdf4/internal/dtype"
	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// Write writes data to the named dataset, creating it on first write.
//
// A newly created dataset takes its element type from the data and its
// shape from WithShape; without WithShape it is one-dimensional, sized to
// the data. Storage layout (chunking, compression, fill value) is fixed
// at creation and committed before the first element is written. The
// dataset enters the catalog only after the initial write succeeds; on
// any failure the half-configured dataset is abandoned and never exposed.
//
// Writing to an existing dataset updates elements in place. WithStart
// offsets the write; WithShape then bounds its extent, defaulting to
// everything from the start offsets to the end of each axis.
func (f *File) Write(name string, data interface{}, opts ...DatasetOption) (*Dataset, error) {
	if f.closed {
		return nil, ErrClosed
	}
	if !f.writable {
		return nil, ErrReadOnly
	}
	o := defaultDatasetOptions()
	for _, opt := range opts {
		opt(o)
	}

	if ds, ok := f.catalog.datasets[name]; ok {
		if err := ds.writeSlice(data, o.start, o.shape); err != nil {
			return nil, err
		}
		return ds, nil
	}
	return f.createAndWrite(name, data, o)
}

// Write overwrites the dataset with data, which must cover the full
// current extent. Writing past the current extent of an unbounded axis
// appends records.
func (d *Dataset) Write(data interface{}) error {
	return d.writeSlice(data, nil, nil)
}

// WriteSlice writes data into a hyperslab of the dataset. start and
// extent are in caller order with all-one stride; a nil start writes from
// the origin, a nil extent reaches from start to the end of each axis
// (or, on an unbounded dataset, as far as the data extends).
func (d *Dataset) WriteSlice(data interface{}, start, extent []int) error {
	return d.writeSlice(data, start, extent)
}

func (d *Dataset) writeSlice(data interface{}, start, extent []int) error {
	if d.file.closed {
		return ErrClosed
	}
	if !d.file.writable {
		return ErrReadOnly
	}
	rank := d.rank
	if start == nil {
		start = zeros(rank)
	}
	if len(start) != rank {
		return fmt.Errorf("dataset %q has rank %d, got start of %d: %w",
			d.name, rank, len(start), ErrWrite)
	}
	if extent == nil {
		shape, err := d.CurrentShape()
		if err != nil {
			return err
		}
		extent = shape
		for i := range extent {
			extent[i] -= start[i]
		}
		// A write may extend an unbounded axis past its current extent;
		// infer how far from the amount of data supplied.
		if i := d.unboundedCallerAxis(); i >= 0 {
			rest := 1
			for j, e := range extent {
				if j != i {
					rest *= e
				}
			}
			if rest > 0 && lenOf(data)%rest == 0 {
				if n := lenOf(data) / rest; n > extent[i] {
					extent[i] = n
				}
			}
		}
	}
	if len(extent) != rank {
		return fmt.Errorf("dataset %q has rank %d, got extent of %d: %w",
			d.name, rank, len(extent), ErrWrite)
	}
	if lenOf(data) != volume(extent) {
		return fmt.Errorf("writing %q: %d elements for extent %v: %w",
			d.name, lenOf(data), extent, ErrWrite)
	}

	raw, err := dtype.Encode(d.typ, data)
	if err != nil {
		return fmt.Errorf("writing %q: %w: %w", d.name, err, ErrWrite)
	}
	sStart := reverseInts(start)
	sEdges := reverseInts(extent)
	if err := d.file.lib.WriteData(d.id, sStart, ones(rank), sEdges, raw); err != nil {
		return fmt.Errorf("writing %q: %w: %w", d.name, err, ErrWrite)
	}
	return nil
}

// unboundedCallerAxis returns the caller-order index of the unbounded
// axis, or -1 when every axis is bounded.
func (d *Dataset) unboundedCallerAxis() int {
	for i, dim := range d.dims {
		if dim.IsUnlimited() {
			return len(d.dims) - 1 - i
		}
	}
	return -1
}

func (f *File) createAndWrite(name string, data interface{}, o *datasetOptions) (*Dataset, error) {
	code, err := f.types.CodeOf(data)
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w: %w", name, err, ErrWrite)
	}

	shape := o.shape
	if shape == nil {
		shape = []int{lenOf(data)}
	}
	storage := reverseInts(shape)
	for i, extent := range storage {
		if extent == Unlimited && i == 0 {
			continue
		}
		if extent <= 0 {
			return nil, fmt.Errorf("creating %q: invalid extent %d on axis %d: %w",
				name, extent, i, ErrWrite)
		}
	}

	edges := append([]int(nil), storage...)
	if storage[0] == Unlimited {
		rowVol := volume(storage[1:])
		n := lenOf(data)
		if rowVol <= 0 || n == 0 || n%rowVol != 0 {
			return nil, fmt.Errorf("creating %q: %d elements do not fill whole records of %d: %w",
				name, n, rowVol, ErrWrite)
		}
		edges[0] = n / rowVol
	} else if lenOf(data) != volume(storage) {
		return nil, fmt.Errorf("creating %q: %d elements for shape %v: %w",
			name, lenOf(data), shape, ErrWrite)
	}

	raw, err := dtype.Encode(code, data)
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w: %w", name, err, ErrWrite)
	}

	id, err := f.lib.CreateDataset(f.id, name, code, storage)
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w: %w", name, err, ErrOpen)
	}
	fail := func(stage string, err error) error {
		f.lib.EndAccess(id)
		return fmt.Errorf("%s %q: %w: %w", stage, name, err, ErrWrite)
	}

	if o.fill != nil {
		fillRaw, err := dtype.EncodeScalar(code, o.fill)
		if err != nil {
			return nil, fail("filling", err)
		}
		if len(fillRaw) != code.Size() {
			return nil, fail("filling", fmt.Errorf("fill value is not a scalar"))
		}
		if err := f.lib.SetAttr(sdlib.ID(id), AttrFillValue, code, 1, fillRaw); err != nil {
			return nil, fail("filling", err)
		}
	}

	if err := f.configureStorage(id, storage, o); err != nil {
		return nil, fail("configuring", err)
	}

	rank := len(storage)
	if err := f.lib.WriteData(id, zeros(rank), ones(rank), edges, raw); err != nil {
		return nil, fail("writing", err)
	}

	ds, err := describeDataset(f, id)
	if err != nil {
		f.lib.EndAccess(id)
		return nil, fmt.Errorf("cataloging %q: %w: %w", name, err, ErrQuery)
	}
	f.catalog.putDataset(ds)
	return ds, nil
}

// configureStorage commits the chunking or compression layout of a new
// dataset before its first write.
func (f *File) configureStorage(id sdlib.DatasetID, storage []int, o *datasetOptions) error {
	chunked := f.opts.chunking
	if o.chunking != nil {
		chunked = *o.chunking
	}
	if o.chunkLengths != nil {
		chunked = true
	}
	if !chunked {
		if o.comp != CompNone {
			return f.lib.SetCompress(id, o.comp, o.compLevel)
		}
		return nil
	}

	var lengths []int
	var total int
	if o.chunkLengths != nil {
		if len(o.chunkLengths) != len(storage) {
			return fmt.Errorf("%d chunk lengths for rank %d", len(o.chunkLengths), len(storage))
		}
		lengths = reverseInts(o.chunkLengths)
		total = 1
		for i, extent := range storage {
			if lengths[i] <= 0 {
				return fmt.Errorf("invalid chunk length %d on axis %d", lengths[i], i)
			}
			if extent > 0 {
				total *= ceilDiv(extent, lengths[i])
			}
		}
	} else {
		plan := PlanChunks(storage, f.opts.minChunkSize, f.opts.chunkTarget)
		lengths = plan.Lengths
		total = plan.Total
	}

	if err := f.lib.SetChunk(id, lengths, o.comp, o.compLevel); err != nil {
		return err
	}
	return f.lib.SetChunkCache(id, total)
}
