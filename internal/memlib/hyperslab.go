package memlib

import (
	"bytes"
	"fmt"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// ReadData reads a hyperslab in storage order.
func (l *Lib) ReadData(ds sdlib.DatasetID, start, stride, edges []int) ([]byte, error) {
	h, err := l.dataset(ds)
	if err != nil {
		return nil, err
	}
	dims := h.ds.curDims()
	if err := checkSlab(dims, start, stride, edges); err != nil {
		return nil, fmt.Errorf("dataset %q: %w", h.ds.Name, err)
	}

	elemSize := h.ds.elemSize()
	out := make([]byte, volume(edges)*elemSize)
	if len(out) == 0 {
		return out, nil
	}
	copySlab(h.ds.Data, dims, elemSize, start, stride, edges, out, true)
	return out, nil
}

// WriteData writes a hyperslab in storage order, growing an unbounded
// record axis as needed. Cells created by growth take the dataset's
// _FillValue attribute, or zero without one.
func (l *Lib) WriteData(ds sdlib.DatasetID, start, stride, edges []int, data []byte) error {
	h, err := l.dataset(ds)
	if err != nil {
		return err
	}
	if !h.file.mode.Writable() {
		return fmt.Errorf("file %s is read-only: %w", h.file.path, sdlib.ErrFail)
	}

	rank := len(h.ds.Dims)
	if len(start) != rank || len(stride) != rank || len(edges) != rank {
		return fmt.Errorf("dataset %q: start/stride/edges must each have rank %d: %w",
			h.ds.Name, rank, sdlib.ErrFail)
	}
	elemSize := h.ds.elemSize()
	if len(data) != volume(edges)*elemSize {
		return fmt.Errorf("dataset %q: %d bytes for %d elements: %w",
			h.ds.Name, len(data), volume(edges), sdlib.ErrFail)
	}

	if h.ds.unlimited() && rank > 0 && edges[0] > 0 {
		needed := start[0] + (edges[0]-1)*maxInt(stride[0], 1) + 1
		if needed > h.ds.Records {
			h.grow(needed)
		}
	}

	dims := h.ds.curDims()
	if err := checkSlab(dims, start, stride, edges); err != nil {
		return fmt.Errorf("dataset %q: %w", h.ds.Name, err)
	}
	if len(data) > 0 {
		copySlab(h.ds.Data, dims, elemSize, start, stride, edges, data, false)
	}
	h.ds.Written = true
	h.file.dirty = true
	return nil
}

// grow extends the record axis to the given record count.
func (h *datasetHandle) grow(records int) {
	d := h.ds
	rowVol := volume(d.Dims[1:]) * d.elemSize()
	add := (records - d.Records) * rowVol
	d.Data = append(d.Data, bytes.Repeat(d.fillByteCell(), add/maxInt(d.elemSize(), 1))...)
	d.Records = records
}

// fillByteCell returns the byte pattern of one unwritten cell.
func (d *dataset) fillByteCell() []byte {
	if i := findAttr(d.Attrs, "_FillValue"); i >= 0 && len(d.Attrs[i].Data) == d.elemSize() {
		return append([]byte(nil), d.Attrs[i].Data...)
	}
	return make([]byte, d.elemSize())
}

// checkSlab validates a (start, stride, edges) triple against dims.
func checkSlab(dims, start, stride, edges []int) error {
	rank := len(dims)
	if len(start) != rank || len(stride) != rank || len(edges) != rank {
		return fmt.Errorf("start/stride/edges must each have rank %d: %w", rank, sdlib.ErrFail)
	}
	for d := 0; d < rank; d++ {
		if start[d] < 0 || stride[d] < 1 || edges[d] < 0 {
			return fmt.Errorf("axis %d: invalid slab (start=%d stride=%d edge=%d): %w",
				d, start[d], stride[d], edges[d], sdlib.ErrFail)
		}
		if edges[d] == 0 {
			continue
		}
		last := start[d] + (edges[d]-1)*stride[d]
		if last >= dims[d] {
			return fmt.Errorf("axis %d: slab reaches %d, extent is %d: %w",
				d, last, dims[d], sdlib.ErrFail)
		}
	}
	return nil
}

// copySlab moves elements between the dataset buffer and a packed slab
// buffer. read selects the direction: buffer to slab when true.
func copySlab(buf []byte, dims []int, elemSize int, start, stride, edges []int, slab []byte, read bool) {
	rank := len(dims)
	factors := make([]int, rank)
	f := 1
	for d := rank - 1; d >= 0; d-- {
		factors[d] = f
		f *= dims[d]
	}

	idx := make([]int, rank)
	off := 0
	for {
		src := 0
		for d := 0; d < rank; d++ {
			src += (start[d] + idx[d]*stride[d]) * factors[d]
		}
		b := src * elemSize
		if read {
			copy(slab[off:off+elemSize], buf[b:b+elemSize])
		} else {
			copy(buf[b:b+elemSize], slab[off:off+elemSize])
		}
		off += elemSize

		d := rank - 1
		for ; d >= 0; d-- {
			idx[d]++
			if idx[d] < edges[d] {
				break
			}
			idx[d] = 0
		}
		if d < 0 {
			return
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
