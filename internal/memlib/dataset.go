package memlib

import (
	"fmt"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// Select obtains a handle for the dataset at the given index.
func (l *Lib) Select(id sdlib.FileID, index int) (sdlib.DatasetID, error) {
	f, err := l.file(id)
	if err != nil {
		return sdlib.DatasetID(sdlib.FAIL), err
	}
	if index < 0 || index >= len(f.c.Datasets) {
		return sdlib.DatasetID(sdlib.FAIL), fmt.Errorf("dataset index %d out of range [0, %d): %w",
			index, len(f.c.Datasets), sdlib.ErrFail)
	}
	dsID := sdlib.DatasetID(l.id())
	l.datasets[dsID] = &datasetHandle{file: f, ds: f.c.Datasets[index]}
	f.open++
	return dsID, nil
}

// CreateDataset creates a new named dataset and returns its handle.
func (l *Lib) CreateDataset(id sdlib.FileID, name string, typ sdlib.TypeCode, dims []int) (sdlib.DatasetID, error) {
	f, err := l.file(id)
	if err != nil {
		return sdlib.DatasetID(sdlib.FAIL), err
	}
	if !f.mode.Writable() {
		return sdlib.DatasetID(sdlib.FAIL), fmt.Errorf("file %s is read-only: %w", f.path, sdlib.ErrFail)
	}
	if name == "" {
		return sdlib.DatasetID(sdlib.FAIL), fmt.Errorf("empty dataset name: %w", sdlib.ErrFail)
	}
	if !typ.Valid() {
		return sdlib.DatasetID(sdlib.FAIL), fmt.Errorf("invalid type code %d: %w", typ, sdlib.ErrFail)
	}
	if len(dims) == 0 || len(dims) > sdlib.MaxRank {
		return sdlib.DatasetID(sdlib.FAIL), fmt.Errorf("rank %d out of range [1, %d]: %w",
			len(dims), sdlib.MaxRank, sdlib.ErrFail)
	}
	for i, d := range dims {
		if d < 0 || (d == sdlib.Unlimited && i != 0) {
			return sdlib.DatasetID(sdlib.FAIL), fmt.Errorf("invalid extent %d for axis %d: %w", d, i, sdlib.ErrFail)
		}
	}
	if f.c.findDataset(name) != nil {
		return sdlib.DatasetID(sdlib.FAIL), fmt.Errorf("dataset %q already exists: %w", name, sdlib.ErrFail)
	}

	ds := &dataset{
		Ref:      f.c.ref(),
		Name:     name,
		Type:     typ,
		Dims:     append([]int(nil), dims...),
		DimNames: make([]string, len(dims)),
	}
	if !ds.unlimited() {
		ds.Data = make([]byte, volume(dims)*typ.Size())
	}
	f.c.Datasets = append(f.c.Datasets, ds)
	f.dirty = true

	dsID := sdlib.DatasetID(l.id())
	l.datasets[dsID] = &datasetHandle{file: f, ds: ds}
	f.open++
	return dsID, nil
}

// EndAccess releases a dataset handle.
func (l *Lib) EndAccess(ds sdlib.DatasetID) error {
	h, err := l.dataset(ds)
	if err != nil {
		return err
	}
	h.file.open--
	delete(l.datasets, ds)
	return nil
}

// DatasetInfo queries dataset metadata. Dims reports declared sizes, with
// an unbounded record axis as sdlib.Unlimited.
func (l *Lib) DatasetInfo(ds sdlib.DatasetID) (sdlib.DatasetInfo, error) {
	h, err := l.dataset(ds)
	if err != nil {
		return sdlib.DatasetInfo{}, err
	}
	return sdlib.DatasetInfo{
		Name:     h.ds.Name,
		Rank:     len(h.ds.Dims),
		Dims:     append([]int(nil), h.ds.Dims...),
		Type:     h.ds.Type,
		NumAttrs: len(h.ds.Attrs),
	}, nil
}

// UnlimitedExtent reports the current record count of the unbounded axis.
func (l *Lib) UnlimitedExtent(ds sdlib.DatasetID) (int, error) {
	h, err := l.dataset(ds)
	if err != nil {
		return sdlib.FAIL, err
	}
	if !h.ds.unlimited() {
		return h.ds.Dims[0], nil
	}
	return h.ds.Records, nil
}

// DatasetRef reports the dataset's reference number.
func (l *Lib) DatasetRef(ds sdlib.DatasetID) (int32, error) {
	h, err := l.dataset(ds)
	if err != nil {
		return sdlib.FAIL, err
	}
	return h.ds.Ref, nil
}

// DimID obtains a handle for the index-th dimension of a dataset.
func (l *Lib) DimID(ds sdlib.DatasetID, index int) (sdlib.DimID, error) {
	h, err := l.dataset(ds)
	if err != nil {
		return sdlib.DimID(sdlib.FAIL), err
	}
	if index < 0 || index >= len(h.ds.Dims) {
		return sdlib.DimID(sdlib.FAIL), fmt.Errorf("dimension index %d out of range [0, %d): %w",
			index, len(h.ds.Dims), sdlib.ErrFail)
	}
	dimID := sdlib.DimID(l.id())
	l.dims[dimID] = &dimHandle{file: h.file, ds: h.ds, index: index}
	return dimID, nil
}

// DimInfo queries dimension metadata. The type is zero while no dimension
// scale is attached, matching the library's convention.
func (l *Lib) DimInfo(dim sdlib.DimID) (sdlib.DimInfo, error) {
	h, err := l.dim(dim)
	if err != nil {
		return sdlib.DimInfo{}, err
	}
	return sdlib.DimInfo{
		Name: h.ds.DimNames[h.index],
		Size: h.ds.Dims[h.index],
	}, nil
}

// SetDimName names a dimension.
func (l *Lib) SetDimName(dim sdlib.DimID, name string) error {
	h, err := l.dim(dim)
	if err != nil {
		return err
	}
	if !h.file.mode.Writable() {
		return fmt.Errorf("file %s is read-only: %w", h.file.path, sdlib.ErrFail)
	}
	h.ds.DimNames[h.index] = name
	h.file.dirty = true
	return nil
}

// AttrInfo queries the metadata of the index-th attribute of obj.
func (l *Lib) AttrInfo(obj sdlib.ID, index int) (sdlib.AttrInfo, error) {
	attrs, _, err := l.attrsOf(obj)
	if err != nil {
		return sdlib.AttrInfo{}, err
	}
	if index < 0 || index >= len(*attrs) {
		return sdlib.AttrInfo{}, fmt.Errorf("attribute index %d out of range [0, %d): %w",
			index, len(*attrs), sdlib.ErrFail)
	}
	a := (*attrs)[index]
	return sdlib.AttrInfo{Name: a.Name, Type: a.Type, Count: a.Count}, nil
}

// ReadAttr reads the raw value of the index-th attribute of obj.
func (l *Lib) ReadAttr(obj sdlib.ID, index int) ([]byte, error) {
	attrs, _, err := l.attrsOf(obj)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(*attrs) {
		return nil, fmt.Errorf("attribute index %d out of range [0, %d): %w",
			index, len(*attrs), sdlib.ErrFail)
	}
	return append([]byte(nil), (*attrs)[index].Data...), nil
}

// SetAttr creates or replaces a named attribute on obj.
func (l *Lib) SetAttr(obj sdlib.ID, name string, typ sdlib.TypeCode, count int, data []byte) error {
	attrs, f, err := l.attrsOf(obj)
	if err != nil {
		return err
	}
	if !f.mode.Writable() {
		return fmt.Errorf("file %s is read-only: %w", f.path, sdlib.ErrFail)
	}
	if name == "" {
		return fmt.Errorf("empty attribute name: %w", sdlib.ErrFail)
	}
	if !typ.Valid() {
		return fmt.Errorf("invalid type code %d: %w", typ, sdlib.ErrFail)
	}
	if count < 1 || len(data) != count*typ.Size() {
		return fmt.Errorf("attribute %q: %d bytes for %d %s elements: %w",
			name, len(data), count, typ, sdlib.ErrFail)
	}

	a := &attr{Name: name, Type: typ, Count: count, Data: append([]byte(nil), data...)}
	if i := findAttr(*attrs, name); i >= 0 {
		(*attrs)[i] = a
	} else {
		*attrs = append(*attrs, a)
	}
	f.dirty = true
	return nil
}

// SetChunk configures chunked storage. Geometry is immutable once the
// first write has happened.
func (l *Lib) SetChunk(ds sdlib.DatasetID, lengths []int, comp sdlib.CompCode, level int) error {
	h, err := l.dataset(ds)
	if err != nil {
		return err
	}
	if h.ds.Written {
		return fmt.Errorf("dataset %q already written, chunk geometry is frozen: %w", h.ds.Name, sdlib.ErrFail)
	}
	if len(lengths) != len(h.ds.Dims) {
		return fmt.Errorf("dataset %q: %d chunk lengths for rank %d: %w",
			h.ds.Name, len(lengths), len(h.ds.Dims), sdlib.ErrFail)
	}
	for i, n := range lengths {
		if n < 1 {
			return fmt.Errorf("dataset %q: chunk length %d for axis %d: %w", h.ds.Name, n, i, sdlib.ErrFail)
		}
	}
	if comp < sdlib.CompNone || comp > sdlib.CompDeflate {
		return fmt.Errorf("dataset %q: unknown compression code %d: %w", h.ds.Name, comp, sdlib.ErrFail)
	}
	h.ds.Chunk = &chunkConfig{Lengths: append([]int(nil), lengths...), Comp: comp, Level: level}
	h.file.dirty = true
	return nil
}

// SetChunkCache sizes the per-dataset chunk cache.
func (l *Lib) SetChunkCache(ds sdlib.DatasetID, maxChunks int) error {
	h, err := l.dataset(ds)
	if err != nil {
		return err
	}
	if maxChunks < 0 {
		return fmt.Errorf("dataset %q: negative chunk cache size %d: %w", h.ds.Name, maxChunks, sdlib.ErrFail)
	}
	h.ds.ChunkCache = maxChunks
	return nil
}

// SetCompress configures whole-dataset compression.
func (l *Lib) SetCompress(ds sdlib.DatasetID, comp sdlib.CompCode, level int) error {
	h, err := l.dataset(ds)
	if err != nil {
		return err
	}
	if h.ds.Written {
		return fmt.Errorf("dataset %q already written: %w", h.ds.Name, sdlib.ErrFail)
	}
	if comp < sdlib.CompNone || comp > sdlib.CompDeflate {
		return fmt.Errorf("dataset %q: unknown compression code %d: %w", h.ds.Name, comp, sdlib.ErrFail)
	}
	h.ds.Comp = &compConfig{Code: comp, Level: level}
	h.file.dirty = true
	return nil
}

func volume(dims []int) int {
	v := 1
	for _, d := range dims {
		v *= d
	}
	return v
}
