package hdf4

import (
	"fmt"

	"github.com/robert-malhotra/go-hdf4/internal/dtype"
	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// catalog is the in-memory metadata tree built once per open: every
// global attribute, every dataset with its dimensions and attributes.
// Name maps hold trimmed names; slices preserve the library's index
// order.
type catalog struct {
	globals     map[string]*Attribute
	globalNames []string

	datasets     map[string]*Dataset
	datasetNames []string
	byRef        map[int32]*Dataset
}

func newCatalog() *catalog {
	return &catalog{
		globals:  make(map[string]*Attribute),
		datasets: make(map[string]*Dataset),
		byRef:    make(map[int32]*Dataset),
	}
}

// buildCatalog materializes the metadata tree for an open file. It
// queries the library exactly once per global attribute, once per
// dataset, once per dimension and once per dataset attribute. Any
// failure aborts the build: opened dataset handles are released and the
// caller must treat the file as unopened.
func buildCatalog(f *File) (*catalog, error) {
	cat := newCatalog()

	numDatasets, numGlobals, err := f.lib.FileInfo(f.id)
	if err != nil {
		return nil, fmt.Errorf("file info: %w: %w", err, ErrQuery)
	}

	for i := 0; i < numGlobals; i++ {
		a, err := readAttribute(f.lib, sdlib.ID(f.id), i)
		if err != nil {
			return nil, fmt.Errorf("global attribute %d: %w: %w", i, err, ErrQuery)
		}
		cat.putGlobal(a)
	}

	for i := 0; i < numDatasets; i++ {
		ds, err := buildDataset(f, i)
		if err != nil {
			cat.release(f)
			return nil, fmt.Errorf("dataset %d: %w: %w", i, err, ErrQuery)
		}
		cat.putDataset(ds)
	}

	return cat, nil
}

// buildDataset selects one dataset by index and materializes its subtree.
// The selected handle stays open; it belongs to the File until close.
func buildDataset(f *File, index int) (*Dataset, error) {
	id, err := f.lib.Select(f.id, index)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}

	ds, err := describeDataset(f, id)
	if err != nil {
		f.lib.EndAccess(id)
		return nil, err
	}
	return ds, nil
}

// describeDataset queries the full subtree of an already-open dataset
// handle: info, reference, each dimension, each attribute.
func describeDataset(f *File, id sdlib.DatasetID) (*Dataset, error) {
	info, err := f.lib.DatasetInfo(id)
	if err != nil {
		return nil, fmt.Errorf("info: %w", err)
	}

	ds := &Dataset{
		file:  f,
		id:    id,
		name:  dtype.TrimName(info.Name),
		typ:   info.Type,
		rank:  info.Rank,
		attrs: make(map[string]*Attribute),
	}

	ref, err := f.lib.DatasetRef(id)
	if err != nil {
		return nil, fmt.Errorf("ref: %w", err)
	}
	ds.ref = ref

	for j := 0; j < info.Rank; j++ {
		dimID, err := f.lib.DimID(id, j)
		if err != nil {
			return nil, fmt.Errorf("dimension %d: %w", j, err)
		}
		dimInfo, err := f.lib.DimInfo(dimID)
		if err != nil {
			return nil, fmt.Errorf("dimension %d: %w", j, err)
		}
		dim := &Dimension{
			ds:    ds,
			id:    dimID,
			index: j,
			name:  dtype.TrimName(dimInfo.Name),
			size:  dimInfo.Size,
		}
		if dim.IsUnlimited() {
			// Fail fast if the real extent is unreachable; the extent
			// itself is re-queried on demand, never cached.
			if _, err := f.lib.UnlimitedExtent(id); err != nil {
				return nil, fmt.Errorf("dimension %d extent: %w", j, err)
			}
		}
		ds.dims = append(ds.dims, dim)
	}

	for k := 0; k < info.NumAttrs; k++ {
		a, err := readAttribute(f.lib, sdlib.ID(id), k)
		if err != nil {
			return nil, fmt.Errorf("attribute %d: %w", k, err)
		}
		ds.putAttr(a)
	}

	return ds, nil
}

func (c *catalog) putGlobal(a *Attribute) {
	if _, ok := c.globals[a.name]; !ok {
		c.globalNames = append(c.globalNames, a.name)
	}
	c.globals[a.name] = a
}

func (c *catalog) putDataset(ds *Dataset) {
	if _, ok := c.datasets[ds.name]; !ok {
		c.datasetNames = append(c.datasetNames, ds.name)
	}
	c.datasets[ds.name] = ds
	c.byRef[ds.ref] = ds
}

// release ends access to every dataset handle the catalog holds, in
// index order. Used both by the abort path of the build and by Close.
func (c *catalog) release(f *File) {
	for _, name := range c.datasetNames {
		f.lib.EndAccess(c.datasets[name].id)
	}
	c.datasetNames = nil
	c.datasets = map[string]*Dataset{}
	c.byRef = map[int32]*Dataset{}
}
