package memlib

import (
	"fmt"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

// container is the whole persisted state of one emulated file.
type container struct {
	Magic   string
	Version int
	NextRef int32

	GlobalAttrs []*attr
	Datasets    []*dataset
	VGroups     []*vgroup
	VDatas      []*vdata
}

const (
	containerMagic   = "go-hdf4/memlib"
	containerVersion = 1
)

func newContainer() *container {
	return &container{Magic: containerMagic, Version: containerVersion, NextRef: 1}
}

func (c *container) ref() int32 {
	r := c.NextRef
	c.NextRef++
	return r
}

// attr is one named attribute value, global or dataset-scoped.
type attr struct {
	Name  string
	Type  sdlib.TypeCode
	Count int
	Data  []byte
}

type dataset struct {
	Ref      int32
	Name     string
	Type     sdlib.TypeCode
	Dims     []int // declared, storage order; Dims[0] may be sdlib.Unlimited
	DimNames []string
	Records  int // current extent of an unbounded record axis
	Attrs    []*attr
	Data     []byte

	Chunk      *chunkConfig
	ChunkCache int
	Comp       *compConfig
	Written    bool // geometry frozen once true
}

type chunkConfig struct {
	Lengths []int
	Comp    sdlib.CompCode
	Level   int
}

type compConfig struct {
	Code  sdlib.CompCode
	Level int
}

type vgroup struct {
	Ref     int32
	Name    string
	Class   string
	Members []sdlib.TagRef
}

type vdata struct {
	Ref     int32
	Name    string
	Class   string
	Fields  []sdlib.VField
	Records int
	Data    []byte
}

// unlimited reports whether the dataset's record axis is unbounded.
func (d *dataset) unlimited() bool {
	return len(d.Dims) > 0 && d.Dims[0] == sdlib.Unlimited
}

// curDims returns the dataset's current extents: declared sizes with an
// unbounded record axis replaced by the current record count.
func (d *dataset) curDims() []int {
	dims := make([]int, len(d.Dims))
	copy(dims, d.Dims)
	if d.unlimited() {
		dims[0] = d.Records
	}
	return dims
}

func (d *dataset) elemSize() int {
	return d.Type.Size()
}

func findAttr(attrs []*attr, name string) int {
	for i, a := range attrs {
		if a.Name == name {
			return i
		}
	}
	return -1
}

func (c *container) findDataset(name string) *dataset {
	for _, d := range c.Datasets {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// attrsOf resolves an attribute-capable identifier to its attribute list.
func (l *Lib) attrsOf(obj sdlib.ID) (*[]*attr, *fileHandle, error) {
	if f, ok := l.files[sdlib.FileID(obj)]; ok {
		return &f.c.GlobalAttrs, f, nil
	}
	if h, ok := l.datasets[sdlib.DatasetID(obj)]; ok {
		return &h.ds.Attrs, h.file, nil
	}
	return nil, nil, fmt.Errorf("identifier %d holds no attributes: %w", obj, sdlib.ErrFail)
}
