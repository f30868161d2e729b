package memlib

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/flate"

	"github.com/robert-malhotra/go-hdf4/internal/sdlib"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	encodingRaw     = "raw"
	encodingDeflate = "deflate"
)

// diskContainer is the persisted form of a container. Dataset payloads
// with deflate compression configured are stored deflated, so round-trips
// honor the configured codec.
type diskContainer struct {
	Magic   string
	Version int
	NextRef int32

	GlobalAttrs []*attr
	Datasets    []*diskDataset
	VGroups     []*vgroup
	VDatas      []*vdata
}

type diskDataset struct {
	dataset
	Encoding string
}

func save(path string, c *container) error {
	disk := &diskContainer{
		Magic:       c.Magic,
		Version:     c.Version,
		NextRef:     c.NextRef,
		GlobalAttrs: c.GlobalAttrs,
		VGroups:     c.VGroups,
		VDatas:      c.VDatas,
	}
	for _, ds := range c.Datasets {
		dd := &diskDataset{dataset: *ds, Encoding: encodingRaw}
		if level, ok := ds.deflateLevel(); ok && len(ds.Data) > 0 {
			packed, err := deflateBytes(ds.Data, level)
			if err != nil {
				return fmt.Errorf("compressing dataset %q: %w", ds.Name, err)
			}
			dd.Data = packed
			dd.Encoding = encodingDeflate
		}
		disk.Datasets = append(disk.Datasets, dd)
	}

	raw, err := json.Marshal(disk)
	if err != nil {
		return fmt.Errorf("encoding container: %w", err)
	}

	// Write via a temp file so a failed save never truncates the old
	// container.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".go-hdf4-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func load(path string) (*container, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var disk diskContainer
	if err := json.Unmarshal(raw, &disk); err != nil {
		return nil, fmt.Errorf("decoding container: %w", err)
	}
	if disk.Magic != containerMagic {
		return nil, fmt.Errorf("%s is not a go-hdf4 container", path)
	}
	if disk.Version != containerVersion {
		return nil, fmt.Errorf("unsupported container version %d", disk.Version)
	}

	c := &container{
		Magic:       disk.Magic,
		Version:     disk.Version,
		NextRef:     disk.NextRef,
		GlobalAttrs: disk.GlobalAttrs,
		VGroups:     disk.VGroups,
		VDatas:      disk.VDatas,
	}
	for _, dd := range disk.Datasets {
		ds := dd.dataset
		if dd.Encoding == encodingDeflate {
			data, err := inflateBytes(ds.Data)
			if err != nil {
				return nil, fmt.Errorf("decompressing dataset %q: %w", ds.Name, err)
			}
			ds.Data = data
		}
		cp := ds
		c.Datasets = append(c.Datasets, &cp)
	}
	return c, nil
}

// deflateLevel reports whether deflate is configured for the dataset, and
// at which level.
func (d *dataset) deflateLevel() (int, bool) {
	if d.Chunk != nil && d.Chunk.Comp == sdlib.CompDeflate {
		return clampLevel(d.Chunk.Level), true
	}
	if d.Comp != nil && d.Comp.Code == sdlib.CompDeflate {
		return clampLevel(d.Comp.Level), true
	}
	return 0, false
}

func clampLevel(level int) int {
	if level < 1 {
		return flate.DefaultCompression
	}
	if level > 9 {
		return 9
	}
	return level
}

func deflateBytes(p []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(p); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func inflateBytes(p []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(p))
	defer r.Close()
	return io.ReadAll(r)
}
