package sdlib

// DatasetInfo is the result of a per-dataset metadata query (SDgetinfo).
// Dims is in the library's storage order; an Unlimited entry marks an
// unbounded axis whose current extent comes from UnlimitedExtent.
type DatasetInfo struct {
	Name     string
	Rank     int
	Dims     []int
	Type     TypeCode
	NumAttrs int
}

// DimInfo is the result of a per-dimension metadata query (SDdiminfo).
// Size is the declared size; Unlimited means unbounded.
type DimInfo struct {
	Name     string
	Size     int
	Type     TypeCode
	NumAttrs int
}

// AttrInfo is the result of an attribute metadata query (SDattrinfo).
// Count is the element count of the stored value, not a byte length.
type AttrInfo struct {
	Name  string
	Type  TypeCode
	Count int
}

// Library is the SD call surface of the external HDF4 library.
//
// Every call is synchronous and blocking; a call either succeeds or fails
// definitively, and no call is retried. The surface is not safe for
// concurrent use against the same FileID.
//
// Attribute calls take a plain ID because the external library accepts a
// file, dataset or dimension identifier interchangeably there.
type Library interface {
	// Start opens or creates the container at path and returns its handle.
	Start(path string, mode AccessMode) (FileID, error)
	// End flushes and releases a file handle. Every dataset handle obtained
	// from the file must have been released through EndAccess first.
	End(id FileID) error
	// FileInfo reports the number of datasets and of global attributes.
	FileInfo(id FileID) (numDatasets, numGlobalAttrs int, err error)

	// Select obtains the dataset handle at the given index.
	Select(id FileID, index int) (DatasetID, error)
	// CreateDataset creates a new named dataset with the given element type
	// and storage-order shape, returning its handle.
	CreateDataset(id FileID, name string, typ TypeCode, dims []int) (DatasetID, error)
	// EndAccess releases a dataset handle.
	EndAccess(ds DatasetID) error
	// DatasetInfo queries a dataset's metadata.
	DatasetInfo(ds DatasetID) (DatasetInfo, error)
	// UnlimitedExtent reports the current record count of the dataset's
	// unbounded axis. It is only meaningful when the declared size of that
	// axis is Unlimited.
	UnlimitedExtent(ds DatasetID) (int, error)
	// DatasetRef reports the dataset's reference number, usable as a
	// Vgroup member with TagSDS.
	DatasetRef(ds DatasetID) (int32, error)

	// DimID obtains the handle of the index-th dimension of a dataset.
	DimID(ds DatasetID, index int) (DimID, error)
	// DimInfo queries a dimension's metadata.
	DimInfo(dim DimID) (DimInfo, error)
	// SetDimName names a dimension.
	SetDimName(dim DimID, name string) error

	// AttrInfo queries the metadata of the index-th attribute of obj.
	AttrInfo(obj ID, index int) (AttrInfo, error)
	// ReadAttr reads the raw value bytes of the index-th attribute of obj.
	// The returned slice holds exactly Count elements of the reported type.
	ReadAttr(obj ID, index int) ([]byte, error)
	// SetAttr creates or replaces a named attribute on obj.
	SetAttr(obj ID, name string, typ TypeCode, count int, data []byte) error

	// ReadData reads a hyperslab. start, stride and edges are per-axis in
	// storage order; the result is raw elements in row-major storage order.
	ReadData(ds DatasetID, start, stride, edges []int) ([]byte, error)
	// WriteData writes a hyperslab, growing an unbounded axis as needed.
	WriteData(ds DatasetID, start, stride, edges []int, data []byte) error

	// SetChunk configures chunked storage with the given per-axis chunk
	// lengths and optional compression. Must precede the first write and
	// cannot be reconfigured afterwards.
	SetChunk(ds DatasetID, lengths []int, comp CompCode, level int) error
	// SetChunkCache sizes the per-dataset chunk cache in chunks.
	SetChunkCache(ds DatasetID, maxChunks int) error
	// SetCompress configures whole-dataset compression for non-chunked
	// storage.
	SetCompress(ds DatasetID, comp CompCode, level int) error

	VLibrary
}
