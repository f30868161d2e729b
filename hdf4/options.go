package hdf4

// Backend selects the implementation of the external library surface.
type Backend int

const (
	// BackendNative binds the installed HDF4 C library. Requires the
	// module to be built with the hdf4cgo tag.
	BackendNative Backend = iota
	// BackendMemory uses the pure-Go emulation. Portable and
	// self-contained, but its files are not HDF4 files.
	BackendMemory
)

// FileOption configures file opening.
type FileOption func(*fileOptions)

type fileOptions struct {
	backend      Backend
	chunking     bool
	minChunkSize int
	chunkTarget  int
}

func defaultFileOptions() *fileOptions {
	return &fileOptions{
		backend:      BackendNative,
		chunking:     true,
		minChunkSize: DefaultMinChunkSize,
		chunkTarget:  DefaultChunkTarget,
	}
}

// WithBackend selects the library backend.
func WithBackend(b Backend) FileOption {
	return func(o *fileOptions) {
		o.backend = b
	}
}

// WithChunking sets the file-wide default for chunked storage of newly
// created datasets. On by default.
func WithChunking(enabled bool) FileOption {
	return func(o *fileOptions) {
		o.chunking = enabled
	}
}

// WithMinChunkSize sets the file-wide floor on planned chunk lengths.
func WithMinChunkSize(n int) FileOption {
	return func(o *fileOptions) {
		if n > 0 {
			o.minChunkSize = n
		}
	}
}

// WithChunkTarget sets the file-wide per-axis chunk count the planner
// aims for.
func WithChunkTarget(n int) FileOption {
	return func(o *fileOptions) {
		if n > 0 {
			o.chunkTarget = n
		}
	}
}

// DatasetOption configures dataset creation and writing.
type DatasetOption func(*datasetOptions)

type datasetOptions struct {
	shape        []int // caller order
	start        []int // caller order
	fill         interface{}
	comp         CompCode
	compLevel    int
	chunking     *bool
	chunkLengths []int // caller order
}

func defaultDatasetOptions() *datasetOptions {
	return &datasetOptions{comp: CompNone}
}

// WithShape declares the shape of a dataset created by a first write, in
// caller order. Without it a first write creates a one-dimensional
// dataset sized to the data. Use Unlimited for the last caller-order
// extent to make that axis unbounded.
func WithShape(dims ...int) DatasetOption {
	return func(o *datasetOptions) {
		o.shape = dims
	}
}

// WithStart offsets a write into an existing dataset, in caller order.
// The stride is implicitly one on every axis.
func WithStart(offsets ...int) DatasetOption {
	return func(o *datasetOptions) {
		o.start = offsets
	}
}

// WithFillValue sets the fill value committed before the first write of a
// newly created dataset.
func WithFillValue(v interface{}) DatasetOption {
	return func(o *datasetOptions) {
		o.fill = v
	}
}

// WithCompression selects a compression method for a newly created
// dataset. The level is only meaningful for CompDeflate (1-9).
func WithCompression(comp CompCode, level int) DatasetOption {
	return func(o *datasetOptions) {
		o.comp = comp
		o.compLevel = level
	}
}

// WithDatasetChunking overrides the file-wide chunking default for one
// dataset creation.
func WithDatasetChunking(enabled bool) DatasetOption {
	return func(o *datasetOptions) {
		o.chunking = &enabled
	}
}

// WithChunkLengths bypasses the chunk planner and configures explicit
// per-axis chunk lengths, in caller order.
func WithChunkLengths(lengths ...int) DatasetOption {
	return func(o *datasetOptions) {
		o.chunkLengths = lengths
	}
}
