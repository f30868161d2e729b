package hdf4

// Chunk planner defaults.
const (
	// DefaultMinChunkSize is the floor on a planned chunk length.
	DefaultMinChunkSize = 100
	// DefaultChunkTarget is the number of chunks aimed for per axis.
	DefaultChunkTarget = 10
)

// ChunkPlan is a tiling geometry for a newly created dataset: one chunk
// length and effective chunk count per axis, plus the aggregate chunk
// count across all axes.
type ChunkPlan struct {
	Lengths []int
	Counts  []int
	Total   int
}

// PlanChunks computes a tiling geometry for a dataset shape. Axis order
// does not matter; the plan is per-axis.
//
// For each axis the proposed chunk length is ceil(extent/target). When
// that falls below minSize the length becomes minSize and the axis's
// effective chunk count is recomputed as ceil(extent/length); otherwise
// the effective count is target. Total is the product of the effective
// counts. An axis with extent <= 0 (an unbounded axis at creation time)
// gets one chunk of minSize.
//
// Non-positive minSize or target fall back to the package defaults.
func PlanChunks(shape []int, minSize, target int) ChunkPlan {
	if minSize <= 0 {
		minSize = DefaultMinChunkSize
	}
	if target <= 0 {
		target = DefaultChunkTarget
	}

	plan := ChunkPlan{
		Lengths: make([]int, len(shape)),
		Counts:  make([]int, len(shape)),
		Total:   1,
	}
	for i, extent := range shape {
		length, count := planAxis(extent, minSize, target)
		plan.Lengths[i] = length
		plan.Counts[i] = count
		plan.Total *= count
	}
	return plan
}

func planAxis(extent, minSize, target int) (length, count int) {
	if extent <= 0 {
		return minSize, 1
	}
	length = ceilDiv(extent, target)
	count = target
	if length < minSize {
		length = minSize
		count = ceilDiv(extent, length)
	}
	return length, count
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
