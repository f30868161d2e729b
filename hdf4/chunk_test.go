package hdf4

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanChunksFloorRaisesLength(t *testing.T) {
	// 950 elements: ceil(950/10) = 95 is below the floor, so the length
	// becomes 100 and the effective count ceil(950/100) = 10.
	plan := PlanChunks([]int{950}, DefaultMinChunkSize, DefaultChunkTarget)
	assert.Equal(t, []int{100}, plan.Lengths)
	assert.Equal(t, []int{10}, plan.Counts)
	assert.Equal(t, 10, plan.Total)
}

func TestPlanChunksLargeAxisKeepsTarget(t *testing.T) {
	plan := PlanChunks([]int{10000}, DefaultMinChunkSize, DefaultChunkTarget)
	assert.Equal(t, []int{1000}, plan.Lengths)
	assert.Equal(t, []int{10}, plan.Counts)
	assert.Equal(t, 10, plan.Total)
}

func TestPlanChunksTinyAxisSingleChunk(t *testing.T) {
	plan := PlanChunks([]int{50}, DefaultMinChunkSize, DefaultChunkTarget)
	assert.Equal(t, []int{100}, plan.Lengths)
	assert.Equal(t, []int{1}, plan.Counts)
	assert.Equal(t, 1, plan.Total)
}

func TestPlanChunksUnboundedAxis(t *testing.T) {
	plan := PlanChunks([]int{Unlimited, 950}, DefaultMinChunkSize, DefaultChunkTarget)
	assert.Equal(t, []int{100, 100}, plan.Lengths)
	assert.Equal(t, []int{1, 10}, plan.Counts)
	assert.Equal(t, 10, plan.Total)
}

func TestPlanChunksTotalIsProduct(t *testing.T) {
	plan := PlanChunks([]int{10000, 950, 50}, DefaultMinChunkSize, DefaultChunkTarget)
	assert.Equal(t, []int{1000, 100, 100}, plan.Lengths)
	assert.Equal(t, []int{10, 10, 1}, plan.Counts)
	assert.Equal(t, 100, plan.Total)
}

func TestPlanChunksCustomParameters(t *testing.T) {
	plan := PlanChunks([]int{1000}, 10, 4)
	assert.Equal(t, []int{250}, plan.Lengths)
	assert.Equal(t, []int{4}, plan.Counts)
}

func TestPlanChunksNonPositiveParametersUseDefaults(t *testing.T) {
	assert.Equal(t,
		PlanChunks([]int{950}, DefaultMinChunkSize, DefaultChunkTarget),
		PlanChunks([]int{950}, 0, -1))
}
