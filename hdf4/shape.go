package hdf4

// The library stores and iterates shapes with the record axis first;
// callers see every shape, start, stride and extent in the opposite
// order. reverseInts is the single conversion between the two, applied
// symmetrically on the read and write paths.
func reverseInts(s []int) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func zeros(n int) []int {
	return make([]int, n)
}

func ones(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

func volume(dims []int) int {
	v := 1
	for _, d := range dims {
		v *= d
	}
	return v
}
