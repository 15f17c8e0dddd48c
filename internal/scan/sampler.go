package scan

import (
	"math/rand"
	"sort"
)

// NoLimit disables the subset size cap in Sampler calls.
const NoLimit = -1

// Sampler draws index subsets from integer ranges. It wraps a single
// *rand.Rand and is therefore not safe for concurrent use; the multi-frame
// driver gives each frame its own Sampler.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a Sampler seeded with the given value. The same seed
// reproduces the same draws, which is what the tests use.
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Indexes returns a subset of [0, count).
//
// With limit == NoLimit the full range comes back, each index exactly once.
// Otherwise the result is a uniformly random subset of size
// min(limit, count). The returned slice is always sorted ascending so that
// callers slicing columns or frames keep their original relative order.
func (s *Sampler) Indexes(count, limit int) []int {
	return s.StridedIndexes(count, 1, limit)
}

// StridedIndexes first thins [0, count) to every step-th index (0, step,
// 2·step, ...) and then applies the same random subsetting as Indexes. A
// step of 1 keeps the full range. Steps below 1 are treated as 1.
func (s *Sampler) StridedIndexes(count, step, limit int) []int {
	if count <= 0 {
		return nil
	}
	if step < 1 {
		step = 1
	}

	idx := make([]int, 0, (count+step-1)/step)
	for i := 0; i < count; i += step {
		idx = append(idx, i)
	}

	if limit == NoLimit || limit >= len(idx) {
		return idx
	}
	if limit <= 0 {
		return idx[:0]
	}

	s.rng.Shuffle(len(idx), func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})
	idx = idx[:limit]
	sort.Ints(idx)
	return idx
}
