// Package bloom suppresses duplicate reviews within a run using a Bloom
// filter.
package bloom

import (
	"sync"

	"github.com/akash-new/reviewscout"
	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter keyed by review identity. It is safe for
// concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected reviews
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen records r and reports whether a review with the same identity was
// recorded before. False positives are possible; false negatives are not.
func (f *Filter) Seen(r *reviewscout.Review) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(r.Identity())
}

// Test reports whether r might have been recorded, without recording it.
func (f *Filter) Test(r *reviewscout.Review) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(r.Identity())
}

// EstimatedCount returns the approximate number of reviews recorded.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
