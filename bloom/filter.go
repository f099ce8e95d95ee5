// Package bloom estimates how many distinct addresses a crawl has
// discovered without keeping every address in memory.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter counts distinct addresses with a Bloom filter.
// A false positive makes a new address look already seen, so Distinct may
// undercount by roughly the configured false positive rate. It never
// overcounts.
type Filter struct {
	f        *bloom.BloomFilter
	distinct int
}

// NewFilter creates a Filter sized for capacity addresses at the given
// false positive rate. A zero capacity is treated as one.
func NewFilter(capacity uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(max(capacity, 1), fpRate),
	}
}

// Observe records an address and reports whether it was new.
func (f *Filter) Observe(url string) bool {
	if f.f.TestAndAddString(url) {
		return false
	}
	f.distinct++
	return true
}

// Seen reports whether the address may have been observed.
func (f *Filter) Seen(url string) bool {
	return f.f.TestString(url)
}

// Distinct returns the number of addresses Observe reported as new.
func (f *Filter) Distinct() int {
	return f.distinct
}
