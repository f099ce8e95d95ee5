package crawl

import (
	"sync"

	"github.com/fwojciec/websearch"
)

// DefaultMaxFrontierSize caps the number of addresses waiting in the frontier.
const DefaultMaxFrontierSize = 100000

// Frontier is the ordered backlog of addresses awaiting processing.
// Pop takes from the head for breadth-first order and from the tail for
// depth-first order. The frontier does not deduplicate: the same address may
// be queued more than once and the visited set filters repeats after Pop.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	order   websearch.Order
	maxSize int
	queue   []string
	head    int
}

// NewFrontier creates an empty Frontier. A non-positive maxSize selects
// DefaultMaxFrontierSize.
func NewFrontier(order websearch.Order, maxSize int) *Frontier {
	if maxSize <= 0 {
		maxSize = DefaultMaxFrontierSize
	}
	return &Frontier{order: order, maxSize: maxSize}
}

// Order returns the traversal order fixed at construction.
func (f *Frontier) Order() websearch.Order {
	return f.order
}

// MaxSize returns the capacity of the frontier.
func (f *Frontier) MaxSize() int {
	return f.maxSize
}

// Push appends an address to the frontier.
// Returns false if the frontier is full and the address was dropped.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.lenLocked() >= f.maxSize {
		return false
	}
	f.queue = append(f.queue, url)
	return true
}

// Pop removes and returns the next address according to the traversal order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.lenLocked() == 0 {
		return "", false
	}

	var url string
	if f.order == websearch.BreadthFirst {
		url = f.queue[f.head]
		f.queue[f.head] = ""
		f.head++
	} else {
		last := len(f.queue) - 1
		url = f.queue[last]
		f.queue = f.queue[:last]
	}

	// Reclaim the consumed prefix once it dominates the backing array.
	if f.head > 0 && f.head*2 >= len(f.queue) {
		f.queue = append(f.queue[:0:0], f.queue[f.head:]...)
		f.head = 0
	}
	return url, true
}

// Truncate keeps only the first limit addresses, dropping the most recently
// pushed excess.
func (f *Frontier) Truncate(limit int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if f.lenLocked() <= limit {
		return
	}
	end := f.head + limit
	clear(f.queue[end:])
	f.queue = f.queue[:end]
}

// Len returns the number of addresses in the frontier.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lenLocked()
}

// IsEmpty reports whether the frontier holds no addresses.
func (f *Frontier) IsEmpty() bool {
	return f.Len() == 0
}

// Snapshot returns the queued addresses in insertion order.
func (f *Frontier) Snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queue[f.head:]...)
}

func (f *Frontier) lenLocked() int {
	return len(f.queue) - f.head
}
