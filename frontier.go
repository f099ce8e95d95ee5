package websearch

import (
	"context"
	"fmt"
	"strings"
)

// Order selects which end of the frontier the next address is taken from.
type Order string

// Traversal orders.
const (
	// BreadthFirst pops the oldest address (FIFO).
	BreadthFirst Order = "bfs"
	// DepthFirst pops the newest address (LIFO).
	DepthFirst Order = "dfs"
)

// ParseOrder parses a traversal order name.
// Accepts "bfs", "breadth-first", "dfs" and "depth-first".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bfs", "breadth-first":
		return BreadthFirst, nil
	case "dfs", "depth-first", "":
		return DepthFirst, nil
	}
	return "", Errorf(EINVALID, "unknown traversal order %q", s)
}

// String returns the order's long name.
func (o Order) String() string {
	switch o {
	case BreadthFirst:
		return "breadth-first"
	case DepthFirst:
		return "depth-first"
	}
	return fmt.Sprintf("Order(%q)", string(o))
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
