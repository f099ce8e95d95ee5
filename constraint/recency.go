package constraint

import (
	"context"
	"time"

	"github.com/fwojciec/websearch"
)

var (
	_ websearch.URLConstraint = (*NotVisitedRecently)(nil)
	_ websearch.LookupAware   = (*NotVisitedRecently)(nil)
)

// NotVisitedRecently rejects addresses the index reports as visited within
// Window. It must be given a lookup with SetLookup before first use.
type NotVisitedRecently struct {
	Window time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	lookup websearch.VisitLookup
}

// NewNotVisitedRecently creates a NotVisitedRecently constraint.
func NewNotVisitedRecently(window time.Duration) *NotVisitedRecently {
	return &NotVisitedRecently{Window: window}
}

// Name returns the constraint's identifier.
func (c *NotVisitedRecently) Name() string {
	return "not-visited-within(" + c.Window.String() + ")"
}

// SetLookup sets the index consulted for last-visit times.
func (c *NotVisitedRecently) SetLookup(lookup websearch.VisitLookup) {
	c.lookup = lookup
}

// AllowURL reports whether the address was not indexed within the window.
// Lookup failures accept the address.
func (c *NotVisitedRecently) AllowURL(ctx context.Context, url string) bool {
	if c.lookup == nil {
		return true
	}
	last, ok, err := c.lookup.LastVisited(ctx, url)
	if err != nil || !ok {
		return true
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().Sub(last) >= c.Window
}
