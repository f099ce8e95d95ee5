// Package constraint provides the rules the crawl pipeline evaluates
// against candidate addresses and fetched responses.
package constraint

import (
	"context"
	"time"

	"github.com/fwojciec/websearch"
)

// URLFunc adapts a function to websearch.URLConstraint.
type URLFunc struct {
	Label string
	Fn    func(ctx context.Context, url string) bool
}

var _ websearch.URLConstraint = (*URLFunc)(nil)

// Name returns the constraint's label.
func (c *URLFunc) Name() string { return c.Label }

// AllowURL calls the wrapped function.
func (c *URLFunc) AllowURL(ctx context.Context, url string) bool { return c.Fn(ctx, url) }

// ResponseFunc adapts a function to websearch.ResponseConstraint.
type ResponseFunc struct {
	Label string
	Fn    func(ctx context.Context, res *websearch.FetchResult) bool
}

var _ websearch.ResponseConstraint = (*ResponseFunc)(nil)

// Name returns the constraint's label.
func (c *ResponseFunc) Name() string { return c.Label }

// AllowResponse calls the wrapped function.
func (c *ResponseFunc) AllowResponse(ctx context.Context, res *websearch.FetchResult) bool {
	return c.Fn(ctx, res)
}

// Set holds the three ordered constraint chains of a crawl.
type Set struct {
	Fetch      []websearch.Constraint
	Response   []websearch.Constraint
	Extraction []websearch.Constraint
}

// DefaultRecencyWindow is how recently an address must have been indexed
// for the default extraction chain to skip it.
const DefaultRecencyWindow = 24 * time.Hour

// DefaultExtensions are the path extensions the default fetch chain accepts.
// The empty extension covers directory-style paths such as /docs/.
func DefaultExtensions() []string {
	return []string{"", "html", "htm", "xml", "asp", "jsp", "xhtml", "shtml", "json"}
}

// Defaults returns the constraint set used when none is configured:
// an extension allow-list before fetching, a 2xx status and content-type
// allow-list after fetching, and a one-day recency check before extraction.
func Defaults() *Set {
	return &Set{
		Fetch: []websearch.Constraint{
			NewExtension(DefaultExtensions()...),
		},
		Response: []websearch.Constraint{
			NewStatusCode(),
			NewContentType(),
		},
		Extraction: []websearch.Constraint{
			NewNotVisitedRecently(DefaultRecencyWindow),
		},
	}
}
