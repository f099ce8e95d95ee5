package constraint

import (
	"context"
	"strings"

	"github.com/fwojciec/websearch"
)

var _ websearch.ResponseConstraint = (*StatusCode)(nil)

// StatusCode accepts responses whose status code is in the allowed set.
// With no explicit codes, any 2xx status is accepted.
type StatusCode struct {
	codes map[int]struct{}
}

// NewStatusCode creates a StatusCode constraint.
func NewStatusCode(codes ...int) *StatusCode {
	c := &StatusCode{}
	if len(codes) > 0 {
		c.codes = make(map[int]struct{}, len(codes))
		for _, code := range codes {
			c.codes[code] = struct{}{}
		}
	}
	return c
}

// Name returns the constraint's identifier.
func (c *StatusCode) Name() string {
	return "status-code"
}

// AllowResponse reports whether the status code is accepted.
func (c *StatusCode) AllowResponse(_ context.Context, res *websearch.FetchResult) bool {
	if res == nil {
		return false
	}
	if c.codes == nil {
		return res.StatusCode >= 200 && res.StatusCode < 300
	}
	_, ok := c.codes[res.StatusCode]
	return ok
}

// DefaultContentTypes are the media types the default response chain accepts.
func DefaultContentTypes() []string {
	return []string{
		"text/html",
		"application/xhtml+xml",
		"application/xml",
		"text/xml",
		"application/json",
	}
}

var _ websearch.ResponseConstraint = (*ContentType)(nil)

// ContentType accepts responses whose media type is in an allow-list.
// Parameters such as charset are ignored. A missing content type is rejected.
type ContentType struct {
	allowed map[string]struct{}
}

// NewContentType creates a ContentType constraint.
// With no explicit types, DefaultContentTypes is used.
func NewContentType(types ...string) *ContentType {
	if len(types) == 0 {
		types = DefaultContentTypes()
	}
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		allowed[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	return &ContentType{allowed: allowed}
}

// Name returns the constraint's identifier.
func (c *ContentType) Name() string {
	return "content-type"
}

// AllowResponse reports whether the response media type is allowed.
func (c *ContentType) AllowResponse(_ context.Context, res *websearch.FetchResult) bool {
	mt := res.MediaType()
	if mt == "" {
		return false
	}
	_, ok := c.allowed[mt]
	return ok
}

var _ websearch.ResponseConstraint = (*MaxBodySize)(nil)

// MaxBodySize rejects responses whose body exceeds a byte limit.
type MaxBodySize struct {
	Limit int
}

// Name returns the constraint's identifier.
func (c *MaxBodySize) Name() string {
	return "max-body-size"
}

// AllowResponse reports whether the body fits the limit.
// A non-positive limit accepts everything.
func (c *MaxBodySize) AllowResponse(_ context.Context, res *websearch.FetchResult) bool {
	if res == nil {
		return false
	}
	return c.Limit <= 0 || len(res.Body) <= c.Limit
}
