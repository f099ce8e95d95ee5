package constraint

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/websearch"
)

var _ websearch.URLConstraint = (*Extension)(nil)

// Extension accepts addresses whose path extension is in an allow-list.
// Extensions are compared case-insensitively without the leading dot;
// the empty string matches paths without an extension.
type Extension struct {
	allowed map[string]struct{}
}

// NewExtension creates an Extension constraint for the given extensions.
func NewExtension(exts ...string) *Extension {
	allowed := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return &Extension{allowed: allowed}
}

// Name returns the constraint's identifier.
func (c *Extension) Name() string {
	return fmt.Sprintf("extension(%d)", len(c.allowed))
}

// AllowURL reports whether the address's path extension is allowed.
func (c *Extension) AllowURL(_ context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), "."))
	_, ok := c.allowed[ext]
	return ok
}
