package constraint

import (
	"context"
	"regexp"

	"github.com/fwojciec/websearch"
)

var _ websearch.URLConstraint = (*Pattern)(nil)

// Pattern filters addresses by regular expression.
// If Include is non-empty an address must match at least one include
// pattern; an address matching any Exclude pattern is rejected.
type Pattern struct {
	Include []*regexp.Regexp
	Exclude []*regexp.Regexp
}

// NewPattern compiles include and exclude expressions into a Pattern.
func NewPattern(include, exclude []string) (*Pattern, error) {
	p := &Pattern{}
	for _, expr := range include {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, websearch.Errorf(websearch.EINVALID, "invalid include pattern %q: %v", expr, err)
		}
		p.Include = append(p.Include, re)
	}
	for _, expr := range exclude {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, websearch.Errorf(websearch.EINVALID, "invalid exclude pattern %q: %v", expr, err)
		}
		p.Exclude = append(p.Exclude, re)
	}
	return p, nil
}

// Name returns the constraint's identifier.
func (p *Pattern) Name() string {
	return "pattern"
}

// AllowURL returns true if the address passes the filter.
func (p *Pattern) AllowURL(_ context.Context, url string) bool {
	if len(p.Include) > 0 {
		matched := false
		for _, re := range p.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range p.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}
