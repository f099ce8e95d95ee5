// Package whatwg normalizes and resolves addresses following the WHATWG URL
// Standard, the way browsers interpret links.
package whatwg

import (
	"strings"

	"github.com/fwojciec/websearch"
	whatwgUrl "github.com/nlnwa/whatwg-url/url"
)

// Ensure Normalizer implements websearch.Normalizer.
var _ websearch.Normalizer = (*Normalizer)(nil)

// Normalizer canonicalizes addresses: scheme and host are lowercased, default
// ports and dot segments are removed, and unsafe characters are
// percent-encoded. Only absolute http and https addresses are accepted.
type Normalizer struct {
	parser whatwgUrl.Parser

	// StripQuery removes the query string, so that addresses differing
	// only in query parameters are treated as the same page.
	StripQuery bool

	// KeepFragment keeps the fragment. Fragments are dropped by default
	// since they never change the fetched document.
	KeepFragment bool
}

// NewNormalizer creates a Normalizer with default settings.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		parser: whatwgUrl.NewParser(whatwgUrl.WithPercentEncodeSinglePercentSign()),
	}
}

// Normalize returns the canonical form of an absolute address.
func (n *Normalizer) Normalize(raw string) (string, error) {
	u, err := n.parser.Parse(raw)
	if err != nil {
		return "", websearch.Errorf(websearch.EINVALID, "invalid address %q: %v", raw, err)
	}
	return n.canonical(raw, u)
}

// Resolve resolves ref against base and returns the canonical result.
func (n *Normalizer) Resolve(base, ref string) (string, error) {
	u, err := n.parser.ParseRef(base, ref)
	if err != nil {
		return "", websearch.Errorf(websearch.EINVALID, "cannot resolve %q against %q: %v", ref, base, err)
	}
	return n.canonical(ref, u)
}

func (n *Normalizer) canonical(raw string, u *whatwgUrl.Url) (string, error) {
	switch strings.TrimSuffix(u.Protocol(), ":") {
	case "http", "https":
	default:
		return "", websearch.Errorf(websearch.EINVALID, "unsupported scheme in %q", raw)
	}
	if u.Hostname() == "" {
		return "", websearch.Errorf(websearch.EINVALID, "missing host in %q", raw)
	}
	if n.StripQuery {
		u.SetSearch("")
	}
	return u.Href(!n.KeepFragment), nil
}
