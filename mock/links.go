package mock

import "github.com/fwojciec/websearch"

var _ websearch.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of websearch.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, pageURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, pageURL string) ([]string, error) {
	return e.ExtractLinksFn(html, pageURL)
}

var _ websearch.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of websearch.Normalizer.
type Normalizer struct {
	NormalizeFn func(raw string) (string, error)
	ResolveFn   func(base, ref string) (string, error)
}

func (n *Normalizer) Normalize(raw string) (string, error) {
	return n.NormalizeFn(raw)
}

func (n *Normalizer) Resolve(base, ref string) (string, error) {
	return n.ResolveFn(base, ref)
}
