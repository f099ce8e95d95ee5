package websearch

// LinkExtractor discovers outbound links in an HTML page.
type LinkExtractor interface {
	// ExtractLinks parses html and returns the absolute address of every
	// anchor, in document order. Relative references are resolved against
	// the page's declared <base href> when present, otherwise against pageURL.
	ExtractLinks(html string, pageURL string) ([]string, error)
}

// Normalizer turns raw addresses into the canonical form used for
// frontier entries and visited-set identity.
type Normalizer interface {
	// Normalize parses an absolute address and returns its normalized form.
	Normalize(raw string) (string, error)

	// Resolve resolves ref against base and returns the normalized result.
	Resolve(base, ref string) (string, error)
}
