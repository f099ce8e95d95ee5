package mock

import "github.com/fwojciec/websearch"

var _ websearch.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of websearch.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*websearch.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*websearch.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ websearch.InfoExtractor = (*InfoExtractor)(nil)

// InfoExtractor is a mock implementation of websearch.InfoExtractor.
type InfoExtractor struct {
	ExtractFn func(url string, res *websearch.FetchResult) (*websearch.Document, error)
}

func (e *InfoExtractor) Extract(url string, res *websearch.FetchResult) (*websearch.Document, error) {
	return e.ExtractFn(url, res)
}
