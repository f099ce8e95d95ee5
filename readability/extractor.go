// Package readability extracts the main content of web pages using
// go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/websearch"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements websearch.ContentExtractor at compile time.
var _ websearch.ContentExtractor = (*Extractor)(nil)

// Extractor extracts article content with Mozilla's Readability algorithm.
// The description is the page's meta description, or an excerpt of the
// first paragraph when the page has none.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*websearch.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, websearch.Errorf(websearch.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &websearch.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		Description: strings.TrimSpace(article.Excerpt),
		ContentHTML: article.Content,
	}, nil
}
