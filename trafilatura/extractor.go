// Package trafilatura extracts the main content and metadata of web pages
// using go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/websearch"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements websearch.ContentExtractor at compile time.
var _ websearch.ContentExtractor = (*Extractor)(nil)

// Extractor extracts the main content of a page, dropping navigation,
// footers and comment sections.
type Extractor struct {
	// KeepComments keeps user comment sections in the content.
	KeepComments bool
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content with the page's
// title and description.
func (e *Extractor) Extract(rawHTML string) (*websearch.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, websearch.Errorf(websearch.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: !e.KeepComments,
	})
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		if contentHTML, err = renderNode(result.ContentNode); err != nil {
			return nil, err
		}
	}

	return &websearch.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		Description: strings.TrimSpace(result.Metadata.Description),
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
