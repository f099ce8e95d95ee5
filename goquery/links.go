// Package goquery extracts links from HTML documents using CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/websearch"
)

// DefaultSelector matches every anchor carrying an href.
const DefaultSelector = "a[href]"

// Ensure LinkExtractor implements websearch.LinkExtractor at compile time.
var _ websearch.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor returns the absolute addresses of the links in a page.
//
// Relative references are resolved against the document's <base href> when
// present, otherwise against the page address. Links are returned in
// document order, repeats included, so that the frontier sees every
// anchor the way the page lists it. Empty references and non-HTTP
// schemes (javascript:, mailto:, tel:, data:) are skipped.
type LinkExtractor struct {
	// Selector chooses the elements whose href attributes are links.
	// Defaults to DefaultSelector.
	Selector string

	// Resolver resolves references against the base address.
	// Defaults to net/url reference resolution.
	Resolver websearch.Normalizer
}

// NewLinkExtractor creates a LinkExtractor using DefaultSelector.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{Selector: DefaultSelector}
}

// ExtractLinks parses html and returns the links it contains.
func (e *LinkExtractor) ExtractLinks(html string, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, websearch.Errorf(websearch.EINVALID, "failed to parse HTML: %v", err)
	}

	base := pageURL
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok && strings.TrimSpace(href) != "" {
		if resolved, err := e.resolve(pageURL, strings.TrimSpace(href)); err == nil {
			base = resolved
		}
	}

	selector := e.Selector
	if selector == "" {
		selector = DefaultSelector
	}

	var links []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		href = strings.TrimSpace(href)
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}

		resolved, err := e.resolve(base, href)
		if err != nil || resolved == "" {
			return
		}
		links = append(links, resolved)
	})

	return links, nil
}

func (e *LinkExtractor) resolve(base, ref string) (string, error) {
	if e.Resolver != nil {
		return e.Resolver.Resolve(base, ref)
	}
	return resolveURL(base, ref)
}

// resolveURL resolves a relative URL against a base URL.
func resolveURL(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(ref).String(), nil
}

// isNonHTTPLink reports whether href uses a scheme that never leads to a page.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
