package crawl

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/websearch"
)

// ComputeHash returns the hex xxhash of content. Documents carry it so the
// index can tell unchanged pages apart.
func ComputeHash(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}

var _ websearch.InfoExtractor = (*BodyExtractor)(nil)

// BodyExtractor is the fallback information extractor. It records the raw
// response body as the document content without any parsing.
type BodyExtractor struct{}

// Extract builds a document from the response as-is.
func (BodyExtractor) Extract(url string, res *websearch.FetchResult) (*websearch.Document, error) {
	if res == nil {
		return nil, websearch.Errorf(websearch.EINVALID, "no response for %s", url)
	}
	content := res.Text()
	return &websearch.Document{
		URL:         url,
		Content:     content,
		ContentHash: ComputeHash(content),
		StatusCode:  res.StatusCode,
		ContentType: res.MediaType(),
	}, nil
}

var _ websearch.InfoExtractor = (*PageExtractor)(nil)

// PageExtractor extracts the main content of an HTML page and, when a
// Converter is set, renders it as Markdown.
type PageExtractor struct {
	Extractor websearch.ContentExtractor
	Converter websearch.Converter
}

// Extract runs content extraction and conversion on the response body.
func (e *PageExtractor) Extract(url string, res *websearch.FetchResult) (*websearch.Document, error) {
	if res == nil {
		return nil, websearch.Errorf(websearch.EINVALID, "no response for %s", url)
	}

	extracted, err := e.Extractor.Extract(res.Text())
	if err != nil {
		return nil, err
	}

	content := extracted.ContentHTML
	if e.Converter != nil && content != "" {
		if content, err = e.Converter.Convert(extracted.ContentHTML); err != nil {
			return nil, err
		}
	}

	return &websearch.Document{
		URL:         url,
		Title:       extracted.Title,
		Description: extracted.Description,
		Content:     content,
		ContentHash: ComputeHash(content),
		StatusCode:  res.StatusCode,
		ContentType: res.MediaType(),
	}, nil
}
