package crawl_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/websearch"
	"github.com/fwojciec/websearch/crawl"
	"github.com/fwojciec/websearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyExtractor_Extract(t *testing.T) {
	t.Parallel()

	res := &websearch.FetchResult{
		URL:         "https://example.com/",
		StatusCode:  200,
		ContentType: "text/html; charset=utf-8",
		Body:        []byte("<p>hello</p>"),
	}

	doc, err := crawl.BodyExtractor{}.Extract("https://example.com/", res)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/", doc.URL)
	assert.Equal(t, "<p>hello</p>", doc.Content)
	assert.Equal(t, crawl.ComputeHash("<p>hello</p>"), doc.ContentHash)
	assert.Equal(t, 200, doc.StatusCode)
	assert.Equal(t, "text/html", doc.ContentType)
}

func TestPageExtractor_Extract(t *testing.T) {
	t.Parallel()

	res := &websearch.FetchResult{
		URL:         "https://example.com/guide",
		StatusCode:  200,
		ContentType: "text/html",
		Body:        []byte("<html><body><main><h1>Guide</h1></main></body></html>"),
	}

	t.Run("converts extracted content", func(t *testing.T) {
		t.Parallel()

		e := &crawl.PageExtractor{
			Extractor: &mock.ContentExtractor{
				ExtractFn: func(html string) (*websearch.ExtractResult, error) {
					assert.Contains(t, html, "<main>")
					return &websearch.ExtractResult{
						Title:       "Guide",
						Description: "How to use it",
						ContentHTML: "<h1>Guide</h1>",
					}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) {
					return "# Guide", nil
				},
			},
		}

		doc, err := e.Extract("https://example.com/guide", res)
		require.NoError(t, err)

		assert.Equal(t, "Guide", doc.Title)
		assert.Equal(t, "How to use it", doc.Description)
		assert.Equal(t, "# Guide", doc.Content)
		assert.Equal(t, crawl.ComputeHash("# Guide"), doc.ContentHash)
	})

	t.Run("keeps HTML without a converter", func(t *testing.T) {
		t.Parallel()

		e := &crawl.PageExtractor{
			Extractor: &mock.ContentExtractor{
				ExtractFn: func(string) (*websearch.ExtractResult, error) {
					return &websearch.ExtractResult{ContentHTML: "<h1>Guide</h1>"}, nil
				},
			},
		}

		doc, err := e.Extract("https://example.com/guide", res)
		require.NoError(t, err)
		assert.Equal(t, "<h1>Guide</h1>", doc.Content)
	})

	t.Run("propagates extraction errors", func(t *testing.T) {
		t.Parallel()

		e := &crawl.PageExtractor{
			Extractor: &mock.ContentExtractor{
				ExtractFn: func(string) (*websearch.ExtractResult, error) {
					return nil, errors.New("no content")
				},
			},
		}

		_, err := e.Extract("https://example.com/guide", res)
		require.Error(t, err)
	})
}
