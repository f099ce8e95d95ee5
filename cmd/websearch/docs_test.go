package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/websearch"
	main "github.com/fwojciec/websearch/cmd/websearch"
	"github.com/fwojciec/websearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocsCmd_Run(t *testing.T) {
	t.Parallel()

	indexedAt := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("lists documents", func(t *testing.T) {
		t.Parallel()

		var got websearch.DocumentFilter
		documents := &mock.DocumentService{
			FindDocumentsFn: func(_ context.Context, filter websearch.DocumentFilter) ([]*websearch.Document, error) {
				got = filter
				return []*websearch.Document{
					{URL: "https://go.dev/doc/", Title: "Documentation", Content: "hello", IndexedAt: indexedAt},
					{URL: "https://go.dev/blog/", Content: "world", IndexedAt: indexedAt},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documents,
		}

		cmd := &main.DocsCmd{Query: "go", Limit: 10, Offset: 5}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, websearch.DocumentFilter{Query: "go", Limit: 10, Offset: 5}, got)
		output := stdout.String()
		assert.Contains(t, output, "6. Documentation")
		assert.Contains(t, output, "https://go.dev/doc/")
		assert.Contains(t, output, "7. https://go.dev/blog/")
		assert.Contains(t, output, "2025-03-14")
	})

	t.Run("reports an empty index", func(t *testing.T) {
		t.Parallel()

		documents := &mock.DocumentService{
			FindDocumentsFn: func(context.Context, websearch.DocumentFilter) ([]*websearch.Document, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documents,
		}

		err := (&main.DocsCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No documents indexed yet")
	})

	t.Run("shows a single document in full", func(t *testing.T) {
		t.Parallel()

		documents := &mock.DocumentService{
			FindDocumentByURLFn: func(_ context.Context, url string) (*websearch.Document, error) {
				return &websearch.Document{
					URL:         url,
					Title:       "Effective Go",
					Description: "Tips for writing clear Go",
					Content:     "## Introduction\n\nGo is a new language.",
					IndexedAt:   indexedAt,
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documents,
		}

		err := (&main.DocsCmd{URL: "https://go.dev/doc/effective_go"}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "# Effective Go")
		assert.Contains(t, output, "Source: https://go.dev/doc/effective_go")
		assert.Contains(t, output, "Description: Tips for writing clear Go")
		assert.Contains(t, output, "Go is a new language.")
	})

	t.Run("reports a missing document", func(t *testing.T) {
		t.Parallel()

		documents := &mock.DocumentService{
			FindDocumentByURLFn: func(context.Context, string) (*websearch.Document, error) {
				return nil, websearch.Errorf(websearch.ENOTFOUND, "document not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Documents: documents,
		}

		err := (&main.DocsCmd{URL: "https://go.dev/missing"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, websearch.ENOTFOUND, websearch.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}
