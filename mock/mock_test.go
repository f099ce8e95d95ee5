package mock_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/websearch"
	"github.com/fwojciec/websearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIndex_DelegatesToEmbeddedMocks(t *testing.T) {
	t.Parallel()

	var added *websearch.Document
	visited := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	idx := &mock.LookupIndex{
		Index: mock.Index{
			AddFn: func(_ context.Context, doc *websearch.Document) error {
				added = doc
				return nil
			},
		},
		VisitLookup: mock.VisitLookup{
			LastVisitedFn: func(_ context.Context, url string) (time.Time, bool, error) {
				return visited, url == "https://example.com/", nil
			},
		},
	}

	doc := &websearch.Document{URL: "https://example.com/"}
	require.NoError(t, idx.Add(context.Background(), doc))
	assert.Same(t, doc, added)

	last, ok, err := idx.LastVisited(context.Background(), "https://example.com/")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, visited, last)
}
