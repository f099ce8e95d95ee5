//go:build integration

package http_test

import (
	"context"
	"testing"
	"time"

	wshttp "github.com/fwojciec/websearch/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_Integration_HtmxDocs(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc := wshttp.NewSitemapService(nil)

	// htmx.org has a sitemap declared in robots.txt
	urls, err := svc.DiscoverURLs(ctx, "https://htmx.org")
	require.NoError(t, err)

	assert.NotEmpty(t, urls, "expected at least some URLs from htmx.org sitemap")
	t.Logf("Found %d URLs from htmx.org sitemap", len(urls))

	for _, u := range urls[:min(5, len(urls))] {
		t.Logf("  - %s", u)
	}
}

func TestSitemapService_Integration_HtmxDocs_PathPrefix(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc := wshttp.NewSitemapService(nil)

	urls, err := svc.DiscoverURLs(ctx, "https://htmx.org/docs/")
	require.NoError(t, err)

	assert.NotEmpty(t, urls, "expected some /docs/ URLs from htmx.org")
	for _, u := range urls {
		assert.Contains(t, u, "/docs/", "URL should be under /docs/")
	}
}
