package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/websearch"
	"github.com/fwojciec/websearch/mock"
	wsslog "github.com/fwojciec/websearch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with status, bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*websearch.FetchResult, error) {
				return &websearch.FetchResult{URL: url, StatusCode: 200, Body: []byte("<html>content</html>")}, nil
			},
		}

		fetcher := wsslog.NewLoggingFetcher(inner, logger)
		res, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", res.Text())
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.com/docs")
		assert.Contains(t, output, "status=200")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*websearch.FetchResult, error) {
				return nil, errors.New("network error")
			},
		}

		fetcher := wsslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/docs")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "status=0")
		assert.Contains(t, output, "err=\"network error\"")
	})
}

func TestLoggingFetcher_FailureLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	inner := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*websearch.FetchResult, error) {
			if url == "https://example.com/down" {
				return nil, errors.New("connection refused")
			}
			return &websearch.FetchResult{StatusCode: 200}, nil
		},
	}

	fetcher := wsslog.NewLoggingFetcher(inner, logger)
	_, _ = fetcher.Fetch(context.Background(), "https://example.com/up")
	_, _ = fetcher.Fetch(context.Background(), "https://example.com/down")

	output := buf.String()
	assert.NotContains(t, output, "https://example.com/up")
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, "https://example.com/down")
}
