// Package slog provides logging decorators for websearch services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/websearch"
)

// Ensure LoggingFetcher implements websearch.Fetcher.
var _ websearch.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs every request.
type LoggingFetcher struct {
	next   websearch.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next websearch.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
// Transport failures are logged at warn level.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (res *websearch.FetchResult, err error) {
	defer func(begin time.Time) {
		var status, size int
		if res != nil {
			status, size = res.StatusCode, len(res.Body)
		}
		f.logger.Log(ctx, levelFor(err), "fetch",
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// levelFor returns the level a decorated call is logged at.
func levelFor(err error) slog.Level {
	if err != nil {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
