package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/websearch"
)

// Ensure LoggingIndex implements websearch.Index.
var _ websearch.Index = (*LoggingIndex)(nil)

// LoggingIndex wraps an Index and logs additions and commits.
type LoggingIndex struct {
	next   websearch.Index
	logger *slog.Logger
}

// NewLoggingIndex creates a new LoggingIndex. When next also answers
// last-visit lookups the returned index does too, so recency constraints
// keep working behind the decorator.
func NewLoggingIndex(next websearch.Index, logger *slog.Logger) websearch.Index {
	idx := &LoggingIndex{next: next, logger: logger}
	if lookup, ok := next.(websearch.VisitLookup); ok {
		return &loggingLookupIndex{LoggingIndex: idx, lookup: lookup}
	}
	return idx
}

// Add delegates to the wrapped index and logs the document.
func (i *LoggingIndex) Add(ctx context.Context, doc *websearch.Document) (err error) {
	defer func() {
		i.logger.Debug("index add",
			"url", doc.URL,
			"title", doc.Title,
			"bytes", len(doc.Content),
			"err", err,
		)
	}()
	return i.next.Add(ctx, doc)
}

// Commit delegates to the wrapped index and logs the duration.
func (i *LoggingIndex) Commit(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		i.logger.Log(ctx, levelFor(err), "index commit",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Commit(ctx)
}

type loggingLookupIndex struct {
	*LoggingIndex
	lookup websearch.VisitLookup
}

func (i *loggingLookupIndex) LastVisited(ctx context.Context, url string) (time.Time, bool, error) {
	return i.lookup.LastVisited(ctx, url)
}
