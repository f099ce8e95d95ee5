package mock

import (
	"context"
	"time"

	"github.com/fwojciec/websearch"
)

var _ websearch.Index = (*Index)(nil)

// Index is a mock implementation of websearch.Index.
type Index struct {
	AddFn    func(ctx context.Context, doc *websearch.Document) error
	CommitFn func(ctx context.Context) error
}

func (i *Index) Add(ctx context.Context, doc *websearch.Document) error {
	return i.AddFn(ctx, doc)
}

func (i *Index) Commit(ctx context.Context) error {
	return i.CommitFn(ctx)
}

var _ websearch.VisitLookup = (*VisitLookup)(nil)

// VisitLookup is a mock implementation of websearch.VisitLookup.
type VisitLookup struct {
	LastVisitedFn func(ctx context.Context, url string) (time.Time, bool, error)
}

func (l *VisitLookup) LastVisited(ctx context.Context, url string) (time.Time, bool, error) {
	return l.LastVisitedFn(ctx, url)
}

var (
	_ websearch.Index       = (*LookupIndex)(nil)
	_ websearch.VisitLookup = (*LookupIndex)(nil)
)

// LookupIndex is a mock index that also answers last-visit lookups.
type LookupIndex struct {
	Index
	VisitLookup
}

var _ websearch.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of websearch.DocumentService.
type DocumentService struct {
	FindDocumentByURLFn func(ctx context.Context, url string) (*websearch.Document, error)
	FindDocumentsFn     func(ctx context.Context, filter websearch.DocumentFilter) ([]*websearch.Document, error)
}

func (s *DocumentService) FindDocumentByURL(ctx context.Context, url string) (*websearch.Document, error) {
	return s.FindDocumentByURLFn(ctx, url)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter websearch.DocumentFilter) ([]*websearch.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}
