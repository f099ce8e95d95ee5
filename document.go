package websearch

import (
	"context"
	"time"
)

// Document is the structured record produced for one crawled page and
// forwarded to the search index.
type Document struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	StatusCode  int       `json:"statusCode"`
	ContentType string    `json:"contentType"`
	IndexedAt   time.Time `json:"indexedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}

// Index is the sink accepted documents are forwarded to.
// Adds may be buffered; they are only guaranteed durable after Commit.
type Index interface {
	// Add buffers a document for indexing.
	Add(ctx context.Context, doc *Document) error

	// Commit durably flushes all buffered additions.
	Commit(ctx context.Context) error
}

// VisitLookup reports when an address was last indexed.
type VisitLookup interface {
	// LastVisited returns the time the URL was last indexed.
	// The bool result is false if the URL has never been indexed.
	LastVisited(ctx context.Context, url string) (time.Time, bool, error)
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	URL *string `json:"url"`

	// Query matches documents whose URL or title contains it.
	Query string `json:"query"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DocumentService represents a service for reading indexed documents.
type DocumentService interface {
	// FindDocumentByURL retrieves a document by its address.
	// Returns ENOTFOUND if the document does not exist.
	FindDocumentByURL(ctx context.Context, url string) (*Document, error)

	// FindDocuments retrieves documents matching the filter,
	// most recently indexed first.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)
}
