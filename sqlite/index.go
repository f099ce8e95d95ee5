package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/websearch"
	"github.com/google/uuid"
)

// DefaultBatchSize is the number of buffered documents that triggers a flush.
const DefaultBatchSize = 100

// Compile-time interface verification.
var (
	_ websearch.Index       = (*Index)(nil)
	_ websearch.VisitLookup = (*Index)(nil)
)

// Index is a buffered search index stored in SQLite.
//
// Add buffers documents and writes them in one transaction whenever the
// buffer reaches BatchSize. Commit writes whatever remains. A document for
// an already indexed URL replaces the stored one and keeps its ID.
type Index struct {
	db *DB

	mu      sync.Mutex
	pending []*websearch.Document

	// BatchSize is the flush threshold. Defaults to DefaultBatchSize.
	BatchSize int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewIndex creates a new Index.
func NewIndex(db *DB) *Index {
	return &Index{
		db:        db,
		BatchSize: DefaultBatchSize,
		Now:       time.Now,
	}
}

// Add buffers a document, flushing the buffer when it is full. If that
// flush fails, doc is dropped from the buffer and the error is returned,
// so a document reported as failed is never written by a later Commit.
// Documents buffered by earlier calls stay pending.
func (idx *Index) Add(ctx context.Context, doc *websearch.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.pending = append(idx.pending, doc)
	batch := idx.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	if len(idx.pending) < batch {
		return nil
	}
	if err := idx.flush(ctx); err != nil {
		idx.pending = idx.pending[:len(idx.pending)-1]
		return err
	}
	return nil
}

// Commit writes all buffered documents.
func (idx *Index) Commit(ctx context.Context) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.flush(ctx)
}

// Pending returns the number of buffered documents.
func (idx *Index) Pending() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return len(idx.pending)
}

// flush writes the buffer in a single transaction. The buffer is kept if
// the write fails. The caller must hold idx.mu.
func (idx *Index) flush(ctx context.Context) error {
	if len(idx.pending) == 0 {
		return nil
	}

	tx, err := idx.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := idx.Now().UTC()
	for _, doc := range idx.pending {
		if err := upsertDocument(ctx, tx, doc, now); err != nil {
			return fmt.Errorf("index %s: %w", doc.URL, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	idx.pending = nil
	return nil
}

func upsertDocument(ctx context.Context, tx *sql.Tx, doc *websearch.Document, now time.Time) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.ContentHash == "" {
		doc.ContentHash = hashContent(doc.Content)
	}
	doc.IndexedAt = now

	return tx.QueryRowContext(ctx, `
		INSERT INTO documents (id, url, title, description, content, content_hash, status_code, content_type, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			content = excluded.content,
			content_hash = excluded.content_hash,
			status_code = excluded.status_code,
			content_type = excluded.content_type,
			indexed_at = excluded.indexed_at
		RETURNING id
	`, doc.ID, doc.URL, doc.Title, doc.Description, doc.Content, doc.ContentHash,
		doc.StatusCode, doc.ContentType, formatTimestamp(doc.IndexedAt)).Scan(&doc.ID)
}

// LastVisited returns when the URL was last written to the index.
func (idx *Index) LastVisited(ctx context.Context, url string) (time.Time, bool, error) {
	var indexedAt string
	err := idx.db.QueryRowContext(ctx, `SELECT indexed_at FROM documents WHERE url = ?`, url).Scan(&indexedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	t, err := parseTimestamp(indexedAt, "indexed_at")
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
