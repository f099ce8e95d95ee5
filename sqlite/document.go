package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/websearch"
)

// Compile-time interface verification.
var _ websearch.DocumentService = (*DocumentService)(nil)

// DocumentService implements websearch.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

const documentColumns = "id, url, title, description, content, content_hash, status_code, content_type, indexed_at"

// FindDocumentByURL retrieves a document by its address.
func (s *DocumentService) FindDocumentByURL(ctx context.Context, url string) (*websearch.Document, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+documentColumns+" FROM documents WHERE url = ?", url)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, websearch.Errorf(websearch.ENOTFOUND, "document not found")
	}
	return doc, err
}

// FindDocuments retrieves documents matching the filter, most recently
// indexed first.
func (s *DocumentService) FindDocuments(ctx context.Context, filter websearch.DocumentFilter) ([]*websearch.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Query != "" {
		query.WriteString(" AND (instr(lower(url), ?) > 0 OR instr(lower(title), ?) > 0)")
		q := strings.ToLower(filter.Query)
		args = append(args, q, q)
	}

	query.WriteString(" ORDER BY indexed_at DESC, url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*websearch.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// CountDocuments returns the number of indexed documents.
func (s *DocumentService) CountDocuments(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*websearch.Document, error) {
	var doc websearch.Document
	var indexedAt string

	if err := row.Scan(&doc.ID, &doc.URL, &doc.Title, &doc.Description, &doc.Content,
		&doc.ContentHash, &doc.StatusCode, &doc.ContentType, &indexedAt); err != nil {
		return nil, err
	}

	var err error
	if doc.IndexedAt, err = parseTimestamp(indexedAt, "indexed_at"); err != nil {
		return nil, err
	}
	return &doc, nil
}
