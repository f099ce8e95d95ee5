package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/websearch"
)

var (
	_ websearch.Index       = (*MemoryIndex)(nil)
	_ websearch.VisitLookup = (*MemoryIndex)(nil)
)

// MemoryIndex is an in-process index used when no index is configured.
// Added documents are buffered until Commit, after which they are visible
// to Documents and LastVisited.
type MemoryIndex struct {
	mu        sync.Mutex
	pending   []*websearch.Document
	committed map[string]*websearch.Document
	order     []string
	commits   int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewMemoryIndex creates an empty MemoryIndex.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{committed: make(map[string]*websearch.Document)}
}

// Add buffers a document.
func (m *MemoryIndex) Add(_ context.Context, doc *websearch.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, doc)
	return nil
}

// Commit makes all buffered documents visible. A later document for the
// same URL replaces the earlier one.
func (m *MemoryIndex) Commit(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	for _, doc := range m.pending {
		if doc.IndexedAt.IsZero() {
			doc.IndexedAt = now().UTC()
		}
		if _, ok := m.committed[doc.URL]; !ok {
			m.order = append(m.order, doc.URL)
		}
		m.committed[doc.URL] = doc
	}
	m.pending = nil
	m.commits++
	return nil
}

// LastVisited returns when the URL was last committed.
func (m *MemoryIndex) LastVisited(_ context.Context, url string) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.committed[url]
	if !ok {
		return time.Time{}, false, nil
	}
	return doc.IndexedAt, true, nil
}

// Documents returns committed documents in first-commit order.
func (m *MemoryIndex) Documents() []*websearch.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := make([]*websearch.Document, 0, len(m.order))
	for _, url := range m.order {
		docs = append(docs, m.committed[url])
	}
	return docs
}

// Pending returns the number of buffered, uncommitted documents.
func (m *MemoryIndex) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Commits returns how many times Commit has been called.
func (m *MemoryIndex) Commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commits
}
