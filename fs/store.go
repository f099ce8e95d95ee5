package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/websearch"
)

// Ensure FileStore implements websearch.Index at compile time.
var (
	_ websearch.Index       = (*FileStore)(nil)
	_ websearch.VisitLookup = (*FileStore)(nil)
)

// FileStore is a websearch.Index that writes documents as Markdown files.
// Added documents are written to a staging directory and moved into the
// output directory on Commit, replacing earlier files for the same pages.
type FileStore struct {
	baseDir string
	name    string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are staged in baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		Now:     time.Now,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

// Dir returns the output directory.
func (s *FileStore) Dir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Add writes the document to the staging directory.
func (s *FileStore) Add(_ context.Context, doc *websearch.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(doc.URL)
	if err != nil {
		return err
	}
	if doc.IndexedAt.IsZero() {
		doc.IndexedAt = s.Now().UTC()
	}

	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(FormatDocument(doc)), 0644)
}

// Commit moves every staged file into the output directory and removes the
// staging directory.
func (s *FileStore) Commit(_ context.Context) error {
	tmp := s.tempDir()
	if _, err := os.Stat(tmp); errors.Is(err, iofs.ErrNotExist) {
		return nil
	}

	err := filepath.WalkDir(tmp, func(p string, d iofs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(tmp, p)
		if err != nil {
			return err
		}
		dst := filepath.Join(s.Dir(), rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		return os.Rename(p, dst)
	})
	if err != nil {
		return err
	}

	return os.RemoveAll(tmp)
}

// Abort discards staged files.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// LastVisited returns the modification time of the committed file for url.
func (s *FileStore) LastVisited(_ context.Context, url string) (time.Time, bool, error) {
	relPath, err := URLToPath(url)
	if err != nil {
		return time.Time{}, false, nil
	}

	info, err := os.Stat(filepath.Join(s.Dir(), filepath.FromSlash(relPath)))
	if errors.Is(err, iofs.ErrNotExist) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return info.ModTime(), true, nil
}
