package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ews-cloud/hawkins-county-commission-search/pkg/models"
)

// FileStore persists harvest output as JSON and Markdown files under a
// root directory. The corpus snapshot lives at <root>/corpus.json.
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{root: dir}, nil
}

func (s *FileStore) corpusPath() string {
	return filepath.Join(s.root, "corpus.json")
}

// PutCorpus writes the corpus snapshot, replacing any previous one.
// The write goes through a temp file and rename so a crashed run never
// leaves a half-written snapshot behind.
func (s *FileStore) PutCorpus(ctx context.Context, docs []models.Document) error {
	if docs == nil {
		docs = []models.Document{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal corpus: %w", err)
	}

	tmp := s.corpusPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write corpus: %w", err)
	}
	if err := os.Rename(tmp, s.corpusPath()); err != nil {
		return fmt.Errorf("write corpus: %w", err)
	}
	return nil
}

// GetCorpus reads the current corpus snapshot.
func (s *FileStore) GetCorpus(ctx context.Context) ([]models.Document, error) {
	data, err := os.ReadFile(s.corpusPath())
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var docs []models.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("unmarshal corpus: %w", err)
	}
	return docs, nil
}

// PutPage writes one archived page under <root>/<prefix>/pages/.
func (s *FileStore) PutPage(ctx context.Context, prefix, filename, content string) error {
	dir := filepath.Join(s.root, filepath.FromSlash(prefix), "pages")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create pages dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

// PutManifest writes the run manifest under <root>/<prefix>/.
func (s *FileStore) PutManifest(ctx context.Context, prefix string, m Manifest) error {
	dir := filepath.Join(s.root, filepath.FromSlash(prefix))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create run dir: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
