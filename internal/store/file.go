package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"taskdeck/internal/model"
)

// FileStore implements DocumentStore over a single flat JSON file.
//
// It performs no locking: concurrent writers can race, and the last
// writer wins. That is an accepted hazard for a single-user tool; the
// repository layer serializes access within one process.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the JSON file at path. The
// parent directory is created if needed; the file itself is created
// lazily on first load or save.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Load reads and decodes the document. A missing file yields an empty
// document.
func (s *FileStore) Load(_ context.Context) (*model.Document, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return model.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	doc := model.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	normalize(doc)
	return doc, nil
}

// Save rewrites the whole document. The write goes to a temp file in
// the same directory followed by a rename, so a crash mid-write leaves
// the prior document authoritative.
func (s *FileStore) Save(_ context.Context, doc *model.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tasks-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; the file is not held open between operations.
func (s *FileStore) Close() error { return nil }

// normalize backfills fields that older documents may lack, mirroring
// the migration applied when tasks were first given recurrence, order,
// and completion timestamps.
func normalize(doc *model.Document) {
	if doc.Tasks == nil {
		doc.Tasks = []model.Task{}
	}
	if doc.Projects == nil {
		doc.Projects = []model.Project{}
	}
	if doc.Stats == nil {
		doc.Stats = []model.CompletionRecord{}
	}
	for i := range doc.Tasks {
		if doc.Tasks[i].Recurrence == "" {
			doc.Tasks[i].Recurrence = model.RecurrenceNone
		}
		if doc.Tasks[i].Subtasks == nil {
			doc.Tasks[i].Subtasks = []model.Subtask{}
		}
	}
}
