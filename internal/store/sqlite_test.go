package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"taskdeck/internal/model"
)

func newSQLiteStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing store: %v", err)
		}
	})
	return s
}

func TestSQLiteStoreEmptyDatabase(t *testing.T) {
	s := newSQLiteStore(t, filepath.Join(t.TempDir(), "tasks.db"))

	doc, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Tasks) != 0 || doc.Tasks == nil {
		t.Fatalf("expected empty document with non-nil slices, got %+v", doc)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := newSQLiteStore(t, filepath.Join(t.TempDir(), "tasks.db"))
	ctx := context.Background()

	doc, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	doc.Tasks = append(doc.Tasks, model.Task{ID: "t1", Title: "a", Priority: model.PriorityLow, Status: model.StatusTodo})
	doc.Stats = append(doc.Stats, model.CompletionRecord{Date: "2026-03-10", Count: 1})

	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].Title != "a" {
		t.Fatalf("tasks did not survive the round trip: %+v", got.Tasks)
	}
	if len(got.Stats) != 1 {
		t.Fatalf("stats did not survive the round trip: %+v", got.Stats)
	}

	// A second save from the same handle bumps the version cleanly.
	if err := s.Save(ctx, got); err != nil {
		t.Fatalf("second Save: %v", err)
	}
}

func TestSQLiteStoreVersionConflict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	a := newSQLiteStore(t, path)
	b := newSQLiteStore(t, path)
	ctx := context.Background()

	docA, err := a.Load(ctx)
	if err != nil {
		t.Fatalf("a.Load: %v", err)
	}
	docB, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("b.Load: %v", err)
	}

	docA.Tasks = append(docA.Tasks, model.Task{ID: "t1", Title: "from a"})
	if err := a.Save(ctx, docA); err != nil {
		t.Fatalf("a.Save: %v", err)
	}

	// b still holds the pre-save version; its write must be rejected.
	docB.Tasks = append(docB.Tasks, model.Task{ID: "t2", Title: "from b"})
	if err := b.Save(ctx, docB); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	// After reloading, b sees a's write and can save on top of it.
	docB, err = b.Load(ctx)
	if err != nil {
		t.Fatalf("b.Load after conflict: %v", err)
	}
	if len(docB.Tasks) != 1 || docB.Tasks[0].Title != "from a" {
		t.Fatalf("expected a's document after reload, got %+v", docB.Tasks)
	}
	docB.Tasks = append(docB.Tasks, model.Task{ID: "t2", Title: "from b"})
	if err := b.Save(ctx, docB); err != nil {
		t.Fatalf("b.Save after reload: %v", err)
	}
}
