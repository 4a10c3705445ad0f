// Package repo applies task, project, and stats mutations to the
// persisted document. Every operation is a full read-modify-write of
// the whole document, serialized by a mutex so this process has a
// single writer. Other processes writing the same file can still race
// (last writer wins), an accepted hazard of the flat-file backend;
// the SQLite backend rejects such writes with a version conflict.
package repo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/model"
	"taskdeck/internal/recur"
	"taskdeck/internal/stats"
	"taskdeck/internal/store"
)

// Repository owns a DocumentStore and exposes the mutation surface.
// Mutating operations return the authoritative post-mutation list so
// callers can refresh view state without a second fetch.
type Repository struct {
	mu    sync.Mutex
	store store.DocumentStore
}

// New creates a repository over the given document store.
func New(s store.DocumentStore) *Repository {
	return &Repository{store: s}
}

// load reads the current document under the caller-held lock.
func (r *Repository) load(ctx context.Context) (*model.Document, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	return doc, nil
}

// save rewrites the document under the caller-held lock.
func (r *Repository) save(ctx context.Context, doc *model.Document) error {
	if err := r.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Tasks returns all tasks.
func (r *Repository) Tasks(ctx context.Context) ([]model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

// AddTask appends a new task. Missing fields are defaulted: a fresh
// UUID, todo status, medium priority, no recurrence. The manual sort
// position is assigned as the current list length.
func (r *Repository) AddTask(ctx context.Context, t model.Task) ([]model.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return nil, ValidationError{Field: "title", Reason: "must not be empty"}
	}

	now := time.Now()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if !t.Status.IsValid() {
		t.Status = model.StatusTodo
	}
	if !t.Priority.IsValid() {
		t.Priority = model.PriorityMedium
	}
	if !t.Recurrence.IsValid() {
		t.Recurrence = model.RecurrenceNone
	}
	if t.Subtasks == nil {
		t.Subtasks = []model.Subtask{}
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == model.StatusDone {
		if t.CompletedAt == nil {
			t.CompletedAt = &now
		}
	} else {
		t.CompletedAt = nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	t.Order = len(doc.Tasks)
	doc.Tasks = append(doc.Tasks, t)

	if err := r.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

// UpdateTask replaces a task by id. The completion timestamp is kept
// consistent with the status: set when transitioning to done, cleared
// otherwise.
func (r *Repository) UpdateTask(ctx context.Context, t model.Task) ([]model.Task, error) {
	if t.ID == "" {
		return nil, ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if strings.TrimSpace(t.Title) == "" {
		return nil, ValidationError{Field: "title", Reason: "must not be empty"}
	}

	now := time.Now()
	t.UpdatedAt = now
	if t.Status == model.StatusDone {
		if t.CompletedAt == nil {
			t.CompletedAt = &now
		}
	} else {
		t.CompletedAt = nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := taskIndex(doc.Tasks, t.ID)
	if idx < 0 {
		return nil, NotFoundError{Kind: "task", ID: t.ID}
	}
	doc.Tasks[idx] = t

	if err := r.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

// DeleteTask removes a task by id and places it in the single-slot undo
// buffer, overwriting whatever the buffer held before.
func (r *Repository) DeleteTask(ctx context.Context, id string) ([]model.Task, error) {
	if id == "" {
		return nil, ValidationError{Field: "id", Reason: "must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := taskIndex(doc.Tasks, id)
	if idx < 0 {
		return nil, NotFoundError{Kind: "task", ID: id}
	}

	deleted := doc.Tasks[idx]
	doc.Deleted = &deleted
	doc.Tasks = append(doc.Tasks[:idx], doc.Tasks[idx+1:]...)

	if err := r.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

// RestoreDeleted re-appends the buffered task at the end of the list
// and clears the buffer. An empty buffer is not an error; the current
// list is returned unchanged.
func (r *Repository) RestoreDeleted(ctx context.Context) ([]model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if doc.Deleted == nil {
		return doc.Tasks, nil
	}

	restored := *doc.Deleted
	restored.Order = len(doc.Tasks)
	doc.Tasks = append(doc.Tasks, restored)
	doc.Deleted = nil

	if err := r.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

// Deleted returns the task currently held in the undo buffer, or nil.
func (r *Repository) Deleted(ctx context.Context) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Deleted, nil
}

// ToggleTask flips a task between done and todo. Completing updates the
// completion timestamp and today's stats counter; completing a
// recurring task additionally appends the next occurrence. Un-completing
// clears the timestamp and decrements today's counter. All of it is a
// single document write.
func (r *Repository) ToggleTask(ctx context.Context, id string) ([]model.Task, error) {
	if id == "" {
		return nil, ValidationError{Field: "id", Reason: "must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := taskIndex(doc.Tasks, id)
	if idx < 0 {
		return nil, NotFoundError{Kind: "task", ID: id}
	}

	now := time.Now()
	t := doc.Tasks[idx]
	t.UpdatedAt = now

	if t.IsDone() {
		t.Status = model.StatusTodo
		t.CompletedAt = nil
		doc.Tasks[idx] = t
		doc.Stats = stats.Decrement(doc.Stats, now)
	} else {
		t.Status = model.StatusDone
		t.CompletedAt = &now
		doc.Tasks[idx] = t
		doc.Stats = stats.Record(doc.Stats, now)

		if t.Recurrence != model.RecurrenceNone {
			next, err := recur.NextOccurrence(t, now)
			if err != nil {
				return nil, fmt.Errorf("scheduling next occurrence of %s: %w", t.ID, err)
			}
			next.Order = len(doc.Tasks)
			doc.Tasks = append(doc.Tasks, next)
		}
	}

	if err := r.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

// Projects returns all projects.
func (r *Repository) Projects(ctx context.Context) ([]model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Projects, nil
}

// AddProject appends a new project, defaulting color and icon from the
// fixed palettes when unset.
func (r *Repository) AddProject(ctx context.Context, p model.Project) ([]model.Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	if p.Color == "" {
		p.Color = model.ProjectColors[len(doc.Projects)%len(model.ProjectColors)]
	}
	if p.Icon == "" {
		p.Icon = model.ProjectIcons[len(doc.Projects)%len(model.ProjectIcons)]
	}
	doc.Projects = append(doc.Projects, p)

	if err := r.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc.Projects, nil
}

// UpdateProject replaces a project by id.
func (r *Repository) UpdateProject(ctx context.Context, p model.Project) ([]model.Project, error) {
	if p.ID == "" {
		return nil, ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, ValidationError{Field: "name", Reason: "must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range doc.Projects {
		if doc.Projects[i].ID == p.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, NotFoundError{Kind: "project", ID: p.ID}
	}
	p.CreatedAt = doc.Projects[idx].CreatedAt
	doc.Projects[idx] = p

	if err := r.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc.Projects, nil
}

// DeleteProject removes a project and clears the project reference on
// every task that pointed at it. Tasks themselves are kept; this is
// reference clearing, not cascading deletion.
func (r *Repository) DeleteProject(ctx context.Context, id string) ([]model.Project, error) {
	if id == "" {
		return nil, ValidationError{Field: "id", Reason: "must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range doc.Projects {
		if doc.Projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, NotFoundError{Kind: "project", ID: id}
	}
	doc.Projects = append(doc.Projects[:idx], doc.Projects[idx+1:]...)

	now := time.Now()
	for i := range doc.Tasks {
		if doc.Tasks[i].ProjectID != nil && *doc.Tasks[i].ProjectID == id {
			doc.Tasks[i].ProjectID = nil
			doc.Tasks[i].UpdatedAt = now
		}
	}

	if err := r.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc.Projects, nil
}

// Stats returns all completion records.
func (r *Repository) Stats(ctx context.Context) ([]model.CompletionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Stats, nil
}

// RecordCompletion increments today's completion counter and prunes
// records outside the retention window.
func (r *Repository) RecordCompletion(ctx context.Context) ([]model.CompletionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	doc.Stats = stats.Record(doc.Stats, time.Now())

	if err := r.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc.Stats, nil
}

// DecrementCompletion lowers today's completion counter, floored at zero.
func (r *Repository) DecrementCompletion(ctx context.Context) ([]model.CompletionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	doc.Stats = stats.Decrement(doc.Stats, time.Now())

	if err := r.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc.Stats, nil
}

func taskIndex(tasks []model.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
