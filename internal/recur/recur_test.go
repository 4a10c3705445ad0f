package recur

import (
	"testing"
	"time"

	"taskdeck/internal/model"
)

func TestNextDueDateDaily(t *testing.T) {
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.Local)

	got, err := NextDueDate("2026-03-10", model.RecurrenceDaily, now)
	if err != nil {
		t.Fatalf("NextDueDate: %v", err)
	}
	// Anchored to the task's own due date even when completed late.
	if got != "2026-03-11" {
		t.Fatalf("expected 2026-03-11, got %s", got)
	}
}

func TestNextDueDateWeekly(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)

	got, err := NextDueDate("2026-03-10", model.RecurrenceWeekly, now)
	if err != nil {
		t.Fatalf("NextDueDate: %v", err)
	}
	if got != "2026-03-17" {
		t.Fatalf("expected 2026-03-17, got %s", got)
	}
}

func TestNextDueDateMonthlyNormalizesOverflow(t *testing.T) {
	now := time.Date(2026, 1, 31, 10, 0, 0, 0, time.Local)

	got, err := NextDueDate("2026-01-31", model.RecurrenceMonthly, now)
	if err != nil {
		t.Fatalf("NextDueDate: %v", err)
	}
	// Jan 31 + 1 month normalizes past February.
	if got != "2026-03-03" {
		t.Fatalf("expected 2026-03-03, got %s", got)
	}
}

func TestNextDueDateEmptyAnchorsToToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)

	got, err := NextDueDate("", model.RecurrenceDaily, now)
	if err != nil {
		t.Fatalf("NextDueDate: %v", err)
	}
	if got != "2026-03-11" {
		t.Fatalf("expected 2026-03-11, got %s", got)
	}
}

func TestNextDueDateRejectsNone(t *testing.T) {
	now := time.Now()
	if _, err := NextDueDate("2026-03-10", model.RecurrenceNone, now); err == nil {
		t.Fatal("expected error for non-recurring task")
	}
}

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)
	completedAt := now
	projectID := "proj-1"

	orig := model.Task{
		ID:          "task-1",
		Title:       "Water plants",
		Description: "the ferns too",
		Priority:    model.PriorityHigh,
		Status:      model.StatusDone,
		DueDate:     "2026-03-10",
		Recurrence:  model.RecurrenceWeekly,
		ProjectID:   &projectID,
		CompletedAt: &completedAt,
		Subtasks: []model.Subtask{
			{ID: "sub-1", Title: "front room", Completed: true},
			{ID: "sub-2", Title: "balcony", Completed: false},
		},
	}

	next, err := NextOccurrence(orig, now)
	if err != nil {
		t.Fatalf("NextOccurrence: %v", err)
	}

	if next.ID == orig.ID || next.ID == "" {
		t.Fatalf("sibling must get a fresh id, got %q", next.ID)
	}
	if next.Status != model.StatusTodo {
		t.Fatalf("expected status todo, got %s", next.Status)
	}
	if next.CompletedAt != nil {
		t.Fatal("sibling must not carry a completion timestamp")
	}
	if next.DueDate != "2026-03-17" {
		t.Fatalf("expected due 2026-03-17, got %s", next.DueDate)
	}
	if next.Title != orig.Title || next.Priority != orig.Priority || next.Recurrence != orig.Recurrence {
		t.Fatal("sibling must keep title, priority and recurrence")
	}
	if next.ProjectID == nil || *next.ProjectID != projectID {
		t.Fatal("sibling must stay in the same project")
	}

	if len(next.Subtasks) != 2 {
		t.Fatalf("expected 2 subtasks, got %d", len(next.Subtasks))
	}
	for _, s := range next.Subtasks {
		if s.Completed {
			t.Fatalf("subtask %s must be reset to incomplete", s.Title)
		}
	}
	// The original's subtasks are untouched.
	if !orig.Subtasks[0].Completed {
		t.Fatal("original subtask state must not change")
	}
}
