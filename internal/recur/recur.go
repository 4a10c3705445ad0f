// Package recur computes the next occurrence of a recurring task when
// its current instance is completed.
package recur

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/model"
)

// NextDueDate advances a due date by one recurrence interval. The
// result is anchored to the task's own due date, not to the completion
// time, so a task completed late still follows its original schedule.
// An empty due date anchors to today.
//
// Month arithmetic follows time.AddDate normalization: Jan 31 plus one
// month lands in early March rather than clamping to Feb 28/29.
func NextDueDate(due string, r model.Recurrence, now time.Time) (string, error) {
	if r == model.RecurrenceNone || !r.IsValid() {
		return "", fmt.Errorf("no next due date for recurrence %q", r)
	}

	anchor := now
	if due != "" {
		parsed, err := time.ParseInLocation(model.DateLayout, due, now.Location())
		if err != nil {
			return "", fmt.Errorf("parsing due date %q: %w", due, err)
		}
		anchor = parsed
	}

	var next time.Time
	switch r {
	case model.RecurrenceDaily:
		next = anchor.AddDate(0, 0, 1)
	case model.RecurrenceWeekly:
		next = anchor.AddDate(0, 0, 7)
	case model.RecurrenceMonthly:
		next = anchor.AddDate(0, 1, 0)
	}

	return next.Format(model.DateLayout), nil
}

// NextOccurrence builds the sibling task created when a recurring task
// is completed: same title, description, priority, project, and
// recurrence, with a fresh id, open status, advanced due date, and all
// subtasks reset to incomplete. The completed original is left as-is.
func NextOccurrence(t model.Task, now time.Time) (model.Task, error) {
	nextDue, err := NextDueDate(t.DueDate, t.Recurrence, now)
	if err != nil {
		return model.Task{}, err
	}

	next := t
	next.ID = uuid.New().String()
	next.Status = model.StatusTodo
	next.CompletedAt = nil
	next.DueDate = nextDue
	next.CreatedAt = now
	next.UpdatedAt = now

	next.Subtasks = make([]model.Subtask, len(t.Subtasks))
	copy(next.Subtasks, t.Subtasks)
	for i := range next.Subtasks {
		next.Subtasks[i].Completed = false
	}

	return next, nil
}
