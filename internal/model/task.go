package model

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns the sort rank for a priority (lower sorts first).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ParsePriority parses a user-supplied priority string.
func ParsePriority(input string) (Priority, error) {
	p := Priority(strings.TrimSpace(strings.ToLower(input)))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %q", input)
	}
	return p, nil
}

// Status is the task workflow status.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// ParseStatus parses a user-supplied status string.
func ParseStatus(input string) (Status, error) {
	s := Status(strings.TrimSpace(strings.ToLower(input)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid status: %q", input)
	}
	return s, nil
}

// Recurrence controls whether completing a task schedules a next occurrence.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

// ParseRecurrence parses a user-supplied recurrence string.
func ParseRecurrence(input string) (Recurrence, error) {
	r := Recurrence(strings.TrimSpace(strings.ToLower(input)))
	if !r.IsValid() {
		return "", fmt.Errorf("invalid recurrence: %q", input)
	}
	return r, nil
}

// Display labels for the UI.
var (
	PriorityLabels = map[Priority]string{
		PriorityLow:    "Low",
		PriorityMedium: "Medium",
		PriorityHigh:   "High",
	}
	StatusLabels = map[Status]string{
		StatusTodo:       "To do",
		StatusInProgress: "In progress",
		StatusDone:       "Done",
	}
	RecurrenceLabels = map[Recurrence]string{
		RecurrenceNone:    "No repeat",
		RecurrenceDaily:   "Every day",
		RecurrenceWeekly:  "Every week",
		RecurrenceMonthly: "Every month",
	}
)

// DateLayout is the calendar date format used for due dates and stats keys.
const DateLayout = "2006-01-02"

// Subtask is a simple sub-entry within a task. Its lifecycle is bound to
// the parent task.
type Subtask struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	DueDate   string    `json:"due_date,omitempty"`
	Priority  *Priority `json:"priority,omitempty"`
	Order     *int      `json:"order,omitempty"`
}

// EffectivePriority returns the subtask's own priority, or the parent's
// when none is set.
func (s Subtask) EffectivePriority(parent Priority) Priority {
	if s.Priority != nil && s.Priority.IsValid() {
		return *s.Priority
	}
	return parent
}

// Task is a locally managed work item.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ProjectID   *string    `json:"project_id,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`

	// DueDate is a calendar date in DateLayout form; empty means "no date".
	DueDate string `json:"due_date"`

	Subtasks   []Subtask  `json:"subtasks"`
	Recurrence Recurrence `json:"recurrence"`

	// Order controls the manual sort position within a filtered view.
	// Values need not be contiguous or unique.
	Order int `json:"order"`

	// CompletedAt is non-nil exactly when Status is StatusDone.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsDone reports whether the task is completed.
func (t Task) IsDone() bool { return t.Status == StatusDone }

// CompletedOn reports whether the task was completed on the given local
// calendar day.
func (t Task) CompletedOn(day time.Time) bool {
	if t.Status != StatusDone || t.CompletedAt == nil {
		return false
	}
	y1, m1, d1 := t.CompletedAt.Local().Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
