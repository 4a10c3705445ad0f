package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"taskdeck/internal/model"
)

// Mode names a task list view. Every mode except inbox and project
// carries a date-bucket predicate.
type Mode string

const (
	ModeInbox    Mode = "inbox"
	ModeToday    Mode = "today"
	ModeTomorrow Mode = "tomorrow"
	ModeWeek     Mode = "week"
	ModeMonth    Mode = "month"
	ModeProject  Mode = "project"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeInbox, ModeToday, ModeTomorrow, ModeWeek, ModeMonth, ModeProject:
		return true
	default:
		return false
	}
}

// ParseMode parses a user-supplied view mode string.
func ParseMode(input string) (Mode, error) {
	m := Mode(strings.TrimSpace(strings.ToLower(input)))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid view mode: %q", input)
	}
	return m, nil
}

// ModeTitles maps view modes to their display titles.
var ModeTitles = map[Mode]string{
	ModeInbox:    "Inbox",
	ModeToday:    "Today",
	ModeTomorrow: "Tomorrow",
	ModeWeek:     "This Week",
	ModeMonth:    "This Month",
	ModeProject:  "Project",
}

// DateFilter is the secondary date filter applied on top of the view's
// own bucket. Empty means no date filtering.
type DateFilter string

const (
	DateFilterNone     DateFilter = ""
	DateFilterToday    DateFilter = "today"
	DateFilterTomorrow DateFilter = "tomorrow"
	DateFilterWeek     DateFilter = "week"
	DateFilterOverdue  DateFilter = "overdue"
	DateFilterNoDate   DateFilter = "no_date"
)

// Filters is the optional filter set applied after the view bucket.
// Zero values mean "no filtering" for each field; active fields combine
// with AND.
type Filters struct {
	Search   string
	Priority model.Priority
	Status   model.Status
	Date     DateFilter
}

// IsZero reports whether no filter is active.
func (f Filters) IsZero() bool {
	return f.Search == "" && f.Priority == "" && f.Status == "" && f.Date == DateFilterNone
}

// matchesBucket reports whether a task belongs to a date bucket: either
// its own due date satisfies the predicate, or it has at least one
// incomplete subtask whose due date does.
func matchesBucket(t model.Task, pred func(string) bool) bool {
	if pred(t.DueDate) {
		return true
	}
	for _, s := range t.Subtasks {
		if !s.Completed && s.DueDate != "" && pred(s.DueDate) {
			return true
		}
	}
	return false
}

// bucketPredicate returns the date predicate for a view mode, or nil
// when the mode has no date bucket.
func bucketPredicate(mode Mode, now time.Time) func(string) bool {
	switch mode {
	case ModeToday:
		return func(d string) bool { return IsToday(d, now) }
	case ModeTomorrow:
		return func(d string) bool { return IsTomorrow(d, now) }
	case ModeWeek:
		return func(d string) bool { return InWeek(d, now) }
	case ModeMonth:
		return func(d string) bool { return InMonth(d, now) }
	default:
		return nil
	}
}

// InBucket reports whether a task belongs to the given view mode's
// bucket at the given time. Inbox matches everything; project mode
// matches on the supplied project id.
func InBucket(t model.Task, mode Mode, projectID string, now time.Time) bool {
	if mode == ModeProject {
		return t.ProjectID != nil && *t.ProjectID == projectID
	}
	pred := bucketPredicate(mode, now)
	if pred == nil {
		return true
	}
	return matchesBucket(t, pred)
}

// matchesFilters applies the optional filter set to one task.
func matchesFilters(t model.Task, f Filters, now time.Time) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		found := strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q)
		if !found {
			for _, s := range t.Subtasks {
				if strings.Contains(strings.ToLower(s.Title), q) {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}

	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}

	switch f.Date {
	case DateFilterToday:
		return IsToday(t.DueDate, now)
	case DateFilterTomorrow:
		return IsTomorrow(t.DueDate, now)
	case DateFilterWeek:
		return InWeek(t.DueDate, now)
	case DateFilterOverdue:
		return IsOverdue(t.DueDate, now) && t.Status != model.StatusDone
	case DateFilterNoDate:
		return t.DueDate == ""
	}
	return true
}

// Apply filters the task list down to the given view and filter set,
// then sorts it for display: done tasks last, then manual order, then
// priority rank, then due date (empty dates after dated ones). The sort
// is stable.
func Apply(tasks []model.Task, mode Mode, projectID string, f Filters, now time.Time) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if InBucket(t, mode, projectID, now) && matchesFilters(t, f, now) {
			out = append(out, t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsDone() != b.IsDone() {
			return !a.IsDone()
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		da, aok := ParseDay(a.DueDate, now)
		db, bok := ParseDay(b.DueDate, now)
		if aok != bok {
			return aok
		}
		return da.Before(db)
	})

	return out
}

// Counts holds the per-bucket totals of open tasks shown as nav badges.
type Counts struct {
	Inbox    int
	Today    int
	Tomorrow int
	Week     int
	Month    int
}

// CountOpen computes nav badge counts: the same bucket predicates as
// the views, restricted to non-done tasks.
func CountOpen(tasks []model.Task, now time.Time) Counts {
	var c Counts
	for _, t := range tasks {
		if t.IsDone() {
			continue
		}
		c.Inbox++
		if InBucket(t, ModeToday, "", now) {
			c.Today++
		}
		if InBucket(t, ModeTomorrow, "", now) {
			c.Tomorrow++
		}
		if InBucket(t, ModeWeek, "", now) {
			c.Week++
		}
		if InBucket(t, ModeMonth, "", now) {
			c.Month++
		}
	}
	return c
}

// CountProject returns the number of open tasks in one project.
func CountProject(tasks []model.Task, projectID string, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if !t.IsDone() && InBucket(t, ModeProject, projectID, now) {
			n++
		}
	}
	return n
}
