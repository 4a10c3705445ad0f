package tasklist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/model"
	"taskdeck/internal/theme"
	"taskdeck/internal/view"
)

// rowItem is one rendered row of the task list: either a real task or
// a section header produced by grouping.
type rowItem struct {
	header string
	task   model.Task
}

// isHeader reports whether the row is a section header.
func (r rowItem) isHeader() bool { return r.header != "" }

// FilterValue returns the string used for fuzzy filtering.
func (r rowItem) FilterValue() string {
	if r.isHeader() {
		return ""
	}
	return r.task.Title
}

// itemDelegate implements list.ItemDelegate for rendering task rows.
type itemDelegate struct {
	// projects resolves project ids to their icon and color.
	projects map[string]model.Project

	// now anchors due-date coloring; set when items are loaded.
	now time.Time
}

// Height returns the number of lines each item takes.
func (d itemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d itemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list row.
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(rowItem)
	if !ok {
		return
	}

	if row.isHeader() {
		fmt.Fprint(w, theme.GroupHeaderStyle.Render(row.header))
		return
	}

	t := row.task
	isSelected := index == m.Index()

	var parts []string

	check := "○"
	if t.IsDone() {
		check = "✓"
	} else if t.Status == model.StatusInProgress {
		check = "◐"
	}
	parts = append(parts, check)

	parts = append(parts,
		theme.PriorityStyle(t.Priority).Render(theme.PriorityMarker(t.Priority)))

	if t.ProjectID != nil {
		if p, ok := d.projects[*t.ProjectID]; ok {
			parts = append(parts, theme.ProjectStyle(p.Color).Render(p.Icon))
		}
	}

	title := t.Title
	if t.Recurrence != model.RecurrenceNone {
		title += " ↻"
	}
	parts = append(parts, title)

	if n := len(t.Subtasks); n > 0 {
		done := 0
		for _, s := range t.Subtasks {
			if s.Completed {
				done++
			}
		}
		parts = append(parts, theme.HelpStyle.Render(fmt.Sprintf("[%d/%d]", done, n)))
	}

	if t.DueDate != "" {
		due := formatDue(t.DueDate, d.now)
		if view.IsOverdue(t.DueDate, d.now) && !t.IsDone() {
			due = theme.OverdueStyle.Render(due)
		} else {
			due = theme.HelpStyle.Render(due)
		}
		parts = append(parts, due)
	}

	line := strings.Join(parts, " ")

	switch {
	case isSelected:
		fmt.Fprint(w, theme.SelectedItemStyle.Render(line))
	case t.IsDone():
		fmt.Fprint(w, theme.DoneItemStyle.Render(line))
	default:
		fmt.Fprint(w, theme.ListItemStyle.Render(line))
	}
}

// formatDue renders a due date compactly, using relative names for the
// nearest days.
func formatDue(date string, now time.Time) string {
	switch {
	case view.IsToday(date, now):
		return "today"
	case view.IsTomorrow(date, now):
		return "tomorrow"
	}
	d, ok := view.ParseDay(date, now)
	if !ok {
		return date
	}
	if d.Year() == now.Year() {
		return d.Format("Jan 2")
	}
	return d.Format("Jan 2 2006")
}
