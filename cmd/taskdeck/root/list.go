package root

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/model"
	"taskdeck/internal/theme"
	"taskdeck/internal/view"
)

func newListCmd() *cobra.Command {
	var viewName string
	var project string
	var search string
	var priority string
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks grouped by priority",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, cleanup, err := openRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := context.Background()
			now := time.Now()

			mode, err := view.ParseMode(viewName)
			if err != nil {
				return err
			}

			projectID := ""
			var projects []model.Project
			if projects, err = r.Projects(ctx); err != nil {
				return err
			}
			if project != "" {
				id, err := findProjectID(ctx, r, project)
				if err != nil {
					return err
				}
				mode = view.ModeProject
				projectID = id
			}

			filters := view.Filters{Search: search}
			if priority != "" {
				p, err := model.ParsePriority(priority)
				if err != nil {
					return err
				}
				filters.Priority = p
			}
			if status != "" {
				s, err := model.ParseStatus(status)
				if err != nil {
					return err
				}
				filters.Status = s
			}

			tasks, err := r.Tasks(ctx)
			if err != nil {
				return err
			}

			filtered := view.Apply(tasks, mode, projectID, filters, now)
			if len(filtered) == 0 {
				fmt.Println("No tasks.")
				return nil
			}

			byID := make(map[string]model.Project, len(projects))
			for _, p := range projects {
				byID[p.ID] = p
			}

			for _, g := range view.GroupByPriority(filtered) {
				fmt.Println(theme.GroupHeaderStyle.Render(g.Label))
				for _, t := range g.Tasks {
					fmt.Println(renderTaskLine(t, byID, now))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&viewName, "view", "v", "inbox", "View (inbox|today|tomorrow|week|month)")
	cmd.Flags().StringVar(&project, "project", "", "Show a single project")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search in titles and descriptions")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Filter by priority")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")

	return cmd
}

// renderTaskLine formats one task row for terminal output.
func renderTaskLine(t model.Task, projects map[string]model.Project, now time.Time) string {
	var b strings.Builder

	check := "○"
	switch t.Status {
	case model.StatusInProgress:
		check = "◐"
	case model.StatusDone:
		check = "✓"
	}
	b.WriteString("  " + check + " ")

	b.WriteString(theme.PriorityStyle(t.Priority).Render(theme.PriorityMarker(t.Priority)))
	b.WriteString(" ")

	if t.ProjectID != nil {
		if p, ok := projects[*t.ProjectID]; ok {
			b.WriteString(theme.ProjectStyle(p.Color).Render(p.Icon) + " ")
		}
	}

	title := t.Title
	if t.IsDone() {
		title = theme.DoneItemStyle.Render(title)
	}
	b.WriteString(title)

	if t.Recurrence != model.RecurrenceNone && t.Recurrence != "" {
		b.WriteString(" ↻")
	}

	if len(t.Subtasks) > 0 {
		done := 0
		for _, s := range t.Subtasks {
			if s.Completed {
				done++
			}
		}
		b.WriteString(fmt.Sprintf(" [%d/%d]", done, len(t.Subtasks)))
	}

	if t.DueDate != "" {
		due := " " + t.DueDate
		if view.IsOverdue(t.DueDate, now) && !t.IsDone() {
			due = " " + theme.OverdueStyle.Render(t.DueDate+" (overdue)")
		}
		b.WriteString(due)
	}

	b.WriteString("  " + theme.HelpStyle.Render(shortID(t.ID)))
	return b.String()
}

// shortID returns the display prefix of a task ID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
