package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/model"
)

func newAddCmd() *cobra.Command {
	var due string
	var priority string
	var project string
	var repeat string
	var description string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, cleanup, err := openRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := context.Background()

			p, err := model.ParsePriority(priority)
			if err != nil {
				return err
			}
			rec, err := model.ParseRecurrence(repeat)
			if err != nil {
				return err
			}
			dueDate, err := resolveDue(due)
			if err != nil {
				return err
			}

			task := model.Task{
				Title:       args[0],
				Description: description,
				Priority:    p,
				Status:      model.StatusTodo,
				DueDate:     dueDate,
				Recurrence:  rec,
			}

			if project != "" {
				id, err := findProjectID(ctx, r, project)
				if err != nil {
					return err
				}
				task.ProjectID = &id
			}

			tasks, err := r.AddTask(ctx, task)
			if err != nil {
				return err
			}

			fmt.Printf("Added %q (%d tasks total)\n", task.Title, len(tasks))
			return nil
		},
	}

	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority (high|medium|low)")
	cmd.Flags().StringVar(&project, "project", "", "Project name")
	cmd.Flags().StringVarP(&repeat, "repeat", "r", "none", "Recurrence (none|daily|weekly|monthly)")
	cmd.Flags().StringVar(&description, "desc", "", "Description")

	return cmd
}

// resolveDue normalizes the due flag into a calendar date string.
func resolveDue(due string) (string, error) {
	switch due {
	case "":
		return "", nil
	case "today":
		return time.Now().Format(model.DateLayout), nil
	case "tomorrow":
		return time.Now().AddDate(0, 0, 1).Format(model.DateLayout), nil
	}
	if _, err := time.Parse(model.DateLayout, due); err != nil {
		return "", fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", due)
	}
	return due, nil
}
