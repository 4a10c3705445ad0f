package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Toggle a task's completion",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
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
			id, err := resolveTaskID(ctx, r, args[0])
			if err != nil {
				return err
			}

			tasks, err := r.ToggleTask(ctx, id)
			if err != nil {
				return err
			}

			for _, t := range tasks {
				if t.ID == id {
					if t.IsDone() {
						fmt.Printf("Done: %s\n", t.Title)
					} else {
						fmt.Printf("Reopened: %s\n", t.Title)
					}
					break
				}
			}
			return nil
		},
	}

	return cmd
}
