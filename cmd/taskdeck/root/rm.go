package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task (restorable with `taskdeck restore`)",
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

			if _, err := r.DeleteTask(ctx, id); err != nil {
				return err
			}

			fmt.Printf("Deleted %s (restore with `taskdeck restore`)\n", shortID(id))
			return nil
		},
	}

	return cmd
}
