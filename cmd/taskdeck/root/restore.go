package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore the most recently deleted task",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, cleanup, err := openRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := context.Background()

			deleted, err := r.Deleted(ctx)
			if err != nil {
				return err
			}
			if deleted == nil {
				fmt.Println("Nothing to restore.")
				return nil
			}

			if _, err := r.RestoreDeleted(ctx); err != nil {
				return err
			}

			fmt.Printf("Restored %q\n", deleted.Title)
			return nil
		},
	}

	return cmd
}
