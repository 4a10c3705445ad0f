package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/model"
	"taskdeck/internal/theme"
	"taskdeck/internal/view"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects with open task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, cleanup, err := openRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := context.Background()

			projects, err := r.Projects(ctx)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("No projects.")
				return nil
			}

			tasks, err := r.Tasks(ctx)
			if err != nil {
				return err
			}

			now := time.Now()
			for _, p := range projects {
				open := view.CountProject(tasks, p.ID, now)
				icon := theme.ProjectStyle(p.Color).Render(p.Icon)
				fmt.Printf("%s %s (%d open)\n", icon, p.Name, open)
			}
			return nil
		},
	}

	cmd.AddCommand(newProjectsAddCmd(), newProjectsRmCmd())
	return cmd
}

func newProjectsAddCmd() *cobra.Command {
	var color string
	var icon string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, cleanup, err := openRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			p := model.Project{Name: args[0], Color: color, Icon: icon, CreatedAt: time.Now()}
			if _, err := r.AddProject(context.Background(), p); err != nil {
				return err
			}

			fmt.Printf("Created project %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Hex color (default from palette)")
	cmd.Flags().StringVar(&icon, "icon", "", "Glyph (default from palette)")

	return cmd
}

func newProjectsRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a project (its tasks move to Inbox)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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
			id, err := findProjectID(ctx, r, args[0])
			if err != nil {
				return err
			}

			if _, err := r.DeleteProject(ctx, id); err != nil {
				return err
			}

			fmt.Printf("Deleted project %q, its tasks moved to Inbox\n", args[0])
			return nil
		},
	}

	return cmd
}
