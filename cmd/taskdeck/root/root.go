package root

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"taskdeck/internal/app"
)

const Version = "0.1.0"

var (
	configPath string
	dataPath   string
)

var rootCmd = &cobra.Command{
	Use:           "taskdeck",
	Short:         "Terminal task manager with projects, recurrence and completion stats",
	Long:          "Taskdeck is a local-first terminal task manager. Run without arguments to open the interactive UI, or use the subcommands for scripting.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, cfg, cleanup, err := openRepo()
		if err != nil {
			return err
		}
		defer cleanup()

		p := tea.NewProgram(app.New(r, cfg.Display), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running ui: %w", err)
		}
		return nil
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/taskdeck/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Data file, overriding the configured storage path")

	rootCmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newDoCmd(),
		newRmCmd(),
		newRestoreCmd(),
		newProjectsCmd(),
		newStatsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error: "+err.Error())
		os.Exit(1)
	}
}
