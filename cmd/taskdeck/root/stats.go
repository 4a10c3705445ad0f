package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/stats"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion stats and streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, cleanup, err := openRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := context.Background()
			now := time.Now()

			records, err := r.Stats(ctx)
			if err != nil {
				return err
			}
			tasks, err := r.Tasks(ctx)
			if err != nil {
				return err
			}

			today := stats.LiveTodayCount(tasks, now)
			week := stats.WeekTotal(records, tasks, now)
			streak := stats.Streak(records, now)
			if today > 0 && streak == 0 {
				streak = 1
			}

			fmt.Printf("Today:  %d completed\n", today)
			fmt.Printf("Week:   %d completed\n", week)
			fmt.Printf("Streak: %d day(s)\n", streak)

			fmt.Println()
			chart := stats.ChartData(records, tasks, now)
			for i, count := range chart {
				day := now.AddDate(0, 0, i-6)
				fmt.Printf("  %s  %s (%d)\n", day.Format("Mon"), bar(count), count)
			}
			return nil
		},
	}

	return cmd
}

// bar renders a simple horizontal bar for the daily chart.
func bar(count int) string {
	if count > 40 {
		count = 40
	}
	out := ""
	for i := 0; i < count; i++ {
		out += "█"
	}
	return out
}
