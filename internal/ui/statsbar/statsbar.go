// Package statsbar renders the one-line completion summary shown under
// the header: today's count, the week total, the streak, and a 7-day
// mini chart.
package statsbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/model"
	"taskdeck/internal/stats"
	"taskdeck/internal/theme"
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(theme.ColorGray)
	valueStyle  = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	streakStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorOrange)
	chartStyle  = lipgloss.NewStyle().Foreground(theme.ColorBlue)
	dividerSty  = lipgloss.NewStyle().Foreground(theme.ColorSubtle)
)

// chartGlyphs are the bar heights of the mini chart, shortest first.
var chartGlyphs = []rune("▁▂▃▄▅▆▇█")

// Render draws the stats line. Today's figures come from a live recount
// of the task list; prior days use the persisted records.
func Render(records []model.CompletionRecord, tasks []model.Task, now time.Time, width int) string {
	today := stats.LiveTodayCount(tasks, now)
	week := stats.WeekTotal(records, tasks, now)

	// The persisted streak can lag behind a completion made moments
	// ago; a live completion today always sustains at least 1.
	streak := stats.Streak(records, now)
	if today > 0 && streak == 0 {
		streak = 1
	}

	divider := dividerSty.Render(" │ ")
	parts := []string{
		labelStyle.Render("today ") + valueStyle.Render(fmt.Sprintf("%d", today)),
		labelStyle.Render("week ") + valueStyle.Render(fmt.Sprintf("%d", week)),
		labelStyle.Render("streak ") + streakStyle.Render(fmt.Sprintf("%d", streak)),
		chartStyle.Render(miniChart(stats.ChartData(records, tasks, now))),
	}

	line := " " + strings.Join(parts, divider)
	if lipgloss.Width(line) > width {
		return lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}

// miniChart maps per-day counts onto bar glyphs scaled to the busiest day.
func miniChart(days []int) string {
	max := 1
	for _, d := range days {
		if d > max {
			max = d
		}
	}

	var b strings.Builder
	for _, d := range days {
		idx := 0
		if d > 0 {
			idx = 1 + (d-1)*(len(chartGlyphs)-1)/max
			if idx >= len(chartGlyphs) {
				idx = len(chartGlyphs) - 1
			}
		}
		b.WriteRune(chartGlyphs[idx])
	}
	return b.String()
}
