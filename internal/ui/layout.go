package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/theme"
)

// Layout manages the terminal layout dimensions: a one-line header, a
// one-line stats bar, the content area, and a one-line status bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatsBarHeight  int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatsBarHeight:  1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatsBarHeight - l.StatusBarHeight
}

// RenderHeader renders the top header bar: the active view title on the
// left and the bucket badge summary on the right.
func (l Layout) RenderHeader(title string, badges string) string {
	return renderBar(theme.HeaderStyle, l.Width, title, badges)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	return renderBar(theme.StatusBarStyle, l.Width, hints, "")
}

// renderBar draws a full-width bar with left and right aligned segments.
func renderBar(style lipgloss.Style, width int, left, right string) string {
	leftRendered := style.Render(left)
	rightRendered := ""
	if right != "" {
		rightRendered = style.Align(lipgloss.Right).Render(right)
	}

	gap := width - lipgloss.Width(leftRendered) - lipgloss.Width(rightRendered)
	if gap < 0 {
		gap = 0
	}

	filler := style.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(style.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, filler, rightRendered)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, stats bar, content area, and status bar.
func (l Layout) RenderWithFrame(header, statsBar, content, statusBar string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		statsBar,
		content,
		statusBar,
	)
}
