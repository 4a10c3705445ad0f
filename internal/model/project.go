package model

import "time"

// Project is a grouping container for related tasks.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectColors is the fixed palette projects may use.
var ProjectColors = []string{
	"#6366f1", "#8b5cf6", "#ec4899", "#ef4444", "#f59e0b",
	"#22c55e", "#06b6d4", "#3b82f6", "#f97316", "#14b8a6",
}

// ProjectIcons is the fixed glyph set projects may use.
var ProjectIcons = []string{
	"◆", "●", "■", "▲", "★", "◎", "◈", "◉", "▣", "⬡",
}
