package view

import (
	"time"

	"taskdeck/internal/model"
)

// Group is a display section of the task list.
type Group struct {
	Label string
	Done  bool
	Tasks []model.Task
}

// GroupByPriority buckets a filtered task list into high/medium/low
// priority sections in that order, with completed tasks collected into
// a trailing done section. Empty sections are omitted. The input order
// within each section is preserved, so callers should pass the already
// sorted output of Apply.
func GroupByPriority(tasks []model.Task) []Group {
	order := []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow}
	byPriority := map[model.Priority]*Group{}
	groups := make([]*Group, 0, 4)
	for _, p := range order {
		g := &Group{Label: model.PriorityLabels[p] + " priority"}
		byPriority[p] = g
		groups = append(groups, g)
	}
	done := &Group{Label: "Done", Done: true}

	for _, t := range tasks {
		if t.IsDone() {
			done.Tasks = append(done.Tasks, t)
			continue
		}
		if g, ok := byPriority[t.Priority]; ok {
			g.Tasks = append(g.Tasks, t)
		}
	}
	groups = append(groups, done)

	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		if len(g.Tasks) > 0 {
			out = append(out, *g)
		}
	}
	return out
}

// Day is one calendar-day column of the week view.
type Day struct {
	Date  time.Time
	Tasks []model.Task
}

// WeekDays buckets tasks by the seven days of the current week. A task
// lands on a day when its own due date is that day, or when it has an
// incomplete subtask due that day. The week view uses this instead of
// priority grouping.
func WeekDays(tasks []model.Task, now time.Time) []Day {
	days := make([]Day, 0, 7)
	for _, date := range WeekDates(now) {
		day := Day{Date: date}
		key := date.Format(model.DateLayout)
		for _, t := range tasks {
			if t.DueDate == key {
				day.Tasks = append(day.Tasks, t)
				continue
			}
			for _, s := range t.Subtasks {
				if !s.Completed && s.DueDate == key {
					day.Tasks = append(day.Tasks, t)
					break
				}
			}
		}
		days = append(days, day)
	}
	return days
}
