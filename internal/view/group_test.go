package view

import (
	"testing"

	"taskdeck/internal/model"
)

func TestGroupByPriorityOrderAndLabels(t *testing.T) {
	doneAt := testNow
	high := task("h", "")
	high.Priority = model.PriorityHigh
	low := task("l", "")
	low.Priority = model.PriorityLow
	done := task("d", "")
	done.Status = model.StatusDone
	done.CompletedAt = &doneAt

	groups := GroupByPriority([]model.Task{low, done, high})

	wantLabels := []string{"High priority", "Low priority", "Done"}
	if len(groups) != len(wantLabels) {
		t.Fatalf("expected %d groups, got %d", len(wantLabels), len(groups))
	}
	for i, label := range wantLabels {
		if groups[i].Label != label {
			t.Fatalf("group %d: expected %q, got %q", i, label, groups[i].Label)
		}
	}
	if !groups[2].Done {
		t.Fatal("trailing group must be marked done")
	}
}

func TestGroupByPriorityOmitsEmptySections(t *testing.T) {
	med := task("m", "")

	groups := GroupByPriority([]model.Task{med})
	if len(groups) != 1 || groups[0].Label != "Medium priority" {
		t.Fatalf("expected a single medium section, got %v", groups)
	}
}

func TestWeekDaysPlacesTasksOnDueDays(t *testing.T) {
	onWednesday := task("wed", "2026-03-11")
	viaSubtask := task("sub", "2026-04-01")
	viaSubtask.Subtasks = []model.Subtask{
		{ID: "s1", Title: "due friday", DueDate: "2026-03-13"},
	}
	elsewhere := task("other", "2026-03-30")

	days := WeekDays([]model.Task{onWednesday, viaSubtask, elsewhere}, testNow)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}

	// Monday is index 0, so Wednesday is 2 and Friday is 4.
	if len(days[2].Tasks) != 1 || days[2].Tasks[0].Title != "wed" {
		t.Fatalf("expected wed on Wednesday, got %v", days[2].Tasks)
	}
	if len(days[4].Tasks) != 1 || days[4].Tasks[0].Title != "sub" {
		t.Fatalf("expected subtask parent on Friday, got %v", days[4].Tasks)
	}
	for _, i := range []int{0, 1, 3, 5, 6} {
		if len(days[i].Tasks) != 0 {
			t.Fatalf("day %d should be empty, got %v", i, days[i].Tasks)
		}
	}
}
