package view

import (
	"testing"
	"time"

	"taskdeck/internal/model"
)

var testNow = time.Date(2026, 3, 11, 12, 0, 0, 0, time.Local) // Wednesday

func task(title string, due string) model.Task {
	return model.Task{
		ID:       title,
		Title:    title,
		Priority: model.PriorityMedium,
		Status:   model.StatusTodo,
		DueDate:  due,
	}
}

func TestInBucketInboxMatchesEverything(t *testing.T) {
	if !InBucket(task("a", ""), ModeInbox, "", testNow) {
		t.Fatal("inbox must include undated tasks")
	}
	if !InBucket(task("b", "2030-01-01"), ModeInbox, "", testNow) {
		t.Fatal("inbox must include far-future tasks")
	}
}

func TestInBucketTodayViaSubtask(t *testing.T) {
	tk := task("parent", "2026-04-01")
	tk.Subtasks = []model.Subtask{
		{ID: "s1", Title: "due today", DueDate: "2026-03-11"},
	}

	if !InBucket(tk, ModeToday, "", testNow) {
		t.Fatal("an incomplete subtask due today pulls the parent into Today")
	}

	tk.Subtasks[0].Completed = true
	if InBucket(tk, ModeToday, "", testNow) {
		t.Fatal("a completed subtask must not pull the parent in")
	}
}

func TestInBucketDoneTaskStaysInBucket(t *testing.T) {
	tk := task("done today", "2026-03-11")
	tk.Status = model.StatusDone

	if !InBucket(tk, ModeToday, "", testNow) {
		t.Fatal("completing a task must not remove it from its date bucket")
	}
}

func TestInBucketProject(t *testing.T) {
	pid := "p1"
	tk := task("a", "")
	tk.ProjectID = &pid

	if !InBucket(tk, ModeProject, "p1", testNow) {
		t.Fatal("expected project match")
	}
	if InBucket(tk, ModeProject, "p2", testNow) {
		t.Fatal("wrong project must not match")
	}
	if InBucket(task("b", ""), ModeProject, "p1", testNow) {
		t.Fatal("task without project must not match")
	}
}

func TestApplySortOrder(t *testing.T) {
	doneAt := testNow
	high := task("high", "")
	high.Priority = model.PriorityHigh
	high.Order = 5

	low := task("low", "")
	low.Priority = model.PriorityLow
	low.Order = 5

	early := task("early", "")
	early.Order = 1

	done := task("done", "")
	done.Order = 0
	done.Status = model.StatusDone
	done.CompletedAt = &doneAt

	got := Apply([]model.Task{low, done, high, early}, ModeInbox, "", Filters{}, testNow)

	want := []string{"early", "high", "low", "done"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("position %d: expected %s, got %s", i, title, got[i].Title)
		}
	}
}

func TestApplySortDatedBeforeUndated(t *testing.T) {
	dated := task("dated", "2026-03-12")
	undated := task("undated", "")
	later := task("later", "2026-03-20")

	got := Apply([]model.Task{undated, later, dated}, ModeInbox, "", Filters{}, testNow)

	want := []string{"dated", "later", "undated"}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("position %d: expected %s, got %s", i, title, got[i].Title)
		}
	}
}

func TestFiltersSearchCoversSubtaskTitles(t *testing.T) {
	tk := task("groceries", "")
	tk.Subtasks = []model.Subtask{{ID: "s1", Title: "Buy Oat Milk"}}

	f := Filters{Search: "oat milk"}
	got := Apply([]model.Task{tk, task("other", "")}, ModeInbox, "", f, testNow)

	if len(got) != 1 || got[0].Title != "groceries" {
		t.Fatalf("expected search to match via subtask title, got %v", got)
	}
}

func TestFiltersSearchCaseInsensitive(t *testing.T) {
	tk := task("Write REPORT", "")

	got := Apply([]model.Task{tk}, ModeInbox, "", Filters{Search: "report"}, testNow)
	if len(got) != 1 {
		t.Fatal("search must be case-insensitive")
	}
}

func TestFiltersPriorityAndStatusAreExact(t *testing.T) {
	high := task("h", "")
	high.Priority = model.PriorityHigh
	med := task("m", "")

	got := Apply([]model.Task{high, med}, ModeInbox, "", Filters{Priority: model.PriorityHigh}, testNow)
	if len(got) != 1 || got[0].Title != "h" {
		t.Fatalf("expected only the high-priority task, got %v", got)
	}

	inProgress := task("ip", "")
	inProgress.Status = model.StatusInProgress
	got = Apply([]model.Task{high, inProgress}, ModeInbox, "", Filters{Status: model.StatusInProgress}, testNow)
	if len(got) != 1 || got[0].Title != "ip" {
		t.Fatalf("expected only the in-progress task, got %v", got)
	}
}

func TestFiltersOverdueExcludesDone(t *testing.T) {
	doneAt := testNow
	overdue := task("overdue", "2026-03-01")
	doneOverdue := task("done overdue", "2026-03-01")
	doneOverdue.Status = model.StatusDone
	doneOverdue.CompletedAt = &doneAt

	got := Apply([]model.Task{overdue, doneOverdue}, ModeInbox, "", Filters{Date: DateFilterOverdue}, testNow)
	if len(got) != 1 || got[0].Title != "overdue" {
		t.Fatalf("done tasks are never overdue, got %v", got)
	}
}

func TestFiltersNoDate(t *testing.T) {
	got := Apply(
		[]model.Task{task("dated", "2026-03-12"), task("undated", "")},
		ModeInbox, "", Filters{Date: DateFilterNoDate}, testNow,
	)
	if len(got) != 1 || got[0].Title != "undated" {
		t.Fatalf("expected only the undated task, got %v", got)
	}
}

func TestFiltersCombineWithAnd(t *testing.T) {
	a := task("write report", "2026-03-11")
	a.Priority = model.PriorityHigh
	b := task("write letter", "2026-03-11")
	c := task("report review", "")
	c.Priority = model.PriorityHigh

	f := Filters{Search: "report", Priority: model.PriorityHigh, Date: DateFilterToday}
	got := Apply([]model.Task{a, b, c}, ModeInbox, "", f, testNow)
	if len(got) != 1 || got[0].Title != "write report" {
		t.Fatalf("filters must AND together, got %v", got)
	}
}

func TestCountOpenExcludesDone(t *testing.T) {
	doneAt := testNow
	open := task("open", "2026-03-11")
	done := task("done", "2026-03-11")
	done.Status = model.StatusDone
	done.CompletedAt = &doneAt
	undated := task("undated", "")

	c := CountOpen([]model.Task{open, done, undated}, testNow)

	if c.Inbox != 2 {
		t.Fatalf("inbox should count all open tasks, got %d", c.Inbox)
	}
	if c.Today != 1 {
		t.Fatalf("today should count 1 open task, got %d", c.Today)
	}
	if c.Week != 1 || c.Month != 1 {
		t.Fatalf("week/month should each count 1, got %d/%d", c.Week, c.Month)
	}
}

func TestCountProject(t *testing.T) {
	pid := "p1"
	doneAt := testNow

	a := task("a", "")
	a.ProjectID = &pid
	b := task("b", "")
	b.ProjectID = &pid
	b.Status = model.StatusDone
	b.CompletedAt = &doneAt

	if got := CountProject([]model.Task{a, b, task("c", "")}, "p1", testNow); got != 1 {
		t.Fatalf("expected 1 open task in project, got %d", got)
	}
}
