package stats

import (
	"testing"
	"time"

	"taskdeck/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRecordCreatesAndIncrements(t *testing.T) {
	now := day("2026-03-10")

	records := Record(nil, now)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Date != "2026-03-10" || records[0].Count != 1 {
		t.Fatalf("unexpected record %+v", records[0])
	}

	records = Record(records, now)
	if len(records) != 1 {
		t.Fatalf("expected 1 record after second completion, got %d", len(records))
	}
	if records[0].Count != 2 {
		t.Fatalf("expected count 2, got %d", records[0].Count)
	}
}

func TestRecordPrunesOldRecordsKeepingBoundaryDay(t *testing.T) {
	now := day("2026-06-01")
	boundary := DayKey(now.AddDate(0, 0, -90))
	tooOld := DayKey(now.AddDate(0, 0, -91))

	records := []model.CompletionRecord{
		{Date: tooOld, Count: 3},
		{Date: boundary, Count: 2},
		{Date: "2026-05-20", Count: 1},
	}

	records = Record(records, now)

	for _, r := range records {
		if r.Date == tooOld {
			t.Fatalf("record %s should have been pruned", tooOld)
		}
	}

	found := false
	for _, r := range records {
		if r.Date == boundary {
			found = true
		}
	}
	if !found {
		t.Fatalf("boundary day %s should be retained", boundary)
	}
}

func TestDecrementFloorsAtZero(t *testing.T) {
	now := day("2026-03-10")
	records := []model.CompletionRecord{{Date: "2026-03-10", Count: 1}}

	records = Decrement(records, now)
	if records[0].Count != 0 {
		t.Fatalf("expected count 0, got %d", records[0].Count)
	}

	records = Decrement(records, now)
	if records[0].Count != 0 {
		t.Fatalf("count must not go negative, got %d", records[0].Count)
	}
}

func TestDecrementIgnoresOtherDays(t *testing.T) {
	now := day("2026-03-10")
	records := []model.CompletionRecord{{Date: "2026-03-09", Count: 5}}

	records = Decrement(records, now)
	if records[0].Count != 5 {
		t.Fatalf("yesterday's count must be untouched, got %d", records[0].Count)
	}
}

func TestStreakZeroWhenChainBroken(t *testing.T) {
	now := day("2026-03-10")
	records := []model.CompletionRecord{
		{Date: "2026-03-07", Count: 2},
		{Date: "2026-03-06", Count: 1},
	}

	if got := Streak(records, now); got != 0 {
		t.Fatalf("expected streak 0 when last completion is 3 days old, got %d", got)
	}
}

func TestStreakCountsConsecutiveDays(t *testing.T) {
	now := day("2026-03-10")
	records := []model.CompletionRecord{
		{Date: "2026-03-10", Count: 1},
		{Date: "2026-03-09", Count: 3},
		{Date: "2026-03-08", Count: 2},
		{Date: "2026-03-06", Count: 4},
	}

	if got := Streak(records, now); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

func TestStreakSurvivesOnYesterday(t *testing.T) {
	now := day("2026-03-10")
	records := []model.CompletionRecord{
		{Date: "2026-03-09", Count: 1},
		{Date: "2026-03-08", Count: 1},
	}

	if got := Streak(records, now); got != 2 {
		t.Fatalf("a streak ending yesterday is still alive, got %d", got)
	}
}

func TestStreakIgnoresZeroCountRecords(t *testing.T) {
	now := day("2026-03-10")
	records := []model.CompletionRecord{
		{Date: "2026-03-10", Count: 0},
		{Date: "2026-03-09", Count: 1},
	}

	if got := Streak(records, now); got != 1 {
		t.Fatalf("zero-count days must not extend the streak, got %d", got)
	}
}

func completedTask(at time.Time) model.Task {
	return model.Task{
		Status:      model.StatusDone,
		CompletedAt: &at,
	}
}

func TestLiveTodayCount(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	tasks := []model.Task{
		completedTask(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)),
		completedTask(time.Date(2026, 3, 9, 23, 0, 0, 0, time.Local)),
		{Status: model.StatusTodo},
	}

	if got := LiveTodayCount(tasks, now); got != 1 {
		t.Fatalf("expected 1 live completion today, got %d", got)
	}
}

func TestWeekTotalPrefersLiveTodayCount(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)

	// The persisted record for today says 5, but only 2 tasks are
	// actually completed today.
	records := []model.CompletionRecord{
		{Date: "2026-03-10", Count: 5},
		{Date: "2026-03-08", Count: 3},
	}
	tasks := []model.Task{
		completedTask(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)),
		completedTask(time.Date(2026, 3, 10, 11, 0, 0, 0, time.Local)),
	}

	if got := WeekTotal(records, tasks, now); got != 5 {
		t.Fatalf("expected week total 3+2=5, got %d", got)
	}
}

func TestChartDataSevenDaysOldestFirst(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	records := []model.CompletionRecord{
		{Date: "2026-03-04", Count: 4},
		{Date: "2026-03-09", Count: 2},
	}
	tasks := []model.Task{
		completedTask(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)),
	}

	got := ChartData(records, tasks, now)
	want := []int{4, 0, 0, 0, 0, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("day %d: expected %d, got %d (%v)", i, want[i], got[i], got)
		}
	}
}
