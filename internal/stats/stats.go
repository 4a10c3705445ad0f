// Package stats maintains the per-day completion counters and derives
// the consecutive-day streak. All functions are pure: they take the
// record list and an explicit "now" and return the updated list, so
// time-dependent behavior stays testable.
package stats

import (
	"sort"
	"time"

	"taskdeck/internal/model"
)

// retentionDays is the trailing window of daily records kept at rest.
const retentionDays = 90

// DayKey formats a time as the local calendar date key used by records.
func DayKey(t time.Time) string {
	return t.Format(model.DateLayout)
}

// Record increments today's counter, creating the record if absent,
// then prunes records older than the retention window.
func Record(records []model.CompletionRecord, now time.Time) []model.CompletionRecord {
	today := DayKey(now)

	found := false
	for i := range records {
		if records[i].Date == today {
			records[i].Count++
			found = true
			break
		}
	}
	if !found {
		records = append(records, model.CompletionRecord{Date: today, Count: 1})
	}

	// Keep the trailing window only. The cutoff day itself is retained.
	cutoff := DayKey(now.AddDate(0, 0, -retentionDays))
	kept := records[:0]
	for _, r := range records {
		if r.Date >= cutoff {
			kept = append(kept, r)
		}
	}
	return kept
}

// Decrement lowers today's counter by one, floored at zero. Used when a
// task is un-completed. No pruning happens here.
func Decrement(records []model.CompletionRecord, now time.Time) []model.CompletionRecord {
	today := DayKey(now)
	for i := range records {
		if records[i].Date == today && records[i].Count > 0 {
			records[i].Count--
			break
		}
	}
	return records
}

// Streak returns the number of consecutive calendar days with at least
// one completion, counting backward from the most recent such day. The
// streak is zero unless that day is today or yesterday.
func Streak(records []model.CompletionRecord, now time.Time) int {
	var dates []string
	for _, r := range records {
		if r.Count > 0 {
			dates = append(dates, r.Date)
		}
	}
	if len(dates) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	today := DayKey(now)
	yesterday := DayKey(now.AddDate(0, 0, -1))
	if dates[0] != today && dates[0] != yesterday {
		return 0
	}

	streak := 1
	for i := 0; i < len(dates)-1; i++ {
		curr, err := time.Parse(model.DateLayout, dates[i])
		if err != nil {
			break
		}
		prev, err := time.Parse(model.DateLayout, dates[i+1])
		if err != nil {
			break
		}
		if curr.Sub(prev) == 24*time.Hour {
			streak++
		} else {
			break
		}
	}
	return streak
}

// LiveTodayCount recounts today's completions straight from the task
// list. The completion timestamp is the source of truth for "done
// today"; the persisted record may be stale if mutations raced.
func LiveTodayCount(tasks []model.Task, now time.Time) int {
	count := 0
	for _, t := range tasks {
		if t.CompletedOn(now) {
			count++
		}
	}
	return count
}

// recordedCount returns the persisted count for one day key.
func recordedCount(records []model.CompletionRecord, day string) int {
	for _, r := range records {
		if r.Date == day {
			return r.Count
		}
	}
	return 0
}

// WeekTotal sums completions over the last 7 days inclusive, trusting
// persisted records for prior days but replacing today's stale record
// with the live count from the task list.
func WeekTotal(records []model.CompletionRecord, tasks []model.Task, now time.Time) int {
	cutoff := DayKey(now.AddDate(0, 0, -7))
	today := DayKey(now)

	total := 0
	for _, r := range records {
		if r.Date >= cutoff && r.Date != today {
			total += r.Count
		}
	}
	return total + LiveTodayCount(tasks, now)
}

// ChartData returns per-day completion counts for the trailing 7 days,
// oldest first and ending with today. Today's value is the live count.
func ChartData(records []model.CompletionRecord, tasks []model.Task, now time.Time) []int {
	days := make([]int, 0, 7)
	for i := 6; i >= 1; i-- {
		days = append(days, recordedCount(records, DayKey(now.AddDate(0, 0, -i))))
	}
	return append(days, LiveTodayCount(tasks, now))
}
