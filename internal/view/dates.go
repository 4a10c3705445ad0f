// Package view classifies tasks into time buckets and produces the
// ordered, grouped sequences the presentation layer displays. Every
// function takes "now" explicitly; nothing here reads a wall clock.
package view

import (
	"time"

	"taskdeck/internal/model"
)

// ParseDay parses a calendar date string in the location of ref.
// The second return is false for empty or malformed dates.
func ParseDay(s string, ref time.Time) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(model.DateLayout, s, ref.Location())
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Midnight truncates a time to local midnight.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsToday reports whether the date string falls on now's calendar day.
func IsToday(date string, now time.Time) bool {
	d, ok := ParseDay(date, now)
	return ok && SameDay(d, now)
}

// IsTomorrow reports whether the date string falls on the day after now.
func IsTomorrow(date string, now time.Time) bool {
	d, ok := ParseDay(date, now)
	return ok && SameDay(d, now.AddDate(0, 0, 1))
}

// WeekStart returns local midnight of the Monday of the week containing
// now. Weeks run Monday through Sunday.
func WeekStart(now time.Time) time.Time {
	back := (int(now.Weekday()) + 6) % 7
	return Midnight(now).AddDate(0, 0, -back)
}

// InWeek reports whether the date string falls within the Monday through Sunday
// range containing now.
func InWeek(date string, now time.Time) bool {
	d, ok := ParseDay(date, now)
	if !ok {
		return false
	}
	start := WeekStart(now)
	end := start.AddDate(0, 0, 7)
	return !d.Before(start) && d.Before(end)
}

// InMonth reports whether the date string shares year and month with now.
func InMonth(date string, now time.Time) bool {
	d, ok := ParseDay(date, now)
	if !ok {
		return false
	}
	return d.Year() == now.Year() && d.Month() == now.Month()
}

// IsOverdue reports whether the date string is strictly before today's
// midnight. Empty or malformed dates are never overdue.
func IsOverdue(date string, now time.Time) bool {
	d, ok := ParseDay(date, now)
	return ok && d.Before(Midnight(now))
}

// WeekDates returns the seven days Monday through Sunday of the week
// containing now, each at local midnight.
func WeekDates(now time.Time) []time.Time {
	start := WeekStart(now)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}
