package calendar

import (
	"time"

	"github.com/alexanderramin/lookahead/internal/domain"
)

const (
	DaysPerWeek = 7
	day         = 24 * time.Hour
)

// Date builds a calendar date at midnight UTC.
func Date(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// DateOnly drops the clock and location of t, keeping its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// AddDays returns the date n days after t (before t when n is negative).
func AddDays(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, 0, n)
}

// DaysBetween returns the signed number of whole days from earlier to later.
func DaysBetween(later, earlier time.Time) int {
	return int(DateOnly(later).Sub(DateOnly(earlier)) / day)
}

// WeeksBetween returns the number of whole weeks from earlier to later,
// truncated toward zero.
func WeeksBetween(later, earlier time.Time) int {
	return DaysBetween(later, earlier) / DaysPerWeek
}

// WeekStartDate returns startDate + weekIndex*7 days.
func WeekStartDate(s *domain.Schedule, weekIndex int) time.Time {
	return AddDays(s.StartDate, weekIndex*DaysPerWeek)
}

// WeekEndDate returns the last calendar day of the week, which may lie
// past the schedule's end date for a partial final week.
func WeekEndDate(s *domain.Schedule, weekIndex int) time.Time {
	return AddDays(WeekStartDate(s, weekIndex), DaysPerWeek-1)
}

// TotalWeeks returns WeeksBetween(endDate, startDate) + 1. For an inverted
// range the result can be zero or negative; callers decide how to treat it.
func TotalWeeks(s *domain.Schedule) int {
	return WeeksBetween(s.EndDate, s.StartDate) + 1
}

// EndDateFor returns the last day of a schedule of n weeks beginning on
// start: start + n weeks - 1 day.
func EndDateFor(start time.Time, weeks int) time.Time {
	return AddDays(start, weeks*DaysPerWeek-1)
}

// WeekContaining returns the week index holding date, or false when the date
// lies outside [startDate, endDate].
func WeekContaining(s *domain.Schedule, date time.Time) (int, bool) {
	if !InRange(s, date) {
		return 0, false
	}
	return DaysBetween(date, s.StartDate) / DaysPerWeek, true
}

// InRange reports whether date is within [startDate, endDate] inclusive.
func InRange(s *domain.Schedule, date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(s.StartDate)) && !d.After(DateOnly(s.EndDate))
}
