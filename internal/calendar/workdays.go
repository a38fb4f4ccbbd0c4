package calendar

import (
	"time"

	"github.com/alexanderramin/lookahead/internal/domain"
)

// WorkDay is one column of a week grid.
type WorkDay struct {
	DayIndex  int // offset from the week's start date, 0..6
	Date      time.Time
	IsWorkDay bool
}

// ValidWorkDays returns, in date order, the days of the given week that fall
// inside [startDate, endDate] and match the schedule's work-day pattern.
// Boundary weeks may yield fewer days than the pattern holds.
func ValidWorkDays(s *domain.Schedule, weekIndex int) []WorkDay {
	if s == nil {
		return nil
	}
	start := WeekStartDate(s, weekIndex)
	days := make([]WorkDay, 0, len(s.WorkDays))
	for i := 0; i < DaysPerWeek; i++ {
		date := AddDays(start, i)
		if !s.WorkDays.Contains(domain.FromTimeWeekday(date.Weekday())) {
			continue
		}
		if !InRange(s, date) {
			continue
		}
		days = append(days, WorkDay{DayIndex: i, Date: date, IsWorkDay: true})
	}
	return days
}

// WorkDayCount returns len(ValidWorkDays(s, weekIndex)).
func WorkDayCount(s *domain.Schedule, weekIndex int) int {
	return len(ValidWorkDays(s, weekIndex))
}

// AllWorkDays returns the valid work days for every week of the schedule.
func AllWorkDays(s *domain.Schedule) [][]WorkDay {
	if s == nil {
		return nil
	}
	total := TotalWeeks(s)
	if total < 1 {
		return nil
	}
	weeks := make([][]WorkDay, total)
	for w := range weeks {
		weeks[w] = ValidWorkDays(s, w)
	}
	return weeks
}
