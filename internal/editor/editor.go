// Package editor is the read side of a lookahead editing session. It
// combines the store's schedule with the calendar to answer what the week
// grid shows, and guards week navigation.
//
// When no schedule is loaded, or the loaded schedule spans no weeks, every
// accessor reports "unavailable" through its ok result, a zero value, or a
// disabled guard. Nothing here returns an error.
package editor

import (
	"context"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/alexanderramin/lookahead/internal/schedule"
)

// Editor is the facade a caller uses to render and navigate the grid.
// Derived values are recomputed from the store on every call.
type Editor struct {
	store *schedule.Store
}

// New returns an Editor reading from and navigating through store.
func New(store *schedule.Store) *Editor {
	return &Editor{store: store}
}

// Store returns the underlying store for mutations.
func (e *Editor) Store() *schedule.Store {
	return e.store
}

// active returns the schedule and its week count when both are usable. An
// inverted date range is never usable, however short.
func (e *Editor) active() (*domain.Schedule, int, bool) {
	s := e.store.Schedule()
	if s == nil || s.EndDate.Before(s.StartDate) {
		return nil, 0, false
	}
	total := calendar.TotalWeeks(s)
	if total < 1 {
		return nil, 0, false
	}
	return s, total, true
}

// TotalWeeks returns the number of weeks the schedule spans.
func (e *Editor) TotalWeeks() (int, bool) {
	_, total, ok := e.active()
	return total, ok
}

// CurrentWeek returns the stored current week index clamped to
// [0, totalWeeks-1].
func (e *Editor) CurrentWeek() (int, bool) {
	s, total, ok := e.active()
	if !ok {
		return 0, false
	}
	return clamp(s.CurrentWeekIndex, 0, total-1), true
}

// ValidWorkDays returns the valid work days of the current week.
func (e *Editor) ValidWorkDays() ([]calendar.WorkDay, bool) {
	week, ok := e.CurrentWeek()
	if !ok {
		return nil, false
	}
	return calendar.ValidWorkDays(e.store.Schedule(), week), true
}

// ManpowerRow returns a task's counts for the current week, padded or
// truncated to the week's valid day count. It returns nil when the schedule
// or the task is unavailable.
func (e *Editor) ManpowerRow(taskID string) []int {
	week, ok := e.CurrentWeek()
	if !ok {
		return nil
	}
	return e.manpowerRow(taskID, week)
}

func (e *Editor) manpowerRow(taskID string, week int) []int {
	s := e.store.Schedule()
	task, _, ok := s.TaskByID(taskID)
	if !ok {
		return nil
	}
	n := calendar.WorkDayCount(s, week)
	return schedule.FitCounts(task.Manpower[week], n)
}

// CalculateTotalHours returns the task's manpower for the current week
// multiplied by hours per day. Missing schedule, task or week data all
// yield 0.
func (e *Editor) CalculateTotalHours(taskID string) float64 {
	week, ok := e.CurrentWeek()
	if !ok {
		return 0
	}
	return e.WeekHours(taskID, week)
}

// WeekHours is CalculateTotalHours for an explicit week.
func (e *Editor) WeekHours(taskID string, week int) float64 {
	s, total, ok := e.active()
	if !ok || week < 0 || week >= total {
		return 0
	}
	return float64(schedule.SumCounts(e.manpowerRow(taskID, week))) * s.HoursPerDay
}

// ScheduleTotalHours sums WeekHours over every week of the schedule.
func (e *Editor) ScheduleTotalHours(taskID string) float64 {
	_, total, ok := e.active()
	if !ok {
		return 0
	}
	var sum float64
	for w := 0; w < total; w++ {
		sum += e.WeekHours(taskID, w)
	}
	return sum
}

// IsPrevDisabled reports whether the current week is the first one.
func (e *Editor) IsPrevDisabled() bool {
	week, ok := e.CurrentWeek()
	return !ok || week <= 0
}

// IsNextDisabled reports whether the current week is the last one.
func (e *Editor) IsNextDisabled() bool {
	week, ok := e.CurrentWeek()
	if !ok {
		return true
	}
	total, _ := e.TotalWeeks()
	return week >= total-1
}

// PrevWeek moves one week back unless IsPrevDisabled. It reports whether
// the week changed.
func (e *Editor) PrevWeek(ctx context.Context) bool {
	if e.IsPrevDisabled() {
		return false
	}
	week, _ := e.CurrentWeek()
	e.store.SetCurrentWeekIndex(ctx, week-1)
	return true
}

// NextWeek moves one week forward unless IsNextDisabled. It reports whether
// the week changed.
func (e *Editor) NextWeek(ctx context.Context) bool {
	if e.IsNextDisabled() {
		return false
	}
	week, _ := e.CurrentWeek()
	e.store.SetCurrentWeekIndex(ctx, week+1)
	return true
}

// GoToWeek jumps to week, clamped to the schedule, and returns the week
// now current.
func (e *Editor) GoToWeek(ctx context.Context, week int) (int, bool) {
	_, total, ok := e.active()
	if !ok {
		return 0, false
	}
	week = clamp(week, 0, total-1)
	e.store.SetCurrentWeekIndex(ctx, week)
	return week, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
