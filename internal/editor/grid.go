package editor

import (
	"time"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/schedule"
)

// Grid is a snapshot of one week: tasks × valid work days.
type Grid struct {
	ScheduleID   string
	ScheduleName string
	HoursPerDay  float64

	Week       int
	TotalWeeks int
	WeekStart  time.Time
	WeekEnd    time.Time
	Days       []calendar.WorkDay

	Rows []GridRow

	// DayTotals holds the manpower summed over all tasks, per day column.
	DayTotals     []int
	TotalManpower int
	TotalHours    float64

	PrevDisabled bool
	NextDisabled bool
}

// GridRow is one task's line in the grid.
type GridRow struct {
	TaskID string
	Name   string
	Counts []int
	Hours  float64
}

// Grid returns the snapshot for the current week.
func (e *Editor) Grid() (Grid, bool) {
	week, ok := e.CurrentWeek()
	if !ok {
		return Grid{}, false
	}
	return e.GridForWeek(week)
}

// GridForWeek returns the snapshot for an explicit week without changing
// the current week.
func (e *Editor) GridForWeek(week int) (Grid, bool) {
	s, total, ok := e.active()
	if !ok || week < 0 || week >= total {
		return Grid{}, false
	}
	days := calendar.ValidWorkDays(s, week)
	g := Grid{
		ScheduleID:   s.ID,
		ScheduleName: s.Name,
		HoursPerDay:  s.HoursPerDay,
		Week:         week,
		TotalWeeks:   total,
		WeekStart:    calendar.WeekStartDate(s, week),
		WeekEnd:      calendar.WeekEndDate(s, week),
		Days:         days,
		Rows:         make([]GridRow, 0, len(s.Tasks)),
		DayTotals:    make([]int, len(days)),
		PrevDisabled: week <= 0,
		NextDisabled: week >= total-1,
	}
	if g.WeekEnd.After(s.EndDate) {
		g.WeekEnd = s.EndDate
	}
	for _, task := range s.Tasks {
		counts := schedule.FitCounts(task.Manpower[week], len(days))
		sum := schedule.SumCounts(counts)
		g.Rows = append(g.Rows, GridRow{
			TaskID: task.ID,
			Name:   task.Name,
			Counts: counts,
			Hours:  float64(sum) * s.HoursPerDay,
		})
		for i, c := range counts {
			g.DayTotals[i] += c
		}
		g.TotalManpower += sum
	}
	g.TotalHours = float64(g.TotalManpower) * s.HoursPerDay
	return g, true
}
