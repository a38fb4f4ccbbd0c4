package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Schedule options
type ScheduleOption func(*domain.Schedule)

func WithShortID(id string) ScheduleOption {
	return func(s *domain.Schedule) {
		s.ShortID = id
	}
}

func WithDates(start, end time.Time) ScheduleOption {
	return func(s *domain.Schedule) {
		s.StartDate = start
		s.EndDate = end
	}
}

func WithHoursPerDay(h float64) ScheduleOption {
	return func(s *domain.Schedule) {
		s.HoursPerDay = h
	}
}

func WithWorkDays(days ...domain.Weekday) ScheduleOption {
	return func(s *domain.Schedule) {
		s.WorkDays = domain.NewWorkDayPattern(days...)
	}
}

func WithCurrentWeek(week int) ScheduleOption {
	return func(s *domain.Schedule) {
		s.CurrentWeekIndex = week
	}
}

func WithTasks(tasks ...*domain.Task) ScheduleOption {
	return func(s *domain.Schedule) {
		for _, t := range tasks {
			t.ScheduleID = s.ID
		}
		s.Tasks = append(s.Tasks, tasks...)
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

// NewTestSchedule returns a three-week Mon–Fri schedule starting Monday
// 2025-01-06 at 8 hours per day.
func NewTestSchedule(name string, opts ...ScheduleOption) *domain.Schedule {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.Schedule{
		ID:          uuid.New().String(),
		ShortID:     defaultShortID(name),
		Name:        name,
		StartDate:   calendar.Date(2025, 1, 6),
		EndDate:     calendar.Date(2025, 1, 26),
		HoursPerDay: 8,
		WorkDays:    domain.DefaultWorkDays(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Task options
type TaskOption func(*domain.Task)

func WithPosition(p int) TaskOption {
	return func(t *domain.Task) {
		t.Position = p
	}
}

func WithManpower(week int, counts ...int) TaskOption {
	return func(t *domain.Task) {
		t.Manpower[week] = counts
	}
}

func NewTestTask(scheduleID, name string, opts ...TaskOption) *domain.Task {
	t := domain.NewTask(uuid.New().String(), scheduleID, name)
	t.CreatedAt = t.CreatedAt.Truncate(time.Second)
	t.UpdatedAt = t.CreatedAt
	for _, opt := range opts {
		opt(t)
	}
	return t
}
