package form

import (
	"time"

	"github.com/alexanderramin/lookahead/internal/calendar"
)

// Recompute returns the last day of a schedule of weeks weeks starting on
// start. It reports false when start is unset or weeks is not positive.
func Recompute(start time.Time, weeks int) (time.Time, bool) {
	if start.IsZero() || weeks < 1 {
		return time.Time{}, false
	}
	return calendar.EndDateFor(start, weeks), true
}

// EndDateSync writes EndDate whenever StartDate or TotalWeeks changes and
// both hold valid values. When either input is cleared or invalid, an end
// date the sync derived earlier is cleared; one set directly on the form is
// left alone.
type EndDateSync struct {
	form    *ScheduleForm
	unsubs  []func()
	closed  bool
	derived time.Time
}

// BindEndDate subscribes to f's start date and week count and computes the
// end date right away if both are already present.
func BindEndDate(f *ScheduleForm) *EndDateSync {
	s := &EndDateSync{form: f}
	s.unsubs = []func(){
		f.StartDate.Subscribe(func(time.Time, bool) { s.sync() }),
		f.TotalWeeks.Subscribe(func(int, bool) { s.sync() }),
	}
	s.sync()
	return s
}

func (s *EndDateSync) sync() {
	if s.closed {
		return
	}
	start, _ := s.form.StartDate.Get()
	weeks, _ := s.form.TotalWeeks.Get()
	end, ok := Recompute(start, weeks)
	if ok {
		s.derived = end
		s.form.EndDate.Set(end)
		return
	}
	if current, set := s.form.EndDate.Get(); set && !s.derived.IsZero() && current.Equal(s.derived) {
		s.form.EndDate.Clear()
	}
	s.derived = time.Time{}
}

// Close stops recomputation. Safe to call more than once.
func (s *EndDateSync) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}
