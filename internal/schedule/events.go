package schedule

import (
	"context"

	"github.com/alexanderramin/lookahead/internal/domain"
)

type EventKind string

const (
	EventScheduleLoaded  EventKind = "schedule_loaded"
	EventScheduleReset   EventKind = "schedule_reset"
	EventTaskAdded       EventKind = "task_added"
	EventTaskRemoved     EventKind = "task_removed"
	EventTaskUpdated     EventKind = "task_updated"
	EventManpowerUpdated EventKind = "manpower_updated"
	EventWeekChanged     EventKind = "week_changed"
)

// Event describes one completed store mutation. Task, Schedule and Counts are
// copies; listeners may keep them.
type Event struct {
	Kind       EventKind
	ScheduleID string
	TaskID     string
	Week       int
	Day        int
	Count      int
	Counts     []int
	Task       *domain.Task
	Schedule   *domain.Schedule
}

// Listener observes store mutations. Listeners run synchronously, in
// subscription order, after the mutation has been applied.
type Listener interface {
	OnScheduleEvent(ctx context.Context, ev Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, ev Event)

func (f ListenerFunc) OnScheduleEvent(ctx context.Context, ev Event) { f(ctx, ev) }

type subscription struct {
	id       int
	listener Listener
}

// Subscribe registers l and returns a function that removes it. The returned
// function is safe to call more than once.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscription{id: id, listener: l})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) emit(ctx context.Context, ev Event) {
	if s.schedule != nil && ev.ScheduleID == "" {
		ev.ScheduleID = s.schedule.ID
	}
	subs := append([]subscription(nil), s.subs...)
	for _, sub := range subs {
		sub.listener.OnScheduleEvent(ctx, ev)
	}
}

// scheduleSnapshot copies the schedule header without its tasks.
func scheduleSnapshot(sc *domain.Schedule) *domain.Schedule {
	if sc == nil {
		return nil
	}
	c := *sc
	c.WorkDays = append(domain.WorkDayPattern(nil), sc.WorkDays...)
	c.Tasks = nil
	return &c
}
