package schedule

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/lookahead/internal/domain"
)

// Callbacks is a Listener that forwards mutations to injected persistence
// functions. Nil functions are skipped. Errors are logged and handed to
// OnError; they never reach the caller of the store mutation.
type Callbacks struct {
	CreateTask     func(ctx context.Context, t *domain.Task) error
	UpdateTask     func(ctx context.Context, t *domain.Task) error
	RemoveTask     func(ctx context.Context, taskID string) error
	UpdateManpower func(ctx context.Context, taskID string, week int, counts []int) error
	UpdateSchedule func(ctx context.Context, s *domain.Schedule) error

	OnError func(ev Event, err error)
	Logger  *slog.Logger
}

func (c Callbacks) OnScheduleEvent(ctx context.Context, ev Event) {
	var err error
	switch ev.Kind {
	case EventTaskAdded:
		if c.CreateTask != nil {
			err = c.CreateTask(ctx, ev.Task)
		}
	case EventTaskUpdated:
		if c.UpdateTask != nil {
			err = c.UpdateTask(ctx, ev.Task)
		}
	case EventTaskRemoved:
		if c.RemoveTask != nil {
			err = c.RemoveTask(ctx, ev.TaskID)
		}
	case EventManpowerUpdated:
		if c.UpdateManpower != nil {
			err = c.UpdateManpower(ctx, ev.TaskID, ev.Week, ev.Counts)
		}
	case EventWeekChanged:
		if c.UpdateSchedule != nil {
			err = c.UpdateSchedule(ctx, ev.Schedule)
		}
	}
	if err == nil {
		return
	}
	if c.Logger != nil {
		c.Logger.ErrorContext(ctx, "persisting schedule change failed",
			"event", string(ev.Kind), "schedule_id", ev.ScheduleID, "task_id", ev.TaskID, "error", err.Error())
	}
	if c.OnError != nil {
		c.OnError(ev, err)
	}
}
