// Package schedule owns the schedule being edited. The Store is the only
// writer of schedule state; every mutation is applied in memory and then
// announced to listeners, which is where persistence hooks in.
//
// A Store is not safe for concurrent use. All operations complete
// synchronously and are O(week size) or O(task count).
package schedule

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/google/uuid"
)

const defaultTaskName = "Untitled task"

// Store holds the single active schedule of an editing session.
type Store struct {
	schedule  *domain.Schedule
	logger    *slog.Logger
	newID     func() string
	now       func() time.Time
	subs      []subscription
	nextSubID int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for ignored mutations.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator overrides task id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock overrides the time source used for UpdatedAt stamps.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewStore creates an empty Store. Call Load to start a session.
func NewStore(opts ...Option) *Store {
	s := &Store{
		logger: slog.New(slog.DiscardHandler),
		newID:  uuid.NewString,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule returns the loaded schedule, or nil. The returned value is the
// store's own state: read it, do not write it.
func (s *Store) Schedule() *domain.Schedule {
	return s.schedule
}

// Loaded reports whether a schedule is loaded.
func (s *Store) Loaded() bool {
	return s.schedule != nil
}

// Tasks returns the loaded schedule's tasks in display order.
func (s *Store) Tasks() []*domain.Task {
	if s.schedule == nil {
		return nil
	}
	return s.schedule.Tasks
}

// Load replaces the session schedule with sc. Dates are normalized to
// calendar dates and nil manpower maps are initialized.
func (s *Store) Load(ctx context.Context, sc *domain.Schedule) {
	if sc == nil {
		s.Reset(ctx)
		return
	}
	sc.StartDate = calendar.DateOnly(sc.StartDate)
	sc.EndDate = calendar.DateOnly(sc.EndDate)
	for i, t := range sc.Tasks {
		if t.Manpower == nil {
			t.Manpower = make(map[int][]int)
		}
		t.Position = i
	}
	s.schedule = sc
	s.emit(ctx, Event{Kind: EventScheduleLoaded, Schedule: scheduleSnapshot(sc)})
}

// Reset discards the session schedule.
func (s *Store) Reset(ctx context.Context) {
	if s.schedule == nil {
		return
	}
	id := s.schedule.ID
	s.schedule = nil
	s.emit(ctx, Event{Kind: EventScheduleReset, ScheduleID: id})
}

// AddTask appends a task with empty manpower and returns its id. It returns
// "" when no schedule is loaded.
func (s *Store) AddTask(ctx context.Context, name string) string {
	if !s.requireSchedule(ctx, "add_task") {
		return ""
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultTaskName
	}
	task := domain.NewTask(s.newID(), s.schedule.ID, name)
	task.Position = len(s.schedule.Tasks)
	task.CreatedAt = s.now()
	task.UpdatedAt = task.CreatedAt
	s.schedule.Tasks = append(s.schedule.Tasks, task)

	s.emit(ctx, Event{Kind: EventTaskAdded, TaskID: task.ID, Task: task.Clone()})
	return task.ID
}

// RemoveTask deletes a task. Unknown ids are ignored.
func (s *Store) RemoveTask(ctx context.Context, taskID string) {
	_, idx, ok := s.lookupTask(ctx, "remove_task", taskID)
	if !ok {
		return
	}
	tasks := s.schedule.Tasks
	s.schedule.Tasks = append(tasks[:idx:idx], tasks[idx+1:]...)
	s.renumber(ctx, idx)

	s.emit(ctx, Event{Kind: EventTaskRemoved, TaskID: taskID})
}

// UpdateTask merges patch into a task. Unknown ids are ignored.
func (s *Store) UpdateTask(ctx context.Context, taskID string, patch domain.TaskPatch) {
	task, _, ok := s.lookupTask(ctx, "update_task", taskID)
	if !ok {
		return
	}
	if !patch.Apply(task) {
		return
	}
	task.UpdatedAt = s.now()
	s.emit(ctx, Event{Kind: EventTaskUpdated, TaskID: taskID, Task: task.Clone()})
}

// MoveTask moves a task to position (clamped to the task list).
func (s *Store) MoveTask(ctx context.Context, taskID string, position int) {
	task, idx, ok := s.lookupTask(ctx, "move_task", taskID)
	if !ok {
		return
	}
	tasks := s.schedule.Tasks
	if position < 0 {
		position = 0
	}
	if position > len(tasks)-1 {
		position = len(tasks) - 1
	}
	if position == idx {
		return
	}
	tasks = append(tasks[:idx:idx], tasks[idx+1:]...)
	tasks = append(tasks[:position:position], append([]*domain.Task{task}, tasks[position:]...)...)
	s.schedule.Tasks = tasks

	from := min(idx, position)
	s.renumber(ctx, from)
}

// renumber fixes Position for tasks from index from onward and announces
// every task whose position changed.
func (s *Store) renumber(ctx context.Context, from int) {
	for i := from; i < len(s.schedule.Tasks); i++ {
		t := s.schedule.Tasks[i]
		if t.Position == i {
			continue
		}
		t.Position = i
		t.UpdatedAt = s.now()
		s.emit(ctx, Event{Kind: EventTaskUpdated, TaskID: t.ID, Task: t.Clone()})
	}
}

// UpdateManpower sets one cell of a task's week row. Negative counts are
// stored as 0. The week row is created zero-filled on first write, sized to
// the week's current valid work-day count. Writes to a missing task, a week
// outside the schedule, or a day position beyond the week's valid days are
// ignored.
func (s *Store) UpdateManpower(ctx context.Context, taskID string, week, day, count int) {
	const op = "update_manpower"
	task, _, ok := s.lookupTask(ctx, op, taskID)
	if !ok {
		return
	}
	if week < 0 || week >= calendar.TotalWeeks(s.schedule) {
		s.logger.WarnContext(ctx, "week out of range; ignoring mutation", "op", op, "task_id", taskID, "week", week)
		return
	}
	n := calendar.WorkDayCount(s.schedule, week)
	if day < 0 || day >= n {
		s.logger.WarnContext(ctx, "day position out of range; ignoring mutation",
			"op", op, "task_id", taskID, "week", week, "day", day, "valid_days", n)
		return
	}

	counts, exists := task.Manpower[week]
	if !exists {
		counts = make([]int, n)
	} else if len(counts) < n {
		counts = append(counts, make([]int, n-len(counts))...)
	}
	count = ClampCount(count)
	counts[day] = count
	task.Manpower[week] = counts
	task.UpdatedAt = s.now()

	s.emit(ctx, Event{
		Kind:   EventManpowerUpdated,
		TaskID: taskID,
		Week:   week,
		Day:    day,
		Count:  count,
		Counts: append([]int(nil), counts...),
	})
}

// UpdateManpowerInput coerces raw user input with CoerceCount and writes it.
func (s *Store) UpdateManpowerInput(ctx context.Context, taskID string, week, day int, raw string) {
	s.UpdateManpower(ctx, taskID, week, day, CoerceCount(raw))
}

// SetCurrentWeekIndex records the active week. Any integer is accepted;
// readers clamp it to the schedule's week range.
func (s *Store) SetCurrentWeekIndex(ctx context.Context, index int) {
	if !s.requireSchedule(ctx, "set_current_week") {
		return
	}
	if s.schedule.CurrentWeekIndex == index {
		return
	}
	s.schedule.CurrentWeekIndex = index
	s.emit(ctx, Event{Kind: EventWeekChanged, Week: index, Schedule: scheduleSnapshot(s.schedule)})
}
