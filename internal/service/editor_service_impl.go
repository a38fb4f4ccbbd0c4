package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/alexanderramin/lookahead/internal/editor"
	"github.com/alexanderramin/lookahead/internal/repository"
	"github.com/alexanderramin/lookahead/internal/schedule"
)

// EditorSession is one open schedule. Store mutations are persisted as they
// happen; a failed write is logged and recorded, and the in-memory edit
// stands.
type EditorSession struct {
	Store  *schedule.Store
	Editor *editor.Editor

	unsubscribe func()
	closeOnce   sync.Once

	mu   sync.Mutex
	errs []error
}

// Err returns every persistence failure seen so far, joined.
func (s *EditorSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Join(s.errs...)
}

// Close detaches persistence. Later store mutations stay in memory only.
func (s *EditorSession) Close() {
	s.closeOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
	})
}

func (s *EditorSession) recordError(_ schedule.Event, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

type editorService struct {
	schedules ScheduleService
	repos     repos
	logger    *slog.Logger
	observer  UseCaseObserver
}

func NewEditorService(
	schedules ScheduleService,
	scheduleRepo repository.ScheduleRepo,
	tasks repository.TaskRepo,
	manpower repository.ManpowerRepo,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) EditorService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &editorService{
		schedules: schedules,
		repos:     repos{schedules: scheduleRepo, tasks: tasks, manpower: manpower},
		logger:    logger,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *editorService) Open(ctx context.Context, ref string) (session *EditorSession, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"ref": ref}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "open-editor",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	sc, err := s.schedules.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	fields["schedule_id"] = sc.ID
	fields["task_count"] = len(sc.Tasks)

	store := schedule.NewStore(schedule.WithLogger(s.logger.With("schedule_id", sc.ID)))
	store.Load(ctx, sc)

	session = &EditorSession{
		Store:  store,
		Editor: editor.New(store),
	}
	session.unsubscribe = store.Subscribe(schedule.Callbacks{
		CreateTask: s.repos.tasks.Create,
		UpdateTask: s.repos.tasks.Update,
		RemoveTask: s.repos.tasks.Delete,
		UpdateManpower: func(ctx context.Context, taskID string, week int, counts []int) error {
			return s.repos.manpower.Upsert(ctx, taskID, week, counts)
		},
		UpdateSchedule: func(ctx context.Context, snap *domain.Schedule) error {
			return s.repos.schedules.UpdateCurrentWeek(ctx, snap.ID, snap.CurrentWeekIndex)
		},
		OnError: session.recordError,
		Logger:  s.logger,
	})

	s.logger.DebugContext(ctx, "editor session opened",
		"schedule_id", sc.ID, "short_id", sc.ShortID, "tasks", len(sc.Tasks))
	return session, nil
}
