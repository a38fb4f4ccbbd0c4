package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/lookahead/internal/db"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/alexanderramin/lookahead/internal/repository"
)

type scheduleService struct {
	repos    repos
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewScheduleService(
	schedules repository.ScheduleRepo,
	tasks repository.TaskRepo,
	manpower repository.ManpowerRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		repos:    repos{schedules: schedules, tasks: tasks, manpower: manpower},
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) Create(ctx context.Context, sc *domain.Schedule) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"short_id": sc.ShortID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-schedule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = sc.Validate(); err != nil {
		return err
	}
	prepareSchedule(sc, startedAt)
	fields["schedule_id"] = sc.ID
	fields["task_count"] = len(sc.Tasks)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		_, err := persistSchedule(ctx, newRepos(tx), sc)
		return err
	})
}

func (s *scheduleService) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	sc, err := s.repos.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := loadTasks(ctx, s.repos, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *scheduleService) Resolve(ctx context.Context, ref string) (*domain.Schedule, error) {
	sc, err := s.repos.schedules.GetByShortID(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		sc, err = s.repos.schedules.GetByID(ctx, ref)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("schedule %q: %w", ref, repository.ErrNotFound)
		}
		return nil, err
	}
	if err := loadTasks(ctx, s.repos, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *scheduleService) List(ctx context.Context) ([]*domain.Schedule, error) {
	schedules, err := s.repos.schedules.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, sc := range schedules {
		if err := loadTasks(ctx, s.repos, sc); err != nil {
			return nil, err
		}
	}
	return schedules, nil
}

func (s *scheduleService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "delete-schedule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"schedule_id": id},
		})
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newRepos(tx)
		if _, err := r.schedules.GetByID(ctx, id); err != nil {
			return err
		}
		return r.schedules.Delete(ctx, id)
	})
}
