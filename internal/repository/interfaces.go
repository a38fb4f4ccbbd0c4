package repository

import (
	"context"

	"github.com/alexanderramin/lookahead/internal/domain"
)

// ScheduleRepo stores schedule headers. Tasks and manpower live in their
// own repositories.
type ScheduleRepo interface {
	Create(ctx context.Context, s *domain.Schedule) error
	GetByID(ctx context.Context, id string) (*domain.Schedule, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Schedule, error)
	List(ctx context.Context) ([]*domain.Schedule, error)
	Update(ctx context.Context, s *domain.Schedule) error
	UpdateCurrentWeek(ctx context.Context, id string, week int) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListBySchedule(ctx context.Context, scheduleID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

// ManpowerRepo stores one counts row per (task, week).
type ManpowerRepo interface {
	Upsert(ctx context.Context, taskID string, week int, counts []int) error
	ListByTask(ctx context.Context, taskID string) (map[int][]int, error)
	ListBySchedule(ctx context.Context, scheduleID string) (map[string]map[int][]int, error)
}
