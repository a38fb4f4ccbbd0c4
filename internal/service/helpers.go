package service

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/alexanderramin/lookahead/internal/db"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/alexanderramin/lookahead/internal/repository"
	"github.com/google/uuid"
)

// repos bundles the repositories of one connection or transaction.
type repos struct {
	schedules repository.ScheduleRepo
	tasks     repository.TaskRepo
	manpower  repository.ManpowerRepo
}

func newRepos(conn db.DBTX) repos {
	return repos{
		schedules: repository.NewSQLiteScheduleRepo(conn),
		tasks:     repository.NewSQLiteTaskRepo(conn),
		manpower:  repository.NewSQLiteManpowerRepo(conn),
	}
}

// prepareSchedule fills ids, timestamps and positions before a schedule is
// first stored.
func prepareSchedule(s *domain.Schedule, now time.Time) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	s.CreatedAt = now
	s.UpdatedAt = now
	for i, t := range s.Tasks {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		t.ScheduleID = s.ID
		t.Position = i
		t.CreatedAt = now
		t.UpdatedAt = now
	}
}

// persistSchedule writes the schedule, then each task followed by its week
// rows in week order. It returns the number of week rows written.
func persistSchedule(ctx context.Context, r repos, s *domain.Schedule) (int, error) {
	if err := r.schedules.Create(ctx, s); err != nil {
		return 0, fmt.Errorf("creating schedule: %w", err)
	}
	rows := 0
	for _, t := range s.Tasks {
		if err := r.tasks.Create(ctx, t); err != nil {
			return rows, fmt.Errorf("creating task %q: %w", t.Name, err)
		}
		for _, week := range sortedWeeks(t.Manpower) {
			if err := r.manpower.Upsert(ctx, t.ID, week, t.Manpower[week]); err != nil {
				return rows, fmt.Errorf("storing manpower for task %q week %d: %w", t.Name, week, err)
			}
			rows++
		}
	}
	return rows, nil
}

// loadTasks attaches tasks and their manpower to s.
func loadTasks(ctx context.Context, r repos, s *domain.Schedule) error {
	tasks, err := r.tasks.ListBySchedule(ctx, s.ID)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	weeks, err := r.manpower.ListBySchedule(ctx, s.ID)
	if err != nil {
		return fmt.Errorf("loading manpower: %w", err)
	}
	for _, t := range tasks {
		if m, ok := weeks[t.ID]; ok {
			t.Manpower = m
		}
	}
	s.Tasks = tasks
	return nil
}

func sortedWeeks(m map[int][]int) []int {
	return slices.Sorted(maps.Keys(m))
}
