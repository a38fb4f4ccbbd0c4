package schedule

import (
	"context"

	"github.com/alexanderramin/lookahead/internal/domain"
)

// Absent entities are never errors in the store: the UI must stay renderable
// mid-edit. Every miss goes through the two helpers below so the policy is
// one log line and a false return.

func (s *Store) requireSchedule(ctx context.Context, op string) bool {
	if s.schedule != nil {
		return true
	}
	s.logger.WarnContext(ctx, "no schedule loaded; ignoring mutation", "op", op)
	return false
}

func (s *Store) lookupTask(ctx context.Context, op, taskID string) (*domain.Task, int, bool) {
	if !s.requireSchedule(ctx, op) {
		return nil, -1, false
	}
	task, idx, ok := s.schedule.TaskByID(taskID)
	if !ok {
		s.logger.WarnContext(ctx, "task not found; ignoring mutation", "op", op, "task_id", taskID)
		return nil, -1, false
	}
	return task, idx, true
}
