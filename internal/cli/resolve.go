package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/alexanderramin/lookahead/internal/service"
)

// resolveTask finds a task by one-based position, full id, unique id
// prefix, or case-insensitive name, in that order.
func resolveTask(s *domain.Schedule, ref string) (*domain.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("task is required")
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(s.Tasks) {
			return nil, fmt.Errorf("task #%d not found (schedule has %d tasks)", n, len(s.Tasks))
		}
		return s.Tasks[n-1], nil
	}

	if t, _, ok := s.TaskByID(ref); ok {
		return t, nil
	}

	var matches []*domain.Task
	for _, t := range s.Tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}

	for _, t := range s.Tasks {
		if strings.EqualFold(t.Name, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("task not found: %q", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("task name %q is ambiguous (%d matches, use the task number)", ref, len(matches))
	}
}

// withSession opens an editing session on ref, runs fn, and reports the
// first persistence failure the session recorded.
func withSession(ctx context.Context, app *App, ref string, fn func(*service.EditorSession) error) error {
	session, err := app.Editor.Open(ctx, ref)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := fn(session); err != nil {
		return err
	}
	if err := session.Err(); err != nil {
		return fmt.Errorf("saving changes: %w", err)
	}
	return nil
}

// parseWeekFlag converts a one-based --week value to a week index.
func parseWeekFlag(week, total int) (int, error) {
	if week < 1 || week > total {
		return 0, fmt.Errorf("week %d out of range (schedule has %d weeks)", week, total)
	}
	return week - 1, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return calendar.DateOnly(t), nil
}
