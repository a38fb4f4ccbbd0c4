package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/lookahead/internal/db"
)

// SQLiteManpowerRepo implements ManpowerRepo. Each row stores one week of
// a task's counts as a JSON array.
type SQLiteManpowerRepo struct {
	db db.DBTX
}

// NewSQLiteManpowerRepo creates a new SQLiteManpowerRepo.
func NewSQLiteManpowerRepo(conn db.DBTX) *SQLiteManpowerRepo {
	return &SQLiteManpowerRepo{db: conn}
}

func (r *SQLiteManpowerRepo) Upsert(ctx context.Context, taskID string, week int, counts []int) error {
	encoded, err := encodeCounts(counts)
	if err != nil {
		return err
	}
	query := `INSERT INTO task_manpower (task_id, week_index, counts, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(task_id, week_index) DO UPDATE
		SET counts = excluded.counts, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, taskID, week, encoded, nowUTC()); err != nil {
		return fmt.Errorf("upserting manpower: %w", err)
	}
	return nil
}

func (r *SQLiteManpowerRepo) ListByTask(ctx context.Context, taskID string) (map[int][]int, error) {
	query := `SELECT week_index, counts FROM task_manpower WHERE task_id = ? ORDER BY week_index`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing manpower: %w", err)
	}
	defer rows.Close()

	weeks := make(map[int][]int)
	for rows.Next() {
		var week int
		var raw string
		if err := rows.Scan(&week, &raw); err != nil {
			return nil, fmt.Errorf("scanning manpower row: %w", err)
		}
		counts, err := decodeCounts(raw)
		if err != nil {
			return nil, err
		}
		weeks[week] = counts
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating manpower: %w", err)
	}
	return weeks, nil
}

// ListBySchedule returns every stored week row of the schedule's tasks,
// keyed by task id and week index.
func (r *SQLiteManpowerRepo) ListBySchedule(ctx context.Context, scheduleID string) (map[string]map[int][]int, error) {
	query := `SELECT m.task_id, m.week_index, m.counts
		FROM task_manpower m
		JOIN tasks t ON t.id = m.task_id
		WHERE t.schedule_id = ?
		ORDER BY m.task_id, m.week_index`
	rows, err := r.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("listing schedule manpower: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[int][]int)
	for rows.Next() {
		var taskID, raw string
		var week int
		if err := rows.Scan(&taskID, &week, &raw); err != nil {
			return nil, fmt.Errorf("scanning manpower row: %w", err)
		}
		counts, err := decodeCounts(raw)
		if err != nil {
			return nil, err
		}
		if out[taskID] == nil {
			out[taskID] = make(map[int][]int)
		}
		out[taskID][week] = counts
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating manpower: %w", err)
	}
	return out, nil
}
