package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/lookahead/internal/db"
	"github.com/alexanderramin/lookahead/internal/domain"
)

// SQLiteScheduleRepo implements ScheduleRepo using a SQLite database.
type SQLiteScheduleRepo struct {
	db db.DBTX
}

// NewSQLiteScheduleRepo creates a new SQLiteScheduleRepo.
func NewSQLiteScheduleRepo(conn db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: conn}
}

const scheduleColumns = `id, short_id, name, start_date, end_date, hours_per_day, work_days,
	current_week_index, created_at, updated_at`

func (r *SQLiteScheduleRepo) Create(ctx context.Context, s *domain.Schedule) error {
	query := `INSERT INTO schedules (` + scheduleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ShortID,
		s.Name,
		s.StartDate.Format(dateLayout),
		s.EndDate.Format(dateLayout),
		s.HoursPerDay,
		s.WorkDays.Designators(),
		s.CurrentWeekIndex,
		formatTimestamp(s.CreatedAt),
		formatTimestamp(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule: %w", err)
	}
	return nil
}

func (r *SQLiteScheduleRepo) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = ?`
	return scanSchedule(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteScheduleRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE UPPER(short_id) = UPPER(?)`
	return scanSchedule(r.db.QueryRowContext(ctx, query, shortID))
}

func (r *SQLiteScheduleRepo) List(ctx context.Context) ([]*domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules ORDER BY start_date, created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*domain.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedules: %w", err)
	}
	return schedules, nil
}

func (r *SQLiteScheduleRepo) Update(ctx context.Context, s *domain.Schedule) error {
	query := `UPDATE schedules SET short_id = ?, name = ?, start_date = ?, end_date = ?,
		hours_per_day = ?, work_days = ?, current_week_index = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.ShortID,
		s.Name,
		s.StartDate.Format(dateLayout),
		s.EndDate.Format(dateLayout),
		s.HoursPerDay,
		s.WorkDays.Designators(),
		s.CurrentWeekIndex,
		formatTimestamp(s.UpdatedAt),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating schedule: %w", err)
	}
	return requireAffected(res, "schedule")
}

func (r *SQLiteScheduleRepo) UpdateCurrentWeek(ctx context.Context, id string, week int) error {
	query := `UPDATE schedules SET current_week_index = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, week, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating current week: %w", err)
	}
	return requireAffected(res, "schedule")
}

func (r *SQLiteScheduleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}
	return nil
}

func scanSchedule(row rowScanner) (*domain.Schedule, error) {
	var s domain.Schedule
	var startStr, endStr, workDaysStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&s.ID, &s.ShortID, &s.Name,
		&startStr, &endStr,
		&s.HoursPerDay, &workDaysStr,
		&s.CurrentWeekIndex,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("schedule")
		}
		return nil, fmt.Errorf("scanning schedule: %w", err)
	}

	var parseErr error
	s.StartDate, parseErr = time.Parse(dateLayout, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	s.EndDate, parseErr = time.Parse(dateLayout, endStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing end_date: %w", parseErr)
	}
	s.WorkDays, parseErr = domain.ParseWorkDayPattern(workDaysStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing work_days: %w", parseErr)
	}
	s.CreatedAt, s.UpdatedAt, parseErr = parseTimestamps(createdAtStr, updatedAtStr)
	if parseErr != nil {
		return nil, parseErr
	}
	return &s, nil
}

func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return notFound(entity)
	}
	return nil
}
