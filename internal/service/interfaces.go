package service

import (
	"context"
	"io"

	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/alexanderramin/lookahead/internal/importer"
)

type ScheduleService interface {
	// Create assigns ids and timestamps, validates, and stores the schedule
	// together with any tasks and manpower it already carries.
	Create(ctx context.Context, s *domain.Schedule) error
	// GetByID returns the schedule with its tasks and manpower.
	GetByID(ctx context.Context, id string) (*domain.Schedule, error)
	// Resolve accepts a short id (case-insensitive) or a full id.
	Resolve(ctx context.Context, ref string) (*domain.Schedule, error)
	List(ctx context.Context) ([]*domain.Schedule, error)
	Delete(ctx context.Context, id string) error
}

type EditorService interface {
	// Open loads a schedule into a new editing session whose mutations are
	// written through to the database.
	Open(ctx context.Context, ref string) (*EditorSession, error)
}

type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

type ExportService interface {
	// ExportXLSX writes the schedule as a workbook to w and returns a
	// suggested file name.
	ExportXLSX(ctx context.Context, ref string, w io.Writer) (string, error)
}

// ImportResult summarizes a completed import.
type ImportResult struct {
	Schedule     *domain.Schedule
	TaskCount    int
	WeekRowCount int
}
