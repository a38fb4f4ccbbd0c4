package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lookahead/internal/db"
	"github.com/alexanderramin/lookahead/internal/importer"
)

type importService struct {
	uow      db.UnitOfWork
	defaults importer.Defaults
	observer UseCaseObserver
}

// NewImportService returns an ImportService. defaults fill hours per day and
// work days when an import file leaves them out.
func NewImportService(uow db.UnitOfWork, defaults importer.Defaults, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		defaults: defaults,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"short_id": schema.Schedule.ShortID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-schedule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateImportSchema(schema, s.defaults); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	sc, err := importer.Convert(schema, s.defaults)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	prepareSchedule(sc, startedAt)

	rows := 0
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := persistSchedule(ctx, newRepos(tx), sc)
		rows = n
		return err
	})
	if err != nil {
		return nil, err
	}

	fields["schedule_id"] = sc.ID
	fields["task_count"] = len(sc.Tasks)
	fields["week_row_count"] = rows
	return &ImportResult{
		Schedule:     sc,
		TaskCount:    len(sc.Tasks),
		WeekRowCount: rows,
	}, nil
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return fmt.Errorf("%s", b.String())
}
