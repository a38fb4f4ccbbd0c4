package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/lookahead/internal/editor"
	"github.com/alexanderramin/lookahead/internal/schedule"
	"github.com/xuri/excelize/v2"
)

type exportService struct {
	schedules ScheduleService
	observer  UseCaseObserver
}

func NewExportService(schedules ScheduleService, observers ...UseCaseObserver) ExportService {
	return &exportService{
		schedules: schedules,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// WeekSheetName names the sheet of a zero-based week, e.g. "Week 1 (2025-01-06)".
func WeekSheetName(week int, start time.Time) string {
	return fmt.Sprintf("Week %d (%s)", week+1, start.Format("2006-01-02"))
}

// ExportFileName is the suggested workbook name for a schedule.
func ExportFileName(shortID string) string {
	return strings.ToLower(shortID) + "-lookahead.xlsx"
}

func (s *exportService) ExportXLSX(ctx context.Context, ref string, w io.Writer) (filename string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"ref": ref}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "export-xlsx",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	sc, err := s.schedules.Resolve(ctx, ref)
	if err != nil {
		return "", err
	}
	store := schedule.NewStore()
	store.Load(ctx, sc)
	ed := editor.New(store)

	total, ok := ed.TotalWeeks()
	if !ok {
		return "", fmt.Errorf("schedule %s has no weeks to export", sc.DisplayID())
	}
	fields["weeks"] = total

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newSheetStyles(f)
	if err != nil {
		return "", err
	}

	for week := 0; week < total; week++ {
		g, _ := ed.GridForWeek(week)
		name := WeekSheetName(week, g.WeekStart)
		if week == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return "", fmt.Errorf("naming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return "", fmt.Errorf("adding sheet %q: %w", name, err)
		}
		if err := writeWeekSheet(f, name, g, styles); err != nil {
			return "", fmt.Errorf("writing %s: %w", name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return "", fmt.Errorf("writing workbook: %w", err)
	}
	return ExportFileName(sc.DisplayID()), nil
}

type sheetStyles struct {
	title  int
	header int
	total  int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var st sheetStyles
	var err error
	st.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13},
	})
	if err != nil {
		return st, fmt.Errorf("creating title style: %w", err)
	}
	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return st, fmt.Errorf("creating header style: %w", err)
	}
	st.total, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "top", Color: "#000000", Style: 1}},
	})
	if err != nil {
		return st, fmt.Errorf("creating total style: %w", err)
	}
	return st, nil
}

// writeWeekSheet lays out one week: a title row, a header of work-day
// dates, one row per task, and a daily totals row.
func writeWeekSheet(f *excelize.File, sheet string, g editor.Grid, st sheetStyles) error {
	lastCol := colName(len(g.Days) + 1)

	title := fmt.Sprintf("%s - week %d of %d (%s to %s)", g.ScheduleName, g.Week+1, g.TotalWeeks,
		g.WeekStart.Format("2006-01-02"), g.WeekEnd.Format("2006-01-02"))
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", cell(lastCol, 1)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", st.title); err != nil {
		return err
	}

	header := make([]any, 0, len(g.Days)+2)
	header = append(header, "Task")
	for _, d := range g.Days {
		header = append(header, d.Date.Format("Mon 2006-01-02"))
	}
	header = append(header, "Total hours")
	if err := f.SetSheetRow(sheet, "A2", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A2", cell(lastCol, 2), st.header); err != nil {
		return err
	}

	row := 3
	for _, r := range g.Rows {
		values := make([]any, 0, len(r.Counts)+2)
		values = append(values, r.Name)
		for _, c := range r.Counts {
			values = append(values, c)
		}
		values = append(values, r.Hours)
		if err := f.SetSheetRow(sheet, cell("A", row), &values); err != nil {
			return err
		}
		row++
	}

	totals := make([]any, 0, len(g.DayTotals)+2)
	totals = append(totals, "Daily total")
	for _, c := range g.DayTotals {
		totals = append(totals, c)
	}
	totals = append(totals, g.TotalHours)
	if err := f.SetSheetRow(sheet, cell("A", row), &totals); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell("A", row), cell(lastCol, row), st.total); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	if len(g.Days) > 0 {
		if err := f.SetColWidth(sheet, "B", lastCol, 16); err != nil {
			return err
		}
	}
	return nil
}

// colName converts a zero-based column index to its letter name.
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
