package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms a validated ImportSchema into a schedule with its tasks
// and manpower, ready for persistence. Call ValidateImportSchema first;
// Convert assumes the schema is valid. Short count rows are zero-padded to
// the week's work-day count.
func Convert(schema *ImportSchema, defaults Defaults) (*domain.Schedule, error) {
	now := time.Now().UTC()
	src := schema.Schedule

	start, err := time.Parse(dateLayout, src.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	var end time.Time
	if src.Weeks != nil {
		end = calendar.EndDateFor(start, *src.Weeks)
	} else {
		end, err = time.Parse(dateLayout, *src.EndDate)
		if err != nil {
			return nil, fmt.Errorf("parsing end_date: %w", err)
		}
	}

	hours := domain.Float64FromPtrWithDefault(defaults.HoursPerDay, src.HoursPerDay)
	workDays := defaults.WorkDays
	if src.WorkDays != nil {
		days := make([]domain.Weekday, len(src.WorkDays))
		for i, d := range src.WorkDays {
			days[i] = domain.Weekday(d)
		}
		workDays = domain.NewWorkDayPattern(days...)
	}

	s := &domain.Schedule{
		ID:          uuid.New().String(),
		ShortID:     domain.NormalizeShortID(src.ShortID),
		Name:        domain.CoalesceStr(strings.TrimSpace(src.Name), src.ShortID),
		StartDate:   start,
		EndDate:     end,
		HoursPerDay: hours,
		WorkDays:    workDays,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.Tasks = make([]*domain.Task, 0, len(schema.Tasks))
	for i, ti := range schema.Tasks {
		task := domain.NewTask(uuid.New().String(), s.ID, ti.Name)
		task.Position = i
		task.CreatedAt, task.UpdatedAt = now, now
		for _, w := range ti.Manpower {
			n := calendar.WorkDayCount(s, w.Week)
			counts := make([]int, n)
			copy(counts, w.Counts)
			task.Manpower[w.Week] = counts
		}
		s.Tasks = append(s.Tasks, task)
	}
	return s, nil
}
