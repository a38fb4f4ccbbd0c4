package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/domain"
)

const dateLayout = "2006-01-02"

// Defaults fill schedule fields the import file leaves out.
type Defaults struct {
	HoursPerDay float64
	WorkDays    domain.WorkDayPattern
}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema, defaults Defaults) []error {
	header, errs := validateSchedule(&schema.Schedule, defaults)
	errs = append(errs, validateTasks(schema.Tasks, header)...)
	return errs
}

// validateSchedule returns the header as a domain schedule when it is
// usable for checking task rows, or nil.
func validateSchedule(s *ScheduleImport, defaults Defaults) (*domain.Schedule, []error) {
	var errs []error

	if shortID := domain.NormalizeShortID(s.ShortID); shortID == "" {
		errs = append(errs, fmt.Errorf("schedule.short_id is required"))
	} else {
		header := domain.Schedule{ShortID: shortID}
		if err := header.ValidateShortID(); err != nil {
			errs = append(errs, fmt.Errorf("schedule.short_id: %w", err))
		}
	}
	if s.Name == "" {
		errs = append(errs, fmt.Errorf("schedule.name is required"))
	}

	start, startOK := parseDate("schedule.start_date", s.StartDate, &errs)

	var end time.Time
	endOK := false
	switch {
	case s.EndDate != nil && s.Weeks != nil:
		errs = append(errs, fmt.Errorf("schedule: give end_date or weeks, not both"))
	case s.EndDate == nil && s.Weeks == nil:
		errs = append(errs, fmt.Errorf("schedule: end_date or weeks is required"))
	case s.Weeks != nil:
		if *s.Weeks < 1 {
			errs = append(errs, fmt.Errorf("schedule.weeks must be positive, got %d", *s.Weeks))
		} else if startOK {
			end, endOK = calendar.EndDateFor(start, *s.Weeks), true
		}
	default:
		end, endOK = parseDate("schedule.end_date", *s.EndDate, &errs)
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, fmt.Errorf("schedule.end_date %q is before start_date %q", end.Format(dateLayout), s.StartDate))
		endOK = false
	}

	hours := defaults.HoursPerDay
	if s.HoursPerDay != nil {
		hours = *s.HoursPerDay
		if hours <= 0 {
			errs = append(errs, fmt.Errorf("schedule.hours_per_day must be positive"))
		}
	} else if hours <= 0 {
		errs = append(errs, fmt.Errorf("schedule.hours_per_day is required"))
	}

	workDays := defaults.WorkDays
	workDaysOK := true
	if s.WorkDays != nil {
		days := make([]domain.Weekday, 0, len(s.WorkDays))
		for _, d := range s.WorkDays {
			wd := domain.Weekday(d)
			if !wd.Valid() {
				errs = append(errs, fmt.Errorf("schedule.work_days: %d is not a weekday (1=Mon ... 7=Sun)", d))
				workDaysOK = false
				continue
			}
			days = append(days, wd)
		}
		workDays = domain.NewWorkDayPattern(days...)
		if len(s.WorkDays) == 0 {
			errs = append(errs, fmt.Errorf("schedule.work_days must list at least one day"))
			workDaysOK = false
		}
	} else if workDays.Len() == 0 {
		errs = append(errs, fmt.Errorf("schedule.work_days is required"))
		workDaysOK = false
	}

	if !startOK || !endOK || !workDaysOK {
		return nil, errs
	}
	return &domain.Schedule{
		StartDate:   start,
		EndDate:     end,
		HoursPerDay: hours,
		WorkDays:    workDays,
	}, errs
}

func validateTasks(tasks []TaskImport, header *domain.Schedule) []error {
	var errs []error
	totalWeeks := 0
	if header != nil {
		totalWeeks = calendar.TotalWeeks(header)
	}

	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		seen := make(map[int]bool)
		for j, w := range t.Manpower {
			wp := fmt.Sprintf("%s.manpower[%d]", prefix, j)
			if seen[w.Week] {
				errs = append(errs, fmt.Errorf("%s: week %d listed more than once", wp, w.Week))
			}
			seen[w.Week] = true

			for k, c := range w.Counts {
				if c < 0 {
					errs = append(errs, fmt.Errorf("%s.counts[%d] must not be negative, got %d", wp, k, c))
				}
			}
			if header == nil {
				continue
			}
			if w.Week < 0 || w.Week >= totalWeeks {
				errs = append(errs, fmt.Errorf("%s.week %d is outside the schedule (0..%d)", wp, w.Week, totalWeeks-1))
				continue
			}
			if n := calendar.WorkDayCount(header, w.Week); len(w.Counts) > n {
				errs = append(errs, fmt.Errorf("%s: %d counts for week %d, which has %d work days", wp, len(w.Counts), w.Week, n))
			}
		}
	}
	return errs
}

func parseDate(field, value string, errs *[]error) (time.Time, bool) {
	if value == "" {
		*errs = append(*errs, fmt.Errorf("%s is required", field))
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value))
		return time.Time{}, false
	}
	return t, true
}
