package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/domain"
)

const dateLayout = "2006-01-02"

// ScheduleForm collects the fields of a new schedule. The end date is
// derived while the form is open; Close tears the derivation down.
type ScheduleForm struct {
	Name        Field[string]
	ShortID     Field[string]
	StartDate   Field[time.Time]
	TotalWeeks  Field[int]
	EndDate     Field[time.Time]
	HoursPerDay Field[float64]
	WorkDays    Field[domain.WorkDayPattern]

	sync *EndDateSync
}

// NewScheduleForm returns a form seeded with hoursPerDay and workDays and
// with its end date bound to the start date and week count.
func NewScheduleForm(hoursPerDay float64, workDays domain.WorkDayPattern) *ScheduleForm {
	f := &ScheduleForm{}
	if hoursPerDay > 0 {
		f.HoursPerDay.Set(hoursPerDay)
	}
	if workDays.Len() > 0 {
		f.WorkDays.Set(workDays)
	}
	f.sync = BindEndDate(f)
	return f
}

// Close ends the form session.
func (f *ScheduleForm) Close() {
	if f.sync != nil {
		f.sync.Close()
	}
}

// SetStartDateText parses a YYYY-MM-DD date into StartDate. Blank or
// unparseable input clears the field.
func (f *ScheduleForm) SetStartDateText(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		f.StartDate.Clear()
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		f.StartDate.Clear()
		return fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	f.StartDate.Set(calendar.DateOnly(t))
	return nil
}

// SetTotalWeeksText parses a positive week count into TotalWeeks. Blank or
// invalid input clears the field.
func (f *ScheduleForm) SetTotalWeeksText(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		f.TotalWeeks.Clear()
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		f.TotalWeeks.Clear()
		return fmt.Errorf("weeks must be a positive whole number")
	}
	f.TotalWeeks.Set(n)
	return nil
}

// EndDateText returns the derived end date formatted as YYYY-MM-DD, or ""
// when it is not known yet.
func (f *ScheduleForm) EndDateText() string {
	end, ok := f.EndDate.Get()
	if !ok {
		return ""
	}
	return end.Format(dateLayout)
}

// Build assembles a schedule from the form and validates it. When a week
// count is set the end date always follows from it. Id and timestamps are
// left for the caller.
func (f *ScheduleForm) Build() (*domain.Schedule, error) {
	name, _ := f.Name.Get()
	shortID, _ := f.ShortID.Get()
	start, ok := f.StartDate.Get()
	if !ok {
		return nil, errors.New("start date is required")
	}
	end, ok := f.EndDate.Get()
	if weeks, set := f.TotalWeeks.Get(); set {
		end, ok = Recompute(start, weeks)
	}
	if !ok {
		return nil, errors.New("end date is required (set the number of weeks)")
	}
	hours, _ := f.HoursPerDay.Get()
	workDays, _ := f.WorkDays.Get()

	s := &domain.Schedule{
		ShortID:     domain.NormalizeShortID(shortID),
		Name:        strings.TrimSpace(name),
		StartDate:   start,
		EndDate:     end,
		HoursPerDay: hours,
		WorkDays:    workDays,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
