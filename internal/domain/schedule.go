package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

// Schedule is a lookahead schedule: a date range split into weeks, a weekly
// work-day pattern, and the tasks staffed across it.
type Schedule struct {
	ID          string
	ShortID     string
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	HoursPerDay float64
	WorkDays    WorkDayPattern

	// CurrentWeekIndex is the week the editor is looking at. It is stored as
	// written; readers clamp it to the schedule's week range.
	CurrentWeekIndex int

	Tasks []*Task

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeShortID trims and upper-cases a user-typed short ID.
func NormalizeShortID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 3-6 uppercase letters followed by 2-4 digits (e.g. LAS01).
func (s *Schedule) ValidateShortID() error {
	if s.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(s.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. LAS01)", s.ShortID)
	}
	return nil
}

// Validate checks the invariants a schedule must hold before it is stored.
func (s *Schedule) Validate() error {
	if err := s.ValidateShortID(); err != nil {
		return err
	}
	if s.Name == "" {
		return fmt.Errorf("schedule name is required")
	}
	if s.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if s.EndDate.IsZero() {
		return fmt.Errorf("end date is required")
	}
	if s.EndDate.Before(s.StartDate) {
		return fmt.Errorf("end date %s is before start date %s",
			s.EndDate.Format("2006-01-02"), s.StartDate.Format("2006-01-02"))
	}
	if s.HoursPerDay <= 0 {
		return fmt.Errorf("hours per day must be positive, got %g", s.HoursPerDay)
	}
	return s.WorkDays.Validate()
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (s *Schedule) DisplayID() string {
	if s.ShortID != "" {
		return s.ShortID
	}
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}

// TaskByID returns the task with the given id and its index in Tasks.
func (s *Schedule) TaskByID(id string) (*Task, int, bool) {
	for i, t := range s.Tasks {
		if t.ID == id {
			return t, i, true
		}
	}
	return nil, -1, false
}
