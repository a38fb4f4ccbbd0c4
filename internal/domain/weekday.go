package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Weekday is a work-day designator: Monday=1 through Sunday=7.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayAbbrev = map[Weekday]string{
	Monday: "Mon", Tuesday: "Tue", Wednesday: "Wed", Thursday: "Thu",
	Friday: "Fri", Saturday: "Sat", Sunday: "Sun",
}

// FromTimeWeekday converts a time.Weekday so Sunday maps to 7 and
// Monday..Saturday map to 1..6.
func FromTimeWeekday(wd time.Weekday) Weekday {
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// Valid reports whether d is one of the seven designators.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if s, ok := weekdayAbbrev[d]; ok {
		return s
	}
	return fmt.Sprintf("Weekday(%d)", int(d))
}

// WorkDayPattern is the fixed set of weekdays worked for a whole schedule.
// Values built through NewWorkDayPattern or ParseWorkDayPattern are sorted
// and free of duplicates.
type WorkDayPattern []Weekday

// NewWorkDayPattern sorts and de-duplicates days.
func NewWorkDayPattern(days ...Weekday) WorkDayPattern {
	seen := make(map[Weekday]bool, len(days))
	out := make(WorkDayPattern, 0, len(days))
	for _, d := range days {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefaultWorkDays returns Monday through Friday.
func DefaultWorkDays() WorkDayPattern {
	return NewWorkDayPattern(Monday, Tuesday, Wednesday, Thursday, Friday)
}

// ParseWorkDayPattern parses a comma separated list of designators such as
// "1,2,3,4,5".
func ParseWorkDayPattern(s string) (WorkDayPattern, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("work-day pattern is empty")
	}
	var days []Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("work day %q is not a number", part)
		}
		d := Weekday(n)
		if !d.Valid() {
			return nil, fmt.Errorf("work day %d out of range (1=Mon … 7=Sun)", n)
		}
		days = append(days, d)
	}
	return NewWorkDayPattern(days...), nil
}

// Contains reports whether d is a working day.
func (p WorkDayPattern) Contains(d Weekday) bool {
	for _, x := range p {
		if x == d {
			return true
		}
	}
	return false
}

func (p WorkDayPattern) Len() int { return len(p) }

// Validate checks the pattern is non-empty and holds only valid designators.
func (p WorkDayPattern) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("work-day pattern must contain at least one day")
	}
	for _, d := range p {
		if !d.Valid() {
			return fmt.Errorf("work day %d out of range (1=Mon … 7=Sun)", int(d))
		}
	}
	return nil
}

// Designators renders the pattern as "1,2,3" for storage.
func (p WorkDayPattern) Designators() string {
	parts := make([]string, len(p))
	for i, d := range p {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func (p WorkDayPattern) String() string {
	parts := make([]string, len(p))
	for i, d := range p {
		parts[i] = d.String()
	}
	return strings.Join(parts, ",")
}
