package domain

import "time"

// Task is one row of the lookahead grid.
type Task struct {
	ID         string
	ScheduleID string
	Name       string
	Position   int

	// Manpower maps a week index to one count per valid work day of that
	// week, in date order.
	Manpower map[int][]int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTask returns a task with an empty manpower map.
func NewTask(id, scheduleID, name string) *Task {
	now := time.Now().UTC()
	return &Task{
		ID:         id,
		ScheduleID: scheduleID,
		Name:       name,
		Manpower:   make(map[int][]int),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Clone returns a deep copy so listeners cannot alias store state.
func (t *Task) Clone() *Task {
	c := *t
	c.Manpower = make(map[int][]int, len(t.Manpower))
	for w, counts := range t.Manpower {
		c.Manpower[w] = append([]int(nil), counts...)
	}
	return &c
}

// TaskPatch holds the fields an update may change. Nil fields are left alone.
type TaskPatch struct {
	Name *string
}

// Apply merges the patch into t and reports whether anything changed.
func (p TaskPatch) Apply(t *Task) bool {
	changed := false
	if p.Name != nil && *p.Name != t.Name {
		t.Name = *p.Name
		changed = true
	}
	return changed
}
