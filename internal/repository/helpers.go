package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is wrapped by every "<entity> not found" error.
var ErrNotFound = errors.New("not found")

const dateLayout = "2006-01-02"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return nowUTC()
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamps(createdAt, updatedAt string) (time.Time, time.Time, error) {
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing created_at: %w", err)
	}
	updated, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return created, updated, nil
}

// encodeCounts renders a manpower row as a JSON array. A nil row is
// stored as [].
func encodeCounts(counts []int) (string, error) {
	if counts == nil {
		counts = []int{}
	}
	b, err := json.Marshal(counts)
	if err != nil {
		return "", fmt.Errorf("encoding counts: %w", err)
	}
	return string(b), nil
}

func decodeCounts(s string) ([]int, error) {
	var counts []int
	if err := json.Unmarshal([]byte(s), &counts); err != nil {
		return nil, fmt.Errorf("decoding counts %q: %w", s, err)
	}
	if counts == nil {
		counts = []int{}
	}
	return counts, nil
}
