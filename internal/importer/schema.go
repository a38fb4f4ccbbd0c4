package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a schedule import file.
type ImportSchema struct {
	Schedule ScheduleImport `json:"schedule" yaml:"schedule"`
	Tasks    []TaskImport   `json:"tasks" yaml:"tasks"`
}

// ScheduleImport defines the schedule header. Exactly one of EndDate and
// Weeks must be given.
type ScheduleImport struct {
	ShortID     string   `json:"short_id" yaml:"short_id"`
	Name        string   `json:"name" yaml:"name"`
	StartDate   string   `json:"start_date" yaml:"start_date"`
	EndDate     *string  `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Weeks       *int     `json:"weeks,omitempty" yaml:"weeks,omitempty"`
	HoursPerDay *float64 `json:"hours_per_day,omitempty" yaml:"hours_per_day,omitempty"`
	WorkDays    []int    `json:"work_days,omitempty" yaml:"work_days,omitempty"`
}

// TaskImport defines one task row. Tasks keep their file order.
type TaskImport struct {
	Name     string       `json:"name" yaml:"name"`
	Manpower []WeekImport `json:"manpower,omitempty" yaml:"manpower,omitempty"`
}

// WeekImport holds a task's counts for one week, one per valid work day.
type WeekImport struct {
	Week   int   `json:"week" yaml:"week"`
	Counts []int `json:"counts" yaml:"counts"`
}

// Format selects the decoder for an import file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported import file %q (use .json, .yaml or .yml)", filepath.Base(path))
	}
}

// LoadImportSchema reads and parses a schedule import file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data, format)
}

// ParseImportSchema decodes data. Unknown fields are rejected so typos in
// hand-written files surface instead of being dropped.
func ParseImportSchema(data []byte, format Format) (*ImportSchema, error) {
	var schema ImportSchema
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown import format %q", format)
	}
	return &schema, nil
}
