package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/lookahead/internal/importer"
	"github.com/alexanderramin/lookahead/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validImportSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Schedule: importer.ScheduleImport{
			ShortID:   "RBT01",
			Name:      "Rollback slab",
			StartDate: "2025-01-06",
			Weeks:     intPtr(2),
		},
		Tasks: []importer.TaskImport{
			{Name: "Formwork", Manpower: []importer.WeekImport{
				{Week: 0, Counts: []int{1, 1, 1, 1, 1}},
				{Week: 1, Counts: []int{2, 2}},
			}},
			{Name: "Rebar"},
		},
	}
}

func TestImportService_ImportFileYAML(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewImportService(testutil.NewTestUoW(env.db), testImportDefaults)

	result, err := svc.ImportFile(ctx, filepath.Join("testdata", "podium.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 2, result.TaskCount)
	assert.Equal(t, 2, result.WeekRowCount)
	assert.Equal(t, "POD01", result.Schedule.ShortID)

	stored, err := env.svc.Resolve(ctx, "POD01")
	require.NoError(t, err)
	assert.Equal(t, "Podium slab", stored.Name)
	require.Len(t, stored.Tasks, 2)
	assert.Equal(t, []int{2, 2, 1, 1, 2}, stored.Tasks[0].Manpower[0])
	assert.Equal(t, []int{3, 3, 0, 0, 0}, stored.Tasks[0].Manpower[1])
}

func TestImportService_ImportFileJSON(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewImportService(testutil.NewTestUoW(env.db), testImportDefaults)

	path := filepath.Join(t.TempDir(), "slab.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"schedule": {"short_id": "JSN01", "name": "Json slab", "start_date": "2025-01-06", "end_date": "2025-01-12"},
		"tasks": [{"name": "Pour", "manpower": [{"week": 0, "counts": [4]}]}]
	}`), 0o644))

	result, err := svc.ImportFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.WeekRowCount)
	assert.Equal(t, 8.0, result.Schedule.HoursPerDay)
}

func TestImportService_ValidationErrorsAreAggregated(t *testing.T) {
	env := newTestEnv(t)
	svc := NewImportService(testutil.NewTestUoW(env.db), testImportDefaults)

	schema := validImportSchema()
	schema.Schedule.Name = ""
	schema.Tasks[1].Name = ""

	_, err := svc.ImportSchema(context.Background(), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "schedule.name is required")
	assert.Contains(t, err.Error(), "tasks[1].name is required")
}

func TestImportService_RollbackOnTaskCreateFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// "Formwork" and its weeks are written before the second task fails.
	failUoW := &testutil.FailingWriteUoW{
		DB:    env.db,
		Table: "tasks",
		N:     2,
		Err:   errors.New("injected task create failure"),
	}
	svc := NewImportService(failUoW, testImportDefaults)

	_, err := svc.ImportSchema(ctx, validImportSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected task create failure")
	assert.Contains(t, err.Error(), `creating task "Rebar"`)

	list, err := env.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "schedule should be rolled back")

	assert.Zero(t, testutil.CountRows(t, env.db, "task_manpower"))
}

func TestImportService_RollbackOnManpowerFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	failUoW := &testutil.FailingWriteUoW{
		DB:    env.db,
		Table: "task_manpower",
		N:     1,
		Err:   errors.New("injected manpower failure"),
	}
	svc := NewImportService(failUoW, testImportDefaults)

	_, err := svc.ImportSchema(ctx, validImportSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "week 0")

	list, err := env.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestImportService_DuplicateShortID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewImportService(testutil.NewTestUoW(env.db), testImportDefaults)

	_, err := svc.ImportSchema(ctx, validImportSchema())
	require.NoError(t, err)
	_, err = svc.ImportSchema(ctx, validImportSchema())
	require.Error(t, err)

	list, err := env.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
