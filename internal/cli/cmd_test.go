package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/config"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/alexanderramin/lookahead/internal/importer"
	"github.com/alexanderramin/lookahead/internal/repository"
	"github.com/alexanderramin/lookahead/internal/service"
	"github.com/alexanderramin/lookahead/internal/testutil"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	database := testutil.NewTestDB(t)

	schedules := repository.NewSQLiteScheduleRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	manpower := repository.NewSQLiteManpowerRepo(database)
	uow := testutil.NewTestUoW(database)

	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	scheduleSvc := service.NewScheduleService(schedules, tasks, manpower, uow)
	return &App{
		Schedules: scheduleSvc,
		Editor:    service.NewEditorService(scheduleSvc, schedules, tasks, manpower, nil),
		Import:    service.NewImportService(uow, importer.Defaults{HoursPerDay: 8, WorkDays: domain.DefaultWorkDays()}),
		Export:    service.NewExportService(scheduleSvc),
		Config:    cfg,
	}
}

// seedSchedule stores LAS01: 2025-01-06..2025-01-21 (three weeks, the last
// with two work days) with two tasks.
func seedSchedule(t *testing.T, app *App) *domain.Schedule {
	t.Helper()
	s := testutil.NewTestSchedule("Level 2 slab",
		testutil.WithShortID("LAS01"),
		testutil.WithDates(calendar.Date(2025, 1, 6), calendar.Date(2025, 1, 21)),
		testutil.WithTasks(
			testutil.NewTestTask("", "Pour deck", testutil.WithManpower(0, 2, 2, 1, 1, 2)),
			testutil.NewTestTask("", "Strip forms"),
		),
	)
	require.NoError(t, app.Schedules.Create(context.Background(), s))
	return s
}

func reload(t *testing.T, app *App, ref string) *domain.Schedule {
	t.Helper()
	s, err := app.Schedules.Resolve(context.Background(), ref)
	require.NoError(t, err)
	return s
}

func taskNames(s *domain.Schedule) []string {
	names := make([]string, len(s.Tasks))
	for i, task := range s.Tasks {
		names[i] = task.Name
	}
	return names
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- root ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "lookahead")
	assert.Contains(t, output, "schedule")
}

func TestRootCmd_BootstrapHooks(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)
	cfg := app.Config
	app.Config = nil

	var gotPath string
	var gotDB string
	connects := 0
	app.LoadConfig = func(path string, flags *pflag.FlagSet) (*config.Config, error) {
		gotPath = path
		gotDB, _ = flags.GetString("db")
		return cfg, nil
	}
	app.Connect = func(*config.Config) error {
		connects++
		return nil
	}

	_, err := executeCmd(t, app, "--config", "/tmp/lookahead.yaml", "--db", "/tmp/x.db", "schedule", "list")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/lookahead.yaml", gotPath)
	assert.Equal(t, "/tmp/x.db", gotDB)
	assert.Equal(t, 1, connects)
	assert.Same(t, cfg, app.Config)

	_, err = executeCmd(t, app, "config", "show")
	require.NoError(t, err)
	assert.Equal(t, 1, connects, "config commands stay offline")
}

// --- schedule ---

func TestScheduleAdd_WithWeeks(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "schedule", "add", "--id", "slb01", "--name", "Slab", "--start", "2025-01-06", "--weeks", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "SLB01")
	assert.Contains(t, out, "2025-01-26")
	assert.Contains(t, out, "3 weeks")

	s := reload(t, app, "SLB01")
	assert.Equal(t, calendar.Date(2025, 1, 26), s.EndDate)
	assert.Equal(t, 8.0, s.HoursPerDay)
	assert.Equal(t, "1,2,3,4,5", s.WorkDays.Designators())
}

func TestScheduleAdd_WithEndDateAndOverrides(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "schedule", "add", "--id", "POD01", "--name", "Podium",
		"--start", "2025-01-06", "--end", "2025-01-11", "--hours", "10", "--work-days", "1,2,3,4,5,6")
	require.NoError(t, err)

	s := reload(t, app, "POD01")
	assert.Equal(t, calendar.Date(2025, 1, 11), s.EndDate)
	assert.Equal(t, 10.0, s.HoursPerDay)
	assert.True(t, s.WorkDays.Contains(domain.Saturday))
}

func TestScheduleAdd_UsesConfigDefaults(t *testing.T) {
	app := testApp(t)
	app.Config.Schedule.HoursPerDay = 9.5
	app.Config.Schedule.WorkDays = "1,2,3,4"

	_, err := executeCmd(t, app, "schedule", "add", "--id", "CFG01", "--name", "Cfg", "--start", "2025-01-06", "--weeks", "1")
	require.NoError(t, err)

	s := reload(t, app, "CFG01")
	assert.Equal(t, 9.5, s.HoursPerDay)
	assert.Equal(t, "1,2,3,4", s.WorkDays.Designators())
}

func TestScheduleAdd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"weeks and end", []string{"--weeks", "3", "--end", "2025-01-26"}, "exactly one of --weeks and --end"},
		{"neither", nil, "exactly one of --weeks and --end"},
		{"zero weeks", []string{"--weeks", "0"}, "positive whole number"},
		{"end before start", []string{"--end", "2025-01-01"}, "before start date"},
		{"bad work days", []string{"--weeks", "1", "--work-days", "1,8"}, "--work-days"},
		{"negative hours", []string{"--weeks", "1", "--hours", "-2"}, "hours per day must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			args := append([]string{"schedule", "add", "--id", "ERR01", "--name", "Err", "--start", "2025-01-06"}, tt.args...)
			_, err := executeCmd(t, app, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestScheduleAdd_InvalidShortID(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "schedule", "add", "--id", "X1", "--name", "Bad", "--start", "2025-01-06", "--weeks", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "short ID")
}

func TestScheduleList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "schedule", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No schedules found.")

	seedSchedule(t, app)
	out, err = executeCmd(t, app, "schedule", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "LAS01")
	assert.Contains(t, out, "Level 2 slab")
}

func TestScheduleInspect(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	out, err := executeCmd(t, app, "schedule", "inspect", "las01")
	require.NoError(t, err)
	assert.Contains(t, out, "Week 1 of 3")
	assert.Contains(t, out, "Pour deck")
	assert.Contains(t, out, "64h")
}

func TestScheduleInspect_NotFound(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "schedule", "inspect", "NOPE01")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestScheduleRemove(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	out, err := executeCmd(t, app, "schedule", "remove", "LAS01")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed schedule Level 2 slab")

	_, err = app.Schedules.Resolve(context.Background(), "LAS01")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestScheduleImport(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "schedule", "import", filepath.Join("..", "importer", "testdata", "podium.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Podium slab [POD01]")
	assert.Contains(t, out, "2 tasks")

	s := reload(t, app, "POD01")
	assert.Equal(t, []string{"Formwork", "Rebar"}, taskNames(s))
}

func TestScheduleImport_BadFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schedule:\n  name: Missing everything\n"), 0o644))

	_, err := executeCmd(t, app, "schedule", "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "short_id")
}

func TestScheduleExport(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)
	dir := t.TempDir()

	out, err := executeCmd(t, app, "schedule", "export", "LAS01", "--out", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "las01-lookahead.xlsx")
	assert.Contains(t, out, path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestScheduleExport_DefaultsToConfigDir(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)
	app.Config.Export.Dir = filepath.Join(t.TempDir(), "exports")

	_, err := executeCmd(t, app, "schedule", "export", "LAS01")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(app.Config.Export.Dir, "las01-lookahead.xlsx"))
}

// --- task ---

func TestTaskAdd(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	out, err := executeCmd(t, app, "task", "add", "LAS01", "Cure", "slab")
	require.NoError(t, err)
	assert.Contains(t, out, "Added task #3 Cure slab")

	s := reload(t, app, "LAS01")
	assert.Equal(t, []string{"Pour deck", "Strip forms", "Cure slab"}, taskNames(s))
	assert.Empty(t, s.Tasks[2].Manpower)
}

func TestTaskRename(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	_, err := executeCmd(t, app, "task", "rename", "LAS01", "2", "Strip", "and", "clean")
	require.NoError(t, err)

	s := reload(t, app, "LAS01")
	assert.Equal(t, "Strip and clean", s.Tasks[1].Name)
}

func TestTaskRemove_ByName(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	_, err := executeCmd(t, app, "task", "remove", "LAS01", "pour deck")
	require.NoError(t, err)

	s := reload(t, app, "LAS01")
	require.Len(t, s.Tasks, 1)
	assert.Equal(t, "Strip forms", s.Tasks[0].Name)
	assert.Equal(t, 0, s.Tasks[0].Position)
}

func TestTaskMove(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	out, err := executeCmd(t, app, "task", "move", "LAS01", "2", "--to", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved Strip forms to #1")

	s := reload(t, app, "LAS01")
	assert.Equal(t, []string{"Strip forms", "Pour deck"}, taskNames(s))
	assert.Equal(t, []int{2, 2, 1, 1, 2}, s.Tasks[1].Manpower[0], "manpower follows the task")
}

func TestTask_Unknown(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	_, err := executeCmd(t, app, "task", "remove", "LAS01", "Scaffold")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task not found")

	_, err = executeCmd(t, app, "task", "remove", "LAS01", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task #7 not found")
}

// --- manpower ---

func TestManpowerSet_Row(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	out, err := executeCmd(t, app, "manpower", "set", "LAS01", "2", "3,3,3", "--week", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Week 2 of 3")
	assert.Contains(t, out, "72h")

	s := reload(t, app, "LAS01")
	assert.Equal(t, []int{3, 3, 3, 0, 0}, s.Tasks[1].Manpower[1])
}

func TestManpowerSet_SingleDayCoercesInput(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	_, err := executeCmd(t, app, "manpower", "set", "LAS01", "1", "4.8", "--day", "2")
	require.NoError(t, err)
	s := reload(t, app, "LAS01")
	assert.Equal(t, []int{2, 4, 1, 1, 2}, s.Tasks[0].Manpower[0])

	_, err = executeCmd(t, app, "manpower", "set", "LAS01", "1", "--day", "1", "--", "-4")
	require.NoError(t, err)
	s = reload(t, app, "LAS01")
	assert.Equal(t, []int{0, 4, 1, 1, 2}, s.Tasks[0].Manpower[0])
}

func TestManpowerSet_ShortLastWeek(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	_, err := executeCmd(t, app, "manpower", "set", "LAS01", "1", "1,1,1", "--week", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "week 3 has 2 work days")

	_, err = executeCmd(t, app, "manpower", "set", "LAS01", "1", "5", "--week", "3", "--day", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "day 3 out of range")

	_, err = executeCmd(t, app, "manpower", "set", "LAS01", "1", "1,1", "--week", "3")
	require.NoError(t, err)
	s := reload(t, app, "LAS01")
	assert.Equal(t, []int{1, 1}, s.Tasks[0].Manpower[2])
}

func TestManpowerSet_WeekOutOfRange(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	_, err := executeCmd(t, app, "manpower", "set", "LAS01", "1", "1", "--week", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "week 4 out of range")
}

// --- week ---

func TestWeekCmd_ShowsCurrentWeek(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	out, err := executeCmd(t, app, "week", "LAS01")
	require.NoError(t, err)
	assert.Contains(t, out, "Week 1 of 3")
	assert.Contains(t, out, "Mon 01-06")
	assert.Contains(t, out, "64h")
}

func TestWeekCmd_NavigationPersists(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	out, err := executeCmd(t, app, "week", "LAS01", "--week", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Week 3 of 3")
	assert.Contains(t, out, "Tue 01-21")
	assert.Equal(t, 2, reload(t, app, "LAS01").CurrentWeekIndex)

	out, err = executeCmd(t, app, "week", "LAS01", "--next")
	require.NoError(t, err)
	assert.Contains(t, out, "Already at the last week.")
	assert.Equal(t, 2, reload(t, app, "LAS01").CurrentWeekIndex)

	out, err = executeCmd(t, app, "week", "LAS01", "--prev")
	require.NoError(t, err)
	assert.Contains(t, out, "Week 2 of 3")
	assert.Equal(t, 1, reload(t, app, "LAS01").CurrentWeekIndex)
}

func TestWeekCmd_ConflictingFlags(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)

	_, err := executeCmd(t, app, "week", "LAS01", "--next", "--prev")
	require.Error(t, err)
}

// --- interactive commands ---

func TestInteractiveCommands_RequireTerminal(t *testing.T) {
	app := testApp(t)
	seedSchedule(t, app)
	app.IsInteractive = func() bool { return false }

	_, err := executeCmd(t, app, "new")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule add")

	_, err = executeCmd(t, app, "edit", "LAS01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manpower set")
}

// --- config ---

func TestConfigShow(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "hours_per_day: 8")
	assert.Contains(t, out, "work_days: 1,2,3,4,5")
}

func TestConfigInit(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := executeCmd(t, app, "config", "init", "--path", path)
	require.NoError(t, err)

	loaded, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, app.Config.Schedule, loaded.Schedule)

	_, err = executeCmd(t, app, "config", "init", "--path", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
