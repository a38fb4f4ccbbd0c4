package service

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/alexanderramin/lookahead/internal/importer"
	"github.com/alexanderramin/lookahead/internal/repository"
	"github.com/alexanderramin/lookahead/internal/testutil"
)

type testEnv struct {
	db        *sql.DB
	schedules repository.ScheduleRepo
	tasks     repository.TaskRepo
	manpower  repository.ManpowerRepo
	svc       ScheduleService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	env := &testEnv{
		db:        database,
		schedules: repository.NewSQLiteScheduleRepo(database),
		tasks:     repository.NewSQLiteTaskRepo(database),
		manpower:  repository.NewSQLiteManpowerRepo(database),
	}
	env.svc = NewScheduleService(env.schedules, env.tasks, env.manpower, testutil.NewTestUoW(database))
	return env
}

func (e *testEnv) editorService() EditorService {
	return NewEditorService(e.svc, e.schedules, e.tasks, e.manpower, nil)
}

var testImportDefaults = importer.Defaults{HoursPerDay: 8, WorkDays: domain.DefaultWorkDays()}

func intPtr(i int) *int { return &i }
