package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/alexanderramin/lookahead/internal/repository"
	"github.com/alexanderramin/lookahead/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleService_CreateWithTasksAndManpower(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sc := testutil.NewTestSchedule("Level 2 slab", testutil.WithShortID("LAS01"))
	sc.ID = ""
	sc.Tasks = []*domain.Task{
		{Name: "Formwork", Manpower: map[int][]int{0: {2, 2, 1, 1, 2}, 1: {1}}},
		{Name: "Rebar", Manpower: map[int][]int{}},
	}
	require.NoError(t, env.svc.Create(ctx, sc))
	assert.NotEmpty(t, sc.ID)
	assert.False(t, sc.CreatedAt.IsZero())

	fetched, err := env.svc.GetByID(ctx, sc.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Tasks, 2)
	assert.Equal(t, "Formwork", fetched.Tasks[0].Name)
	assert.Equal(t, 0, fetched.Tasks[0].Position)
	assert.Equal(t, 1, fetched.Tasks[1].Position)
	assert.Equal(t, []int{2, 2, 1, 1, 2}, fetched.Tasks[0].Manpower[0])
	assert.Equal(t, []int{1}, fetched.Tasks[0].Manpower[1])
	assert.Empty(t, fetched.Tasks[1].Manpower)
	assert.Equal(t, sc.ID, fetched.Tasks[1].ScheduleID)
}

func TestScheduleService_CreateRejectsInvalid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inverted := testutil.NewTestSchedule("Inverted",
		testutil.WithDates(calendar.Date(2025, 2, 3), calendar.Date(2025, 1, 6)))
	err := env.svc.Create(ctx, inverted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start date")

	noID := testutil.NewTestSchedule("No id", testutil.WithShortID(""))
	require.Error(t, env.svc.Create(ctx, noID))

	list, err := env.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestScheduleService_Resolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sc := testutil.NewTestSchedule("Podium", testutil.WithShortID("POD01"))
	require.NoError(t, env.svc.Create(ctx, sc))

	byShort, err := env.svc.Resolve(ctx, "pod01")
	require.NoError(t, err)
	assert.Equal(t, sc.ID, byShort.ID)

	byID, err := env.svc.Resolve(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, "POD01", byID.ShortID)

	_, err = env.svc.Resolve(ctx, "NOPE01")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, err.Error(), `"NOPE01"`)
}

func TestScheduleService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sc := testutil.NewTestSchedule("Gone")
	sc.Tasks = []*domain.Task{{Name: "Pour", Manpower: map[int][]int{0: {1}}}}
	require.NoError(t, env.svc.Create(ctx, sc))
	taskID := sc.Tasks[0].ID

	require.NoError(t, env.svc.Delete(ctx, sc.ID))
	_, err := env.svc.GetByID(ctx, sc.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	weeks, err := env.manpower.ListByTask(ctx, taskID)
	require.NoError(t, err)
	assert.Empty(t, weeks)

	err = env.svc.Delete(ctx, sc.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestScheduleService_ObservesUseCases(t *testing.T) {
	env := newTestEnv(t)
	var logs bytes.Buffer
	svc := NewScheduleService(env.schedules, env.tasks, env.manpower,
		testutil.NewTestUoW(env.db), NewLogUseCaseObserver(&logs))

	sc := testutil.NewTestSchedule("Observed", testutil.WithShortID("OBS01"))
	require.NoError(t, svc.Create(context.Background(), sc))

	out := logs.String()
	assert.Contains(t, out, "service_use_case")
	assert.Contains(t, out, "use_case=create-schedule")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "short_id=OBS01")
}
