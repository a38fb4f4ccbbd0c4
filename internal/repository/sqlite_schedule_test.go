package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/alexanderramin/lookahead/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScheduleRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSchedule("Level 2 slab",
		testutil.WithHoursPerDay(7.5),
		testutil.WithWorkDays(domain.Monday, domain.Wednesday, domain.Saturday),
		testutil.WithCurrentWeek(1),
	)
	require.NoError(t, repo.Create(ctx, s))

	fetched, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, fetched.ID)
	assert.Equal(t, s.ShortID, fetched.ShortID)
	assert.Equal(t, "Level 2 slab", fetched.Name)
	assert.Equal(t, calendar.Date(2025, 1, 6), fetched.StartDate)
	assert.Equal(t, calendar.Date(2025, 1, 26), fetched.EndDate)
	assert.Equal(t, 7.5, fetched.HoursPerDay)
	assert.Equal(t, "1,3,6", fetched.WorkDays.Designators())
	assert.Equal(t, 1, fetched.CurrentWeekIndex)
	assert.True(t, s.CreatedAt.Equal(fetched.CreatedAt))
}

func TestScheduleRepo_GetByShortID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScheduleRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSchedule("Podium", testutil.WithShortID("POD01"))
	require.NoError(t, repo.Create(ctx, s))

	// Case-insensitive lookup.
	fetched, err := repo.GetByShortID(ctx, "pod01")
	require.NoError(t, err)
	assert.Equal(t, s.ID, fetched.ID)
}

func TestScheduleRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScheduleRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "schedule not found", err.Error())
}

func TestScheduleRepo_ShortIDUnique(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScheduleRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestSchedule("A", testutil.WithShortID("DUP01"))))
	err := repo.Create(ctx, testutil.NewTestSchedule("B", testutil.WithShortID("DUP01")))
	assert.Error(t, err)
}

func TestScheduleRepo_ListOrdersByStartDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScheduleRepo(db)
	ctx := context.Background()

	later := testutil.NewTestSchedule("Later",
		testutil.WithDates(calendar.Date(2025, 3, 3), calendar.Date(2025, 3, 30)))
	earlier := testutil.NewTestSchedule("Earlier")
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, earlier))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Earlier", list[0].Name)
	assert.Equal(t, "Later", list[1].Name)
}

func TestScheduleRepo_UpdateAndCurrentWeek(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScheduleRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSchedule("Slab")
	require.NoError(t, repo.Create(ctx, s))

	s.Name = "Slab east"
	s.EndDate = calendar.Date(2025, 2, 2)
	require.NoError(t, repo.Update(ctx, s))
	require.NoError(t, repo.UpdateCurrentWeek(ctx, s.ID, 2))

	fetched, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Slab east", fetched.Name)
	assert.Equal(t, calendar.Date(2025, 2, 2), fetched.EndDate)
	assert.Equal(t, 2, fetched.CurrentWeekIndex)

	err = repo.UpdateCurrentWeek(ctx, "missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScheduleRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScheduleRepo(db)
	ctx := context.Background()

	s := testutil.NewTestSchedule("Gone")
	require.NoError(t, repo.Create(ctx, s))
	require.NoError(t, repo.Delete(ctx, s.ID))

	_, err := repo.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
