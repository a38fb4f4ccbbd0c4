package form

import (
	"testing"
	"time"

	"github.com/alexanderramin/lookahead/internal/calendar"
	"github.com/alexanderramin/lookahead/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *Field[T]) subscribers() int {
	return len(f.subs)
}

func TestField_SetClearSubscribe(t *testing.T) {
	var f Field[int]
	_, ok := f.Get()
	assert.False(t, ok)

	var seen []int
	unsub := f.Subscribe(func(v int, ok bool) {
		if ok {
			seen = append(seen, v)
		} else {
			seen = append(seen, -1)
		}
	})
	f.Set(3)
	f.Clear()
	f.Set(5)
	assert.Equal(t, []int{3, -1, 5}, seen)

	unsub()
	unsub()
	f.Set(9)
	assert.Equal(t, []int{3, -1, 5}, seen)
	assert.Zero(t, f.subscribers())

	v, ok := f.Get()
	assert.True(t, ok)
	assert.Equal(t, 9, v)
}

func TestRecompute(t *testing.T) {
	start := calendar.Date(2025, 1, 6)

	end, ok := Recompute(start, 3)
	require.True(t, ok)
	assert.Equal(t, calendar.Date(2025, 1, 26), end)

	end, ok = Recompute(start, 1)
	require.True(t, ok)
	assert.Equal(t, calendar.Date(2025, 1, 12), end, "one week from Monday ends on Sunday")

	_, ok = Recompute(start, 0)
	assert.False(t, ok)
	_, ok = Recompute(time.Time{}, 2)
	assert.False(t, ok)
}

func TestBindEndDate_RecomputesOnEitherInput(t *testing.T) {
	f := NewScheduleForm(8, domain.DefaultWorkDays())
	defer f.Close()

	_, ok := f.EndDate.Get()
	assert.False(t, ok)

	f.StartDate.Set(calendar.Date(2025, 1, 6))
	_, ok = f.EndDate.Get()
	assert.False(t, ok, "weeks still missing")

	f.TotalWeeks.Set(3)
	assert.Equal(t, "2025-01-26", f.EndDateText())

	f.TotalWeeks.Set(4)
	assert.Equal(t, "2025-02-02", f.EndDateText())

	f.StartDate.Set(calendar.Date(2025, 2, 3))
	assert.Equal(t, "2025-03-02", f.EndDateText())
}

func TestBindEndDate_InvalidInputClearsDerivedValue(t *testing.T) {
	f := NewScheduleForm(8, domain.DefaultWorkDays())
	defer f.Close()

	require.NoError(t, f.SetStartDateText("2025-01-06"))
	require.NoError(t, f.SetTotalWeeksText("3"))
	assert.Equal(t, "2025-01-26", f.EndDateText())

	f.TotalWeeks.Set(0)
	assert.Empty(t, f.EndDateText())

	f.TotalWeeks.Set(2)
	assert.Equal(t, "2025-01-19", f.EndDateText())
	require.NoError(t, f.SetStartDateText(""))
	assert.Empty(t, f.EndDateText())
}

func TestBindEndDate_KeepsDirectlySetEndDate(t *testing.T) {
	f := NewScheduleForm(8, domain.DefaultWorkDays())
	defer f.Close()

	f.EndDate.Set(calendar.Date(2025, 3, 2))
	require.NoError(t, f.SetStartDateText("2025-01-06"))
	assert.Equal(t, "2025-03-02", f.EndDateText())
}

func TestScheduleForm_BuildAfterWeeksCleared(t *testing.T) {
	f := NewScheduleForm(8, domain.DefaultWorkDays())
	defer f.Close()
	f.Name.Set("Slab")
	f.ShortID.Set("LAS01")
	require.NoError(t, f.SetStartDateText("2025-01-06"))
	require.NoError(t, f.SetTotalWeeksText("3"))

	require.NoError(t, f.SetTotalWeeksText(""))
	require.NoError(t, f.SetStartDateText("2024-12-02"))

	_, err := f.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end date is required")

	require.NoError(t, f.SetTotalWeeksText("2"))
	s, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, calendar.Date(2024, 12, 15), s.EndDate)
	assert.Equal(t, 2, calendar.TotalWeeks(s))
}

func TestScheduleForm_BuildFollowsWeeksAfterClose(t *testing.T) {
	f := NewScheduleForm(8, domain.DefaultWorkDays())
	f.Name.Set("Slab")
	f.ShortID.Set("LAS01")
	require.NoError(t, f.SetStartDateText("2025-01-06"))
	require.NoError(t, f.SetTotalWeeksText("3"))
	f.Close()

	f.TotalWeeks.Set(1)
	s, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, calendar.Date(2025, 1, 12), s.EndDate)
}

func TestBindEndDate_ComputesImmediatelyWhenInputsPresent(t *testing.T) {
	f := &ScheduleForm{}
	f.StartDate.Set(calendar.Date(2025, 1, 6))
	f.TotalWeeks.Set(2)

	sync := BindEndDate(f)
	defer sync.Close()
	assert.Equal(t, "2025-01-19", f.EndDateText())
}

func TestEndDateSync_CloseStopsRecomputation(t *testing.T) {
	f := NewScheduleForm(8, domain.DefaultWorkDays())
	f.StartDate.Set(calendar.Date(2025, 1, 6))
	f.TotalWeeks.Set(3)
	require.Equal(t, "2025-01-26", f.EndDateText())

	f.Close()
	f.Close()
	assert.Zero(t, f.StartDate.subscribers())
	assert.Zero(t, f.TotalWeeks.subscribers())

	f.TotalWeeks.Set(10)
	assert.Equal(t, "2025-01-26", f.EndDateText())
}

func TestScheduleForm_TextSetters(t *testing.T) {
	f := NewScheduleForm(8, domain.DefaultWorkDays())
	defer f.Close()

	assert.Error(t, f.SetStartDateText("06/01/2025"))
	assert.Error(t, f.SetTotalWeeksText("0"))
	assert.Error(t, f.SetTotalWeeksText("two"))
	require.NoError(t, f.SetStartDateText(" 2025-01-06 "))
	require.NoError(t, f.SetTotalWeeksText(" 2 "))
	assert.Equal(t, "2025-01-19", f.EndDateText())

	assert.Error(t, f.SetTotalWeeksText("two"))
	_, ok := f.TotalWeeks.Get()
	assert.False(t, ok)
	assert.Empty(t, f.EndDateText())
}

func TestScheduleForm_Build(t *testing.T) {
	f := NewScheduleForm(7.5, domain.NewWorkDayPattern(domain.Monday, domain.Tuesday))
	defer f.Close()

	_, err := f.Build()
	require.Error(t, err)

	f.Name.Set(" Podium pour ")
	f.ShortID.Set("las01")
	require.NoError(t, f.SetStartDateText("2025-01-06"))
	require.NoError(t, f.SetTotalWeeksText("3"))

	s, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, "Podium pour", s.Name)
	assert.Equal(t, "LAS01", s.ShortID)
	assert.Equal(t, calendar.Date(2025, 1, 6), s.StartDate)
	assert.Equal(t, calendar.Date(2025, 1, 26), s.EndDate)
	assert.Equal(t, 7.5, s.HoursPerDay)
	assert.Equal(t, "1,2", s.WorkDays.Designators())
	assert.Equal(t, 3, calendar.TotalWeeks(s))
}

func TestScheduleForm_BuildMissingEndDate(t *testing.T) {
	f := NewScheduleForm(8, domain.DefaultWorkDays())
	defer f.Close()
	f.Name.Set("Slab")
	f.ShortID.Set("LAS01")
	require.NoError(t, f.SetStartDateText("2025-01-06"))

	_, err := f.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end date")
}
