package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSchedule(t *testing.T) *ScheduledTicket {
	t.Helper()
	st, err := NewScheduledTicket("Monthly filters", "Replace HVAC filters", "Check sizes in the closet first", "08:30")
	require.NoError(t, err)
	st.ClearDomainEvents()
	return st
}

func weekdayPtr(d time.Weekday) *time.Weekday { return &d }
func intPtr(n int) *int                       { return &n }

func TestNewScheduledTicket(t *testing.T) {
	t.Run("valid schedule", func(t *testing.T) {
		st, err := NewScheduledTicket("Monthly filters", "Replace HVAC filters", "Check sizes first", "08:30")

		require.NoError(t, err)
		assert.Equal(t, "Monthly filters", st.Name)
		assert.Equal(t, "Replace HVAC filters", st.Subject)
		assert.Equal(t, CadenceDaily, st.Cadence)
		assert.Equal(t, "NORMAL", st.Priority)
		assert.Equal(t, "08:30", st.TimeOfDay)
		assert.True(t, st.Active)
		assert.Nil(t, st.LastRunAt)

		events := st.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeScheduledTicketCreated, events[0].EventType())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewScheduledTicket("", "Subject", "body", "08:30")
		assert.Error(t, err)
	})

	t.Run("empty subject", func(t *testing.T) {
		_, err := NewScheduledTicket("Name", "  ", "body", "08:30")
		assert.Error(t, err)
	})

	t.Run("invalid time of day", func(t *testing.T) {
		for _, bad := range []string{"8:30", "24:00", "12:60", "noon", ""} {
			_, err := NewScheduledTicket("Name", "Subject", "body", bad)
			assert.Error(t, err, "expected %q to be rejected", bad)
		}
	})
}

func TestScheduledTicket_SetCadence(t *testing.T) {
	t.Run("weekly requires weekday", func(t *testing.T) {
		st := createTestSchedule(t)

		err := st.SetCadence(CadenceWeekly, nil, nil, "09:00")
		assert.Error(t, err)

		err = st.SetCadence(CadenceWeekly, weekdayPtr(time.Monday), nil, "09:00")
		require.NoError(t, err)
		assert.Equal(t, CadenceWeekly, st.Cadence)
		assert.Equal(t, time.Monday, *st.Weekday)
		assert.Nil(t, st.MonthDay)
	})

	t.Run("monthly requires day between 1 and 28", func(t *testing.T) {
		st := createTestSchedule(t)

		err := st.SetCadence(CadenceMonthly, nil, nil, "09:00")
		assert.Error(t, err)

		err = st.SetCadence(CadenceMonthly, nil, intPtr(0), "09:00")
		assert.Error(t, err)

		err = st.SetCadence(CadenceMonthly, nil, intPtr(31), "09:00")
		assert.Error(t, err)

		err = st.SetCadence(CadenceMonthly, nil, intPtr(15), "09:00")
		require.NoError(t, err)
		assert.Equal(t, 15, *st.MonthDay)
		assert.Nil(t, st.Weekday)
	})

	t.Run("switching to daily clears date rule", func(t *testing.T) {
		st := createTestSchedule(t)
		require.NoError(t, st.SetCadence(CadenceWeekly, weekdayPtr(time.Friday), nil, "09:00"))

		require.NoError(t, st.SetCadence(CadenceDaily, nil, nil, "10:00"))
		assert.Nil(t, st.Weekday)
		assert.Nil(t, st.MonthDay)
		assert.Equal(t, "10:00", st.TimeOfDay)
	})
}

func TestScheduledTicket_SetPriority(t *testing.T) {
	st := createTestSchedule(t)

	require.NoError(t, st.SetPriority("urgent"))
	assert.Equal(t, "URGENT", st.Priority)

	assert.Error(t, st.SetPriority("critical"))
}

func TestScheduledTicket_IsDue(t *testing.T) {
	// 2025-06-09 is a Monday
	monday := time.Date(2025, 6, 9, 8, 30, 0, 0, time.UTC)

	t.Run("daily fires at its time", func(t *testing.T) {
		st := createTestSchedule(t)

		assert.True(t, st.IsDue(monday))
		assert.False(t, st.IsDue(monday.Add(time.Minute)))
		assert.False(t, st.IsDue(monday.Add(-time.Minute)))
	})

	t.Run("disabled never fires", func(t *testing.T) {
		st := createTestSchedule(t)
		require.NoError(t, st.Disable())

		assert.False(t, st.IsDue(monday))
	})

	t.Run("weekly fires only on its weekday", func(t *testing.T) {
		st := createTestSchedule(t)
		require.NoError(t, st.SetCadence(CadenceWeekly, weekdayPtr(time.Monday), nil, "08:30"))

		assert.True(t, st.IsDue(monday))
		assert.False(t, st.IsDue(monday.AddDate(0, 0, 1)))
	})

	t.Run("monthly fires only on its day", func(t *testing.T) {
		st := createTestSchedule(t)
		require.NoError(t, st.SetCadence(CadenceMonthly, nil, intPtr(9), "08:30"))

		assert.True(t, st.IsDue(monday))
		assert.False(t, st.IsDue(monday.AddDate(0, 0, 1)))
	})

	t.Run("does not fire twice in the same minute", func(t *testing.T) {
		st := createTestSchedule(t)

		require.True(t, st.IsDue(monday))
		st.MarkRan(monday)

		assert.False(t, st.IsDue(monday.Add(20*time.Second)))
		assert.True(t, st.IsDue(monday.AddDate(0, 0, 1)))
	})
}

func TestScheduledTicket_EnableDisable(t *testing.T) {
	st := createTestSchedule(t)

	require.NoError(t, st.Disable())
	assert.False(t, st.Active)
	assert.Error(t, st.Disable())

	require.NoError(t, st.Enable())
	assert.True(t, st.Active)
	assert.Error(t, st.Enable())
}

func TestScheduledTicket_Assign(t *testing.T) {
	st := createTestSchedule(t)
	userID := uuid.New()

	st.Assign(&userID)
	require.NotNil(t, st.AssigneeID)
	assert.Equal(t, userID, *st.AssigneeID)

	st.Assign(nil)
	assert.Nil(t, st.AssigneeID)
}
