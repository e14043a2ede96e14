package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"salonbook/internal/domain"
)

func busyAt(start, end string, apptID int64) Busy {
	s, _ := ParseClock(start)
	e, _ := ParseClock(end)
	return Busy{Interval: Interval{Start: s, End: e}, AppointmentID: apptID}
}

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	s, err := ParseClock(start)
	assert.NoError(t, err)
	e, err := ParseClock(end)
	assert.NoError(t, err)
	return Interval{Start: s, End: e}
}

func TestIsFree_BoundaryAdjacent(t *testing.T) {
	busy := []Busy{busyAt("10:00", "10:30", 1)}

	assert.True(t, IsFree(mustInterval(t, "10:30", "11:00"), busy, 0))
	assert.True(t, IsFree(mustInterval(t, "09:30", "10:00"), busy, 0))
	assert.False(t, IsFree(mustInterval(t, "10:00", "10:30"), busy, 0))
	assert.False(t, IsFree(mustInterval(t, "10:29", "10:59"), busy, 0))
}

func TestIsFree_ExcludesOwnAppointment(t *testing.T) {
	busy := []Busy{busyAt("10:00", "10:30", 42)}

	// Shifting appointment 42 by 15 minutes overlaps its own prior slot;
	// with the exclusion set, that must not count as a conflict.
	shifted := mustInterval(t, "10:15", "10:45")
	assert.False(t, IsFree(shifted, busy, 0))
	assert.True(t, IsFree(shifted, busy, 42))

	// Other appointments still conflict.
	busy = append(busy, busyAt("10:30", "11:00", 7))
	assert.False(t, IsFree(shifted, busy, 42))
}

func TestAppointmentBusy_SkipsNonOccupying(t *testing.T) {
	appts := []domain.Appointment{
		{ID: 1, StartTime: "10:00", EndTime: "10:30", Status: domain.AppointmentConfirmed},
		{ID: 2, StartTime: "11:00", EndTime: "11:30", Status: domain.AppointmentCancelled},
		{ID: 3, StartTime: "12:00", EndTime: "12:30", Status: domain.AppointmentCompleted},
		{ID: 4, StartTime: "13:00", EndTime: "13:30", Status: domain.AppointmentNoShow},
		{ID: 5, StartTime: "14:00", EndTime: "14:30", Status: domain.AppointmentPending},
	}

	busy := AppointmentBusy(appts)
	assert.Len(t, busy, 2)
	assert.Equal(t, int64(1), busy[0].AppointmentID)
	assert.Equal(t, int64(5), busy[1].AppointmentID)
}

func TestAppointmentBusy_NormalizesSeconds(t *testing.T) {
	// A row persisted with a stray second must not poison boundary checks.
	appts := []domain.Appointment{
		{ID: 1, StartTime: "10:00:00", EndTime: "10:30:01", Status: domain.AppointmentConfirmed},
	}
	busy := AppointmentBusy(appts)
	assert.Len(t, busy, 1)
	assert.True(t, IsFree(mustInterval(t, "10:30", "11:00"), busy, 0))
}

func TestExclusionBusy_RecurringBreak(t *testing.T) {
	excl := []domain.Exclusion{
		{
			Type:      domain.ExclusionBreak,
			Kind:      domain.KindRecurring,
			Weekdays:  []time.Weekday{time.Monday, time.Wednesday},
			StartTime: "13:00",
			EndTime:   "14:00",
			Active:    true,
		},
	}

	busy := ExclusionBusy(excl, monday)
	assert.Len(t, busy, 1)
	assert.Equal(t, mustInterval(t, "13:00", "14:00"), busy[0].Interval)

	tuesday := monday.AddDate(0, 0, 1)
	assert.Empty(t, ExclusionBusy(excl, tuesday))
}

func TestExclusionBusy_RecurringBoundedRange(t *testing.T) {
	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	excl := []domain.Exclusion{
		{
			Type:      domain.ExclusionBreak,
			Kind:      domain.KindRecurring,
			Weekdays:  []time.Weekday{time.Monday},
			StartDate: &from,
			StartTime: "12:00",
			EndTime:   "13:00",
			Active:    true,
		},
	}

	// The rule only takes effect from March 9th.
	assert.Empty(t, ExclusionBusy(excl, monday))
	assert.Len(t, ExclusionBusy(excl, from), 1)
}

func TestExclusionBusy_OneOffVacationBlocksDay(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	excl := []domain.Exclusion{
		{
			Type:      domain.ExclusionVacation,
			Kind:      domain.KindOneOff,
			StartDate: &start,
			EndDate:   &end,
			Active:    true,
		},
	}

	busy := ExclusionBusy(excl, monday.AddDate(0, 0, 2))
	assert.Len(t, busy, 1)
	assert.Equal(t, Interval{Start: 0, End: EndOfDay}, busy[0].Interval)

	// Any candidate on that day conflicts.
	assert.False(t, IsFree(mustInterval(t, "09:00", "09:30"), busy, 0))

	// Outside the range the day is clear.
	assert.Empty(t, ExclusionBusy(excl, end.AddDate(0, 0, 1)))
}

func TestExclusionBusy_InactiveIgnored(t *testing.T) {
	start := monday
	excl := []domain.Exclusion{
		{
			Type:      domain.ExclusionVacation,
			Kind:      domain.KindOneOff,
			StartDate: &start,
			Active:    false,
		},
	}
	assert.Empty(t, ExclusionBusy(excl, monday))
}
