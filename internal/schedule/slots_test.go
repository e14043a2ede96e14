package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clockList(starts []Minutes) []string {
	out := make([]string, 0, len(starts))
	for _, s := range starts {
		out = append(out, s.String())
	}
	return out
}

func TestSlots_AroundExistingAppointment(t *testing.T) {
	// Open 09:00-17:00, 30-minute granularity, one confirmed 10:00-10:30.
	window := mustInterval(t, "09:00", "17:00")
	chain := []ChainStep{{Duration: 30, Busy: []Busy{busyAt("10:00", "10:30", 1)}}}

	starts := clockList(Slots(window, 30, chain, 0, -1))

	assert.Contains(t, starts, "10:30")
	assert.NotContains(t, starts, "10:00")
	assert.Contains(t, starts, "09:30")
	// Last slot that still fits before close.
	assert.Equal(t, "16:30", starts[len(starts)-1])
	// 16 half-hour slots minus the occupied one.
	assert.Len(t, starts, 15)
}

func TestSlots_Ascending(t *testing.T) {
	window := mustInterval(t, "09:00", "12:00")
	chain := []ChainStep{{Duration: 45}}

	starts := Slots(window, 30, chain, 0, -1)
	for i := 1; i < len(starts); i++ {
		assert.Less(t, starts[i-1], starts[i])
	}
}

func TestSlots_ChainBackToBack(t *testing.T) {
	// Two 30-minute services on different staff. The second staff member is
	// busy 10:00-10:30, so a 09:30 chain start (second leg 10:00-10:30)
	// must be discarded while 10:30 survives.
	window := mustInterval(t, "09:00", "12:00")
	chain := []ChainStep{
		{Duration: 30},
		{Duration: 30, Busy: []Busy{busyAt("10:00", "10:30", 9)}},
	}

	starts := clockList(Slots(window, 30, chain, 0, -1))
	assert.NotContains(t, starts, "09:30")
	assert.Contains(t, starts, "09:00") // second leg 09:30-10:00 touches but does not overlap
	assert.Contains(t, starts, "10:30")
}

func TestSlots_ZeroDurationStepRidesAlong(t *testing.T) {
	// An add-on with duration 0 must not block anything on its own.
	window := mustInterval(t, "09:00", "10:00")
	chain := []ChainStep{
		{Duration: 30},
		{Duration: 0, Busy: []Busy{busyAt("09:00", "17:00", 3)}},
	}

	starts := clockList(Slots(window, 30, chain, 0, -1))
	assert.Equal(t, []string{"09:00", "09:30"}, starts)
}

func TestSlots_NothingFits(t *testing.T) {
	window := mustInterval(t, "09:00", "10:00")
	chain := []ChainStep{{Duration: 90}}
	assert.Empty(t, Slots(window, 30, chain, 0, -1))
}

func TestSlots_ZeroTotalDuration(t *testing.T) {
	window := mustInterval(t, "09:00", "17:00")
	chain := []ChainStep{{Duration: 0}}
	assert.Empty(t, Slots(window, 30, chain, 0, -1))
}

func TestSlots_DiscardsPastStarts(t *testing.T) {
	window := mustInterval(t, "09:00", "11:00")
	chain := []ChainStep{{Duration: 30}}

	now, _ := ParseClock("09:30")
	starts := clockList(Slots(window, 30, chain, 0, now))

	// "at or before the current time" is discarded: 09:30 itself goes too.
	assert.Equal(t, []string{"10:00", "10:30"}, starts)
}

func TestSlots_ExcludeForReschedule(t *testing.T) {
	window := mustInterval(t, "09:00", "11:00")
	busy := []Busy{busyAt("09:00", "09:30", 42)}
	chain := []ChainStep{{Duration: 30, Busy: busy}}

	without := clockList(Slots(window, 30, chain, 0, -1))
	assert.NotContains(t, without, "09:00")

	excluding := clockList(Slots(window, 30, chain, 42, -1))
	assert.Contains(t, excluding, "09:00")
}

func TestSlots_ConsistentWithIsFree(t *testing.T) {
	// Every returned start must pass an independent IsFree check for each
	// leg of the chain.
	window := mustInterval(t, "09:00", "17:00")
	busyA := []Busy{busyAt("10:00", "11:15", 1), busyAt("15:00", "15:30", 2)}
	busyB := []Busy{busyAt("09:45", "10:00", 3), busyAt("13:00", "14:00", 4)}
	chain := []ChainStep{
		{Duration: 45, Busy: busyA},
		{Duration: 30, Busy: busyB},
	}

	for _, start := range Slots(window, 30, chain, 0, -1) {
		first := Interval{Start: start, End: start + 45}
		second := Interval{Start: first.End, End: first.End + 30}
		assert.True(t, IsFree(first, busyA, 0), "first leg at %s", start)
		assert.True(t, IsFree(second, busyB, 0), "second leg at %s", start)
	}
}
