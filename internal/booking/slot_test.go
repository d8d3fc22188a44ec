package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindow() Window {
	return Window{
		DayStart:    MustParseTimeOfDay("08:00"),
		DayEnd:      MustParseTimeOfDay("20:00"),
		SlotMinutes: 60,
		LeadDays:    30,
	}
}

func TestComputeSlotsTiling(t *testing.T) {
	slots := ComputeSlots(testWindow(), nil)
	require.Len(t, slots, 12)

	// First and last slots pin the operating hours.
	assert.Equal(t, MustParseTimeOfDay("08:00"), slots[0].StartTime)
	assert.Equal(t, MustParseTimeOfDay("20:00"), slots[len(slots)-1].EndTime)

	// Adjacent slots share boundaries with no gaps, and all are available.
	for i, s := range slots {
		assert.Equal(t, 60, (s.EndTime - s.StartTime).Minutes())
		assert.True(t, s.Available)
		if i > 0 {
			assert.Equal(t, slots[i-1].EndTime, s.StartTime)
		}
	}
}

func TestComputeSlotsDropsTrailingRemainder(t *testing.T) {
	win := Window{
		DayStart:    MustParseTimeOfDay("08:00"),
		DayEnd:      MustParseTimeOfDay("09:30"),
		SlotMinutes: 60,
	}
	slots := ComputeSlots(win, nil)
	require.Len(t, slots, 1)
	assert.Equal(t, MustParseTimeOfDay("09:00"), slots[0].EndTime)
}

func TestComputeSlotsAvailability(t *testing.T) {
	bookings := []*Booking{
		// Spans two slots.
		{StartTime: MustParseTimeOfDay("09:00"), EndTime: MustParseTimeOfDay("11:00"), Status: StatusApproved},
		// Pending bookings block too.
		{StartTime: MustParseTimeOfDay("14:00"), EndTime: MustParseTimeOfDay("15:00"), Status: StatusPending},
		// Non-blocking statuses never mark a slot unavailable.
		{StartTime: MustParseTimeOfDay("16:00"), EndTime: MustParseTimeOfDay("17:00"), Status: StatusRejected},
		{StartTime: MustParseTimeOfDay("17:00"), EndTime: MustParseTimeOfDay("18:00"), Status: StatusCancelled},
		{StartTime: MustParseTimeOfDay("18:00"), EndTime: MustParseTimeOfDay("19:00"), Status: StatusOverridden},
	}

	slots := ComputeSlots(testWindow(), bookings)
	require.Len(t, slots, 12)

	unavailable := map[string]bool{}
	for _, s := range slots {
		if !s.Available {
			unavailable[s.StartTime.String()] = true
		}
	}
	assert.Equal(t, map[string]bool{"09:00": true, "10:00": true, "14:00": true}, unavailable)
}

func TestOverlapsHalfOpen(t *testing.T) {
	b := &Booking{StartTime: MustParseTimeOfDay("10:00"), EndTime: MustParseTimeOfDay("11:00")}

	// Touching intervals do not overlap.
	assert.False(t, b.Overlaps(MustParseTimeOfDay("09:00"), MustParseTimeOfDay("10:00")))
	assert.False(t, b.Overlaps(MustParseTimeOfDay("11:00"), MustParseTimeOfDay("12:00")))

	assert.True(t, b.Overlaps(MustParseTimeOfDay("10:30"), MustParseTimeOfDay("11:30")))
	assert.True(t, b.Overlaps(MustParseTimeOfDay("09:30"), MustParseTimeOfDay("10:30")))
	assert.True(t, b.Overlaps(MustParseTimeOfDay("09:00"), MustParseTimeOfDay("13:00")))
}

func TestFitsGrid(t *testing.T) {
	win := testWindow()

	assert.True(t, win.fitsGrid(MustParseTimeOfDay("08:00"), MustParseTimeOfDay("09:00")))
	assert.True(t, win.fitsGrid(MustParseTimeOfDay("09:00"), MustParseTimeOfDay("12:00")))
	assert.True(t, win.fitsGrid(MustParseTimeOfDay("19:00"), MustParseTimeOfDay("20:00")))

	// Off-grid endpoints.
	assert.False(t, win.fitsGrid(MustParseTimeOfDay("08:30"), MustParseTimeOfDay("09:30")))
	assert.False(t, win.fitsGrid(MustParseTimeOfDay("09:00"), MustParseTimeOfDay("09:30")))

	// Outside operating hours.
	assert.False(t, win.fitsGrid(MustParseTimeOfDay("07:00"), MustParseTimeOfDay("08:00")))
	assert.False(t, win.fitsGrid(MustParseTimeOfDay("19:00"), MustParseTimeOfDay("21:00")))
}
