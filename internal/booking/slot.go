package booking

// Window describes the global booking grid: the bookable part of the day,
// the slot duration, and how far ahead bookings may be placed.
type Window struct {
	DayStart    TimeOfDay
	DayEnd      TimeOfDay
	SlotMinutes int
	LeadDays    int
}

// Slot is a fixed-duration candidate interval within the operating hours,
// annotated with its availability.
type Slot struct {
	StartTime TimeOfDay `json:"startTime"`
	EndTime   TimeOfDay `json:"endTime"`
	Available bool      `json:"available"`
}

// ComputeSlots tiles the operating-hours window with fixed-duration slots and
// marks each slot unavailable iff it overlaps a blocking (PENDING or
// APPROVED) booking. The result is deterministic and ordered by start time;
// adjacent slots share boundaries with no gaps. A trailing remainder shorter
// than the slot duration is not emitted.
func ComputeSlots(win Window, bookings []*Booking) []Slot {
	step := TimeOfDay(win.SlotMinutes)

	var slots []Slot
	for start := win.DayStart; start+step <= win.DayEnd; start += step {
		end := start + step

		available := true
		for _, b := range bookings {
			if b.Status.Blocks() && b.Overlaps(start, end) {
				available = false
				break
			}
		}

		slots = append(slots, Slot{StartTime: start, EndTime: end, Available: available})
	}

	return slots
}

// fitsGrid reports whether [start, end) lies inside the day window and both
// endpoints sit on slot-grid boundaries.
func (w Window) fitsGrid(start, end TimeOfDay) bool {
	if start < w.DayStart || end > w.DayEnd {
		return false
	}
	step := w.SlotMinutes
	return (start-w.DayStart).Minutes()%step == 0 && (end-w.DayStart).Minutes()%step == 0
}
