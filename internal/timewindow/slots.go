package timewindow

import "time"

// Selector slots offered to staff when picking a reservation time.
const (
	FirstSlot    = 11 * 60 // 11:00
	LastSlot     = 22 * 60 // 22:00
	SlotInterval = 30
)

// Slots returns the bookable times from 11:00 to 22:00 in 30-minute steps.
func Slots() []string {
	out := make([]string, 0, (LastSlot-FirstSlot)/SlotInterval+1)
	for m := FirstSlot; m <= LastSlot; m += SlotInterval {
		out = append(out, FormatMinutes(m))
	}
	return out
}

// Nearest rounds now up to the next slot boundary and clamps the result into
// [FirstSlot, LastSlot]. It is a pure read of the clock value it is given.
func Nearest(now time.Time) string {
	m := now.Hour()*60 + now.Minute()
	if now.Second() > 0 || now.Nanosecond() > 0 {
		m++
	}
	if rem := m % SlotInterval; rem != 0 {
		m += SlotInterval - rem
	}
	switch {
	case m < FirstSlot:
		m = FirstSlot
	case m > LastSlot:
		m = LastSlot
	}
	return FormatMinutes(m)
}

// Today returns the calendar date of now in the DateLayout form.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
