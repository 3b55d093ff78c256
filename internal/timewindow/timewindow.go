// Package timewindow converts wall-clock reservation times into comparable
// minute intervals and decides whether two intervals overlap.
//
// Every reservation occupies its table for the same fixed turn time
// (Duration). Windows are half-open [start, end) so a table freed at 20:30 can
// be booked again at 20:30. Windows never wrap past midnight: they are only
// ever compared against reservations on the same calendar date.
package timewindow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration is the fixed turn time applied to every reservation.
const Duration = 90 * time.Minute

// DurationMinutes is Duration expressed in whole minutes.
const DurationMinutes = int(Duration / time.Minute)

// DateLayout is the ISO calendar date form used by reservations.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidTimeFormat is returned for clock values that are not H:MM or HH:MM.
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

	// ErrInvalidDate is returned for dates that are not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// Window is a half-open interval of minutes since midnight.
type Window struct {
	Start int
	End   int
}

// ToMinutes parses an H:MM / HH:MM clock value into minutes since midnight.
func ToMinutes(clock string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok || len(h) == 0 || len(h) > 2 || len(m) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 || !digits(h) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 || !digits(m) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	return hours*60 + minutes, nil
}

// Overlaps reports whether [startA, endA) and [startB, endB) intersect.
// Touching endpoints do not overlap.
func Overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && endA > startB
}

// For returns the reservation window that starts at clock.
func For(clock string) (Window, error) {
	start, err := ToMinutes(clock)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: start, End: start + DurationMinutes}, nil
}

// Overlaps reports whether w and o intersect.
func (w Window) Overlaps(o Window) bool {
	return Overlaps(w.Start, w.End, o.Start, o.End)
}

// ParseDate validates an ISO calendar date.
func ParseDate(date string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return d, nil
}

// FormatMinutes renders minutes since midnight as HH:MM.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// digits reports whether s contains only ASCII digits. strconv.Atoi alone
// would accept a leading sign.
func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
