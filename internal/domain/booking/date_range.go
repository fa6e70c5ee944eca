package booking

import (
	"fmt"
	"math"
	"time"
)

// DateRange is a half-open stay interval [CheckIn, CheckOut).
// Both endpoints are calendar dates normalized to midnight UTC.
type DateRange struct {
	checkIn  time.Time
	checkOut time.Time
}

// NewDateRange validates and builds a DateRange. Zero-night stays are invalid.
func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	in := TruncateToDay(checkIn)
	out := TruncateToDay(checkOut)
	if !in.Before(out) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{checkIn: in, checkOut: out}, nil
}

// MustDateRange builds a DateRange and panics on an invalid one. Test helper.
func MustDateRange(checkIn, checkOut time.Time) DateRange {
	r, err := NewDateRange(checkIn, checkOut)
	if err != nil {
		panic(fmt.Sprintf("invalid date range %s..%s", checkIn, checkOut))
	}
	return r
}

// CheckIn returns the first occupied night.
func (r DateRange) CheckIn() time.Time { return r.checkIn }

// CheckOut returns the departure date (not occupied).
func (r DateRange) CheckOut() time.Time { return r.checkOut }

// Overlaps reports whether two ranges share at least one night.
// Touching ranges (checkOut == other checkIn) do not overlap, so back-to-back
// stays on consecutive days are legal.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.checkIn.Before(other.checkOut) && r.checkOut.After(other.checkIn)
}

// Nights returns the number of billable nights, rounding partial days up.
func (r DateRange) Nights() int64 {
	return int64(math.Ceil(r.checkOut.Sub(r.checkIn).Hours() / 24))
}

// Equal reports whether both ranges cover the same dates.
func (r DateRange) Equal(other DateRange) bool {
	return r.checkIn.Equal(other.checkIn) && r.checkOut.Equal(other.checkOut)
}

// String renders the range as "2024-01-15..2024-01-20".
func (r DateRange) String() string {
	return r.checkIn.Format("2006-01-02") + ".." + r.checkOut.Format("2006-01-02")
}

// TruncateToDay drops the time-of-day component, keeping the UTC calendar date.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
