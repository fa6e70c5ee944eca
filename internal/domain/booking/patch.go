package booking

import "time"

// Patch names exactly which booking fields a partial update may change.
// Nil fields keep their current value.
type Patch struct {
	CheckIn  *time.Time
	CheckOut *time.Time
	Status   *BookingStatus
	Notes    *string
}

// ChangesDates reports whether the patch touches either stay date.
func (p Patch) ChangesDates() bool {
	return p.CheckIn != nil || p.CheckOut != nil
}

// MergedStay resolves the stay range after applying the patch on top of the
// current one. Returns ErrInvalidRange when the merged dates are inverted or
// equal.
func (p Patch) MergedStay(current DateRange) (DateRange, error) {
	checkIn := current.CheckIn()
	checkOut := current.CheckOut()
	if p.CheckIn != nil {
		checkIn = *p.CheckIn
	}
	if p.CheckOut != nil {
		checkOut = *p.CheckOut
	}
	return NewDateRange(checkIn, checkOut)
}
