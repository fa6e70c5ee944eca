package booking

import "fmt"

// PricingStrategy defines the interface for computing the total stay price.
type PricingStrategy interface {
	// Calculate returns the total price in cents for the given stay at the
	// given nightly rate.
	Calculate(stay DateRange, nightlyRateCents int64) (int64, error)
}

// NightlyRatePricing is the default strategy: nights times the room's nightly
// rate, where nights is the ceiling of the day difference (a partial day
// counts as a full night).
type NightlyRatePricing struct{}

// NewNightlyRatePricing creates a new NightlyRatePricing.
func NewNightlyRatePricing() *NightlyRatePricing {
	return &NightlyRatePricing{}
}

// Calculate computes the total stay price in cents.
func (s *NightlyRatePricing) Calculate(stay DateRange, nightlyRateCents int64) (int64, error) {
	if nightlyRateCents < 0 {
		return 0, fmt.Errorf("nightly rate cannot be negative")
	}
	return stay.Nights() * nightlyRateCents, nil
}
