package pricing

import (
	"math"

	"simple-pricer/internal/errors"
)

// FreqPolicy decides which coupon frequencies BondPV accepts.
type FreqPolicy int

const (
	// StrictFrequencies allows annual, semi-annual, quarterly and monthly coupons.
	StrictFrequencies FreqPolicy = iota
	// AnyFrequency allows any positive number of periods per year.
	AnyFrequency
)

// AllowedFrequencies lists the coupon frequencies accepted under StrictFrequencies.
func AllowedFrequencies() []int {
	return []int{1, 2, 4, 12}
}

// Allows reports whether freq is acceptable under the policy.
func (p FreqPolicy) Allows(freq int) bool {
	if freq <= 0 {
		return false
	}
	if p == AnyFrequency {
		return true
	}
	for _, f := range AllowedFrequencies() {
		if f == freq {
			return true
		}
	}
	return false
}

// BondParams holds the inputs of a level-coupon bullet bond valuation.
type BondParams struct {
	Face     float64
	Coupon   float64 // annual coupon rate as a fraction of face
	Yield    float64 // yield to maturity, compounded Freq times a year
	Maturity float64 // years
	Freq     int     // coupon periods per year
}

// Periods returns floor(Maturity * Freq).
func (p BondParams) Periods() int {
	return int(math.Floor(p.Maturity * float64(p.Freq)))
}

// BondPV returns the present value of the bond's coupons and redemption
// discounted at the per-period yield.
func BondPV(p BondParams, policy FreqPolicy) (float64, error) {
	if !policy.Allows(p.Freq) {
		if policy == StrictFrequencies {
			return 0, errors.InvalidParameter("freq", p.Freq, "must be one of 1, 2, 4, 12")
		}
		return 0, errors.InvalidParameter("freq", p.Freq, "must be positive")
	}

	dfs, err := DiscountFactors(p.Yield/float64(p.Freq), p.Periods())
	if err != nil {
		return 0, errors.Wrap(err, "bond discount factors")
	}

	coupon := p.Face * p.Coupon / float64(p.Freq)
	return levelAnnuity(coupon, p.Face, dfs), nil
}
