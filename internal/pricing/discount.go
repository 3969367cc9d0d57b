// Package pricing computes present values for European options, level-coupon
// bonds and a simplified fixed-vs-float swap.
//
// Every function here is pure: results depend only on the explicit inputs and
// repeated calls return bit-identical values.
package pricing

import (
	"math"

	"simple-pricer/internal/errors"
)

// DiscountFactors returns the per-period discount factors
// 1/(1+rate)^1 ... 1/(1+rate)^periods.
func DiscountFactors(rate float64, periods int) ([]float64, error) {
	if periods < 1 {
		return nil, errors.InvalidParameter("periods", periods, "must be at least 1")
	}
	if math.IsNaN(rate) || 1+rate <= 0 {
		return nil, errors.InvalidParameter("rate", rate, "per-period rate must be greater than -1")
	}

	dfs := make([]float64, periods)
	growth := 1 + rate
	for t := 1; t <= periods; t++ {
		dfs[t-1] = 1 / math.Pow(growth, float64(t))
	}
	return dfs, nil
}

// levelAnnuity prices a level coupon paid every period plus a bullet
// redemption discounted by the last factor.
func levelAnnuity(coupon, redemption float64, dfs []float64) float64 {
	var pv float64
	for _, df := range dfs {
		pv += coupon * df
	}
	return pv + redemption*dfs[len(dfs)-1]
}
