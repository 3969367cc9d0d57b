package pricing

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"simple-pricer/internal/errors"
)

// OptionKind is the exercise right of a European option.
type OptionKind int

const (
	Call OptionKind = iota + 1
	Put
)

// ParseOptionKind converts "call" or "put" (case-insensitive) to an OptionKind.
func ParseOptionKind(s string) (OptionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call":
		return Call, nil
	case "put":
		return Put, nil
	default:
		return 0, errors.NewValidationError(errors.ErrInvalidKind, "kind", s, "must be call or put")
	}
}

func (k OptionKind) String() string {
	switch k {
	case Call:
		return "call"
	case Put:
		return "put"
	case 0:
		return ""
	default:
		return fmt.Sprintf("OptionKind(%d)", int(k))
	}
}

// Valid reports whether k is one of the declared kinds.
func (k OptionKind) Valid() bool {
	return k == Call || k == Put
}

// Set implements pflag.Value.
func (k *OptionKind) Set(s string) error {
	parsed, err := ParseOptionKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Type implements pflag.Value.
func (k *OptionKind) Type() string {
	return "call|put"
}

// OptionParams holds the inputs of a Black-Scholes valuation.
type OptionParams struct {
	Spot     float64 // S
	Strike   float64 // K
	Rate     float64 // r, continuously compounded
	Dividend float64 // q, continuous yield
	Vol      float64 // sigma, annualised
	Maturity float64 // T in years
	Kind     OptionKind
}

// Validate rejects inputs for which d1 is undefined.
func (p OptionParams) Validate() error {
	checks := []struct {
		field string
		value float64
	}{
		{"S", p.Spot},
		{"K", p.Strike},
		{"sigma", p.Vol},
		{"T", p.Maturity},
	}
	for _, c := range checks {
		if !(c.value > 0) || math.IsInf(c.value, 1) {
			return errors.InvalidParameter(c.field, c.value, "must be a finite positive number")
		}
	}
	if !p.Kind.Valid() {
		return errors.NewValidationError(errors.ErrInvalidKind, "kind", p.Kind, "must be call or put")
	}
	return nil
}

// D1D2 returns the two standardised moneyness terms of the Black-Scholes formula.
func D1D2(p OptionParams) (d1, d2 float64, err error) {
	if err := p.Validate(); err != nil {
		return 0, 0, err
	}
	d1, d2 = d1d2(p)
	return d1, d2, nil
}

func d1d2(p OptionParams) (float64, float64) {
	volSqrtT := p.Vol * math.Sqrt(p.Maturity)
	d1 := (math.Log(p.Spot/p.Strike) + (p.Rate-p.Dividend+0.5*p.Vol*p.Vol)*p.Maturity) / volSqrtT
	return d1, d1 - volSqrtT
}

// PriceOption returns the Black-Scholes present value of a European call or put
// with continuous dividend yield.
func PriceOption(p OptionParams) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	d1, d2 := d1d2(p)
	n := distuv.UnitNormal
	spotDF := p.Spot * math.Exp(-p.Dividend*p.Maturity)
	strikeDF := p.Strike * math.Exp(-p.Rate*p.Maturity)

	if p.Kind == Call {
		return spotDF*n.CDF(d1) - strikeDF*n.CDF(d2), nil
	}
	return strikeDF*n.CDF(-d2) - spotDF*n.CDF(-d1), nil
}
