package pricing

import (
	"fmt"
	"strings"

	"simple-pricer/internal/errors"
)

// Payer identifies the leg the holder pays.
type Payer int

const (
	PayFixed Payer = iota + 1
	PayFloat
)

// ParsePayer converts "fixed" or "float" (case-insensitive) to a Payer.
func ParsePayer(s string) (Payer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed":
		return PayFixed, nil
	case "float":
		return PayFloat, nil
	default:
		return 0, errors.NewValidationError(errors.ErrInvalidPayer, "payer", s, "must be fixed or float")
	}
}

func (p Payer) String() string {
	switch p {
	case PayFixed:
		return "fixed"
	case PayFloat:
		return "float"
	case 0:
		return ""
	default:
		return fmt.Sprintf("Payer(%d)", int(p))
	}
}

// Valid reports whether p is one of the declared payers.
func (p Payer) Valid() bool {
	return p == PayFixed || p == PayFloat
}

// Set implements pflag.Value.
func (p *Payer) Set(s string) error {
	parsed, err := ParsePayer(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Type implements pflag.Value.
func (p *Payer) Type() string {
	return "fixed|float"
}

// SwapParams holds the inputs of the mini fixed-vs-float swap.
//
// The float leg is valued as if FloatRate were fixed for the life of the
// swap, and both legs are discounted on the float rate.
type SwapParams struct {
	Notional  float64
	FixedRate float64
	FloatRate float64
	Years     int
	Freq      int
	Payer     Payer
}

// Periods returns Years * Freq.
func (p SwapParams) Periods() int {
	return p.Years * p.Freq
}

// SwapLegs returns the present values of the fixed and float legs.
// Each leg includes a notional exchange at maturity; the two cancel in SwapPV.
func SwapLegs(p SwapParams) (fixedLeg, floatLeg float64, err error) {
	if p.Years <= 0 {
		return 0, 0, errors.InvalidParameter("years", p.Years, "must be positive")
	}
	if p.Freq <= 0 {
		return 0, 0, errors.InvalidParameter("freq", p.Freq, "must be positive")
	}

	freq := float64(p.Freq)
	dfs, err := DiscountFactors(p.FloatRate/freq, p.Periods())
	if err != nil {
		return 0, 0, errors.Wrap(err, "swap discount factors")
	}

	fixedLeg = levelAnnuity(p.Notional*p.FixedRate/freq, p.Notional, dfs)
	floatLeg = levelAnnuity(p.Notional*p.FloatRate/freq, p.Notional, dfs)
	return fixedLeg, floatLeg, nil
}

// SwapPV returns the swap value from the payer's side: float minus fixed for a
// fixed payer, fixed minus float for a float payer.
func SwapPV(p SwapParams) (float64, error) {
	if !p.Payer.Valid() {
		return 0, errors.NewValidationError(errors.ErrInvalidPayer, "payer", p.Payer, "must be fixed or float")
	}

	fixedLeg, floatLeg, err := SwapLegs(p)
	if err != nil {
		return 0, err
	}

	if p.Payer == PayFixed {
		return floatLeg - fixedLeg, nil
	}
	return fixedLeg - floatLeg, nil
}
