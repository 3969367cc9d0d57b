package cli

import (
	"math"

	"github.com/shopspring/decimal"

	"simple-pricer/internal/errors"
)

// Result is a single valuation ready for display.
type Result struct {
	Instrument string                 `json:"instrument"`
	Label      string                 `json:"label"`
	PV         decimal.Decimal        `json:"pv"`
	Legs       []Leg                  `json:"legs,omitempty"`
	Inputs     map[string]interface{} `json:"inputs"`

	precision int32
}

// Leg is one side of a two-leg instrument.
type Leg struct {
	Name string          `json:"name"`
	PV   decimal.Decimal `json:"pv"`
}

// NewResult rounds pv to precision decimal places. Non-finite values are
// rejected since they cannot be rendered as decimals.
func NewResult(instrument, label string, pv float64, precision int, inputs map[string]interface{}) (Result, error) {
	if math.IsNaN(pv) || math.IsInf(pv, 0) {
		return Result{}, errors.InvalidParameter("pv", pv, "inputs produce a non-finite value")
	}
	return Result{
		Instrument: instrument,
		Label:      label,
		PV:         RoundValue(pv, precision),
		Inputs:     inputs,
		precision:  int32(precision),
	}, nil
}

// WithLeg appends a rounded leg value.
func (r Result) WithLeg(name string, pv float64) Result {
	r.Legs = append(r.Legs, Leg{Name: name, PV: RoundValue(pv, int(r.precision))})
	return r
}

// RoundValue converts pv to a decimal rounded half away from zero.
func RoundValue(pv float64, precision int) decimal.Decimal {
	return decimal.NewFromFloat(pv).Round(int32(precision))
}

// FormatValue renders pv with exactly precision decimal places.
func FormatValue(pv float64, precision int) string {
	return decimal.NewFromFloat(pv).StringFixed(int32(precision))
}
