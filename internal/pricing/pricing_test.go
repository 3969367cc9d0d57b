package pricing

import (
	"math"
	"testing"

	"simple-pricer/internal/errors"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPriceOption_ReferenceCases(t *testing.T) {
	tests := []struct {
		name   string
		params OptionParams
		want   float64
		tol    float64
	}{
		{
			name:   "ATM call r=3%",
			params: OptionParams{Spot: 100, Strike: 100, Rate: 0.03, Vol: 0.2, Maturity: 1, Kind: Call},
			want:   9.4134,
			tol:    1e-2,
		},
		{
			name:   "ATM call r=5%",
			params: OptionParams{Spot: 100, Strike: 100, Rate: 0.05, Vol: 0.2, Maturity: 1, Kind: Call},
			want:   10.450583572185565,
			tol:    1e-9,
		},
		{
			name:   "ATM put r=5%",
			params: OptionParams{Spot: 100, Strike: 100, Rate: 0.05, Vol: 0.2, Maturity: 1, Kind: Put},
			want:   5.573526022256971,
			tol:    1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PriceOption(tt.params)
			if err != nil {
				t.Fatalf("PriceOption() error = %v", err)
			}
			if !almostEqual(got, tt.want, tt.tol) {
				t.Errorf("PriceOption() = %v, want %v (tol %g)", got, tt.want, tt.tol)
			}
		})
	}
}

func TestPriceOption_DividendLowersCall(t *testing.T) {
	base := OptionParams{Spot: 100, Strike: 100, Rate: 0.03, Vol: 0.2, Maturity: 1, Kind: Call}
	withDiv := base
	withDiv.Dividend = 0.02

	noDiv, _ := PriceOption(base)
	div, err := PriceOption(withDiv)
	if err != nil {
		t.Fatalf("PriceOption() error = %v", err)
	}
	if div >= noDiv {
		t.Errorf("call with dividend %v should be below %v", div, noDiv)
	}

	// Parity with dividends: C - P = S e^{-qT} - K e^{-rT}
	withDiv.Kind = Put
	put, _ := PriceOption(withDiv)
	want := 100*math.Exp(-0.02) - 100*math.Exp(-0.03)
	if !almostEqual(div-put, want, 1e-9) {
		t.Errorf("parity with dividend: got %v, want %v", div-put, want)
	}
}

func TestPriceOption_InvalidParameters(t *testing.T) {
	valid := OptionParams{Spot: 100, Strike: 100, Rate: 0.03, Vol: 0.2, Maturity: 1, Kind: Call}

	tests := []struct {
		name   string
		mutate func(p *OptionParams)
		field  string
	}{
		{"zero spot", func(p *OptionParams) { p.Spot = 0 }, "S"},
		{"negative spot", func(p *OptionParams) { p.Spot = -1 }, "S"},
		{"zero strike", func(p *OptionParams) { p.Strike = 0 }, "K"},
		{"zero sigma", func(p *OptionParams) { p.Vol = 0 }, "sigma"},
		{"zero maturity", func(p *OptionParams) { p.Maturity = 0 }, "T"},
		{"NaN maturity", func(p *OptionParams) { p.Maturity = math.NaN() }, "T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			got, err := PriceOption(p)
			if !errors.Is(err, errors.ErrInvalidParameter) {
				t.Fatalf("PriceOption() error = %v, want ErrInvalidParameter", err)
			}
			var verr *errors.ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Errorf("expected validation error on field %s, got %v", tt.field, err)
			}
			if math.IsNaN(got) {
				t.Errorf("PriceOption() returned NaN alongside error")
			}
		})
	}
}

func TestPriceOption_InvalidKind(t *testing.T) {
	p := OptionParams{Spot: 100, Strike: 100, Rate: 0.03, Vol: 0.2, Maturity: 1}
	if _, err := PriceOption(p); !errors.Is(err, errors.ErrInvalidKind) {
		t.Fatalf("PriceOption() error = %v, want ErrInvalidKind", err)
	}
	p.Kind = OptionKind(7)
	if _, err := PriceOption(p); !errors.Is(err, errors.ErrInvalidKind) {
		t.Fatalf("PriceOption() error = %v, want ErrInvalidKind", err)
	}
}

func TestParseOptionKind(t *testing.T) {
	for in, want := range map[string]OptionKind{"call": Call, "PUT": Put, " Call ": Call} {
		got, err := ParseOptionKind(in)
		if err != nil || got != want {
			t.Errorf("ParseOptionKind(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseOptionKind("straddle"); !errors.Is(err, errors.ErrInvalidKind) {
		t.Errorf("ParseOptionKind(straddle) error = %v, want ErrInvalidKind", err)
	}
}

func TestD1D2(t *testing.T) {
	d1, d2, err := D1D2(OptionParams{Spot: 100, Strike: 100, Rate: 0.03, Vol: 0.2, Maturity: 1, Kind: Call})
	if err != nil {
		t.Fatalf("D1D2() error = %v", err)
	}
	if !almostEqual(d1, 0.25, 1e-12) || !almostEqual(d2, 0.05, 1e-12) {
		t.Errorf("D1D2() = %v, %v; want 0.25, 0.05", d1, d2)
	}
}

func TestDiscountFactors(t *testing.T) {
	dfs, err := DiscountFactors(0.02, 3)
	if err != nil {
		t.Fatalf("DiscountFactors() error = %v", err)
	}
	want := []float64{1 / 1.02, 1 / (1.02 * 1.02), 1 / (1.02 * 1.02 * 1.02)}
	if len(dfs) != len(want) {
		t.Fatalf("len = %d, want %d", len(dfs), len(want))
	}
	for i := range want {
		if !almostEqual(dfs[i], want[i], 1e-15) {
			t.Errorf("df[%d] = %v, want %v", i, dfs[i], want[i])
		}
	}

	if _, err := DiscountFactors(0.02, 0); !errors.Is(err, errors.ErrInvalidParameter) {
		t.Errorf("zero periods: error = %v, want ErrInvalidParameter", err)
	}
	if _, err := DiscountFactors(-1, 4); !errors.Is(err, errors.ErrInvalidParameter) {
		t.Errorf("rate -1: error = %v, want ErrInvalidParameter", err)
	}
}

func TestDiscountFactors_ZeroRate(t *testing.T) {
	dfs, err := DiscountFactors(0, 5)
	if err != nil {
		t.Fatalf("DiscountFactors() error = %v", err)
	}
	for i, df := range dfs {
		if df != 1 {
			t.Errorf("df[%d] = %v, want 1", i, df)
		}
	}
}

func TestBondPV(t *testing.T) {
	tests := []struct {
		name   string
		params BondParams
		want   float64
		tol    float64
	}{
		{"premium", BondParams{Face: 1000, Coupon: 0.05, Yield: 0.04, Maturity: 5, Freq: 2}, 1044.9129, 0.5},
		{"par", BondParams{Face: 1000, Coupon: 0.04, Yield: 0.04, Maturity: 5, Freq: 2}, 1000, 0.5},
		{"zero coupon annual", BondParams{Face: 100, Coupon: 0, Yield: 0.05, Maturity: 2, Freq: 1}, 100 / 1.1025, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BondPV(tt.params, StrictFrequencies)
			if err != nil {
				t.Fatalf("BondPV() error = %v", err)
			}
			if !almostEqual(got, tt.want, tt.tol) {
				t.Errorf("BondPV() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBondPV_PremiumAboveFace(t *testing.T) {
	pv, err := BondPV(BondParams{Face: 1000, Coupon: 0.05, Yield: 0.04, Maturity: 5, Freq: 2}, StrictFrequencies)
	if err != nil {
		t.Fatalf("BondPV() error = %v", err)
	}
	if pv <= 1000 {
		t.Errorf("BondPV() = %v, expected premium over face", pv)
	}
}

func TestBondPV_FrequencyPolicy(t *testing.T) {
	p := BondParams{Face: 1000, Coupon: 0.05, Yield: 0.04, Maturity: 5, Freq: 3}

	if _, err := BondPV(p, StrictFrequencies); !errors.Is(err, errors.ErrInvalidParameter) {
		t.Errorf("strict policy freq=3: error = %v, want ErrInvalidParameter", err)
	}
	if _, err := BondPV(p, AnyFrequency); err != nil {
		t.Errorf("any policy freq=3: error = %v", err)
	}

	p.Freq = 0
	if _, err := BondPV(p, AnyFrequency); !errors.Is(err, errors.ErrInvalidParameter) {
		t.Errorf("any policy freq=0: error = %v, want ErrInvalidParameter", err)
	}

	for _, f := range AllowedFrequencies() {
		p.Freq = f
		if _, err := BondPV(p, StrictFrequencies); err != nil {
			t.Errorf("strict policy freq=%d: error = %v", f, err)
		}
	}
}

func TestBondPV_FractionalMaturityFloorsPeriods(t *testing.T) {
	p := BondParams{Face: 1000, Coupon: 0.05, Yield: 0.04, Maturity: 2.75, Freq: 2}
	if got := p.Periods(); got != 5 {
		t.Fatalf("Periods() = %d, want 5", got)
	}

	short := BondParams{Face: 1000, Coupon: 0.05, Yield: 0.04, Maturity: 0.25, Freq: 2}
	if _, err := BondPV(short, StrictFrequencies); !errors.Is(err, errors.ErrInvalidParameter) {
		t.Errorf("no whole period: error = %v, want ErrInvalidParameter", err)
	}
}

func TestSwapPV(t *testing.T) {
	base := SwapParams{Notional: 1_000_000, FixedRate: 0.04, FloatRate: 0.035, Years: 5, Freq: 2}

	fixed := base
	fixed.Payer = PayFixed
	payFixed, err := SwapPV(fixed)
	if err != nil {
		t.Fatalf("SwapPV() error = %v", err)
	}
	if math.Abs(payFixed) >= 30000 {
		t.Errorf("|SwapPV()| = %v, want < 30000", math.Abs(payFixed))
	}
	if payFixed >= 0 {
		t.Errorf("paying fixed above float should be negative, got %v", payFixed)
	}

	float := base
	float.Payer = PayFloat
	payFloat, err := SwapPV(float)
	if err != nil {
		t.Fatalf("SwapPV() error = %v", err)
	}
	if payFixed != -payFloat {
		t.Errorf("antisymmetry: fixed=%v float=%v", payFixed, payFloat)
	}

	// 2500 per period annuity at 1.75% over 10 periods
	if !almostEqual(payFloat, 22753.06, 0.5) {
		t.Errorf("SwapPV(float) = %v, want about 22753.06", payFloat)
	}
}

func TestSwapLegs_NotionalOnBothLegs(t *testing.T) {
	p := SwapParams{Notional: 100, FixedRate: 0.035, FloatRate: 0.035, Years: 3, Freq: 4, Payer: PayFixed}
	fixedLeg, floatLeg, err := SwapLegs(p)
	if err != nil {
		t.Fatalf("SwapLegs() error = %v", err)
	}
	// Coupon at the discount rate prices both legs at par.
	if !almostEqual(fixedLeg, 100, 1e-9) || !almostEqual(floatLeg, 100, 1e-9) {
		t.Errorf("SwapLegs() = %v, %v; want 100, 100", fixedLeg, floatLeg)
	}
}

func TestSwapPV_Errors(t *testing.T) {
	p := SwapParams{Notional: 1_000_000, FixedRate: 0.04, FloatRate: 0.035, Years: 5, Freq: 2}
	if _, err := SwapPV(p); !errors.Is(err, errors.ErrInvalidPayer) {
		t.Errorf("missing payer: error = %v, want ErrInvalidPayer", err)
	}

	p.Payer = PayFixed
	p.Years = 0
	if _, err := SwapPV(p); !errors.Is(err, errors.ErrInvalidParameter) {
		t.Errorf("zero years: error = %v, want ErrInvalidParameter", err)
	}

	p.Years = 5
	p.Freq = -2
	if _, err := SwapPV(p); !errors.Is(err, errors.ErrInvalidParameter) {
		t.Errorf("negative freq: error = %v, want ErrInvalidParameter", err)
	}

	if _, err := ParsePayer("both"); !errors.Is(err, errors.ErrInvalidPayer) {
		t.Errorf("ParsePayer(both) error = %v, want ErrInvalidPayer", err)
	}
}

func TestPricersAreDeterministic(t *testing.T) {
	opt := OptionParams{Spot: 123.4, Strike: 117, Rate: 0.021, Dividend: 0.01, Vol: 0.33, Maturity: 0.7, Kind: Put}
	a, _ := PriceOption(opt)
	b, _ := PriceOption(opt)
	if math.Float64bits(a) != math.Float64bits(b) {
		t.Errorf("PriceOption not bit-identical: %v vs %v", a, b)
	}

	bond := BondParams{Face: 1000, Coupon: 0.0375, Yield: 0.041, Maturity: 7, Freq: 4}
	c, _ := BondPV(bond, StrictFrequencies)
	d, _ := BondPV(bond, StrictFrequencies)
	if math.Float64bits(c) != math.Float64bits(d) {
		t.Errorf("BondPV not bit-identical: %v vs %v", c, d)
	}
}
