package cli

import (
	"github.com/spf13/cobra"

	"simple-pricer/internal/logging"
	"simple-pricer/internal/pricing"
)

// addPricingCommands adds the option, bond and swap valuation commands.
func addPricingCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newOptionCmd(app))
	rootCmd.AddCommand(newBondCmd(app))
	rootCmd.AddCommand(newSwapCmd(app))
}

func newOptionCmd(app *App) *cobra.Command {
	var kind pricing.OptionKind

	cmd := &cobra.Command{
		Use:   "option",
		Short: "Price a European option with Black-Scholes",
		Long: `Price a European call or put under Black-Scholes.

Rates and the dividend yield are continuously compounded annual fractions;
sigma is the annualised volatility and T the time to expiry in years.`,
		Example: `  pricer option --type call --S 100 --K 100 --r 0.03 --sigma 0.2 --T 1
  pricer option --type put --S 100 --K 95 --r 0.03 --q 0.01 --sigma 0.25 --T 0.5`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			params := pricing.OptionParams{
				Spot:     flagFloat(flags, "S", 0),
				Strike:   flagFloat(flags, "K", 0),
				Rate:     flagFloat(flags, "r", 0),
				Dividend: flagFloat(flags, "q", app.Config.Option.Dividend),
				Vol:      flagFloat(flags, "sigma", 0),
				Maturity: flagFloat(flags, "T", 0),
				Kind:     kind,
			}
			inputs := map[string]interface{}{
				"type":  kind.String(),
				"S":     params.Spot,
				"K":     params.Strike,
				"r":     params.Rate,
				"q":     params.Dividend,
				"sigma": params.Vol,
				"T":     params.Maturity,
			}

			pv, err := pricing.PriceOption(params)
			return app.report(cmd, "option", "BS "+kind.String(), inputs, pv, err)
		},
	}

	cmd.Flags().Var(&kind, "type", "option type: call or put")
	cmd.Flags().Float64("S", 0, "spot price")
	cmd.Flags().Float64("K", 0, "strike price")
	cmd.Flags().Float64("r", 0, "risk-free rate")
	cmd.Flags().Float64("q", 0, "continuous dividend yield (default from config, 0.0)")
	cmd.Flags().Float64("sigma", 0, "volatility")
	cmd.Flags().Float64("T", 0, "time to expiry in years")
	for _, name := range []string{"type", "S", "K", "r", "sigma", "T"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newBondCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bond",
		Short: "Price a level-coupon bond",
		Long: `Price a bond paying face*coupon/freq every period and face at maturity,
discounted at the yield y compounded freq times a year.

By default freq must be 1, 2, 4 or 12; set bond.strict_frequency = false
in config.toml to accept any positive frequency.`,
		Example: `  pricer bond --face 1000 --coupon 0.05 --y 0.04 --n 5
  pricer bond --face 100 --coupon 0.03 --y 0.035 --n 10 --freq 1`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			params := pricing.BondParams{
				Face:     flagFloat(flags, "face", 0),
				Coupon:   flagFloat(flags, "coupon", 0),
				Yield:    flagFloat(flags, "y", 0),
				Maturity: float64(flagInt(flags, "n", 0)),
				Freq:     flagInt(flags, "freq", app.Config.Bond.Freq),
			}
			inputs := map[string]interface{}{
				"face":   params.Face,
				"coupon": params.Coupon,
				"y":      params.Yield,
				"n":      params.Maturity,
				"freq":   params.Freq,
			}

			pv, err := pricing.BondPV(params, app.Config.FreqPolicy())
			return app.report(cmd, "bond", "Bond PV", inputs, pv, err)
		},
	}

	cmd.Flags().Float64("face", 0, "face value")
	cmd.Flags().Float64("coupon", 0, "annual coupon rate as a fraction of face")
	cmd.Flags().Float64("y", 0, "yield to maturity")
	cmd.Flags().Int("n", 0, "maturity in years")
	cmd.Flags().Int("freq", 2, "coupon periods per year (default from config, 2)")
	for _, name := range []string{"face", "coupon", "y", "n"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newSwapCmd(app *App) *cobra.Command {
	var payer pricing.Payer

	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Price a mini fixed-vs-float swap",
		Long: `Price a simplified swap whose float leg pays float_rate for its whole life.

Both legs are discounted at float_rate/freq per period and both include a
notional exchange at maturity. The result is signed from the payer's side:
paying fixed returns float leg minus fixed leg.`,
		Example: `  pricer swap --notional 1000000 --fixed_rate 0.04 --float_rate 0.035 --years 5 --payer fixed
  pricer swap --notional 1000000 --fixed_rate 0.04 --float_rate 0.035 --years 5 --freq 4 --payer float --legs`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			params := pricing.SwapParams{
				Notional:  flagFloat(flags, "notional", 0),
				FixedRate: flagFloat(flags, "fixed_rate", 0),
				FloatRate: flagFloat(flags, "float_rate", 0),
				Years:     flagInt(flags, "years", 0),
				Freq:      flagInt(flags, "freq", app.Config.Swap.Freq),
				Payer:     payer,
			}
			inputs := map[string]interface{}{
				"notional":   params.Notional,
				"fixed_rate": params.FixedRate,
				"float_rate": params.FloatRate,
				"years":      params.Years,
				"freq":       params.Freq,
				"payer":      payer.String(),
			}

			pv, err := pricing.SwapPV(params)
			if showLegs, _ := flags.GetBool("legs"); !showLegs || err != nil {
				return app.report(cmd, "swap", "Swap PV", inputs, pv, err)
			}

			fixedLeg, floatLeg, err := pricing.SwapLegs(params)
			return app.report(cmd, "swap", "Swap PV", inputs, pv, err,
				legValue{"Fixed leg", fixedLeg}, legValue{"Float leg", floatLeg})
		},
	}

	cmd.Flags().Float64("notional", 0, "notional amount")
	cmd.Flags().Float64("fixed_rate", 0, "fixed leg annual rate")
	cmd.Flags().Float64("float_rate", 0, "float leg annual rate, also the discount rate")
	cmd.Flags().Int("years", 0, "swap tenor in years")
	cmd.Flags().Int("freq", 2, "payment periods per year (default from config, 2)")
	cmd.Flags().Var(&payer, "payer", "leg paid by the holder: fixed or float")
	cmd.Flags().Bool("legs", false, "also print both leg values")
	for _, name := range []string{"notional", "fixed_rate", "float_rate", "years", "payer"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

type legValue struct {
	name string
	pv   float64
}

// report logs the valuation and prints it, or returns the pricing error.
func (a *App) report(cmd *cobra.Command, instrument, label string, inputs map[string]interface{}, pv float64, err error, legs ...legValue) error {
	logger := logging.WithInstrument(a.Logger, instrument)
	if err != nil {
		logging.LogPricingError(logger, instrument, err)
		return err
	}

	result, err := NewResult(instrument, label, pv, a.Config.Output.Precision, inputs)
	if err != nil {
		logging.LogPricingError(logger, instrument, err)
		return err
	}
	for _, leg := range legs {
		result = result.WithLeg(leg.name, leg.pv)
	}
	logging.LogPricing(logger, instrument, inputs, pv)

	return NewOutput(cmd, a.Config.Output.JSON).Result(result)
}
