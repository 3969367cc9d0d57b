package cli

import (
	"github.com/spf13/cobra"
)

// addHelpCommands adds documentation commands.
func addHelpCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExamplesCmd(app))
}

type example struct {
	title    string
	commands []string
}

func pricingExamples() []example {
	return []example{
		{
			title: "European Options",
			commands: []string{
				"pricer option --type call --S 100 --K 100 --r 0.03 --sigma 0.2 --T 1",
				"pricer option --type put --S 100 --K 95 --r 0.03 --q 0.01 --sigma 0.25 --T 0.5",
			},
		},
		{
			title: "Coupon Bonds",
			commands: []string{
				"pricer bond --face 1000 --coupon 0.05 --y 0.04 --n 5            # semi-annual",
				"pricer bond --face 1000 --coupon 0.05 --y 0.04 --n 5 --freq 12  # monthly",
			},
		},
		{
			title: "Mini Swap",
			commands: []string{
				"pricer swap --notional 1000000 --fixed_rate 0.04 --float_rate 0.035 --years 5 --payer fixed",
				"pricer swap --notional 1000000 --fixed_rate 0.04 --float_rate 0.035 --years 5 --payer float --legs",
			},
		},
		{
			title: "Output and Configuration",
			commands: []string{
				"pricer bond --face 1000 --coupon 0.05 --y 0.04 --n 5 --json",
				"pricer bond --face 1000 --coupon 0.05 --y 0.04 --n 5 --precision 2",
				"pricer config init              # write config.toml template",
				"pricer config show              # effective defaults",
			},
		},
	}
}

func newExamplesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common pricing examples",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.Output.JSON)
			examples := pricingExamples()

			if output.IsJSON() {
				doc := make(map[string][]string, len(examples))
				for _, ex := range examples {
					doc[ex.title] = ex.commands
				}
				return output.JSON(doc)
			}

			output.Bold("Common Pricing Examples")
			output.Println()
			for _, ex := range examples {
				output.Info(ex.title)
				for _, c := range ex.commands {
					output.Printf("  %s\n", c)
				}
				output.Println()
			}
			return nil
		},
	}
}
