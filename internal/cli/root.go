package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"simple-pricer/internal/config"
	"simple-pricer/internal/errors"
	"simple-pricer/internal/logging"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-10-15"
)

// App holds the application dependencies, populated before each command runs.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	ConfigDir string
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd() *cobra.Command {
	app := &App{
		Config: config.Default(),
		Logger: zerolog.Nop(),
	}

	rootCmd := &cobra.Command{
		Use:   "pricer",
		Short: "Present values for options, bonds and a mini swap",
		Long: `pricer computes present values for three elementary instruments:

  option  European call or put under Black-Scholes with continuous dividend yield
  bond    Level-coupon bullet bond discounted at its yield to maturity
  swap    Simplified fixed-vs-float swap valued from the payer's side

Defaults are read from config.toml in the config directory.
Use 'pricer config init' to write a commented template.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.ValidateRequiredFlags(); err != nil {
				return errors.NewUsageError(cmd.CommandPath(), err)
			}
			return app.setup(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/pricer)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Int("precision", 6, "decimal places for printed values")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.NewUsageError(cmd.CommandPath(), err)
	})

	addCoreCommands(rootCmd, app)
	addPricingCommands(rootCmd, app)
	addHelpCommands(rootCmd, app)

	return rootCmd
}

// setup loads configuration and builds the logger for the invoked command.
func (a *App) setup(cmd *cobra.Command) error {
	configDir, _ := cmd.Flags().GetString("config")
	if configDir == "" {
		configDir = config.DefaultConfigDir()
	}
	a.ConfigDir = configDir

	// config init must work even when the existing file is broken.
	if cmd.Annotations["skipConfig"] == "true" {
		return nil
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("precision") {
		p, _ := flags.GetInt("precision")
		cfg.Output.Precision = p
		if err := cfg.Validate(); err != nil {
			return errors.NewUsageError(cmd.CommandPath(), err)
		}
	}
	if flags.Changed("json") {
		cfg.Output.JSON, _ = flags.GetBool("json")
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}
	a.Config = cfg

	logCfg := logging.FromConfig(cfg.Log)
	logCfg.Out = cmd.ErrOrStderr()
	a.Logger = logging.NewLogger(logCfg)
	a.Logger.Debug().Str("config_dir", configDir).Str("command", cmd.CommandPath()).Msg("Configuration loaded")
	return nil
}

// Execute runs the root command with args and returns the process exit code.
// Errors are reported on the command's stderr.
func Execute(rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(args)
	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return errors.ExitOK
	}

	// The root has no action of its own: any error there is an unknown
	// command or stray argument.
	if cmd == rootCmd && !errors.Is(err, errors.ErrUsage) {
		err = errors.NewUsageError(rootCmd.Name(), err)
	}

	fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	if errors.Is(err, errors.ErrUsage) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Run '%s --help' for usage.\n", cmd.CommandPath())
	}
	return errors.ExitCode(err)
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.Output.JSON)
			if output.IsJSON() {
				return output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			}
			output.Printf("pricer v%s\n", Version)
			output.Printf("Build date: %s\n", BuildDate)
			return nil
		},
	}
}

// usageArgs classifies positional argument errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.NewUsageError(cmd.CommandPath(), err)
		}
		return nil
	}
}

// flagFloat returns the flag value, or fallback when the flag was not set.
func flagFloat(flags *pflag.FlagSet, name string, fallback float64) float64 {
	if !flags.Changed(name) {
		return fallback
	}
	v, _ := flags.GetFloat64(name)
	return v
}

// flagInt returns the flag value, or fallback when the flag was not set.
func flagInt(flags *pflag.FlagSet, name string, fallback int) int {
	if !flags.Changed(name) {
		return fallback
	}
	v, _ := flags.GetInt(name)
	return v
}
