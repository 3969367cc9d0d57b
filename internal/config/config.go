// Package config provides configuration management for the pricer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"simple-pricer/internal/errors"
	"simple-pricer/internal/pricing"
)

// EnvConfigDir names the environment variable that overrides the config directory.
const EnvConfigDir = "PRICER_CONFIG_DIR"

// Config holds all application configuration.
type Config struct {
	Option OptionConfig `mapstructure:"option"`
	Bond   BondConfig   `mapstructure:"bond"`
	Swap   SwapConfig   `mapstructure:"swap"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// OptionConfig holds option pricing defaults.
type OptionConfig struct {
	Dividend float64 `mapstructure:"dividend"` // default q when --q is omitted
}

// BondConfig holds bond pricing defaults.
type BondConfig struct {
	Freq            int  `mapstructure:"freq"`
	StrictFrequency bool `mapstructure:"strict_frequency"` // restrict freq to 1, 2, 4, 12
}

// SwapConfig holds swap pricing defaults.
type SwapConfig struct {
	Freq int `mapstructure:"freq"`
}

// OutputConfig holds result formatting options.
type OutputConfig struct {
	Precision int  `mapstructure:"precision"`
	JSON      bool `mapstructure:"json"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/pricer"
	}
	return filepath.Join(home, ".config", "pricer")
}

// ConfigFile returns the path of config.toml inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, "config.toml")
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	return &Config{
		Option: OptionConfig{Dividend: 0.0},
		Bond:   BondConfig{Freq: 2, StrictFrequency: true},
		Swap:   SwapConfig{Freq: 2},
		Output: OutputConfig{Precision: 6},
		Log: LogConfig{
			Level:      "warn",
			File:       false,
			FilePath:   filepath.Join(DefaultConfigDir(), "logs", "pricer.log"),
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
		},
	}
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config.toml is not an error: built-in defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := newViper(configDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrapf(err, "reading %s", ConfigFile(configDir))
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}

	return cfg, nil
}

func newViper(configDir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	d := Default()
	v.SetDefault("option.dividend", d.Option.Dividend)
	v.SetDefault("bond.freq", d.Bond.Freq)
	v.SetDefault("bond.strict_frequency", d.Bond.StrictFrequency)
	v.SetDefault("swap.freq", d.Swap.Freq)
	v.SetDefault("output.precision", d.Output.Precision)
	v.SetDefault("output.json", d.Output.JSON)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.file_path", d.Log.FilePath)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	return v
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PRICER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PRICER_PRECISION"); v != "" {
		if p, err := cast.ToIntE(v); err == nil {
			cfg.Output.Precision = p
		}
	}
	if v := os.Getenv("PRICER_STRICT_FREQUENCY"); v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			cfg.Bond.StrictFrequency = b
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Output.Precision < 0 || c.Output.Precision > 15 {
		return errors.NewValidationError(errors.ErrConfigInvalid, "output.precision", c.Output.Precision, "must be between 0 and 15")
	}
	if c.Swap.Freq <= 0 {
		return errors.NewValidationError(errors.ErrConfigInvalid, "swap.freq", c.Swap.Freq, "must be positive")
	}
	if !c.FreqPolicy().Allows(c.Bond.Freq) {
		return errors.NewValidationError(errors.ErrConfigInvalid, "bond.freq", c.Bond.Freq, "not allowed by the frequency policy")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.NewValidationError(errors.ErrConfigInvalid, "log.level", c.Log.Level, "must be debug, info, warn or error")
	}
	return nil
}

// FreqPolicy returns the bond frequency policy selected by the configuration.
func (c *Config) FreqPolicy() pricing.FreqPolicy {
	if c.Bond.StrictFrequency {
		return pricing.StrictFrequencies
	}
	return pricing.AnyFrequency
}

// Summary returns the effective settings as flat key/value pairs.
func (c *Config) Summary() map[string]string {
	return map[string]string{
		"option.dividend":       cast.ToString(c.Option.Dividend),
		"bond.freq":             cast.ToString(c.Bond.Freq),
		"bond.strict_frequency": cast.ToString(c.Bond.StrictFrequency),
		"swap.freq":             cast.ToString(c.Swap.Freq),
		"output.precision":      cast.ToString(c.Output.Precision),
		"output.json":           cast.ToString(c.Output.JSON),
		"log.level":             c.Log.Level,
		"log.file":              fmt.Sprintf("%v (%s)", c.Log.File, c.Log.FilePath),
	}
}
