package config

import (
	"fmt"
	"os"
)

const configTemplate = `# Pricer Configuration

[option]
# Continuous dividend yield used when --q is omitted
dividend = 0.0

[bond]
# Coupon periods per year used when --freq is omitted
freq = 2
# Only accept 1, 2, 4 or 12 coupon periods per year
strict_frequency = true

[swap]
# Payment periods per year used when --freq is omitted
freq = 2

[output]
# Decimal places printed for present values
precision = 6
# Print results as JSON
json = false

[log]
# Log level: debug, info, warn, error
level = "warn"
# Also write logs to a rotating file
file = false
# file_path = "~/.config/pricer/logs/pricer.log"
max_size = 10
max_backups = 3
max_age = 30
`

// WriteTemplate writes a commented config.toml into configDir.
// An existing file is left untouched unless force is set.
func WriteTemplate(configDir string, force bool) (string, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	path := ConfigFile(configDir)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return "", fmt.Errorf("writing config template: %w", err)
	}
	return path, nil
}
