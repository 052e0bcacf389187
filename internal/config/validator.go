package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	if n := viper.GetInt("default_count"); n <= 0 {
		errors = append(errors, fmt.Sprintf("default_count must be positive, got: %d", n))
	}

	if strings.TrimSpace(viper.GetString("ledger_file")) == "" {
		errors = append(errors, "ledger_file must not be empty")
	}

	if len(viper.GetStringSlice("manifests")) == 0 {
		errors = append(errors, "manifests must list at least one file name")
	}

	if strings.TrimSpace(viper.GetString("shell")) == "" {
		errors = append(errors, "shell must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}
