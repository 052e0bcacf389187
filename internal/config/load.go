package config

import (
	"errors"
	"fmt"
	"strings"

	"perfledger/internal/ledger"
	"perfledger/internal/project"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the resolved configuration for one invocation.
type Config struct {
	LedgerFile   string
	BenchDir     string
	DefaultCount int
	Manifests    []string
	Shell        string
	NoColor      bool
	Verbose      bool
	LogFile      string
	MetricsFile  string
	SlackWebhook string
}

// SetDefaults registers every default value.
func SetDefaults() {
	viper.SetDefault("ledger_file", ledger.DefaultFileName)
	viper.SetDefault("bench_dir", "./perf")
	viper.SetDefault("default_count", 1000)
	viper.SetDefault("manifests", project.DefaultManifests)
	viper.SetDefault("shell", "sh")
	viper.SetDefault("no_color", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
	viper.SetDefault("metrics_file", "")
	viper.SetDefault("notify.slack_webhook", "")
}

// Load initializes the configuration from file and environment variables.
// Without an explicit cfgFile, ".perfledger.yaml" is searched in dirs.
// A missing config file is not an error.
func Load(cfgFile string, dirs ...string) error {
	// explicit .env loading; a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		for _, d := range dirs {
			viper.AddConfigPath(d)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".perfledger")
	}

	viper.SetEnvPrefix("PERFLEDGER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Get builds a Config from the current viper state.
func Get() Config {
	return Config{
		LedgerFile:   viper.GetString("ledger_file"),
		BenchDir:     viper.GetString("bench_dir"),
		DefaultCount: viper.GetInt("default_count"),
		Manifests:    viper.GetStringSlice("manifests"),
		Shell:        viper.GetString("shell"),
		NoColor:      viper.GetBool("no_color"),
		Verbose:      viper.GetBool("verbose"),
		LogFile:      viper.GetString("log_file"),
		MetricsFile:  viper.GetString("metrics_file"),
		SlackWebhook: viper.GetString("notify.slack_webhook"),
	}
}
