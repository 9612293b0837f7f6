package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var ValidLogFormats = []string{"console", "json"}

type Config struct {
	Env       string
	Scheduler SchedulerConfig
	Log       LogConfig
	Metrics   MetricsConfig
}

type SchedulerConfig struct {
	MaxIterations uint64
	Timeout       time.Duration
	Precheck      bool
}

type LogConfig struct {
	Level  string
	Format string
}

type MetricsConfig struct {
	File string // Prometheus textfile written after each run; empty disables it
}

// Load reads configuration from the environment (EVENTGRID_ prefix, .env honoured) and an optional YAML file.
// If configFile is empty, eventgrid.yaml in the working directory is used when present
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("EVENTGRID")
	v.AutomaticEnv()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("eventgrid")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	timeout, err := time.ParseDuration(v.GetString("TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid timeout %q: %w", v.GetString("TIMEOUT"), err)
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Scheduler = SchedulerConfig{
		MaxIterations: v.GetUint64("MAX_ITERATIONS"),
		Timeout:       timeout,
		Precheck:      v.GetBool("PRECHECK"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{
		File: v.GetString("METRICS_FILE"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Scheduler.MaxIterations == 0 {
		return errors.New("max iterations must be greater than zero")
	} else if cfg.Scheduler.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive: got %v", cfg.Scheduler.Timeout)
	} else if !slices.Contains(ValidLogFormats, cfg.Log.Format) {
		return fmt.Errorf("invalid log format %q: must be one of %v", cfg.Log.Format, ValidLogFormats)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("MAX_ITERATIONS", 100_000)
	v.SetDefault("TIMEOUT", "30s")
	v.SetDefault("PRECHECK", false)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("METRICS_FILE", "")
}
