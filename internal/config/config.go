// Package config loads edurisk settings from defaults, an optional YAML file,
// EDURISK_* environment variables and command-line flags, in rising priority.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration.
type Config struct {
	Predictor PredictorConfig `mapstructure:"predictor"`
	Log       LogConfig       `mapstructure:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

// PredictorConfig points at the prediction service.
type PredictorConfig struct {
	// Endpoint is the service base URL; /predict and /health are appended.
	Endpoint string `mapstructure:"endpoint"`
	// Timeout bounds a single request. Default: 15s.
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// TracingConfig enables OTLP/HTTP trace export.
type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

const envPrefix = "EDURISK"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Predictor: PredictorConfig{
			Endpoint: "http://127.0.0.1:5000",
			Timeout:  15 * time.Second,
		},
		Log: LogConfig{
			File:       defaultLogFile(),
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Tracing: TracingConfig{
			Endpoint: "http://localhost:4318",
		},
	}
}

// FlagKeys maps command-line flag names to config keys.
var FlagKeys = map[string]string{
	"endpoint":  "predictor.endpoint",
	"timeout":   "predictor.timeout",
	"log-file":  "log.file",
	"log-level": "log.level",
}

// Load resolves the configuration. configFile may be empty, in which case
// $XDG_CONFIG_HOME/edurisk/config.yaml is read when it exists. flags may be
// nil; only flags that were set override lower layers.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(dir, "edurisk"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.Predictor.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("predictor endpoint %q must be an http(s) URL", c.Predictor.Endpoint)
	}
	if c.Predictor.Timeout <= 0 {
		return fmt.Errorf("predictor timeout must be positive, got %s", c.Predictor.Timeout)
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return errors.New("tracing is enabled but no tracing endpoint is set")
	}
	return nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("predictor.endpoint", d.Predictor.Endpoint)
	v.SetDefault("predictor.timeout", d.Predictor.Timeout)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.endpoint", d.Tracing.Endpoint)
}

// defaultLogFile returns the log path under the user cache directory.
func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "edurisk", "edurisk.log")
}
