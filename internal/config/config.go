package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/petstore-client/pkg/petstore"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BaseURL            string        `mapstructure:"petstore_base_url"`
	RequestTimeoutMS   int64         `mapstructure:"request_timeout_ms"`
	RequestTimeout     time.Duration `mapstructure:"-"`
	RetryCount         int           `mapstructure:"retry_count"`
	LegacyUserPath     bool          `mapstructure:"legacy_user_path"`
	LogResponseHeaders bool          `mapstructure:"log_response_headers"`

	ChecksFile           string        `mapstructure:"checks_file"`
	PublishersFile       string        `mapstructure:"publishers_file"`
	CheckIntervalSeconds int64         `mapstructure:"check_interval"`
	CheckInterval        time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`

	TwinAddr     string `mapstructure:"twin_addr"`
	TwinSeedFile string `mapstructure:"twin_seed_file"`
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"base-url":         "petstore_base_url",
	"log-level":        "log_level",
	"legacy-user-path": "legacy_user_path",
	"checks":           "checks_file",
	"publishers":       "publishers_file",
	"interval":         "check_interval",
	"storage":          "storage_type",
	"twin-addr":        "twin_addr",
	"twin-seed":        "twin_seed_file",
}

// AddFlags registers command-line overrides. A flag that is set wins over
// the environment and defaults.
func AddFlags(f *pflag.FlagSet) {
	f.String("base-url", "", "pet-store base URL")
	f.String("log-level", "", "log level (debug, info, warn, error)")
	f.Bool("legacy-user-path", false, "call /user/user/{username} for user lookups")
	f.String("checks", "", "checks registry file")
	f.String("publishers", "", "publishers registry file")
	f.Int64("interval", 0, "seconds between check runs, 0 runs once")
	f.String("storage", "", "journal backend (none, bbolt)")
	f.String("twin-addr", "", "listen address of the twin")
	f.String("twin-seed", "", "seed file loaded into the twin")
}

// Load reads configuration from environment variables and configs/.env.
func Load() (*Config, error) {
	return LoadWithFlags(nil)
}

// LoadWithFlags is Load with overrides from flags registered by AddFlags.
func LoadWithFlags(f *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load("configs/.env")
	v := viper.New()
	if f != nil {
		for name, key := range flagKeys {
			fl := f.Lookup(name)
			if fl == nil {
				continue
			}
			if err := v.BindPFlag(key, fl); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "petstore-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("petstore_base_url", petstore.DefaultBaseURL)
	v.SetDefault("request_timeout_ms", petstore.DefaultTimeout.Milliseconds())
	v.SetDefault("retry_count", 0)
	v.SetDefault("legacy_user_path", false)
	v.SetDefault("log_response_headers", true)
	v.SetDefault("checks_file", "./configs/checks.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("check_interval", 0) // seconds, 0 runs once
	v.SetDefault("storage_type", "none")
	v.SetDefault("bbolt_path", "./data/journal.db")
	v.SetDefault("storage_ttl_seconds", int64((5*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))
	v.SetDefault("twin_addr", ":8080")
	v.SetDefault("twin_seed_file", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("invalid petstore_base_url (must not be empty)")
	}
	if cfg.RequestTimeoutMS <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_ms (must be positive milliseconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutMS) * time.Millisecond
	if cfg.RetryCount < 0 {
		return nil, fmt.Errorf("invalid retry_count (must not be negative)")
	}

	if cfg.CheckIntervalSeconds < 0 {
		return nil, fmt.Errorf("invalid check_interval (must be zero or positive seconds)")
	}
	cfg.CheckInterval = time.Duration(cfg.CheckIntervalSeconds) * time.Second

	if cfg.StorageTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}

// Petstore returns the client settings carried by cfg.
func (c *Config) Petstore() petstore.Config {
	return petstore.Config{
		BaseURL:            c.BaseURL,
		Timeout:            c.RequestTimeout,
		RetryCount:         c.RetryCount,
		LegacyUserPath:     c.LegacyUserPath,
		LogResponseHeaders: c.LogResponseHeaders,
	}
}
