// Package config loads client configuration from flags, environment and the
// optional config file under the user state directory.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/deepretrieve/deepretrieve/internal/storage"
)

// Config holds everything the client needs to reach and poll the backend.
type Config struct {
	// BackendURL is the backend origin. Never hardcoded at call sites.
	BackendURL string `mapstructure:"backend_url"`

	// PollInterval is the health check cadence.
	PollInterval time.Duration `mapstructure:"poll_interval"`
	// PingTimeout bounds a single health check.
	PingTimeout time.Duration `mapstructure:"ping_timeout"`
	// UploadTimeout bounds a document upload.
	UploadTimeout time.Duration `mapstructure:"upload_timeout"`
	// QueryTimeout bounds a chat query.
	QueryTimeout time.Duration `mapstructure:"query_timeout"`

	// TopK is the fixed result count sent with each query.
	TopK int `mapstructure:"top_k"`

	// Theme selects the TUI color theme.
	Theme string `mapstructure:"theme"`

	// Debug routes logs to stderr instead of the log file.
	Debug bool `mapstructure:"debug"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend_url", "http://localhost:8000")
	v.SetDefault("poll_interval", 10*time.Second)
	v.SetDefault("ping_timeout", 3*time.Second)
	v.SetDefault("upload_timeout", 60*time.Second)
	v.SetDefault("query_timeout", 30*time.Second)
	v.SetDefault("top_k", 5)
	v.SetDefault("theme", "default")
	v.SetDefault("debug", false)
}

// Load reads configuration with the usual precedence: defaults, then the
// config file if present, then DEEPRETRIEVE_* environment variables.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if dir, err := storage.NewPathManager().BaseDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("DEEPRETRIEVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend_url must not be empty")
	}
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be at least 1, got %d", c.TopK)
	}
	if c.PollInterval <= 0 || c.PingTimeout <= 0 || c.UploadTimeout <= 0 || c.QueryTimeout <= 0 {
		return fmt.Errorf("all timeouts and intervals must be positive")
	}
	return nil
}
