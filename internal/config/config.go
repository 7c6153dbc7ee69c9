// Package config builds the application configuration at startup. The API
// key comes from the environment (a .env file in the working directory is
// read first, matching how the key is usually provisioned); everything else
// has defaults overridable via CMC_-prefixed environment variables.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// ErrMissingAPIKey means CMC_API_KEY is set neither in the environment nor
// in a .env file. Both binaries treat this as a fatal startup error.
var ErrMissingAPIKey = errors.New("API key not found: set CMC_API_KEY in the environment or in a .env file")

// Config is passed explicitly to the client and the viewer; core logic
// never reads ambient global state.
type Config struct {
	APIKey        string
	BaseURL       string
	Convert       string // reference currency for every monetary field
	DefaultLimit  int    // coins fetched per refresh by default
	AutoRefreshMS int    // 0 disables auto-refresh
	HTTPTimeout   time.Duration
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = gotenv.Load() // missing .env is fine

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("CMC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		APIKey:        v.GetString("api_key"),
		BaseURL:       v.GetString("base_url"),
		Convert:       v.GetString("convert"),
		DefaultLimit:  v.GetInt("default_limit"),
		AutoRefreshMS: v.GetInt("auto_refresh_ms"),
		HTTPTimeout:   v.GetDuration("http_timeout"),
	}

	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "https://pro-api.coinmarketcap.com")
	v.SetDefault("convert", "USD")
	v.SetDefault("default_limit", 200)
	v.SetDefault("auto_refresh_ms", 0)
	v.SetDefault("http_timeout", 20*time.Second)
}

// MaskedKey returns the API key safe for logs, keeping only the first and
// last three characters.
func (c *Config) MaskedKey() string {
	if len(c.APIKey) <= 8 {
		return "***"
	}
	return c.APIKey[:3] + "..." + c.APIKey[len(c.APIKey)-3:]
}
