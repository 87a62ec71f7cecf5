package conf

import (
	"os"
	"time"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/errors"
	"github.com/nicholaswilde/rescue-groups-mcp/pkg/config"
)

const (
	AppName      = "rescue-groups-mcp"
	EnvPrefix    = "RESCUEGROUPS"
	EnvConfigDir = "RESCUEGROUPS_DIR"
)

// Settings is the fully-resolved configuration handed to the server core.
// Construction (file + env + flag merge) happens here; everything downstream
// treats the value as read-only.
type Settings struct {
	APIKey            string `mapstructure:"api_key"`
	BaseURL           string `mapstructure:"base_url"`
	PostalCode        string `mapstructure:"postal_code"`
	Miles             int    `mapstructure:"miles"`
	Species           string `mapstructure:"species"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
	Lazy              bool   `mapstructure:"lazy"`
	CacheSize         int    `mapstructure:"cache_size"`
	CacheTTLMinutes   int    `mapstructure:"cache_ttl_minutes"`
	RateLimitRequests int    `mapstructure:"rate_limit_requests"`
	RateLimitWindow   int    `mapstructure:"rate_limit_window"`
	HTTPAddr          string `mapstructure:"http_addr"`
	AuthToken         string `mapstructure:"auth_token"`
}

// Defaults also register api_key and auth_token so AutomaticEnv picks
// them up; viper only overlays env vars onto keys it already knows.
var Defaults = map[string]any{
	"api_key":             "",
	"auth_token":          "",
	"base_url":            "https://api.rescuegroups.org/v5",
	"postal_code":         "90210",
	"miles":               50,
	"species":             "dogs",
	"timeout_seconds":     30,
	"lazy":                true,
	"cache_size":          100,
	"cache_ttl_minutes":   15,
	"rate_limit_requests": 60,
	"rate_limit_window":   60,
	"http_addr":           "0.0.0.0:3000",
}

// Load merges the config file (JSON in the config dir), RESCUEGROUPS_*
// environment variables, and command-line overrides, in ascending priority.
func Load(configPath string, overrides map[string]any) (*Settings, error) {
	if configPath == "" {
		configPath = os.Getenv(EnvConfigDir)
	}

	cm, err := config.New(AppName, configPath, "", EnvPrefix, false)
	if err != nil {
		return nil, errors.Config("failed to init config", err)
	}
	config.SetDefaults(cm.Viper, Defaults)

	for key, value := range overrides {
		cm.Viper.Set(key, value)
	}

	conf := &Settings{}
	if err := cm.Load(conf); err != nil {
		return nil, errors.Config("failed to load config", err)
	}

	if conf.APIKey == "" {
		return nil, errors.Config("api key is missing: set RESCUEGROUPS_API_KEY or api_key in the config file", nil)
	}

	return conf, nil
}

func (s *Settings) RequestTimeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

func (s *Settings) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLMinutes) * time.Minute
}

func (s *Settings) RateWindow() time.Duration {
	return time.Duration(s.RateLimitWindow) * time.Second
}
