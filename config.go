package glassblog

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// SiteConfig holds all configuration for a glassblog site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "CoolBlog")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags
	Author      string `mapstructure:"author"`      // Author name for JSON-LD

	Addr       string `mapstructure:"addr"`        // Listen address (default ":3000")
	DataSource string `mapstructure:"data_source"` // posts file path or http(s) URL (default "data/posts.json")
	StaticDir  string `mapstructure:"static_dir"`  // user static assets (default "public")

	CacheTTL time.Duration `mapstructure:"cache_ttl"` // Post cache TTL (default 5m)
	Watch    bool          `mapstructure:"watch"`     // Invalidate the cache when the data file changes
	LogLevel string        `mapstructure:"log_level"` // debug, info, warn, error (default "info")

	RateLimit int `mapstructure:"rate_limit"` // requests per minute per IP, negative disables (default 120)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "CoolBlog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DataSource == "" {
		c.DataSource = "data/posts.json"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.RateLimit == 0 {
		c.RateLimit = 120
	}
}

// Level returns the parsed log level, defaulting to info.
func (c SiteConfig) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// configDefaults lists every key so AutomaticEnv can reach it through
// Unmarshal, including keys whose default is empty.
var configDefaults = map[string]any{
	"name":        "CoolBlog",
	"url":         "http://localhost:3000",
	"description": "",
	"author":      "",
	"addr":        ":3000",
	"data_source": "data/posts.json",
	"static_dir":  "public",
	"cache_ttl":   "5m",
	"watch":       true,
	"log_level":   "info",
	"rate_limit":  120,
}

// LoadConfig resolves configuration with precedence defaults < file < env.
// Environment variables use the GLASSBLOG_ prefix (GLASSBLOG_DATA_SOURCE).
// A missing config file is not an error unless one was set explicitly.
func LoadConfig(v *viper.Viper) (SiteConfig, error) {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	for k, val := range configDefaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix("glassblog")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || explicit {
			return SiteConfig{}, fmt.Errorf("glassblog: read config: %w", err)
		}
	}

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("glassblog: decode config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}

// WithLogger replaces the default stderr logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}
