package config

import "os"

// Config holds runtime settings for the giftshop CLI.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the gift API; endpoint paths are appended.
//   - StoragePath: sqlite file that keeps the session record and order history.
//   - PageSize: theme products requested per page.
//   - LogLevel: debug, info, warn or error; logs go to stderr.
type Config struct {
	APIBaseURL  string
	StoragePath string
	PageSize    int
	LogLevel    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.StoragePath = "giftshop.db"
	c.PageSize = 10
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
