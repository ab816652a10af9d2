// Package config handles configuration for the development API server,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the dev server.
//
// Fields:
//   - Addr: HTTP bind address.
//   - SecretKey: HMAC secret for signing login tokens (HS256). Empty means a random
//     secret per process, so tokens do not survive a restart.
//   - TokenValidity: lifetime of issued tokens.
//   - LoginRatePerMinute: login attempts allowed per client address per minute.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Addr               string
	SecretKey          string
	TokenValidity      time.Duration
	LoginRatePerMinute int
	ShutdownTimeout    time.Duration
	LogLevel           string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SecretKey = ""
	c.TokenValidity = 60 * time.Minute
	c.LoginRatePerMinute = 30
	c.ShutdownTimeout = 5 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
