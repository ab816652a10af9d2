package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/giftshop/internal/flagx"
	"github.com/dmitrijs2005/giftshop/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// either "1h"-style strings or integer nanoseconds.
type JsonConfig struct {
	Addr               string         `json:"addr"`
	SecretKey          string         `json:"secret_key"`
	TokenValidity      timex.Duration `json:"token_validity"`
	LoginRatePerMinute int            `json:"login_rate_per_minute"`
	ShutdownTimeout    timex.Duration `json:"shutdown_timeout"`
	LogLevel           string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config. Zero fields keep
// the current value. Read or decode failures panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Addr != "" {
		cfg.Addr = jc.Addr
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenValidity.Duration > 0 {
		cfg.TokenValidity = jc.TokenValidity.Duration
	}
	if jc.LoginRatePerMinute > 0 {
		cfg.LoginRatePerMinute = jc.LoginRatePerMinute
	}
	if jc.ShutdownTimeout.Duration > 0 {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
