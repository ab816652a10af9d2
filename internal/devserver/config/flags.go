package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/giftshop/internal/flagx"
)

// parseFlags populates cfg from command-line flags.
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-r int      login attempts per minute per client
//	-l string   log level
//
// The token validity flag is accepted in whole minutes.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	validity := fs.Int("t", int(cfg.TokenValidity.Minutes()), "token validity (in minutes)")
	fs.IntVar(&cfg.LoginRatePerMinute, "r", cfg.LoginRatePerMinute, "login attempts per minute")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := flagx.ParseKnown(fs, args); err != nil {
		panic(err)
	}

	cfg.TokenValidity = time.Duration(*validity) * time.Minute
}
