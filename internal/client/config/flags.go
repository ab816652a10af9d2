package config

import (
	"flag"

	"github.com/dmitrijs2005/giftshop/internal/flagx"
)

// parseFlags overlays cfg with command-line flags. Flags owned by other
// components (such as -c) are ignored. A malformed value panics.
//
//	-a string   gift API base URL
//	-f string   local storage file
//	-p int      theme products page size
//	-l string   log level
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("giftshop", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "gift API base URL")
	fs.StringVar(&cfg.StoragePath, "f", cfg.StoragePath, "local storage file")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "theme products page size")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := flagx.ParseKnown(fs, args); err != nil {
		panic(err)
	}
}
