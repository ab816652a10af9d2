package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/giftshop/internal/flagx"
)

// JsonConfig is the on-disk shape of the config file. Zero fields leave the
// current value untouched.
type JsonConfig struct {
	APIBaseURL  string `json:"api_base_url"`
	StoragePath string `json:"storage_path"`
	PageSize    int    `json:"page_size"`
	LogLevel    string `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config. Without the flag
// nothing happens; read or decode failures panic.
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

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.StoragePath != "" {
		cfg.StoragePath = jc.StoragePath
	}
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
