// Package config loads runtime configuration for the giftshop CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "storage_path": "giftshop.db",
//	  "page_size": 10,
//	  "log_level": "warn"
//	}
package config
