package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://api:9090", "-f", "/tmp/gs.db", "-p", "20", "-l", "debug"},
			expected: &Config{APIBaseURL: "http://api:9090", StoragePath: "/tmp/gs.db", PageSize: 20,
				LogLevel: "debug"},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-c", "cfg.json", "-a", "http://api:9090"},
			expected: &Config{APIBaseURL: "http://api:9090", StoragePath: "giftshop.db", PageSize: 10, LogLevel: "warn"},
		},
		{name: "bad page size", args: []string{"-p", "ten"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.LoadDefaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
