package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the flow CLI.
//
// Fields:
//   - ServerURL: base URL of the Flow backend (scheme://host:port).
//   - DBPath: SQLite file holding client-local state (the client id).
//   - SchemeCheckInterval: how often the terminal color scheme is re-probed.
//   - SchemeFile: when set, the color scheme is read from this file and
//     watched for changes instead of being probed from the terminal.
//   - OnlineCheckInterval: how often the CLI probes the backend to switch
//     between online and offline mode.
//   - CommandTimeout: upper bound for a single REPL command's network calls.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerURL           string
	DBPath              string
	SchemeCheckInterval time.Duration
	SchemeFile          string
	OnlineCheckInterval time.Duration
	CommandTimeout      time.Duration
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DBPath = "flow.db"
	c.SchemeCheckInterval = 3 * time.Second
	c.SchemeFile = ""
	c.OnlineCheckInterval = 5 * time.Second
	c.CommandTimeout = 15 * time.Second
	c.LogLevel = "info"
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
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// Validate reports settings the client cannot run with. Intervals and the
// command timeout must be positive.
func (c *Config) Validate() error {
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"scheme check interval", c.SchemeCheckInterval},
		{"online check interval", c.OnlineCheckInterval},
		{"command timeout", c.CommandTimeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.value)
		}
	}
	return nil
}
