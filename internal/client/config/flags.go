package config

import (
	"flag"
	"time"

	"github.com/celerix-dev/flowclient/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-i", "-s", "-o", "-t", "-l"}

// parseFlags populates Config fields from command-line flags. Flags owned by
// other components (such as -c) are filtered out first. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the Flow backend")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the local SQLite database")
	fs.StringVar(&cfg.SchemeFile, "s", cfg.SchemeFile, "color scheme file to watch")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	interval := fs.Int("i", int(cfg.SchemeCheckInterval.Seconds()), "color scheme probe interval (in seconds)")
	online := fs.Int("o", int(cfg.OnlineCheckInterval.Seconds()), "backend liveness probe interval (in seconds)")
	timeout := fs.Int("t", int(cfg.CommandTimeout.Seconds()), "per-command timeout (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}

	// Durations are only overwritten by flags that were given, so values
	// finer than a second from JSON survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.SchemeCheckInterval = time.Duration(*interval) * time.Second
		case "o":
			cfg.OnlineCheckInterval = time.Duration(*online) * time.Second
		case "t":
			cfg.CommandTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
