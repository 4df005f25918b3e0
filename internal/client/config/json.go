package config

import (
	"encoding/json"
	"os"

	"github.com/celerix-dev/flowclient/internal/flagx"
	"github.com/celerix-dev/flowclient/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from "empty" so a partial file only overrides what it
// names.
type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	DBPath              *string         `json:"db_path"`
	SchemeCheckInterval *timex.Duration `json:"scheme_check_interval"`
	SchemeFile          *string         `json:"scheme_file"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	CommandTimeout      *timex.Duration `json:"command_timeout"`
	LogLevel            *string         `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// Without either flag it does nothing. Read or decode errors panic.
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

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.DBPath != nil {
		cfg.DBPath = *jc.DBPath
	}
	if jc.SchemeCheckInterval != nil {
		cfg.SchemeCheckInterval = jc.SchemeCheckInterval.Duration
	}
	if jc.SchemeFile != nil {
		cfg.SchemeFile = *jc.SchemeFile
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.CommandTimeout != nil {
		cfg.CommandTimeout = jc.CommandTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
