// Package config loads runtime configuration for the flow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the Flow backend
//	-d string   path of the local SQLite database
//	-i int      color scheme probe interval (seconds)
//	-s string   color scheme file to watch instead of probing the terminal
//	-t int      per-command timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "500ms"
// or numbers of seconds. Duration flags only apply when given, and every
// duration must end up positive. Keys missing from the file keep their
// earlier value:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "db_path": "flow.db",
//	  "scheme_check_interval": "3s",
//	  "scheme_file": "",
//	  "online_check_interval": 5,
//	  "command_timeout": "15s",
//	  "log_level": "info"
//	}
package config
