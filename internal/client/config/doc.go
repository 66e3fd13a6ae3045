// Package config loads runtime configuration for the gatekeeper client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the auth server
//	-i int      health check interval (seconds)
//	-t int      per-request timeout (seconds)
//	-s          discard health replies older than the last one applied
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "5s"
// or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080",
//	  "health_check_interval": "5s",
//	  "request_timeout": "10s",
//	  "discard_stale_health": true
//	}
//
// The package does not read environment variables.
package config
