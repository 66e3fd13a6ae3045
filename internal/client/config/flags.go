package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gatekeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the auth server (default from Config)
//	-i int      health check interval in seconds (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-s          discard stale health replies (use -s=false to turn off)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-t", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the auth server")
	flagx.SecondsVar(fs, &cfg.HealthCheckInterval, "i", "health check interval (in seconds)")
	flagx.SecondsVar(fs, &cfg.RequestTimeout, "t", "request timeout (in seconds)")
	fs.BoolVar(&cfg.DiscardStaleHealth, "s", cfg.DiscardStaleHealth, "discard stale health replies")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
