package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gatekeeper/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health probe bind address, empty disables it
//	-s string   store driver: postgres, sqlite, memory
//	-d string   database DSN
//	-p string   password scheme: bcrypt, argon2id, plain
//	-u string   seed users YAML file
//	-t int      request timeout, seconds
//	-i int      store probe interval, seconds
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-s", "-d", "-p", "-u", "-t", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run the HTTP server")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "address and port of the gRPC health probe")
	fs.StringVar(&config.StoreDriver, "s", config.StoreDriver, "store driver (postgres, sqlite, memory)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.PasswordScheme, "p", config.PasswordScheme, "password scheme (bcrypt, argon2id, plain)")
	fs.StringVar(&config.SeedUsersPath, "u", config.SeedUsersPath, "seed users YAML file")
	flagx.SecondsVar(fs, &config.RequestTimeout, "t", "request timeout (in seconds)")
	flagx.SecondsVar(fs, &config.StoreProbeInterval, "i", "store probe interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
