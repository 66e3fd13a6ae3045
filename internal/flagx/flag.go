// Package flagx holds the small flag helpers shared by the server, client and
// operator binaries: per-component argument filtering, config file discovery
// and whole-second duration flags.
package flagx

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// FilterArgs returns only the allowed flags (and their values) from args.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      -config=conf.json
//
// A value that starts with '-' is never consumed as the previous flag's value.
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// JsonConfigFlags extracts the config file path given via -c or -config in
// os.Args. Returns "" when neither is present.
func JsonConfigFlags() string {
	return JsonConfigFlagsFrom(os.Args[1:])
}

// JsonConfigFlagsFrom is JsonConfigFlags over an explicit argument list.
// When both flags are given the last one wins.
func JsonConfigFlagsFrom(args []string) string {
	var config string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return config
}

// Seconds is a flag.Value that reads and prints a time.Duration as a whole
// number of seconds, so "-i 5" means five seconds.
type Seconds struct {
	D *time.Duration
}

func (s Seconds) String() string {
	if s.D == nil {
		return "0"
	}
	return strconv.Itoa(int(s.D.Seconds()))
}

func (s Seconds) Set(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*s.D = time.Duration(n) * time.Second
	return nil
}

// SecondsVar registers a whole-second duration flag bound to d.
func SecondsVar(fs *flag.FlagSet, d *time.Duration, name, usage string) {
	fs.Var(Seconds{D: d}, name, usage)
}
