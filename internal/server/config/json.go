package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gatekeeper/internal/flagx"
	"github.com/dmitrijs2005/gatekeeper/internal/timex"
)

// JsonConfig is the JSON file shape of Config. Intervals use timex.Duration,
// so both "10s" and integer nanoseconds are accepted.
type JsonConfig struct {
	HTTPAddr           string         `json:"http_addr"`
	GRPCHealthAddr     string         `json:"grpc_health_addr"`
	StoreDriver        string         `json:"store_driver"`
	DatabaseDSN        string         `json:"database_dsn"`
	PasswordScheme     string         `json:"password_scheme"`
	SeedUsersPath      string         `json:"seed_users_path"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	StoreProbeInterval timex.Duration `json:"store_probe_interval"`
}

// parseJson overlays config with the values present in the JSON file named by
// -c or -config. Keys absent from the file keep their current value.
// Panics if the file cannot be read or parsed.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var c JsonConfig
	if err := json.Unmarshal(data, &c); err != nil {
		panic(err)
	}

	overlay(&config.HTTPAddr, c.HTTPAddr)
	overlay(&config.GRPCHealthAddr, c.GRPCHealthAddr)
	overlay(&config.StoreDriver, c.StoreDriver)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.PasswordScheme, c.PasswordScheme)
	overlay(&config.SeedUsersPath, c.SeedUsersPath)
	if c.RequestTimeout.Duration > 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.StoreProbeInterval.Duration > 0 {
		config.StoreProbeInterval = c.StoreProbeInterval.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
