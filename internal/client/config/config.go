package config

import "time"

// Config holds runtime settings for the gatekeeper client.
//
// Fields:
//   - ServerBaseURL: scheme://host:port of the auth server, no trailing path.
//   - HealthCheckInterval: period of the background health poller.
//   - RequestTimeout: upper bound for one outbound request.
//   - DiscardStaleHealth: apply health replies in issue order only.
type Config struct {
	ServerBaseURL       string
	HealthCheckInterval time.Duration
	RequestTimeout      time.Duration
	DiscardStaleHealth  bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.HealthCheckInterval = 5 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.DiscardStaleHealth = false
}

// PendingTTL is how long an issued request is remembered while awaiting its
// reply. Every request is cut off by RequestTimeout, so twice that is enough.
func (c *Config) PendingTTL() time.Duration {
	return 2 * c.RequestTimeout
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
