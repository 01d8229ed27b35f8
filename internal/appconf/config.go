// Package appconf holds the process configuration and its loaders.
package appconf

import (
	"net"
	"strconv"
	"strings"
	"time"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps a flag or env value to an Environment, defaulting
// to Development for anything unrecognised.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// Config holds the server settings. Station data lives in Board.
type Config struct {
	Host    string
	Port    int
	Env     Environment
	Verbose bool
	// ApiKeys guard /metrics and /debug and bypass rate limiting.
	ApiKeys []string
	// RateLimit is the number of /api/arrivals requests per second per client.
	RateLimit   int
	StaticDir   string
	LogFile     string
	FeedTimeout time.Duration
	// FeedAPIKey is sent upstream as x-api-key when set.
	FeedAPIKey string
	// Timezone is an IANA name used for updatedAt; empty means the process zone.
	Timezone string
	// ClockOverrideEnv and ClockOverrideFile pin "now" for replaying recorded feeds.
	ClockOverrideEnv  string
	ClockOverrideFile string
}

const (
	DefaultHost      = "0.0.0.0"
	DefaultPort      = 3000
	DefaultRateLimit = 10
	DefaultStaticDir = "public"
)

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Host:        DefaultHost,
		Port:        DefaultPort,
		Env:         Development,
		RateLimit:   DefaultRateLimit,
		StaticDir:   DefaultStaticDir,
		FeedTimeout: 10 * time.Second,
	}
}

// Addr is the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// FeedHeaders returns the headers sent with every upstream request.
func (c Config) FeedHeaders() map[string]string {
	headers := map[string]string{}
	if c.FeedAPIKey != "" {
		headers["x-api-key"] = c.FeedAPIKey
	}
	return headers
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
