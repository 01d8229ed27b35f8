package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"subwayboard.nyc/internal/appconf"
	"subwayboard.nyc/internal/logging"
)

func main() {
	if err := appconf.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, b, err := loadConfig(os.Args[1:], os.Stderr)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	coreApp, closer, err := BuildApplication(cfg, b)
	if err != nil {
		slog.Error("failed to build application", "error", err)
		os.Exit(1)
	}
	defer logging.SafeCloseWithLogging(closer, coreApp.Logger, "log file")

	srv, api := CreateServer(coreApp, cfg)
	if err := Run(srv, api, coreApp.Logger); err != nil {
		logging.LogError(coreApp.Logger, "server exited", err)
		logging.SafeCloseWithLogging(closer, coreApp.Logger, "log file")
		os.Exit(1)
	}
}

// loadConfig layers defaults, the environment, flags and finally the optional
// --config file.
func loadConfig(args []string, output io.Writer) (appconf.Config, appconf.Board, error) {
	cfg := appconf.FromEnv(appconf.Default())

	fs := flag.NewFlagSet("subwayboard", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		configPath string
		env        string
		apiKeys    string
	)
	fs.StringVar(&configPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&cfg.Host, "host", cfg.Host, "Listen host")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "API server port")
	fs.StringVar(&env, "env", cfg.Env.String(), "Environment (development|test|production)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable debug logging")
	fs.StringVar(&apiKeys, "api-keys", "", "Comma separated admin API keys")
	fs.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Requests per second per client for /api/arrivals")
	fs.StringVar(&cfg.StaticDir, "static-dir", cfg.StaticDir, "Directory served at /")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Also write logs to this rotating file")
	fs.DurationVar(&cfg.FeedTimeout, "feed-timeout", cfg.FeedTimeout, "Timeout for each upstream feed request")
	fs.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "IANA zone used for updatedAt")

	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, appconf.Board{}, err
	}

	cfg.Env = appconf.EnvFlagToEnvironment(env)
	if apiKeys != "" {
		cfg.ApiKeys = appconf.ParseAPIKeys(apiKeys)
	}

	if configPath == "" {
		return cfg, appconf.DefaultBoard(), nil
	}

	fileCfg, err := appconf.LoadFromFile(configPath)
	if err != nil {
		return appconf.Config{}, appconf.Board{}, fmt.Errorf("config %s: %w", configPath, err)
	}
	return fileCfg.ApplyTo(cfg), fileCfg.ToBoard(), nil
}
