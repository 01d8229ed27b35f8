package appconf

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"subwayboard.nyc/internal/board"
	"subwayboard.nyc/internal/feed"
)

// FileConfig is the YAML document accepted by --config. Zero values leave the
// corresponding setting untouched.
type FileConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port" validate:"omitempty,min=1,max=65535"`
	Env         string        `yaml:"env" validate:"omitempty,oneof=development test production"`
	Verbose     bool          `yaml:"verbose"`
	ApiKeys     []string      `yaml:"api-keys" validate:"omitempty,dive,required"`
	RateLimit   int           `yaml:"rate-limit" validate:"gte=0"`
	StaticDir   string        `yaml:"static-dir"`
	LogFile     string        `yaml:"log-file"`
	FeedTimeout time.Duration `yaml:"feed-timeout"`
	FeedAPIKey  string        `yaml:"feed-api-key"`
	Timezone    string        `yaml:"timezone"`

	Station *StationFile `yaml:"station"`
}

// StationFile describes the board when the built-in Columbus Circle setup is
// not wanted.
type StationFile struct {
	Name    string       `yaml:"name" validate:"required"`
	Limit   int          `yaml:"limit" validate:"gte=0"`
	Sources []SourceFile `yaml:"sources" validate:"required,min=1"`
	Stops   []StopFile   `yaml:"stops" validate:"required,min=1"`
}

type SourceFile struct {
	Name string `yaml:"name" validate:"required"`
	URL  string `yaml:"url" validate:"required,url"`
}

type StopFile struct {
	ID        string `yaml:"id" validate:"required"`
	Line      string `yaml:"line" validate:"required"`
	Direction string `yaml:"direction" validate:"required,oneof=Uptown Downtown"`
}

// LoadFromFile reads and validates a YAML configuration file.
func LoadFromFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks struct tags and the cross-field rules tags cannot express.
func (c *FileConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	if c.FeedTimeout < 0 {
		return errors.New("feed-timeout must not be negative")
	}
	if c.Station == nil {
		return nil
	}

	if err := v.Struct(c.Station); err != nil {
		return err
	}
	names := map[string]bool{}
	for _, source := range c.Station.Sources {
		if err := v.Struct(source); err != nil {
			return err
		}
		if names[source.Name] {
			return fmt.Errorf("duplicate source name %q", source.Name)
		}
		names[source.Name] = true
	}
	ids := map[string]bool{}
	for _, stop := range c.Station.Stops {
		if err := v.Struct(stop); err != nil {
			return err
		}
		if ids[stop.ID] {
			return fmt.Errorf("duplicate stop id %q", stop.ID)
		}
		ids[stop.ID] = true
	}
	return nil
}

// ApplyTo overlays the file's non-zero settings on base.
func (c *FileConfig) ApplyTo(base Config) Config {
	cfg := base
	if c.Host != "" {
		cfg.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Port = c.Port
	}
	if c.Env != "" {
		cfg.Env = EnvFlagToEnvironment(c.Env)
	}
	if c.Verbose {
		cfg.Verbose = true
	}
	if len(c.ApiKeys) > 0 {
		cfg.ApiKeys = c.ApiKeys
	}
	if c.RateLimit != 0 {
		cfg.RateLimit = c.RateLimit
	}
	if c.StaticDir != "" {
		cfg.StaticDir = c.StaticDir
	}
	if c.LogFile != "" {
		cfg.LogFile = c.LogFile
	}
	if c.FeedTimeout != 0 {
		cfg.FeedTimeout = c.FeedTimeout
	}
	if c.FeedAPIKey != "" {
		cfg.FeedAPIKey = c.FeedAPIKey
	}
	if c.Timezone != "" {
		cfg.Timezone = c.Timezone
	}
	return cfg
}

// Board is the station and its upstream sources.
type Board struct {
	Station board.Station
	Sources []feed.Source
}

// DefaultBoard is Columbus Circle fed by the three MTA feeds serving it.
func DefaultBoard() Board {
	return Board{
		Station: board.DefaultStation(),
		Sources: feed.MTASources(),
	}
}

// ToBoard returns the board described by the file, or DefaultBoard when the
// file has no station section.
func (c *FileConfig) ToBoard() Board {
	if c == nil || c.Station == nil {
		return DefaultBoard()
	}

	stops := make(board.Stops, len(c.Station.Stops))
	for _, stop := range c.Station.Stops {
		stops[stop.ID] = board.TrackedStop{Line: stop.Line, Direction: stop.Direction}
	}
	sources := make([]feed.Source, 0, len(c.Station.Sources))
	for _, source := range c.Station.Sources {
		sources = append(sources, feed.Source{Name: source.Name, URL: source.URL})
	}

	limit := c.Station.Limit
	if limit == 0 {
		limit = board.DefaultLimit
	}

	return Board{
		Station: board.Station{
			Name:  c.Station.Name,
			Stops: stops,
			Limit: limit,
		},
		Sources: sources,
	}
}
