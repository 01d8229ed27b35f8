// Package clock abstracts the wall clock so that "now"-relative arithmetic
// such as minutes-until-arrival can be tested deterministically.
package clock

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock is a thread-safe, manually driven clock for tests.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves the clock by d, which may be negative.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// OverrideClock replays a pinned instant, for example to render the board
// against a recorded feed. The instant is read on every call from an
// environment variable, then a file, and the system clock is the fallback.
// Use it through a pointer; the fallback warning is logged once.
type OverrideClock struct {
	EnvVar   string
	FilePath string
	// Logger receives the fallback warning; nil means slog.Default().
	Logger *slog.Logger

	warnOnce sync.Once
}

func (o *OverrideClock) Now() time.Time {
	if raw := o.readEnv(); raw != "" {
		if t, err := ParseInstant(raw); err == nil {
			return t
		}
	}
	if raw, err := o.readFile(); err == nil {
		if t, err := ParseInstant(raw); err == nil {
			return t
		}
	}
	o.warnOnce.Do(func() {
		logger := o.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("clock override unavailable, using system time",
			slog.String("env_var", o.EnvVar), slog.String("file", o.FilePath))
	})
	return time.Now()
}

func (o *OverrideClock) readEnv() string {
	if o.EnvVar == "" {
		return ""
	}
	return os.Getenv(o.EnvVar)
}

func (o *OverrideClock) readFile() (string, error) {
	if o.FilePath == "" {
		return "", errors.New("no override file configured")
	}
	data, err := os.ReadFile(o.FilePath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseInstant accepts RFC 3339 timestamps or Unix seconds, the two forms
// found in GTFS-Realtime feed headers and tooling.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0), nil
	}
	return time.Time{}, fmt.Errorf("unable to parse time %q: expected RFC3339 or Unix seconds", s)
}
