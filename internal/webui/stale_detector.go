package webui

import (
	"fmt"
	"time"

	"github.com/OneBusAway/go-gtfs"
)

// StaleDetector flags feed data older than a threshold.
type StaleDetector struct {
	threshold time.Duration
}

func NewStaleDetector() *StaleDetector {
	return &StaleDetector{
		threshold: 5 * time.Minute,
	}
}

func (d *StaleDetector) WithThreshold(threshold time.Duration) *StaleDetector {
	d.threshold = threshold
	return d
}

// Check reports whether data generated at generated is stale at now. A zero
// generated time counts as stale.
func (d *StaleDetector) Check(generated, now time.Time) bool {
	if generated.IsZero() {
		return true
	}
	return d.Age(generated, now) > d.threshold
}

func (d *StaleDetector) Age(generated, now time.Time) time.Duration {
	if generated.IsZero() {
		return d.threshold + 1
	}
	return now.Sub(generated)
}

// StaleVehicles counts vehicles whose last report is stale or missing.
func (d *StaleDetector) StaleVehicles(vehicles []gtfs.Vehicle, now time.Time) int {
	stale := 0
	for _, vehicle := range vehicles {
		if vehicle.Timestamp == nil || d.Check(*vehicle.Timestamp, now) {
			stale++
		}
	}
	return stale
}

// Describe summarises a feed's age for the debug page.
func (d *StaleDetector) Describe(generated, now time.Time) string {
	if generated.IsZero() {
		return "feed header has no timestamp"
	}
	age := d.Age(generated, now).Round(time.Second)
	if d.Check(generated, now) {
		return fmt.Sprintf("STALE: generated %s ago (threshold %s)", age, d.threshold)
	}
	return fmt.Sprintf("fresh: generated %s ago", age)
}
