// Package board turns decoded GTFS-Realtime feeds into the arrivals shown on
// a single station's departure board.
package board

import "time"

// Direction labels used by the board. Records with any other label never
// reach the aggregated output.
const (
	Uptown   = "Uptown"
	Downtown = "Downtown"
)

const (
	DefaultStationName = "Columbus Circle-59 St"
	// DefaultLimit caps each direction's list after sorting.
	DefaultLimit = 20
)

// TrackedStop is the rider-facing label for one directional platform.
type TrackedStop struct {
	Line      string
	Direction string
}

// Stops maps a composite stop ID (parent stop plus N/S suffix) to its label.
type Stops map[string]TrackedStop

// ColumbusCircleStops returns the platforms served at Columbus Circle-59 St.
func ColumbusCircleStops() Stops {
	return Stops{
		"125N": {Line: "1", Direction: Uptown},
		"125S": {Line: "1", Direction: Downtown},
		"A24N": {Line: "A/C/B/D", Direction: Uptown},
		"A24S": {Line: "A/C/B/D", Direction: Downtown},
	}
}

// Station is the immutable description of the board built at startup.
type Station struct {
	Name     string
	Stops    Stops
	Limit    int
	Location *time.Location
}

// DefaultStation returns Columbus Circle with the process-local time zone.
func DefaultStation() Station {
	return Station{
		Name:     DefaultStationName,
		Stops:    ColumbusCircleStops(),
		Limit:    DefaultLimit,
		Location: time.Local,
	}
}
