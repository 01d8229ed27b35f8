package board

import (
	gtfsrt "github.com/OneBusAway/go-gtfs/proto"
)

// Arrival is one predicted train arrival at a tracked platform.
type Arrival struct {
	Line        string `json:"line"`
	Direction   string `json:"direction"`
	ArrivalTime int64  `json:"arrivalTime"`
	MinutesAway int64  `json:"minutesAway"`
}

// ExtractArrivals returns the future arrivals in feed at the given stops.
// now is in Unix seconds and is used for every record of this call. A nil feed
// yields no arrivals. Records are returned in feed order.
func ExtractArrivals(feed *gtfsrt.FeedMessage, stops Stops, now int64) []Arrival {
	if feed == nil {
		return nil
	}

	var arrivals []Arrival
	for _, entity := range feed.GetEntity() {
		tripUpdate := entity.GetTripUpdate()
		if tripUpdate == nil {
			continue
		}

		// Trips without a route still count; they are shown with an empty line.
		routeID := tripUpdate.GetTrip().GetRouteId()

		for _, update := range tripUpdate.GetStopTimeUpdate() {
			stop, ok := stops[update.GetStopId()]
			if !ok {
				continue
			}

			// Departure-only updates are not arrivals.
			arrival := update.GetArrival()
			if arrival == nil || arrival.Time == nil {
				continue
			}

			arrivalTime := arrival.GetTime()
			if arrivalTime <= now {
				continue
			}

			arrivals = append(arrivals, Arrival{
				Line:        routeID,
				Direction:   stop.Direction,
				ArrivalTime: arrivalTime,
				MinutesAway: MinutesAway(arrivalTime, now),
			})
		}
	}

	return arrivals
}

// MinutesAway rounds (arrivalTime-now)/60 to the nearest integer, with halves
// rounded up: 30 seconds is 1 minute, 89 seconds is 1 minute, 90 is 2.
func MinutesAway(arrivalTime, now int64) int64 {
	shifted := arrivalTime - now + 30
	minutes := shifted / 60
	if shifted < 0 && shifted%60 != 0 {
		minutes--
	}
	return minutes
}
