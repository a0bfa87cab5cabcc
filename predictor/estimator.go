package predictor

import (
	"time"

	"github.com/theoremus-urban-solutions/trainboard/feed"
)

// Arrival is the estimated time a trip passes the waypoint.
type Arrival struct {
	TripID      feed.TripID    `json:"tripId"`
	Direction   feed.Direction `json:"direction"`
	PassTime    time.Time      `json:"passTime"`
	Uncertainty time.Duration  `json:"uncertainty"`
}

// Estimate is one freshly computed Arrival and where it came from.
type Estimate struct {
	Arrival
	FromPrediction bool
}

// stationTime picks the direction's preferred field, falling back to the other.
func stationTime(d feed.Direction, arrival, departure *time.Time) *time.Time {
	first, second := departure, arrival
	if d == feed.Inbound {
		first, second = arrival, departure
	}
	if first != nil {
		return first
	}
	return second
}

// EstimateArrival computes trip's waypoint pass time. A prediction that yields
// a time is used exclusively; the schedule is consulted only otherwise. It
// reports false when neither source has a usable time.
func EstimateArrival(trip feed.Trip, pred *feed.Prediction, offsets Offsets) (Estimate, bool) {
	var t *time.Time
	fromPrediction := false
	if pred != nil {
		if t = stationTime(trip.Direction, pred.Arrival, pred.Departure); t != nil {
			fromPrediction = true
		}
	}
	if t == nil {
		t = stationTime(trip.Direction, trip.Arrival, trip.Departure)
	}
	if t == nil {
		return Estimate{}, false
	}

	off := offsets.For(trip.Direction)
	return Estimate{
		Arrival: Arrival{
			TripID:      trip.ID,
			Direction:   trip.Direction,
			PassTime:    t.Add(off.Average),
			Uncertainty: off.StdDev,
		},
		FromPrediction: fromPrediction,
	}, true
}
