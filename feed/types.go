package feed

import (
	"fmt"
	"time"
)

// TripID identifies one scheduled trip.
type TripID string

// Direction of travel, numbered as the feed's direction_id.
type Direction int

const (
	Outbound Direction = 0
	Inbound  Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Outbound:
		return "outbound"
	case Inbound:
		return "inbound"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// MarshalText lets directions appear by name in JSON and logs.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "outbound":
		*d = Outbound
	case "inbound":
		*d = Inbound
	default:
		return fmt.Errorf("unknown direction %q", b)
	}
	return nil
}

// ParseDirection maps a direction_id to a Direction.
func ParseDirection(id int64) (Direction, error) {
	switch Direction(id) {
	case Outbound, Inbound:
		return Direction(id), nil
	}
	return 0, fmt.Errorf("unknown direction_id %d", id)
}

// Trip is one static timetable entry at the monitored stop.
type Trip struct {
	ID           TripID
	Direction    Direction
	Arrival      *time.Time
	Departure    *time.Time
	PredictionID string // empty when the trip has no live prediction
}

// Prediction is a live override of a trip's stop times.
type Prediction struct {
	ID        string
	Arrival   *time.Time
	Departure *time.Time
}

// Document is a decoded feed: trips in feed order plus predictions by id.
type Document struct {
	Trips       []Trip
	Predictions map[string]Prediction
}

// NewDocument returns an empty document ready for appending.
func NewDocument() *Document {
	return &Document{Trips: []Trip{}, Predictions: map[string]Prediction{}}
}

// PredictionFor returns the prediction referenced by trip, or nil when the
// trip has none or the reference dangles.
func (d *Document) PredictionFor(trip Trip) *Prediction {
	if trip.PredictionID == "" {
		return nil
	}
	p, ok := d.Predictions[trip.PredictionID]
	if !ok {
		return nil
	}
	return &p
}
