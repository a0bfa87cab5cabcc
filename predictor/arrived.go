package predictor

import (
	"github.com/theoremus-urban-solutions/trainboard/collections"
	"github.com/theoremus-urban-solutions/trainboard/feed"
)

// ArrivedTracker remembers trips confirmed to have passed, so stale echoes in
// later feeds are ignored.
type ArrivedTracker struct {
	trips *collections.BoundedSet[feed.TripID]
}

func NewArrivedTracker(capacity int) *ArrivedTracker {
	return &ArrivedTracker{trips: collections.NewBoundedSet[feed.TripID](capacity)}
}

// MarkArrived is idempotent.
func (t *ArrivedTracker) MarkArrived(id feed.TripID) { t.trips.Add(id) }

func (t *ArrivedTracker) HasArrived(id feed.TripID) bool { return t.trips.Contains(id) }

func (t *ArrivedTracker) Len() int { return t.trips.Len() }
