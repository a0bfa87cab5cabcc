package predictor

import (
	"github.com/theoremus-urban-solutions/trainboard/collections"
	"github.com/theoremus-urban-solutions/trainboard/feed"
)

// ContinuityCache keeps the last prediction-derived Arrival per trip. The
// upstream feed drops predictions shortly before departure; without the cache
// the estimate would regress to the less accurate schedule time.
type ContinuityCache struct {
	entries *collections.BoundedMap[feed.TripID, Arrival]
}

func NewContinuityCache(capacity int) *ContinuityCache {
	return &ContinuityCache{entries: collections.NewBoundedMap[feed.TripID, Arrival](capacity)}
}

// Resolve records prediction-derived estimates and substitutes the cached one
// for schedule-only estimates of a known trip.
func (c *ContinuityCache) Resolve(est Estimate) Arrival {
	if est.FromPrediction {
		c.entries.Put(est.TripID, est.Arrival)
		return est.Arrival
	}
	if cached, err := c.entries.Get(est.TripID); err == nil {
		return cached
	}
	return est.Arrival
}

func (c *ContinuityCache) Len() int { return c.entries.Len() }
