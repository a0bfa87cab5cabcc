package predictor

import (
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/theoremus-urban-solutions/trainboard/feed"
)

// Predictor turns feed documents into fixed-length boards of upcoming
// waypoint passes.
type Predictor struct {
	opts       Options
	clock      Clock
	continuity *ContinuityCache
	arrived    *ArrivedTracker
}

// New creates a Predictor. Non-positive capacities fall back to the defaults;
// a nil clock means SystemClock.
func New(opts Options, clock Clock) *Predictor {
	if opts.ContinuityCapacity <= 0 {
		opts.ContinuityCapacity = DefaultContinuityCapacity
	}
	if opts.ArrivedCapacity <= 0 {
		opts.ArrivedCapacity = DefaultArrivedCapacity
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Predictor{
		opts:       opts,
		clock:      clock,
		continuity: NewContinuityCache(opts.ContinuityCapacity),
		arrived:    NewArrivedTracker(opts.ArrivedCapacity),
	}
}

// EstimateNext returns exactly count slots ordered by pass time. Slots
// without an estimate are nil and sort last. Trips that were marked arrived,
// have no usable time, or are older than the staleness threshold are left
// out; ties keep feed order.
func (p *Predictor) EstimateNext(doc *feed.Document, count int) []*Arrival {
	if count < 0 {
		count = 0
	}
	board := make([]*Arrival, count)
	if doc == nil {
		return board
	}

	cutoff := p.clock.Now().Add(-p.opts.Staleness)
	upcoming := make([]*Arrival, 0, len(doc.Trips))
	for _, trip := range doc.Trips {
		if p.arrived.HasArrived(trip.ID) {
			continue
		}
		est, ok := EstimateArrival(trip, doc.PredictionFor(trip), p.opts.Offsets)
		if !ok {
			log.Debug().Str("trip", string(trip.ID)).Msg("No usable time for trip")
			continue
		}
		a := p.continuity.Resolve(est)
		if a.PassTime.Before(cutoff) {
			log.Debug().Str("trip", string(trip.ID)).Time("pass", a.PassTime).Msg("Dropping stale estimate")
			continue
		}
		upcoming = append(upcoming, &a)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].PassTime.Before(upcoming[j].PassTime)
	})
	n := copy(board, upcoming)

	log.Debug().
		Int("trips", len(doc.Trips)).
		Int("estimates", len(upcoming)).
		Int("filled", n).
		Int("slots", count).
		Msg("Estimated upcoming passes")
	return board
}

// MarkArrived suppresses id from every later batch. It is idempotent.
func (p *Predictor) MarkArrived(id feed.TripID) {
	p.arrived.MarkArrived(id)
}

// Options returns the options in effect after defaults were applied.
func (p *Predictor) Options() Options { return p.opts }
