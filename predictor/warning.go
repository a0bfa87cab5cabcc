package predictor

import (
	"time"

	"github.com/theoremus-urban-solutions/trainboard/feed"
)

// PassingWarning is an active "passing now" window.
type PassingWarning struct {
	TripID    feed.TripID
	Direction feed.Direction
	Deadline  time.Time // carries the clock's monotonic reading

	clock Clock
}

// ShouldStop reports whether the window's deadline has been reached.
func (w *PassingWarning) ShouldStop() bool {
	return !w.clock.Now().Before(w.Deadline)
}

// Remaining is the time left in the window, never negative.
func (w *PassingWarning) Remaining() time.Duration {
	d := w.Deadline.Sub(w.clock.Now())
	if d < 0 {
		return 0
	}
	return d
}

// PassingWarning returns the active window for a, or nil when a is nil or the
// window has not opened yet.
//
// The window opens WarningLead plus two standard deviations before the
// estimate and closes three standard deviations after it: the vehicle is
// visible a little before and noticeably after the point estimate. The result
// is recomputed from a and the clock on every call.
func (p *Predictor) PassingWarning(a *Arrival) *PassingWarning {
	if a == nil {
		return nil
	}
	now := p.clock.Now()
	start := a.PassTime.Add(-p.opts.WarningLead - 2*a.Uncertainty)
	if now.Before(start) {
		return nil
	}
	end := a.PassTime.Add(3 * a.Uncertainty)
	remaining := end.Sub(now)
	return &PassingWarning{
		TripID:    a.TripID,
		Direction: a.Direction,
		Deadline:  now.Add(remaining),
		clock:     p.clock,
	}
}
