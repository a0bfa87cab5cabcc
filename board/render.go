package board

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/theoremus-urban-solutions/trainboard/feed"
	"github.com/theoremus-urban-solutions/trainboard/predictor"
)

const emptySlot = "--"

// Slot is one board line. Empty slots carry only Empty and a placeholder countdown.
type Slot struct {
	Empty              bool        `json:"empty"`
	TripID             feed.TripID `json:"tripId,omitempty"`
	Direction          string      `json:"direction,omitempty"`
	PassTime           *time.Time  `json:"passTime,omitempty"`
	UncertaintySeconds float64     `json:"uncertaintySeconds,omitempty"`
	Countdown          string      `json:"countdown"`
}

// Snapshot is an immutable view of one board refresh.
// Error is set when the latest feed fetch failed and the slots come from
// an older document.
type Snapshot struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Slots       []Slot    `json:"slots"`
	Passing     *Passing  `json:"passing,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Passing describes an active passing window.
type Passing struct {
	TripID    feed.TripID    `json:"tripId"`
	Direction feed.Direction `json:"direction"`
	Deadline  time.Time      `json:"deadline"`
}

// NewSnapshot converts a predictor board into a Snapshot. w may be nil.
func NewSnapshot(now time.Time, arrivals []*predictor.Arrival, w *predictor.PassingWarning) Snapshot {
	s := Snapshot{GeneratedAt: now, Slots: make([]Slot, len(arrivals))}
	for i, a := range arrivals {
		if a == nil {
			s.Slots[i] = Slot{Empty: true, Countdown: emptySlot}
			continue
		}
		pass := a.PassTime
		s.Slots[i] = Slot{
			TripID:             a.TripID,
			Direction:          a.Direction.String(),
			PassTime:           &pass,
			UncertaintySeconds: a.Uncertainty.Seconds(),
			Countdown:          RelativeTime(now, a.PassTime),
		}
	}
	if w != nil && !w.ShouldStop() {
		// strip the monotonic reading before it leaves the process
		s.Passing = &Passing{TripID: w.TripID, Direction: w.Direction, Deadline: w.Deadline.Round(0)}
	}
	return s
}

// Render writes one line per slot, plus a banner while a trip is passing and
// a warning line when the feed could not be refreshed.
func Render(out io.Writer, s Snapshot) error {
	if s.Error != "" {
		if _, err := fmt.Fprintf(out, "!!! feed unavailable, board may be out of date: %s\n", s.Error); err != nil {
			return err
		}
	}
	if s.Passing != nil {
		if _, err := fmt.Fprintf(out, ">>> %s train passing now (%s) <<<\n", s.Passing.Direction, s.Passing.TripID); err != nil {
			return err
		}
	}
	for _, slot := range s.Slots {
		var err error
		if slot.Empty {
			_, err = fmt.Fprintf(out, "%-9s %s\n", "", emptySlot)
		} else {
			_, err = fmt.Fprintf(out, "%-9s %s\n", slot.Direction, slot.Countdown)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes s as indented JSON.
func WriteJSON(out io.Writer, s Snapshot) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
