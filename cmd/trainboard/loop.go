package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/theoremus-urban-solutions/trainboard/board"
	"github.com/theoremus-urban-solutions/trainboard/feed"
	"github.com/theoremus-urban-solutions/trainboard/predictor"
	"github.com/theoremus-urban-solutions/trainboard/server"
)

type fetchFunc func(context.Context) (*feed.Document, error)

// boardLoop owns the predictor. It refetches the feed every interval and
// re-ranks the cached document on every step so countdowns and the passing
// banner stay current between fetches.
type boardLoop struct {
	pred     *predictor.Predictor
	clock    predictor.Clock
	fetch    fetchFunc
	count    int
	interval time.Duration

	doc       *feed.Document
	fetchErr  error
	fetchedAt time.Time
	fetched   bool
}

func newBoardLoop(pred *predictor.Predictor, clock predictor.Clock, fetch fetchFunc, count int, interval time.Duration) *boardLoop {
	return &boardLoop{pred: pred, clock: clock, fetch: fetch, count: count, interval: interval}
}

// step advances the board once. The error of the latest fetch is returned
// until a fetch succeeds. The snapshot is nil until some fetch has succeeded;
// afterwards it is built from the last good document and carries the error.
//
// The fetch, retries included, runs on the calling goroutine, so countdowns
// and passing windows are not re-evaluated while it waits.
func (l *boardLoop) step(ctx context.Context) (*board.Snapshot, error) {
	now := l.clock.Now()
	if !l.fetched || now.Sub(l.fetchedAt) >= l.interval {
		doc, err := l.fetch(ctx)
		l.fetchErr = err
		if err == nil {
			l.doc = doc
		}
		l.fetched = true
		l.fetchedAt = now
	}
	if l.doc == nil {
		return nil, l.fetchErr
	}

	arrivals, w := l.rank()
	snap := board.NewSnapshot(now, arrivals, w)
	if l.fetchErr != nil {
		snap.Error = l.fetchErr.Error()
	}
	return &snap, l.fetchErr
}

// rank estimates the board and retires trips whose passing window has closed.
func (l *boardLoop) rank() ([]*predictor.Arrival, *predictor.PassingWarning) {
	limit := 0
	if l.doc != nil {
		limit = len(l.doc.Trips)
	}
	for i := 0; ; i++ {
		arrivals := l.pred.EstimateNext(l.doc, l.count)
		if len(arrivals) == 0 {
			return arrivals, nil
		}
		w := l.pred.PassingWarning(arrivals[0])
		if w == nil || !w.ShouldStop() || i >= limit {
			return arrivals, w
		}
		log.Info().Str("trip", string(w.TripID)).Stringer("direction", w.Direction).Msg("Train passed")
		l.pred.MarkArrived(w.TripID)
	}
}

// publishFunc receives every step's result; snap is nil before the first
// successful fetch.
type publishFunc func(snap *board.Snapshot, err error)

// run steps every tick until ctx is done, handing each result to publish.
func (l *boardLoop) run(ctx context.Context, tick time.Duration, publish publishFunc) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		snap, err := l.step(ctx)
		if ctx.Err() != nil {
			return
		}
		publish(snap, err)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// storePublisher hands boards to the status server. Until the first
// successful fetch only the error is recorded, so /api/board.json keeps
// answering 503 instead of serving an empty board.
func storePublisher(store *server.Store) publishFunc {
	var lastErr error
	return func(snap *board.Snapshot, err error) {
		if snap != nil {
			store.Publish(*snap)
		}
		if err != nil {
			store.Fail(err)
			if err != lastErr {
				log.Error().Err(err).Msg("Board refresh failed")
			}
		}
		lastErr = err
	}
}

// consolePublisher redraws the board when its text changes.
type consolePublisher struct {
	out     io.Writer
	last    []byte
	lastErr error
}

func (p *consolePublisher) publish(snap *board.Snapshot, err error) {
	if err != nil && err != p.lastErr {
		log.Error().Err(err).Msg("Board refresh failed")
	}
	p.lastErr = err

	var buf bytes.Buffer
	if snap == nil {
		_, _ = fmt.Fprintf(&buf, "!!! feed unavailable: %v\n", err)
	} else if err := board.Render(&buf, *snap); err != nil {
		log.Error().Err(err).Msg("Rendering board")
		return
	}
	if bytes.Equal(buf.Bytes(), p.last) {
		return
	}
	p.last = buf.Bytes()
	if _, err := io.WriteString(p.out, "\n"); err != nil {
		return
	}
	_, _ = p.out.Write(p.last)
}
