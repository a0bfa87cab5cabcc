package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/theoremus-urban-solutions/trainboard/config"
	"github.com/theoremus-urban-solutions/trainboard/feed"
)

// source fetches the configured feed from a URL or a local file.
// HTTP fetches are retried with exponential backoff.
type source struct {
	cfg        config.FeedConfig
	client     *feed.Client
	maxRetries int
	newBackOff func() backoff.BackOff
}

func newSource(cfg config.FeedConfig, maxRetries int) *source {
	return &source{
		cfg:        cfg,
		client:     feed.NewClient(cfg.Timeout(), cfg.FeedFormat(), cfg.StopID),
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxInterval = 30 * time.Second
			return b
		},
	}
}

func isLocal(urlOrPath string) bool {
	return !strings.HasPrefix(urlOrPath, "http://") && !strings.HasPrefix(urlOrPath, "https://")
}

func (s *source) fetch(ctx context.Context) (*feed.Document, error) {
	if isLocal(s.cfg.URL) {
		data, err := os.ReadFile(s.cfg.URL)
		if err != nil {
			return nil, err
		}
		return feed.Decode(s.cfg.FeedFormat(), s.cfg.StopID, data)
	}

	var doc *feed.Document
	op := func() error {
		d, err := s.client.Fetch(ctx, s.cfg.URL, s.cfg.Headers())
		if err != nil {
			if ctx.Err() != nil || !retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		doc = d
		return nil
	}
	b := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), uint64(s.maxRetries)), ctx)
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("retry_in", wait).Msg("Feed fetch failed")
	}
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	return doc, nil
}

// retryable reports whether a failed fetch is worth repeating: transport
// errors, throttling and server errors are; client errors and bad bodies are not.
func retryable(err error) bool {
	var fe *feed.FetchError
	if !errors.As(err, &fe) {
		return false
	}
	switch {
	case fe.StatusCode == 0:
		return true
	case fe.StatusCode == http.StatusTooManyRequests:
		return true
	case fe.StatusCode >= 500:
		return true
	}
	return false
}
