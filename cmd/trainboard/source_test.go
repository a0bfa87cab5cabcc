package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theoremus-urban-solutions/trainboard/config"
	"github.com/theoremus-urban-solutions/trainboard/feed"
)

const scheduleBody = `{
  "data": [{
    "id": "schedule-CR-1-FB-0275-01",
    "type": "schedule",
    "attributes": {
      "arrival_time": "2025-10-22T23:05:00-04:00",
      "departure_time": "2025-10-22T23:05:00-04:00",
      "direction_id": 0
    },
    "relationships": {
      "trip": {"data": {"id": "CR-1", "type": "trip"}},
      "prediction": {"data": null}
    }
  }],
  "included": []
}`

func testSource(url string, maxRetries int) *source {
	s := newSource(config.FeedConfig{URL: url, Format: "jsonapi"}, maxRetries)
	s.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return s
}

func TestSource_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.api+json")
		_, _ = w.Write([]byte(scheduleBody))
	}))
	defer srv.Close()

	doc, err := testSource(srv.URL, 5).fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Trips, 1)
	assert.Equal(t, feed.TripID("CR-1"), doc.Trips[0].ID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSource_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testSource(srv.URL, 2).fetch(context.Background())
	require.Error(t, err)
	var fe *feed.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusBadGateway, fe.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSource_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testSource(srv.URL, 5).fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSource_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedules.json")
	require.NoError(t, os.WriteFile(path, []byte(scheduleBody), 0o644))

	doc, err := testSource(path, 0).fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Trips, 1)

	_, err = testSource(filepath.Join(t.TempDir(), "missing.json"), 0).fetch(context.Background())
	assert.Error(t, err)
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport", &feed.FetchError{URL: "u", Err: errors.New("connection refused")}, true},
		{"throttled", &feed.FetchError{URL: "u", StatusCode: 429, Err: errors.New("x")}, true},
		{"server", &feed.FetchError{URL: "u", StatusCode: 500, Err: errors.New("x")}, true},
		{"not found", &feed.FetchError{URL: "u", StatusCode: 404, Err: errors.New("x")}, false},
		{"decode", errors.New("decode json:api document"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retryable(tt.err))
		})
	}
}
