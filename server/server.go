package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/theoremus-urban-solutions/trainboard/board"
)

// Server serves the board status endpoints.
type Server struct {
	store *Store
	http  *http.Server
}

// New builds a server listening on port. It does not start listening.
func New(port int, store *Store) *Server {
	s := &Server{store: store}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routing mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/board.json", s.handleBoard)
	return mux
}

// Start listens in the background.
func (s *Server) Start() {
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("addr", s.http.Addr).Msg("server listening")
}

// Shutdown stops the server, waiting for in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server shut down successfully")
	return nil
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	snap, ok := s.store.Snapshot()
	if !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write(errorPayload("board not ready"))
		return
	}
	if err := board.WriteJSON(w, snap); err != nil {
		log.Error().Err(err).Msg("writing board response")
	}
}

func errorPayload(msg string) []byte {
	b, _ := json.Marshal(struct {
		Error string `json:"error"`
	}{Error: msg})
	return b
}
