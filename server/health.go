package server

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status             string `json:"status"`
	LatestRefreshEpoch int64  `json:"latest_refresh_epoch"`
	LastError          string `json:"last_error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	last, err := s.store.status()
	resp := healthResponse{Status: "ok"}
	if !last.IsZero() {
		resp.LatestRefreshEpoch = last.Unix()
	}
	if err != nil {
		resp.Status = "degraded"
		resp.LastError = err.Error()
	}
	_ = json.NewEncoder(w).Encode(resp)
}
