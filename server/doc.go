// Package server exposes the latest board over HTTP.
//
// Endpoints:
//   - /api/health      liveness, the last board update and any feed error
//   - /api/board.json  the most recent board snapshot
package server
