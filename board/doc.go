// Package board formats predictor output for people: countdown strings,
// plain-text boards and JSON snapshots.
package board
