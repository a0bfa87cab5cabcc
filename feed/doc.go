// Package feed fetches and decodes transit schedule feeds into a Document.
//
// Two wire formats are supported:
//   - JSON:API: MBTA v3 "schedules" responses requested with include=prediction
//   - GTFS-RT: TripUpdates protobuf feeds, filtered to a single stop
//
// Decoding is lenient per trip: an entry with a missing id, unknown direction
// or unparseable time is logged and skipped, the rest of the document is kept.
// Fetch failures (network errors and non-2xx responses) are returned as
// *FetchError so callers can tell them apart from an empty schedule.
package feed
