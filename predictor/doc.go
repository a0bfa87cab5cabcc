// Package predictor estimates when upcoming trips pass a fixed waypoint near
// the monitored stop.
//
// The waypoint sits on the outbound side of the station, so inbound trains
// are watched on arrival and outbound trains on departure. Each station time
// is shifted by a per-direction average offset and carries a per-direction
// standard deviation.
//
// A Predictor owns two bounded caches:
//   - a continuity cache remembering the last prediction-derived estimate per
//     trip, used when live predictions vanish shortly before departure
//   - an arrived-trip tracker suppressing trips the caller confirmed passed
//
// A Predictor is not safe for concurrent use. None of its methods block or
// perform I/O; feeds are fetched beforehand by the feed package.
package predictor
