package feed

import (
	"fmt"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/proto"
)

// DecodeGTFSRT decodes a GTFS-Realtime TripUpdates feed. Only trips with a
// StopTimeUpdate for stopID are kept. GTFS-RT carries no static timetable, so
// every trip gets a Prediction keyed by its trip id and no schedule times.
// Only absolute event times are used; delay-only updates are skipped.
func DecodeGTFSRT(data []byte, stopID string) (*Document, error) {
	if stopID == "" {
		return nil, fmt.Errorf("gtfs-rt decoding requires a stop id")
	}
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("decode gtfs-rt feed: %w", err)
	}

	doc := NewDocument()
	for _, e := range fm.Entity {
		if e.TripUpdate == nil || e.TripUpdate.Trip == nil {
			continue
		}
		desc := e.TripUpdate.Trip
		if desc.TripId == nil || *desc.TripId == "" {
			log.Warn().Str("entity", e.GetId()).Msg("Skipping trip update without trip id")
			continue
		}
		tripID := *desc.TripId
		if desc.GetScheduleRelationship() == gtfsrtpb.TripDescriptor_CANCELED {
			continue
		}
		if desc.DirectionId == nil {
			log.Warn().Str("trip", tripID).Msg("Skipping trip update without direction_id")
			continue
		}
		dir, err := ParseDirection(int64(*desc.DirectionId))
		if err != nil {
			log.Warn().Err(err).Str("trip", tripID).Msg("Skipping malformed trip update")
			continue
		}

		stu := stopTimeUpdateFor(e.TripUpdate, stopID)
		if stu == nil {
			continue
		}
		if stu.GetScheduleRelationship() == gtfsrtpb.TripUpdate_StopTimeUpdate_SKIPPED {
			continue
		}

		arr, dep := eventTime(stu.Arrival), eventTime(stu.Departure)
		if arr == nil && dep == nil {
			// a delay needs the static timetable to become a time
			log.Debug().Str("trip", tripID).Msg("Skipping stop time update without absolute time")
			continue
		}
		doc.Predictions[tripID] = Prediction{
			ID:        tripID,
			Arrival:   arr,
			Departure: dep,
		}
		doc.Trips = append(doc.Trips, Trip{
			ID:           TripID(tripID),
			Direction:    dir,
			PredictionID: tripID,
		})
	}
	return doc, nil
}

func stopTimeUpdateFor(tu *gtfsrtpb.TripUpdate, stopID string) *gtfsrtpb.TripUpdate_StopTimeUpdate {
	for _, stu := range tu.StopTimeUpdate {
		if stu.StopId != nil && *stu.StopId == stopID {
			return stu
		}
	}
	return nil
}

func eventTime(ev *gtfsrtpb.TripUpdate_StopTimeEvent) *time.Time {
	if ev == nil || ev.Time == nil || *ev.Time <= 0 {
		return nil
	}
	t := time.Unix(*ev.Time, 0).UTC()
	return &t
}
