package feed

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type jsonapiDocument struct {
	Data     []jsonapiResource `json:"data"`
	Included []jsonapiResource `json:"included"`
}

type jsonapiResource struct {
	ID            string                         `json:"id"`
	Type          string                         `json:"type"`
	Attributes    jsonapiAttributes              `json:"attributes"`
	Relationships map[string]jsonapiRelationship `json:"relationships"`
}

type jsonapiAttributes struct {
	ArrivalTime   *string `json:"arrival_time"`
	DepartureTime *string `json:"departure_time"`
	DirectionID   *int64  `json:"direction_id"`
}

type jsonapiRelationship struct {
	Data *jsonapiRef `json:"data"`
}

type jsonapiRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

func (r jsonapiResource) relatedID(name string) string {
	rel, ok := r.Relationships[name]
	if !ok || rel.Data == nil {
		return ""
	}
	return rel.Data.ID
}

// DecodeJSONAPI decodes an MBTA v3 schedules response. Each schedule becomes
// a Trip keyed by its trip relationship (falling back to the schedule id);
// included resources of type "prediction" become Predictions.
func DecodeJSONAPI(data []byte) (*Document, error) {
	var raw jsonapiDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode json:api document: %w", err)
	}

	doc := NewDocument()
	for _, inc := range raw.Included {
		if inc.Type != "" && inc.Type != "prediction" {
			continue
		}
		if inc.ID == "" {
			log.Warn().Msg("Skipping prediction without id")
			continue
		}
		arr, err := parseOptionalTime(inc.Attributes.ArrivalTime)
		if err != nil {
			log.Warn().Err(err).Str("prediction", inc.ID).Msg("Skipping malformed prediction")
			continue
		}
		dep, err := parseOptionalTime(inc.Attributes.DepartureTime)
		if err != nil {
			log.Warn().Err(err).Str("prediction", inc.ID).Msg("Skipping malformed prediction")
			continue
		}
		doc.Predictions[inc.ID] = Prediction{ID: inc.ID, Arrival: arr, Departure: dep}
	}

	for _, item := range raw.Data {
		trip, err := tripFromResource(item)
		if err != nil {
			log.Warn().Err(err).Str("schedule", item.ID).Msg("Skipping malformed trip")
			continue
		}
		doc.Trips = append(doc.Trips, trip)
	}
	return doc, nil
}

func tripFromResource(item jsonapiResource) (Trip, error) {
	id := item.relatedID("trip")
	if id == "" {
		id = item.ID
	}
	if id == "" {
		return Trip{}, fmt.Errorf("missing trip id")
	}
	if item.Attributes.DirectionID == nil {
		return Trip{}, fmt.Errorf("missing direction_id")
	}
	dir, err := ParseDirection(*item.Attributes.DirectionID)
	if err != nil {
		return Trip{}, err
	}
	arr, err := parseOptionalTime(item.Attributes.ArrivalTime)
	if err != nil {
		return Trip{}, err
	}
	dep, err := parseOptionalTime(item.Attributes.DepartureTime)
	if err != nil {
		return Trip{}, err
	}
	return Trip{
		ID:           TripID(id),
		Direction:    dir,
		Arrival:      arr,
		Departure:    dep,
		PredictionID: item.relatedID("prediction"),
	}, nil
}

// parseOptionalTime treats null and "" as absent.
func parseOptionalTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, fmt.Errorf("parse time %q: %w", *s, err)
	}
	return &t, nil
}
