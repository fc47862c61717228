package service

import (
	"errors"
	"fmt"

	"nuggetube-backend/internal/model"
	"nuggetube-backend/internal/reference"
	"nuggetube-backend/internal/responder"
)

var ErrUnknownKind = errors.New("unknown marker kind")

const focusZoom = 8

var DefaultViewport = model.Viewport{Center: [2]float64{20, 0}, Zoom: 2}

var markerColors = map[reference.Kind]string{
	reference.KindBreed:      "default",
	reference.KindRestaurant: "red",
	reference.KindShelter:    "yellow",
}

var markerKinds = []reference.Kind{reference.KindBreed, reference.KindRestaurant, reference.KindShelter}

type MapService struct {
	table *reference.Table
}

func NewMapService(table *reference.Table) *MapService {
	if table == nil {
		table = reference.Default
	}
	return &MapService{table: table}
}

// Markers lists every place of the given kind, or all kinds when kind is empty.
func (s *MapService) Markers(kind string) ([]model.Marker, error) {
	kinds := markerKinds
	if kind != "" {
		k := reference.Kind(kind)
		if _, ok := markerColors[k]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
		}
		kinds = []reference.Kind{k}
	}

	var markers []model.Marker
	for _, k := range kinds {
		for _, e := range s.table.ByKind(k) {
			markers = append(markers, toMarker(e))
		}
	}
	return markers, nil
}

func toMarker(e reference.Entry) model.Marker {
	return model.Marker{
		Kind:        string(e.Kind),
		Name:        e.Name,
		Lat:         e.Lat,
		Lng:         e.Lng,
		Color:       markerColors[e.Kind],
		Origin:      e.Origin,
		Location:    e.Location,
		Description: e.Description,
		Image:       e.Image,
		Reviews:     e.Reviews,
		SpeechText:  SpeechText(e),
	}
}

// SpeechText is what the browser reads out when a marker is clicked.
func SpeechText(e reference.Entry) string {
	switch e.Kind {
	case reference.KindBreed:
		return fmt.Sprintf("%s from %s. %s", e.Name, e.Origin, e.Description)
	case reference.KindRestaurant:
		return fmt.Sprintf("%s in %s. %s", e.Name, e.Location, e.Description)
	default:
		return fmt.Sprintf("%s. %s", e.Name, e.Description)
	}
}

func (s *MapService) Viewport() model.Viewport {
	return DefaultViewport
}

func (s *MapService) Focus(loc responder.Location) model.Viewport {
	return model.Viewport{Center: [2]float64{loc.Lat, loc.Lng}, Zoom: focusZoom}
}
