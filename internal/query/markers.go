package query

import "github.com/nhle/geotodo/internal/model"

// Default map center, used when no todo is located.
const (
	DefaultCenterLatitude  = -23.5505
	DefaultCenterLongitude = -46.6333
)

// Marker is a located todo projected onto the map.
type Marker struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Status    model.Status   `json:"status"`
	Priority  model.Priority `json:"priority"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Address   string         `json:"address,omitempty"`
}

// Markers returns one marker per located todo, in store order.
func Markers(todos []model.Todo) []Marker {
	markers := make([]Marker, 0, len(todos))
	for _, t := range todos {
		if !t.HasLocation() {
			continue
		}
		markers = append(markers, Marker{
			ID:        t.ID,
			Title:     t.Title,
			Status:    t.Status,
			Priority:  t.Priority,
			Latitude:  t.Location.Latitude,
			Longitude: t.Location.Longitude,
			Address:   t.Location.Address,
		})
	}
	return markers
}

// Center returns the mean position of markers, or the default center when
// there are none.
func Center(markers []Marker) (lat, lng float64) {
	if len(markers) == 0 {
		return DefaultCenterLatitude, DefaultCenterLongitude
	}
	for _, m := range markers {
		lat += m.Latitude
		lng += m.Longitude
	}
	n := float64(len(markers))
	return lat / n, lng / n
}
