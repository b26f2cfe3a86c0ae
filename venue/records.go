package venue

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// NeighborRef is an authored link from one node to another.
type NeighborRef struct {
	ID        string  `json:"id"`
	ExtraCost float64 `json:"extraCost"`
}

// NodeRecord is one routable point of a floor.
type NodeRecord struct {
	ID          string        `json:"id"`
	Coordinates orb.Point     `json:"coordinates"`
	FloorID     string        `json:"floorId"`
	Neighbors   []NeighborRef `json:"neighbors,omitempty"`
	GeometryIDs []string      `json:"geometryIds,omitempty"`
}

// Endpoint references the geometry a connection starts or ends at.
type Endpoint struct {
	GeometryID string `json:"geometryId"`
	FloorID    string `json:"floorId"`
}

// ConnectionRecord describes an elevator, staircase or similar floor link.
type ConnectionRecord struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Entrances  []Endpoint `json:"entrances"`
	Exits      []Endpoint `json:"exits"`
	EntryCost  float64    `json:"entryCost"`
	Accessible *bool      `json:"accessible,omitempty"`
}

// Endpoints returns entrances followed by exits.
func (c ConnectionRecord) Endpoints() []Endpoint {
	out := make([]Endpoint, 0, len(c.Entrances)+len(c.Exits))
	out = append(out, c.Entrances...)
	return append(out, c.Exits...)
}

// Dataset is everything needed to compile a venue.
type Dataset struct {
	Nodes       []NodeRecord
	Connections []ConnectionRecord
	Geometry    map[string]*geojson.FeatureCollection
	Kinds       map[string]string
	Nonwalkable map[string]struct{}
}
