package graph

import (
	"fmt"

	"github.com/paulmach/orb"
)

// NodeType classifies a graph node.
type NodeType string

const (
	NodeWaypoint   NodeType = "waypoint"
	NodeEntrance   NodeType = "entrance"
	NodeConnection NodeType = "connection"
)

// EdgeType classifies how an edge is traversed.
type EdgeType string

const (
	EdgeWalkable  EdgeType = "walkable"
	EdgeStairs    EdgeType = "stairs"
	EdgeElevator  EdgeType = "elevator"
	EdgeEscalator EdgeType = "escalator"
	EdgeRamp      EdgeType = "ramp"
)

// ParseEdgeType maps a record type to a known EdgeType.
func ParseEdgeType(s string) (EdgeType, error) {
	switch t := EdgeType(s); t {
	case EdgeWalkable, EdgeStairs, EdgeElevator, EdgeEscalator, EdgeRamp:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEdgeType, s)
}

// Metadata is the optional data attached to a node at insertion time.
type Metadata struct {
	Type        NodeType
	GeometryIDs []string
}

// Node is a routable point on one floor.
type Node struct {
	ID       string
	Coords   orb.Point
	FloorID  string
	Type     NodeType
	Metadata Metadata
}

// Edge is a directed, weighted connection between two nodes.
type Edge struct {
	From       string
	To         string
	Weight     float64
	Type       EdgeType
	Accessible bool
	Cost       float64
	Extensions map[string]string
}

// Stats is a diagnostic summary of a graph.
type Stats struct {
	NodeCount       int     `json:"node_count"`
	EdgeCount       int     `json:"edge_count"`
	FloorCount      int     `json:"floor_count"`
	AvgEdgesPerNode float64 `json:"avg_edges_per_node"`
}
