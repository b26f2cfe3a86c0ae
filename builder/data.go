package builder

import (
	"github.com/o0olele/wayfinder-go/collision"
	"github.com/o0olele/wayfinder-go/graph"
)

// Navigation is a compiled venue: the routable graph plus its obstacles.
type Navigation struct {
	Graph    *graph.Graph
	Detector *collision.Detector
}

// Stats returns the graph summary.
func (n *Navigation) Stats() graph.Stats {
	return n.Graph.Stats()
}
