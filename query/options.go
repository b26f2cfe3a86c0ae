package query

import (
	"math"

	"github.com/o0olele/wayfinder-go/graph"
)

// DefaultFloorChangePenalty is added to the heuristic when the goal is on another floor.
const DefaultFloorChangePenalty = 10

// SearchOptions are the per-query constraints of FindPath.
type SearchOptions struct {
	// AccessibleOnly rejects edges that are not step-free.
	AccessibleOnly bool `json:"accessible_only"`
	// AvoidStairs rejects stairs edges.
	AvoidStairs bool `json:"avoid_stairs"`

	FloorChangePenalty float64 `json:"floor_change_penalty"`
	HeuristicWeight    float64 `json:"heuristic_weight"`
}

// DefaultSearchOptions returns unconstrained options with the default heuristic.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		FloorChangePenalty: DefaultFloorChangePenalty,
		HeuristicWeight:    1,
	}
}

// normalized replaces a NaN, infinite or negative penalty or weight with its
// default, so the heuristic stays finite and options compare equal to themselves.
func (o SearchOptions) normalized() SearchOptions {
	if invalid(o.FloorChangePenalty) {
		o.FloorChangePenalty = DefaultFloorChangePenalty
	}
	if invalid(o.HeuristicWeight) {
		o.HeuristicWeight = 1
	}
	return o
}

func invalid(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0) || v < 0
}

// allows applies the edge filters.
func (o SearchOptions) allows(e graph.Edge) bool {
	if o.AccessibleOnly && !e.Accessible {
		return false
	}
	if o.AvoidStairs && e.Type == graph.EdgeStairs {
		return false
	}
	return true
}
