package graph

import (
	"fmt"
	"math"
)

// EdgeOption customises an edge added through the Builder.
type EdgeOption func(*Edge) error

// WithType sets the edge type. Unknown types are rejected.
func WithType(t EdgeType) EdgeOption {
	return func(e *Edge) error {
		if _, err := ParseEdgeType(string(t)); err != nil {
			return err
		}
		e.Type = t
		return nil
	}
}

// WithCost sets the extra traversal cost added on top of the geodesic distance.
func WithCost(cost float64) EdgeOption {
	return func(e *Edge) error {
		if cost < 0 || math.IsNaN(cost) {
			return fmt.Errorf("%w: %v", ErrNegativeCost, cost)
		}
		e.Cost = cost
		return nil
	}
}

// WithAccessible marks whether the edge is usable by step-free routes.
func WithAccessible(accessible bool) EdgeOption {
	return func(e *Edge) error {
		e.Accessible = accessible
		return nil
	}
}

// Inaccessible is shorthand for WithAccessible(false).
func Inaccessible() EdgeOption {
	return WithAccessible(false)
}

// WithExtension stores a free-form attribute next to the typed fields.
func WithExtension(key, value string) EdgeOption {
	return func(e *Edge) error {
		if e.Extensions == nil {
			e.Extensions = make(map[string]string)
		}
		e.Extensions[key] = value
		return nil
	}
}

func newEdge(from, to string, weight float64, opts []EdgeOption) (Edge, error) {
	if weight < 0 || math.IsNaN(weight) {
		return Edge{}, fmt.Errorf("%w: %s->%s %v", ErrNegativeWeight, from, to, weight)
	}
	e := Edge{
		From:       from,
		To:         to,
		Weight:     weight,
		Type:       EdgeWalkable,
		Accessible: true,
	}
	for _, opt := range opts {
		if err := opt(&e); err != nil {
			return Edge{}, err
		}
	}
	return e, nil
}
