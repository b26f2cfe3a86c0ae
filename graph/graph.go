package graph

import (
	"github.com/o0olele/wayfinder-go/geometry"
	"github.com/o0olele/wayfinder-go/quadtree"
	"github.com/paulmach/orb"
)

// Graph is the immutable, queryable navigation graph produced by Builder.Build.
// It is safe for concurrent readers.
type Graph struct {
	store
	indexes map[string]*quadtree.Tree
}

// FindNearestNode returns the node on floorID closest to coords among those
// inside the square of side 2*maxDistance centred on coords.
func (g *Graph) FindNearestNode(coords orb.Point, floorID string, maxDistance float64) (Node, bool) {
	tree, ok := g.indexes[floorID]
	if !ok {
		return Node{}, false
	}

	candidates := tree.Query(geometry.BoundAround(coords, maxDistance))
	if len(candidates) == 0 {
		return Node{}, false
	}

	best := candidates[0]
	bestDist := geometry.PlanarDistance(coords, best.Point)
	for _, c := range candidates[1:] {
		d := geometry.PlanarDistance(coords, c.Point)
		// ties go to the lexically smaller id so results do not depend on tree layout
		if d < bestDist || (d == bestDist && c.ID < best.ID) {
			best, bestDist = c, d
		}
	}
	return g.Node(best.ID)
}

// Index returns the spatial index of one floor.
func (g *Graph) Index(floorID string) (*quadtree.Tree, bool) {
	t, ok := g.indexes[floorID]
	return t, ok
}
