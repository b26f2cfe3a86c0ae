package graph

import (
	"fmt"

	"github.com/o0olele/wayfinder-go/quadtree"
	"github.com/paulmach/orb"
)

// Builder accumulates nodes and edges. Build freezes it into a Graph.
type Builder struct {
	store
	indexOpts quadtree.Options
	built     bool
}

// NewBuilder creates an empty builder whose per-floor indexes use indexOpts.
func NewBuilder(indexOpts quadtree.Options) *Builder {
	return &Builder{
		store:     newStore(),
		indexOpts: indexOpts,
	}
}

// AddNode inserts a node. Re-using an id is rejected with ErrDuplicateNode.
// Geometry ids in meta are indexed; a geometry id claimed twice resolves to the
// last node that claimed it.
func (b *Builder) AddNode(id string, coords orb.Point, floorID string, meta Metadata) error {
	if b.built {
		return ErrAlreadyBuilt
	}
	if _, exists := b.nodes[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, id)
	}

	nodeType := meta.Type
	if nodeType == "" {
		nodeType = NodeWaypoint
	}
	b.nodes[id] = &Node{
		ID:       id,
		Coords:   coords,
		FloorID:  floorID,
		Type:     nodeType,
		Metadata: meta,
	}
	b.order = append(b.order, id)
	b.byFloor[floorID] = append(b.byFloor[floorID], id)
	b.floors.Set(floorID)

	for _, gid := range meta.GeometryIDs {
		b.geometryIndex[gid] = id
	}
	return nil
}

// AddEdge appends a directed edge. Both endpoints must already exist.
func (b *Builder) AddEdge(from, to string, weight float64, opts ...EdgeOption) error {
	if b.built {
		return ErrAlreadyBuilt
	}
	if !b.HasNode(from) {
		return fmt.Errorf("%w: %s", ErrUnknownNode, from)
	}
	if !b.HasNode(to) {
		return fmt.Errorf("%w: %s", ErrUnknownNode, to)
	}

	e, err := newEdge(from, to, weight, opts)
	if err != nil {
		return err
	}
	b.adjacency[from] = append(b.adjacency[from], e)
	b.edgeCount++
	return nil
}

// AddBidirectionalEdge adds a->b and b->a with the same weight and options.
func (b *Builder) AddBidirectionalEdge(a, c string, weight float64, opts ...EdgeOption) error {
	if err := b.AddEdge(a, c, weight, opts...); err != nil {
		return err
	}
	return b.AddEdge(c, a, weight, opts...)
}

// Build computes every floor's bounding box and bulk-loads its quadtree.
// The builder cannot be used afterwards.
func (b *Builder) Build() (*Graph, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	b.built = true

	g := &Graph{
		store:   b.store,
		indexes: make(map[string]*quadtree.Tree, len(b.byFloor)),
	}
	for floorID, ids := range b.byFloor {
		qb := quadtree.NewBuilder(b.indexOpts)
		for _, id := range ids {
			qb.Insert(quadtree.Item{ID: id, Point: b.nodes[id].Coords})
		}
		g.indexes[floorID] = qb.Build()
	}
	return g, nil
}
