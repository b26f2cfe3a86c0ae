package builder

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/o0olele/wayfinder-go/geometry"
	"github.com/o0olele/wayfinder-go/graph"
	"github.com/o0olele/wayfinder-go/quadtree"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxEdgeDistance is the visibility pruning radius in degrees (~33 m).
const DefaultMaxEdgeDistance = 0.0003

// PathChecker answers straight-line clearance queries.
type PathChecker interface {
	IsPathClear(start, end orb.Point, floorID string) bool
}

// EdgeBuilder connects nodes of a floor that are close and mutually visible.
type EdgeBuilder struct {
	checker     PathChecker
	maxDistance float64
	indexOpts   quadtree.Options
	parallel    bool
	logger      *zap.Logger
}

// NewEdgeBuilder creates an edge builder using checker for line-of-sight.
func NewEdgeBuilder(checker PathChecker, maxDistance float64) *EdgeBuilder {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxEdgeDistance
	}
	return &EdgeBuilder{
		checker:     checker,
		maxDistance: maxDistance,
		indexOpts:   quadtree.DefaultOptions(),
		logger:      zap.NewNop(),
	}
}

// SetParallel builds floors concurrently. Edges are still committed in floor order.
func (eb *EdgeBuilder) SetParallel(parallel bool) {
	eb.parallel = parallel
}

// SetLogger sets the build logger.
func (eb *EdgeBuilder) SetLogger(logger *zap.Logger) {
	if logger != nil {
		eb.logger = logger
	}
}

// SetIndexOptions sets the quadtree options used for candidate generation.
func (eb *EdgeBuilder) SetIndexOptions(opts quadtree.Options) {
	eb.indexOpts = opts
}

// BuildEdgesForFloor returns two directed walkable edges for every node pair
// within maxDistance (planar) whose straight segment is clear. Weights are the
// geodesic distance in meters.
func (eb *EdgeBuilder) BuildEdgesForFloor(nodes []graph.Node, floorID string, maxDistance float64) []graph.Edge {
	if len(nodes) < 2 {
		return nil
	}

	qb := quadtree.NewBuilder(eb.indexOpts)
	position := make(map[string]int, len(nodes))
	for i, n := range nodes {
		position[n.ID] = i
		qb.Insert(quadtree.Item{ID: n.ID, Point: n.Coords})
	}
	tree := qb.Build()

	var edges []graph.Edge
	for i, a := range nodes {
		var partners []int
		for _, c := range tree.Query(geometry.BoundAround(a.Coords, maxDistance)) {
			if j := position[c.ID]; j > i {
				partners = append(partners, j)
			}
		}
		sort.Ints(partners)

		for _, j := range partners {
			b := nodes[j]
			if geometry.PlanarDistance(a.Coords, b.Coords) > maxDistance {
				continue
			}
			if !eb.checker.IsPathClear(a.Coords, b.Coords, floorID) {
				continue
			}
			w := geometry.Distance(a.Coords, b.Coords)
			edges = append(edges,
				graph.Edge{From: a.ID, To: b.ID, Weight: w, Type: graph.EdgeWalkable, Accessible: true},
				graph.Edge{From: b.ID, To: a.ID, Weight: w, Type: graph.EdgeWalkable, Accessible: true},
			)
		}
	}
	return edges
}

// BuildAllEdges runs BuildEdgesForFloor on every floor of b and commits the result.
// It returns the number of directed edges added.
func (eb *EdgeBuilder) BuildAllEdges(ctx context.Context, b *graph.Builder) (int, error) {
	start := time.Now()
	floors := b.Floors()
	perFloor := make([][]graph.Edge, len(floors))

	build := func(i int) {
		floorStart := time.Now()
		perFloor[i] = eb.BuildEdgesForFloor(b.NodesOnFloor(floors[i]), floors[i], eb.maxDistance)
		eb.logger.Debug("Floor edges built",
			zap.String("floor", floors[i]),
			zap.Int("edges", len(perFloor[i])),
			zap.Duration("took", time.Since(floorStart)))
	}

	if eb.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := range floors {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				build(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return 0, err
		}
	} else {
		for i := range floors {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			build(i)
		}
	}

	added := 0
	for i, edges := range perFloor {
		for _, e := range edges {
			if err := b.AddEdge(e.From, e.To, e.Weight); err != nil {
				return added, fmt.Errorf("floor %s: %w", floors[i], err)
			}
			added++
		}
	}

	eb.logger.Info("Visibility edges built",
		zap.Int("floors", len(floors)),
		zap.Int("edges", added),
		zap.Duration("took", time.Since(start)))
	return added, nil
}
