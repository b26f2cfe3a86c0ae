package builder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/o0olele/wayfinder-go/collision"
	"github.com/o0olele/wayfinder-go/graph"
	"github.com/o0olele/wayfinder-go/quadtree"
	"github.com/o0olele/wayfinder-go/venue"
	"go.uber.org/zap"
)

// Options controls venue compilation.
type Options struct {
	MaxEdgeDistance float64
	Index           quadtree.Options
	BufferMeters    float64
	FailClosed      bool
	Parallel        bool
}

// DefaultOptions returns the tuned defaults for a single building.
func DefaultOptions() Options {
	return Options{
		MaxEdgeDistance: DefaultMaxEdgeDistance,
		Index:           quadtree.DefaultOptions(),
		BufferMeters:    collision.DefaultBufferMeters,
		Parallel:        true,
	}
}

// Builder compiles venue datasets into navigations.
type Builder struct {
	opts   Options
	logger *zap.Logger
}

// NewBuilder creates a venue builder.
func NewBuilder(opts Options, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{opts: opts, logger: logger}
}

func (nb *Builder) detectorOptions() []collision.Option {
	return []collision.Option{
		collision.WithBufferWidth(nb.opts.BufferMeters),
		collision.WithFailClosed(nb.opts.FailClosed),
		collision.WithLogger(nb.logger.Named("collision")),
	}
}

// Build loads nodes, authored links and connections, classifies obstacles,
// builds visibility edges and finally freezes the graph.
func (nb *Builder) Build(ctx context.Context, ds *venue.Dataset) (*Navigation, error) {
	startTime := time.Now()
	gb := graph.NewBuilder(nb.opts.Index)

	for _, rec := range ds.Nodes {
		err := gb.AddNode(rec.ID, rec.Coordinates, rec.FloorID, graph.Metadata{GeometryIDs: rec.GeometryIDs})
		if errors.Is(err, graph.ErrDuplicateNode) {
			nb.logger.Warn("Skipping duplicate node", zap.String("node", rec.ID))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to add node %s: %w", rec.ID, err)
		}
	}
	nb.logger.Info("Nodes added", zap.Int("nodes", gb.NodeCount()), zap.Int("floors", len(gb.Floors())))

	links := AddNeighborLinks(gb, ds.Nodes, nb.logger)
	conns := AddConnections(gb, ds.Connections, nb.logger)
	nb.logger.Info("Authored edges added", zap.Int("neighbor_edges", links), zap.Int("connection_edges", conns))

	detector := collision.New(collision.Input{
		Geometry:    ds.Geometry,
		Nonwalkable: ds.Nonwalkable,
		Kinds:       ds.Kinds,
	}, nb.detectorOptions()...)

	eb := NewEdgeBuilder(detector, nb.opts.MaxEdgeDistance)
	eb.SetParallel(nb.opts.Parallel)
	eb.SetLogger(nb.logger)
	eb.SetIndexOptions(nb.opts.Index)
	if _, err := eb.BuildAllEdges(ctx, gb); err != nil {
		return nil, fmt.Errorf("failed to build edges: %w", err)
	}

	g, err := gb.Build()
	if err != nil {
		return nil, err
	}

	stats := g.Stats()
	nb.logger.Info("Navigation built",
		zap.Int("nodes", stats.NodeCount),
		zap.Int("edges", stats.EdgeCount),
		zap.Int("floors", stats.FloorCount),
		zap.Int("obstacles", detector.ObstacleCount()),
		zap.Duration("took", time.Since(startTime)))

	return &Navigation{Graph: g, Detector: detector}, nil
}
