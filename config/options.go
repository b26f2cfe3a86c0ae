package config

import (
	"github.com/o0olele/wayfinder-go/builder"
	"github.com/o0olele/wayfinder-go/quadtree"
	"github.com/o0olele/wayfinder-go/query"
)

// IndexOptions returns the quadtree options.
func (c *Config) IndexOptions() quadtree.Options {
	return quadtree.Options{
		Capacity: c.Graph.QuadtreeCapacity,
		MaxDepth: c.Graph.QuadtreeMaxDepth,
		Padding:  c.Graph.IndexPadding,
	}
}

// BuildOptions returns the venue compilation options.
func (c *Config) BuildOptions() builder.Options {
	return builder.Options{
		MaxEdgeDistance: c.Graph.MaxEdgeDistance,
		Index:           c.IndexOptions(),
		BufferMeters:    c.Collision.WallBufferMeters,
		FailClosed:      c.Collision.FailClosed,
		Parallel:        c.Graph.Parallel,
	}
}

// SearchOptions returns the default per-query search options.
func (c *Config) SearchOptions() query.SearchOptions {
	opts := query.DefaultSearchOptions()
	opts.FloorChangePenalty = c.Search.FloorChangePenalty
	opts.HeuristicWeight = c.Search.HeuristicWeight
	return opts
}

// SmoothOptions returns the smoothing options.
func (c *Config) SmoothOptions() query.SmoothOptions {
	return query.SmoothOptions{
		Resolution:        c.Smoothing.Resolution,
		Sharpness:         c.Smoothing.Sharpness,
		SimplifyTolerance: c.Smoothing.SimplifyTolerance,
	}
}

// NavigatorOptions returns the navigator options implied by the configuration.
func (c *Config) NavigatorOptions() []query.NavigatorOption {
	return []query.NavigatorOption{
		query.WithNearestRadius(c.Graph.NearestRadius),
		query.WithSmoothOptions(c.SmoothOptions()),
		query.WithRouteCache(c.Search.CacheSize),
	}
}
