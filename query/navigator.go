package query

import (
	"time"

	"github.com/o0olele/wayfinder-go/builder"
	"github.com/o0olele/wayfinder-go/collision"
	"github.com/o0olele/wayfinder-go/graph"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// DefaultNearestRadius is the snapping radius of RouteBetween, in degrees (~22 m).
const DefaultNearestRadius = 0.0002

// Search outcomes reported to the observer.
const (
	OutcomeFound       = "found"
	OutcomeNotFound    = "not_found"
	OutcomeUnknownNode = "unknown_node"
	OutcomeNoSnap      = "no_snap"
)

// Observer receives the outcome and duration of every search.
type Observer func(outcome string, took time.Duration)

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithLogger sets the navigator logger.
func WithLogger(logger *zap.Logger) NavigatorOption {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithNearestRadius sets the snapping radius used by RouteBetween.
func WithNearestRadius(radius float64) NavigatorOption {
	return func(n *Navigator) {
		if radius > 0 {
			n.nearestRadius = radius
		}
	}
}

// WithSmoothOptions sets the options used by Smooth.
func WithSmoothOptions(opts SmoothOptions) NavigatorOption {
	return func(n *Navigator) {
		n.smooth = opts
	}
}

// WithRouteCache keeps the last capacity node-to-node results. Zero disables caching.
func WithRouteCache(capacity int) NavigatorOption {
	return func(n *Navigator) {
		n.cacheSize = capacity
	}
}

// WithObserver registers a search observer.
func WithObserver(observe Observer) NavigatorOption {
	return func(n *Navigator) {
		n.observe = observe
	}
}

// Navigator combines search, snapping and smoothing over one compiled venue.
type Navigator struct {
	nav           *builder.Navigation
	search        *Search
	logger        *zap.Logger
	nearestRadius float64
	smooth        SmoothOptions
	observe       Observer
	cacheSize     int
	cache         *routeCache
}

func configure(opts []NavigatorOption) *Navigator {
	n := &Navigator{
		logger:        zap.NewNop(),
		nearestRadius: DefaultNearestRadius,
		smooth:        DefaultSmoothOptions(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Navigator) attach(nav *builder.Navigation) *Navigator {
	n.nav = nav
	n.search = NewSearch(nav.Graph)
	n.cache = newRouteCache(n.cacheSize)
	return n
}

// NewNavigator wraps a compiled navigation.
func NewNavigator(nav *builder.Navigation, opts ...NavigatorOption) *Navigator {
	return configure(opts).attach(nav)
}

// Navigation returns the underlying compiled venue.
func (n *Navigator) Navigation() *builder.Navigation {
	return n.nav
}

// Graph returns the routable graph.
func (n *Navigator) Graph() *graph.Graph {
	return n.nav.Graph
}

func (n *Navigator) record(outcome string, start time.Time) {
	if n.observe != nil {
		n.observe(outcome, time.Since(start))
	}
}

// FindPath searches between two node ids. It returns nil when there is no route.
func (n *Navigator) FindPath(startID, endID string, opts SearchOptions) *Route {
	start := time.Now()
	if !n.nav.Graph.HasNode(startID) || !n.nav.Graph.HasNode(endID) {
		n.logger.Debug("Unknown route endpoint", zap.String("from", startID), zap.String("to", endID))
		n.record(OutcomeUnknownNode, start)
		return nil
	}

	opts = opts.normalized()
	route, cached := n.lookup(startID, endID, opts)
	if !cached {
		route = n.search.FindPath(startID, endID, opts)
		if n.cache != nil {
			n.cache.put(routeKey{startID, endID, opts}, route)
		}
	}
	if route == nil {
		n.logger.Info("No route found",
			zap.String("from", startID),
			zap.String("to", endID),
			zap.Bool("accessible_only", opts.AccessibleOnly),
			zap.Bool("avoid_stairs", opts.AvoidStairs))
		n.record(OutcomeNotFound, start)
		return nil
	}

	n.logger.Debug("Route found",
		zap.String("from", startID),
		zap.String("to", endID),
		zap.Int("nodes", len(route.NodeIDs)),
		zap.Float64("distance", route.Distance),
		zap.Bool("cached", cached),
		zap.Duration("took", time.Since(start)))
	n.record(OutcomeFound, start)
	return route
}

func (n *Navigator) lookup(startID, endID string, opts SearchOptions) (*Route, bool) {
	if n.cache == nil {
		return nil, false
	}
	return n.cache.get(routeKey{startID, endID, opts})
}

// CacheStats returns route cache usage. ok is false when caching is disabled.
func (n *Navigator) CacheStats() (stats CacheStats, ok bool) {
	if n.cache == nil {
		return CacheStats{}, false
	}
	return n.cache.stats(), true
}

// Nearest snaps coords to the closest node of floorID within the navigator radius.
func (n *Navigator) Nearest(coords orb.Point, floorID string) (graph.Node, bool) {
	return n.nav.Graph.FindNearestNode(coords, floorID, n.nearestRadius)
}

// RouteBetween snaps both coordinates to their nearest nodes and searches between them.
func (n *Navigator) RouteBetween(from orb.Point, fromFloor string, to orb.Point, toFloor string, opts SearchOptions) *Route {
	src, ok := n.Nearest(from, fromFloor)
	if !ok {
		n.logger.Debug("No node near origin", zap.String("floor", fromFloor), zap.Float64s("coords", from[:]))
		n.record(OutcomeNoSnap, time.Now())
		return nil
	}
	dst, ok := n.Nearest(to, toFloor)
	if !ok {
		n.logger.Debug("No node near destination", zap.String("floor", toFloor), zap.Float64s("coords", to[:]))
		n.record(OutcomeNoSnap, time.Now())
		return nil
	}
	return n.FindPath(src.ID, dst.ID, opts)
}

// Smooth returns the smoothed coordinates of a route, keeping floor transitions.
func (n *Navigator) Smooth(route *Route) []orb.Point {
	return SmoothPathWithFloors(route.Coordinates, route.Floors, n.smooth)
}

// Validate re-checks a route against the obstacles.
func (n *Navigator) Validate(route *Route) collision.Validation {
	return n.nav.Detector.ValidatePath(route.Coordinates, route.Floors)
}
