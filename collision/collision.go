package collision

import (
	"fmt"
	"sort"

	"github.com/o0olele/wayfinder-go/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"
)

const (
	KindWall        = "wall"
	KindNonwalkable = "nonwalkable"
)

// Input is the classified venue geometry, keyed by floor id.
type Input struct {
	Geometry    map[string]*geojson.FeatureCollection
	Nonwalkable map[string]struct{}
	Kinds       map[string]string
}

// Detector answers line-of-sight and containment queries against per-floor
// obstacle polygons. It is read-only after construction.
type Detector struct {
	opts   options
	floors map[string]*floorIndex
}

// New classifies every feature of in and builds the obstacle set. Features that
// cannot be turned into polygons are logged and skipped.
func New(in Input, opts ...Option) *Detector {
	d := newDetector(opts)

	floorIDs := make([]string, 0, len(in.Geometry))
	for f := range in.Geometry {
		floorIDs = append(floorIDs, f)
	}
	sort.Strings(floorIDs)

	for _, floorID := range floorIDs {
		fc := in.Geometry[floorID]
		if fc == nil {
			continue
		}
		for _, f := range fc.Features {
			id := FeatureID(f)
			if !in.isObstacle(id, f) {
				continue
			}
			for _, poly := range d.polygonsOf(floorID, id, f.Geometry) {
				d.addObstacle(newObstacle(id, floorID, poly))
			}
		}
	}

	d.opts.logger.Info("Collision detector initialized",
		zap.Int("floors", len(d.floors)),
		zap.Int("obstacles", d.ObstacleCount()))
	return d
}

// NewFromObstacles rebuilds a detector from already-classified polygons.
func NewFromObstacles(obstacles map[string][]orb.Polygon, opts ...Option) *Detector {
	d := newDetector(opts)
	for floorID, polys := range obstacles {
		for i, poly := range polys {
			d.addObstacle(newObstacle(fmt.Sprintf("%s/%d", floorID, i), floorID, poly))
		}
	}
	return d
}

func newDetector(opts []Option) *Detector {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Detector{
		opts:   o,
		floors: make(map[string]*floorIndex),
	}
}

func (in Input) isObstacle(id string, f *geojson.Feature) bool {
	kind, ok := in.Kinds[id]
	if !ok && f.Properties != nil {
		kind = f.Properties.MustString("kind", "")
	}
	if kind == KindWall || kind == KindNonwalkable {
		return true
	}
	_, nonwalkable := in.Nonwalkable[id]
	return nonwalkable
}

// FeatureID returns the feature id, falling back to the "id" property.
func FeatureID(f *geojson.Feature) string {
	return geometry.FeatureID(f)
}

func (d *Detector) polygonsOf(floorID, id string, g orb.Geometry) (polys []orb.Polygon) {
	logger := d.opts.logger.With(zap.String("floor", floorID), zap.String("feature", id))
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Skipping obstacle geometry", zap.Any("panic", r))
			polys = nil
		}
	}()

	switch geom := g.(type) {
	case orb.Polygon:
		return []orb.Polygon{geom}
	case orb.MultiPolygon:
		return []orb.Polygon(geom)
	case orb.Ring:
		return []orb.Polygon{{geom}}
	case orb.LineString:
		return d.buffer(logger, geom)
	case orb.MultiLineString:
		for _, ls := range geom {
			polys = append(polys, d.buffer(logger, ls)...)
		}
		return polys
	case nil:
		logger.Warn("Obstacle feature has no geometry")
	default:
		logger.Debug("Ignoring obstacle geometry type", zap.String("type", g.GeoJSONType()))
	}
	return nil
}

func (d *Detector) buffer(logger *zap.Logger, ls orb.LineString) []orb.Polygon {
	polys, err := geometry.BufferLine(ls, d.opts.bufferMeters)
	if err != nil {
		logger.Warn("Failed to buffer wall line", zap.Error(err))
		return nil
	}
	return polys
}

func (d *Detector) addObstacle(o *Obstacle) {
	fi, ok := d.floors[o.FloorID]
	if !ok {
		fi = newFloorIndex()
		d.floors[o.FloorID] = fi
	}
	fi.add(o)
}

// ObstacleCount returns the total number of obstacle polygons.
func (d *Detector) ObstacleCount() int {
	n := 0
	for _, fi := range d.floors {
		n += len(fi.obstacles)
	}
	return n
}

// Obstacles returns the polygons of one floor.
func (d *Detector) Obstacles(floorID string) []orb.Polygon {
	fi, ok := d.floors[floorID]
	if !ok {
		return nil
	}
	out := make([]orb.Polygon, len(fi.obstacles))
	for i, o := range fi.obstacles {
		out[i] = o.Polygon
	}
	return out
}

// Floors returns the floors that have at least one obstacle, sorted.
func (d *Detector) Floors() []string {
	out := make([]string, 0, len(d.floors))
	for f := range d.floors {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// guard runs check and maps a panic to the configured failure policy.
func (d *Detector) guard(op string, floorID string, check func() bool) (blocked bool) {
	defer func() {
		if r := recover(); r != nil {
			d.opts.logger.Warn("Collision check failed",
				zap.String("op", op),
				zap.String("floor", floorID),
				zap.Any("panic", r),
				zap.Bool("fail_closed", d.opts.failClosed))
			blocked = d.opts.failClosed
		}
	}()
	return check()
}

// PointInObstacle reports whether coords lies inside any obstacle on floorID.
func (d *Detector) PointInObstacle(coords orb.Point, floorID string) bool {
	fi, ok := d.floors[floorID]
	if !ok {
		return false
	}
	return d.guard("point", floorID, func() bool {
		for _, o := range fi.candidates(orb.Bound{Min: coords, Max: coords}) {
			if planar.PolygonContains(o.Polygon, coords) {
				return true
			}
		}
		return false
	})
}

// LineIntersectsObstacle reports whether the segment crosses or touches the
// boundary of any obstacle on floorID.
func (d *Detector) LineIntersectsObstacle(start, end orb.Point, floorID string) bool {
	fi, ok := d.floors[floorID]
	if !ok {
		return false
	}
	return d.guard("line", floorID, func() bool {
		for _, o := range fi.candidates(geometry.SegmentBound(start, end)) {
			if geometry.PolygonBoundaryIntersects(o.Polygon, start, end) {
				return true
			}
		}
		return false
	})
}

// IsPathClear reports whether a walker can go straight from start to end on floorID.
func (d *Detector) IsPathClear(start, end orb.Point, floorID string) bool {
	fi, ok := d.floors[floorID]
	if !ok || len(fi.obstacles) == 0 {
		return true
	}
	if d.PointInObstacle(start, floorID) || d.PointInObstacle(end, floorID) {
		return false
	}
	return !d.LineIntersectsObstacle(start, end, floorID)
}

// Validation is the outcome of ValidatePath.
type Validation struct {
	Valid bool `json:"valid"`
	// BlockedSegment is the index i of the first blocked segment coords[i]->coords[i+1], or -1.
	BlockedSegment int `json:"blocked_segment"`
}

// ValidatePath checks consecutive same-floor pairs and stops at the first blocked one.
// Pairs that change floor are transitions and are not checked. A segment whose
// endpoints have no floor in floorIDs cannot be checked and is reported blocked.
func (d *Detector) ValidatePath(coords []orb.Point, floorIDs []string) Validation {
	for i := 0; i+1 < len(coords); i++ {
		if i+1 >= len(floorIDs) {
			return Validation{Valid: false, BlockedSegment: i}
		}
		if floorIDs[i] != floorIDs[i+1] {
			continue
		}
		if !d.IsPathClear(coords[i], coords[i+1], floorIDs[i]) {
			return Validation{Valid: false, BlockedSegment: i}
		}
	}
	return Validation{Valid: true, BlockedSegment: -1}
}
