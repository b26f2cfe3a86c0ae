package query

import (
	"math"

	"github.com/o0olele/wayfinder-go/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
	"gonum.org/v1/gonum/interp"
)

// SmoothOptions controls path smoothing.
type SmoothOptions struct {
	// Resolution is the number of output steps per input segment.
	Resolution int `json:"resolution"`
	// Sharpness is the exponent applied to chord lengths when the curve is
	// parameterized. 1 is chordal, 0.5 centripetal, 0 uniform.
	Sharpness float64 `json:"sharpness"`
	// SimplifyTolerance, in degrees, enables Douglas-Peucker simplification before smoothing.
	SimplifyTolerance float64 `json:"simplify_tolerance"`
}

// DefaultSmoothOptions returns the renderer defaults.
func DefaultSmoothOptions() SmoothOptions {
	return SmoothOptions{
		Resolution: 10,
		Sharpness:  0.85,
	}
}

func clonePath(coords []orb.Point) []orb.Point {
	return append([]orb.Point(nil), coords...)
}

// SmoothPath fits a natural cubic spline through coords and samples it
// Resolution times per segment. Every input point appears unchanged in the
// output. Paths of two points or fewer, and paths with repeated points, are
// returned unchanged.
func SmoothPath(coords []orb.Point, opts SmoothOptions) (out []orb.Point) {
	if len(coords) <= 2 || opts.Resolution <= 1 {
		return clonePath(coords)
	}
	defer func() {
		if r := recover(); r != nil {
			out = clonePath(coords)
		}
	}()

	ts := make([]float64, len(coords))
	xs := make([]float64, len(coords))
	ys := make([]float64, len(coords))
	for i, p := range coords {
		xs[i], ys[i] = p.Lon(), p.Lat()
		if i == 0 {
			continue
		}
		d := geometry.PlanarDistance(coords[i-1], p)
		if !(d > 0) || math.IsInf(d, 0) {
			return clonePath(coords)
		}
		ts[i] = ts[i-1] + math.Pow(d, opts.Sharpness)
	}

	var fx, fy interp.NaturalCubic
	if err := fx.Fit(ts, xs); err != nil {
		return clonePath(coords)
	}
	if err := fy.Fit(ts, ys); err != nil {
		return clonePath(coords)
	}

	out = make([]orb.Point, 0, (len(coords)-1)*opts.Resolution+1)
	for i := 0; i+1 < len(coords); i++ {
		out = append(out, coords[i])
		span := ts[i+1] - ts[i]
		for k := 1; k < opts.Resolution; k++ {
			t := ts[i] + span*float64(k)/float64(opts.Resolution)
			out = append(out, orb.Point{fx.Predict(t), fy.Predict(t)})
		}
	}
	return append(out, coords[len(coords)-1])
}

// SimplifyPath removes points within tolerance of the line through their
// neighbours. The first and last points are always kept.
func SimplifyPath(coords []orb.Point, tolerance float64) (out []orb.Point) {
	if len(coords) <= 2 || !(tolerance > 0) {
		return clonePath(coords)
	}
	defer func() {
		if r := recover(); r != nil {
			out = clonePath(coords)
		}
	}()

	ls := simplify.DouglasPeucker(tolerance).Simplify(orb.LineString(clonePath(coords))).(orb.LineString)
	return []orb.Point(ls)
}

// SmoothPathWithFloors smooths every same-floor run of coords on its own and
// stitches the runs back together. Each run ends at the first point of the next
// floor, which is kept as is, so transitions are never smoothed across.
func SmoothPathWithFloors(coords []orb.Point, floorIDs []string, opts SmoothOptions) []orb.Point {
	if len(coords) != len(floorIDs) {
		return clonePath(coords)
	}

	out := make([]orb.Point, 0, len(coords)*max(opts.Resolution, 1))
	start := 0
	for b := 1; b <= len(coords); b++ {
		if b < len(coords) && floorIDs[b] == floorIDs[b-1] {
			continue
		}

		seg := smoothRun(coords[start:b], opts)
		if b < len(coords) {
			seg = append(seg, coords[b])
		}
		if start > 0 {
			seg = seg[1:]
		}
		out = append(out, seg...)
		start = b
	}
	return out
}

func smoothRun(run []orb.Point, opts SmoothOptions) []orb.Point {
	if opts.SimplifyTolerance > 0 {
		run = SimplifyPath(run, opts.SimplifyTolerance)
	}
	return SmoothPath(run, opts)
}
