package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// BoundAround returns the axis-aligned square of side 2*radius centred on p.
func BoundAround(p orb.Point, radius float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{p[0] - radius, p[1] - radius},
		Max: orb.Point{p[0] + radius, p[1] + radius},
	}
}

// BoundOf returns the bounding box of points. ok is false for an empty slice.
func BoundOf(points []orb.Point) (bound orb.Bound, ok bool) {
	if len(points) == 0 {
		return orb.Bound{}, false
	}
	return orb.MultiPoint(points).Bound(), true
}

// SegmentBound returns the bounding box of the segment a-b.
func SegmentBound(a, b orb.Point) orb.Bound {
	return orb.Bound{
		Min: orb.Point{math.Min(a[0], b[0]), math.Min(a[1], b[1])},
		Max: orb.Point{math.Max(a[0], b[0]), math.Max(a[1], b[1])},
	}
}

// Quadrants splits b into four equal children in SW, SE, NW, NE order.
func Quadrants(b orb.Bound) [4]orb.Bound {
	c := b.Center()
	return [4]orb.Bound{
		{Min: b.Min, Max: c},
		{Min: orb.Point{c[0], b.Min[1]}, Max: orb.Point{b.Max[0], c[1]}},
		{Min: orb.Point{b.Min[0], c[1]}, Max: orb.Point{c[0], b.Max[1]}},
		{Min: c, Max: b.Max},
	}
}
