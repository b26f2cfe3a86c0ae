package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// Distance returns the geodesic distance in meters between two lon/lat points.
func Distance(a, b orb.Point) float64 {
	return geo.Distance(a, b)
}

// PlanarDistance returns the euclidean distance in raw coordinate units
// (degrees for lon/lat input).
func PlanarDistance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

// Equal reports whether two points are bit-identical.
func Equal(a, b orb.Point) bool {
	return a[0] == b[0] && a[1] == b[1]
}
