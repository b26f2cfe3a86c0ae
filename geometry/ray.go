package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

const eps = 1e-15

// orientation returns >0 for counter-clockwise, <0 for clockwise and 0 for collinear.
func orientation(a, b, c orb.Point) float64 {
	v := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
	if math.Abs(v) < eps {
		return 0
	}
	return v
}

func onSegment(a, b, p orb.Point) bool {
	return p[0] >= math.Min(a[0], b[0]) && p[0] <= math.Max(a[0], b[0]) &&
		p[1] >= math.Min(a[1], b[1]) && p[1] <= math.Max(a[1], b[1])
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// SegmentsIntersect checks if segment p1-p2 touches or crosses segment q1-q2.
func SegmentsIntersect(p1, p2, q1, q2 orb.Point) bool {
	d1 := sign(orientation(q1, q2, p1))
	d2 := sign(orientation(q1, q2, p2))
	d3 := sign(orientation(p1, p2, q1))
	d4 := sign(orientation(p1, p2, q2))

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}

	// collinear / touching cases
	if d1 == 0 && onSegment(q1, q2, p1) {
		return true
	}
	if d2 == 0 && onSegment(q1, q2, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, q2) {
		return true
	}
	return false
}

// RingIntersectsSegment checks every edge of ring against the segment a-b.
func RingIntersectsSegment(ring orb.Ring, a, b orb.Point) bool {
	n := len(ring)
	if n < 2 {
		return false
	}
	for i := 0; i < n-1; i++ {
		if SegmentsIntersect(a, b, ring[i], ring[i+1]) {
			return true
		}
	}
	// unclosed rings still get their closing edge tested
	if !Equal(ring[0], ring[n-1]) {
		return SegmentsIntersect(a, b, ring[n-1], ring[0])
	}
	return false
}

// PolygonBoundaryIntersects checks the segment a-b against every ring of poly.
func PolygonBoundaryIntersects(poly orb.Polygon, a, b orb.Point) bool {
	for _, ring := range poly {
		if RingIntersectsSegment(ring, a, b) {
			return true
		}
	}
	return false
}
