package geometry

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// ErrDegenerateLine is returned when a line has no segment of non-zero length.
var ErrDegenerateLine = errors.New("geometry: degenerate line")

// BufferLine converts a lon/lat line into one rectangle per segment, each
// widthMeters wide with square caps so consecutive rectangles overlap at the joints.
func BufferLine(ls orb.LineString, widthMeters float64) ([]orb.Polygon, error) {
	if widthMeters <= 0 {
		return nil, fmt.Errorf("geometry: buffer width must be positive, got %v", widthMeters)
	}
	if len(ls) < 2 {
		return nil, fmt.Errorf("%w: %d points", ErrDegenerateLine, len(ls))
	}

	half := widthMeters / 2
	polygons := make([]orb.Polygon, 0, len(ls)-1)
	for i := 0; i < len(ls)-1; i++ {
		a, b := ls[i], ls[i+1]
		if Equal(a, b) {
			continue
		}
		polygons = append(polygons, bufferSegment(a, b, half))
	}

	if len(polygons) == 0 {
		return nil, fmt.Errorf("%w: all segments have zero length", ErrDegenerateLine)
	}
	return polygons, nil
}

func bufferSegment(a, b orb.Point, half float64) orb.Polygon {
	bearing := geo.Bearing(a, b)

	// extend both ends by half the width
	start := geo.PointAtBearingAndDistance(a, bearing+180, half)
	end := geo.PointAtBearingAndDistance(b, bearing, half)

	ring := orb.Ring{
		geo.PointAtBearingAndDistance(start, bearing-90, half),
		geo.PointAtBearingAndDistance(end, bearing-90, half),
		geo.PointAtBearingAndDistance(end, bearing+90, half),
		geo.PointAtBearingAndDistance(start, bearing+90, half),
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}
