package collision

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// minExtent keeps rtree rectangles non-degenerate for axis-aligned input.
const minExtent = 1e-12

// Obstacle is a blocking polygon on a single floor.
type Obstacle struct {
	ID      string
	FloorID string
	Polygon orb.Polygon
	bound   orb.Bound
}

func newObstacle(id, floorID string, poly orb.Polygon) *Obstacle {
	return &Obstacle{
		ID:      id,
		FloorID: floorID,
		Polygon: poly,
		bound:   poly.Bound(),
	}
}

// Bounds implements rtreego.Spatial.
func (o *Obstacle) Bounds() rtreego.Rect {
	return toRect(o.bound)
}

func toRect(b orb.Bound) rtreego.Rect {
	w := b.Max[0] - b.Min[0]
	h := b.Max[1] - b.Min[1]
	if w < minExtent {
		w = minExtent
	}
	if h < minExtent {
		h = minExtent
	}
	rect, _ := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, []float64{w, h})
	return rect
}

// floorIndex is the per-floor obstacle set and its rtree.
type floorIndex struct {
	obstacles []*Obstacle
	tree      *rtreego.Rtree
}

func newFloorIndex() *floorIndex {
	return &floorIndex{tree: rtreego.NewTree(2, 25, 50)}
}

func (f *floorIndex) add(o *Obstacle) {
	f.obstacles = append(f.obstacles, o)
	f.tree.Insert(o)
}

func (f *floorIndex) candidates(b orb.Bound) []*Obstacle {
	// padded so that touching rectangles still count as candidates
	found := f.tree.SearchIntersect(toRect(b.Pad(minExtent)))
	out := make([]*Obstacle, 0, len(found))
	for _, s := range found {
		out = append(out, s.(*Obstacle))
	}
	return out
}
