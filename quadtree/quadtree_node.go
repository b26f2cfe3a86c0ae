package quadtree

import "github.com/paulmach/orb"

const noChild int32 = -1

// node lives in the Tree arena; children reference other arena slots.
type node struct {
	bounds   orb.Bound
	depth    uint8
	children [4]int32
	items    []int32
}

func newNode(bounds orb.Bound, depth uint8) node {
	return node{
		bounds:   bounds,
		depth:    depth,
		children: [4]int32{noChild, noChild, noChild, noChild},
	}
}

func (n *node) isLeaf() bool {
	return n.children[0] == noChild
}

// quadrant returns the child slot (SW, SE, NW, NE) that p falls into.
func (n *node) quadrant(p orb.Point) int {
	c := n.bounds.Center()
	q := 0
	if p[0] >= c[0] {
		q |= 1
	}
	if p[1] >= c[1] {
		q |= 2
	}
	return q
}
