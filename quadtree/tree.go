package quadtree

import (
	"github.com/o0olele/wayfinder-go/geometry"
	"github.com/paulmach/orb"
)

// Tree is a built, read-only quadtree. It is safe for concurrent queries.
type Tree struct {
	opts  Options
	items []Item
	nodes []node
}

// Len returns the number of indexed items.
func (t *Tree) Len() int {
	return len(t.items)
}

// Bounds returns the padded root bounds. ok is false for an empty tree.
func (t *Tree) Bounds() (orb.Bound, bool) {
	if len(t.nodes) == 0 {
		return orb.Bound{}, false
	}
	return t.nodes[0].bounds, true
}

// NodeCount returns the number of arena nodes, leaves included.
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

func (t *Tree) insert(idx int32, item int32) {
	for {
		n := &t.nodes[idx]
		if !n.isLeaf() {
			idx = n.children[n.quadrant(t.items[item].Point)]
			continue
		}

		n.items = append(n.items, item)
		if len(n.items) > t.opts.Capacity && int(n.depth) < t.opts.MaxDepth {
			t.subdivide(idx)
		}
		return
	}
}

// subdivide splits a leaf into four children and pushes its items down one level.
// A child that overflows again is split on its own insert path.
func (t *Tree) subdivide(idx int32) {
	bounds := t.nodes[idx].bounds
	depth := t.nodes[idx].depth + 1

	var children [4]int32
	for i, q := range geometry.Quadrants(bounds) {
		children[i] = int32(len(t.nodes))
		t.nodes = append(t.nodes, newNode(q, depth))
	}

	// re-take the pointer, append may have moved the arena
	n := &t.nodes[idx]
	items := n.items
	n.items = nil
	n.children = children

	for _, it := range items {
		t.insert(idx, it)
	}
}

// Query returns every item whose point lies inside r. Subtrees whose bounds
// miss r are skipped.
func (t *Tree) Query(r orb.Bound) []Item {
	if len(t.nodes) == 0 {
		return nil
	}

	var result []Item
	stack := []int32{0}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[idx]
		if !n.bounds.Intersects(r) {
			continue
		}
		if n.isLeaf() {
			for _, it := range n.items {
				if r.Contains(t.items[it].Point) {
					result = append(result, t.items[it])
				}
			}
			continue
		}
		for _, c := range n.children {
			stack = append(stack, c)
		}
	}
	return result
}
