package quadtree

import (
	"github.com/o0olele/wayfinder-go/geometry"
	"github.com/paulmach/orb"
)

const (
	DefaultCapacity = 4
	DefaultMaxDepth = 8
	DefaultPadding  = 1e-5
)

// Item is a point stored in the index.
type Item struct {
	ID    string
	Point orb.Point
}

// Options controls leaf capacity, depth limit and root padding.
type Options struct {
	Capacity int
	MaxDepth int
	Padding  float64
}

// DefaultOptions returns capacity 4, depth 8 and a 1e-5 degree padding.
func DefaultOptions() Options {
	return Options{
		Capacity: DefaultCapacity,
		MaxDepth: DefaultMaxDepth,
		Padding:  DefaultPadding,
	}
}

func (o Options) normalized() Options {
	if o.Capacity <= 0 {
		o.Capacity = DefaultCapacity
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	return o
}

// Builder collects points before the tree bounds are known.
type Builder struct {
	opts  Options
	items []Item
}

// NewBuilder creates an empty insert-phase index.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts.normalized()}
}

// Insert queues an item for the next Build.
func (b *Builder) Insert(item Item) {
	b.items = append(b.items, item)
}

// Len returns the number of queued items.
func (b *Builder) Len() int {
	return len(b.items)
}

// Build computes the padded bounds of all queued items and bulk-inserts them.
func (b *Builder) Build() *Tree {
	t := &Tree{
		opts:  b.opts,
		items: make([]Item, len(b.items)),
	}
	copy(t.items, b.items)

	points := make([]orb.Point, len(t.items))
	for i, it := range t.items {
		points[i] = it.Point
	}
	bounds, ok := geometry.BoundOf(points)
	if !ok {
		return t
	}

	t.nodes = append(t.nodes, newNode(bounds.Pad(t.opts.Padding), 0))
	for i := range t.items {
		t.insert(0, int32(i))
	}
	return t
}
