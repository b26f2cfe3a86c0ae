package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/o0olele/wayfinder-go/builder"
	"github.com/o0olele/wayfinder-go/collision"
	"github.com/o0olele/wayfinder-go/geometry"
	"github.com/o0olele/wayfinder-go/graph"
	"github.com/o0olele/wayfinder-go/quadtree"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addNode(t *testing.T, gb *graph.Builder, id string, lon, lat float64, floorID string) {
	t.Helper()
	require.NoError(t, gb.AddNode(id, orb.Point{lon, lat}, floorID, graph.Metadata{}))
}

func link(t *testing.T, gb *graph.Builder, a, b string, opts ...graph.EdgeOption) {
	t.Helper()
	na, _ := gb.Node(a)
	nb, _ := gb.Node(b)
	require.NoError(t, gb.AddBidirectionalEdge(a, b, geometry.Distance(na.Coords, nb.Coords), opts...))
}

func build(t *testing.T, gb *graph.Builder) *graph.Graph {
	t.Helper()
	g, err := gb.Build()
	require.NoError(t, err)
	return g
}

// twoNodeGraph builds A(0,0) and B(0.0003,0) on floor 1 and runs the edge builder
// against the given obstacles.
func twoNodeGraph(t *testing.T, obstacles map[string][]orb.Polygon) *graph.Graph {
	t.Helper()
	gb := graph.NewBuilder(quadtree.DefaultOptions())
	addNode(t, gb, "A", 0, 0, "1")
	addNode(t, gb, "B", 0.0003, 0, "1")

	eb := builder.NewEdgeBuilder(collision.NewFromObstacles(obstacles), 0.0003)
	_, err := eb.BuildAllEdges(context.Background(), gb)
	require.NoError(t, err)
	return build(t, gb)
}

func TestTrivialPath(t *testing.T) {
	g := twoNodeGraph(t, nil)

	route := NewSearch(g).FindPath("A", "A", DefaultSearchOptions())
	require.NotNil(t, route)
	assert.Equal(t, []string{"A"}, route.NodeIDs)
	assert.Equal(t, []orb.Point{{0, 0}}, route.Coordinates)
	assert.Equal(t, []string{"1"}, route.Floors)
	assert.Zero(t, route.Distance)
	assert.Empty(t, route.Segments)
}

func TestOpenFloorRoute(t *testing.T) {
	g := twoNodeGraph(t, nil)

	route := NewSearch(g).FindPath("A", "B", DefaultSearchOptions())
	require.NotNil(t, route)
	assert.Equal(t, []string{"A", "B"}, route.NodeIDs)

	want := geometry.Distance(orb.Point{0, 0}, orb.Point{0.0003, 0})
	assert.InDelta(t, want, route.Distance, 1e-9)
	assert.InDelta(t, 33.4, route.Distance, 0.1)
	require.Len(t, route.Segments, 1)
	assert.Equal(t, Segment{
		From: "A", To: "B", Distance: want, FromFloor: "1", ToFloor: "1", EdgeType: graph.EdgeWalkable,
	}, route.Segments[0])
}

func TestWalledOffRoute(t *testing.T) {
	wall := orb.Polygon{{
		{0.00014, -0.0001}, {0.00016, -0.0001}, {0.00016, 0.0001}, {0.00014, 0.0001}, {0.00014, -0.0001},
	}}
	g := twoNodeGraph(t, map[string][]orb.Polygon{"1": {wall}})

	assert.Zero(t, g.EdgeCount())
	assert.Nil(t, NewSearch(g).FindPath("A", "B", DefaultSearchOptions()))
}

func TestUnknownNodes(t *testing.T) {
	s := NewSearch(twoNodeGraph(t, nil))

	assert.Nil(t, s.FindPath("A", "missing", DefaultSearchOptions()))
	assert.Nil(t, s.FindPath("missing", "A", DefaultSearchOptions()))
}

func TestFloorPenaltyPrefersSameFloor(t *testing.T) {
	gb := graph.NewBuilder(quadtree.DefaultOptions())
	addNode(t, gb, "S", 0, 0, "1")
	addNode(t, gb, "G", 0.0004, 0, "1")
	addNode(t, gb, "M", 0.0002, 0.0001, "1")
	addNode(t, gb, "U", 0.0002, 0.00012, "2")
	link(t, gb, "S", "M")
	link(t, gb, "M", "G")
	link(t, gb, "S", "U", graph.WithType(graph.EdgeElevator), graph.WithCost(1))
	link(t, gb, "U", "G", graph.WithType(graph.EdgeElevator), graph.WithCost(1))

	route := NewSearch(build(t, gb)).FindPath("S", "G", DefaultSearchOptions())
	require.NotNil(t, route)
	assert.Equal(t, []string{"S", "M", "G"}, route.NodeIDs)
	assert.Equal(t, []string{"1", "1", "1"}, route.Floors)
	assert.Zero(t, route.FloorChanges())
}

// stairsGraph: S and T are stacked on floors 1 and 2, joined by stairs and by a
// detour through an elevator at L1/L2.
func stairsGraph(t *testing.T, withElevator bool) *graph.Graph {
	gb := graph.NewBuilder(quadtree.DefaultOptions())
	addNode(t, gb, "S", 0, 0, "1")
	addNode(t, gb, "T", 0, 0, "2")
	require.NoError(t, gb.AddBidirectionalEdge("S", "T", 1,
		graph.WithType(graph.EdgeStairs), graph.WithCost(1), graph.Inaccessible()))
	if withElevator {
		addNode(t, gb, "L1", 0.0001, 0, "1")
		addNode(t, gb, "L2", 0.0001, 0, "2")
		link(t, gb, "S", "L1")
		link(t, gb, "L2", "T")
		require.NoError(t, gb.AddBidirectionalEdge("L1", "L2", 5,
			graph.WithType(graph.EdgeElevator), graph.WithCost(5)))
	}
	return build(t, gb)
}

func TestEdgeFilters(t *testing.T) {
	s := NewSearch(stairsGraph(t, true))

	tests := []struct {
		name string
		opts func(*SearchOptions)
		want []string
	}{
		{"unconstrained", func(*SearchOptions) {}, []string{"S", "T"}},
		{"avoid stairs", func(o *SearchOptions) { o.AvoidStairs = true }, []string{"S", "L1", "L2", "T"}},
		{"accessible only", func(o *SearchOptions) { o.AccessibleOnly = true }, []string{"S", "L1", "L2", "T"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultSearchOptions()
			tt.opts(&opts)
			route := s.FindPath("S", "T", opts)
			require.NotNil(t, route)
			assert.Equal(t, tt.want, route.NodeIDs)
			assert.Equal(t, 1, route.FloorChanges())
		})
	}
}

func TestEdgeFiltersCanDisconnect(t *testing.T) {
	s := NewSearch(stairsGraph(t, false))

	opts := DefaultSearchOptions()
	opts.AccessibleOnly = true
	assert.Nil(t, s.FindPath("S", "T", opts))
	assert.NotNil(t, s.FindPath("S", "T", DefaultSearchOptions()))
}

func TestCheapestParallelEdgeIsReported(t *testing.T) {
	gb := graph.NewBuilder(quadtree.DefaultOptions())
	addNode(t, gb, "a", 0, 0, "1")
	addNode(t, gb, "b", 0, 0, "2")
	require.NoError(t, gb.AddEdge("a", "b", 3, graph.WithType(graph.EdgeEscalator), graph.WithCost(3)))
	require.NoError(t, gb.AddEdge("a", "b", 2, graph.WithType(graph.EdgeElevator), graph.WithCost(2)))

	route := NewSearch(build(t, gb)).FindPath("a", "b", DefaultSearchOptions())
	require.NotNil(t, route)
	assert.Equal(t, 2.0, route.Distance)
	assert.Equal(t, graph.EdgeElevator, route.Segments[0].EdgeType)
	assert.True(t, route.Segments[0].FloorChange)
}

// gridGraph is a 6x6 lattice on one floor with uneven extra costs.
func gridGraph(t *testing.T) *graph.Graph {
	gb := graph.NewBuilder(quadtree.DefaultOptions())
	id := func(i, j int) string { return fmt.Sprintf("n%d_%d", i, j) }
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			addNode(t, gb, id(i, j), float64(i)*0.0001, float64(j)*0.0001, "1")
		}
	}
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if i+1 < 6 {
				link(t, gb, id(i, j), id(i+1, j), graph.WithCost(float64((i*7+j*3)%5)))
			}
			if j+1 < 6 {
				link(t, gb, id(i, j), id(i, j+1), graph.WithCost(float64((i*3+j*5)%4)))
			}
			if i+1 < 6 && j+1 < 6 && (i+j)%2 == 0 {
				link(t, gb, id(i, j), id(i+1, j+1))
			}
		}
	}
	return build(t, gb)
}

func TestRouteCostIsSumOfSegments(t *testing.T) {
	s := NewSearch(gridGraph(t))

	for _, goal := range []string{"n5_5", "n0_5", "n5_0", "n3_2"} {
		route := s.FindPath("n0_0", goal, DefaultSearchOptions())
		require.NotNil(t, route, goal)
		require.Len(t, route.Segments, len(route.NodeIDs)-1)

		total := 0.0
		for i, seg := range route.Segments {
			assert.Equal(t, route.NodeIDs[i], seg.From)
			assert.Equal(t, route.NodeIDs[i+1], seg.To)
			total = total + seg.Distance + seg.Cost
		}
		assert.Equal(t, route.Distance, total, goal)
	}
}

func TestSingleFloorRouteIsOptimal(t *testing.T) {
	s := NewSearch(gridGraph(t))

	dijkstra := DefaultSearchOptions()
	dijkstra.HeuristicWeight = 0
	for _, goal := range []string{"n5_5", "n0_5", "n4_1"} {
		astar := s.FindPath("n0_0", goal, DefaultSearchOptions())
		exact := s.FindPath("n0_0", goal, dijkstra)
		require.NotNil(t, astar)
		require.NotNil(t, exact)
		assert.InDelta(t, exact.Distance, astar.Distance, 1e-9, goal)
	}
}
