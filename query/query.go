package query

import (
	"github.com/o0olele/wayfinder-go/geometry"
	"github.com/o0olele/wayfinder-go/graph"
	"github.com/paulmach/orb"
)

// Segment describes one hop of a route.
type Segment struct {
	From        string         `json:"from"`
	To          string         `json:"to"`
	Distance    float64        `json:"distance"`
	Cost        float64        `json:"cost"`
	FloorChange bool           `json:"floor_change"`
	FromFloor   string         `json:"from_floor"`
	ToFloor     string         `json:"to_floor"`
	EdgeType    graph.EdgeType `json:"edge_type"`
}

// Route is the result of a successful search.
type Route struct {
	NodeIDs     []string    `json:"node_ids"`
	Coordinates []orb.Point `json:"coordinates"`
	Floors      []string    `json:"floors"`
	// Distance is the total search cost: geodesic meters plus edge costs.
	Distance float64   `json:"distance"`
	Segments []Segment `json:"segments"`
}

// FloorChanges returns the number of segments that change floor.
func (r *Route) FloorChanges() int {
	n := 0
	for _, s := range r.Segments {
		if s.FloorChange {
			n++
		}
	}
	return n
}

// Search runs A* over a built graph. It keeps no state between calls and is
// safe for concurrent use.
type Search struct {
	g *graph.Graph
}

// NewSearch creates a search over g.
func NewSearch(g *graph.Graph) *Search {
	return &Search{g: g}
}

// heuristic is the geodesic distance to the goal, plus the floor change
// penalty when floors differ, scaled by the heuristic weight.
func (s *Search) heuristic(n, goal graph.Node, opts SearchOptions) float64 {
	h := geometry.Distance(n.Coords, goal.Coords)
	if n.FloorID != goal.FloorID {
		h += opts.FloorChangePenalty
	}
	return h * opts.HeuristicWeight
}

// FindPath returns the cheapest route from startID to endID, or nil when either
// node is unknown or the goal cannot be reached under opts.
func (s *Search) FindPath(startID, endID string, opts SearchOptions) *Route {
	opts = opts.normalized()
	start, ok := s.g.Node(startID)
	if !ok {
		return nil
	}
	goal, ok := s.g.Node(endID)
	if !ok {
		return nil
	}
	if startID == endID {
		return &Route{
			NodeIDs:     []string{start.ID},
			Coordinates: []orb.Point{start.Coords},
			Floors:      []string{start.FloorID},
			Segments:    []Segment{},
		}
	}

	openSet := &MinHeap{}
	defer openSet.Clear()

	closedSet := make(map[string]bool)
	gScore := map[string]float64{startID: 0}
	cameFrom := make(map[string]graph.Edge)

	openSet.Push(startID, s.heuristic(start, goal, opts))

	for openSet.Len() > 0 {
		currentID, _, _ := openSet.Pop()
		if closedSet[currentID] {
			continue
		}
		if currentID == endID {
			return s.reconstruct(startID, endID, cameFrom, gScore[endID])
		}
		closedSet[currentID] = true

		current, _ := s.g.Node(currentID)
		for _, e := range s.g.Edges(currentID) {
			if !opts.allows(e) || closedSet[e.To] {
				continue
			}
			neighbor, ok := s.g.Node(e.To)
			if !ok {
				continue
			}

			tentativeG := gScore[currentID] + geometry.Distance(current.Coords, neighbor.Coords) + e.Cost
			if known, seen := gScore[e.To]; seen && tentativeG >= known {
				continue
			}
			cameFrom[e.To] = e
			gScore[e.To] = tentativeG
			openSet.Push(e.To, tentativeG+s.heuristic(neighbor, goal, opts))
		}
	}

	return nil
}

// reconstruct walks cameFrom back from the goal.
func (s *Search) reconstruct(startID, endID string, cameFrom map[string]graph.Edge, total float64) *Route {
	var edges []graph.Edge
	for id := endID; id != startID; {
		e := cameFrom[id]
		edges = append(edges, e)
		id = e.From
	}

	route := &Route{
		NodeIDs:     make([]string, 0, len(edges)+1),
		Coordinates: make([]orb.Point, 0, len(edges)+1),
		Floors:      make([]string, 0, len(edges)+1),
		Distance:    total,
		Segments:    make([]Segment, 0, len(edges)),
	}

	first, _ := s.g.Node(startID)
	route.NodeIDs = append(route.NodeIDs, first.ID)
	route.Coordinates = append(route.Coordinates, first.Coords)
	route.Floors = append(route.Floors, first.FloorID)

	prev := first
	for i := len(edges) - 1; i >= 0; i-- {
		e := edges[i]
		next, _ := s.g.Node(e.To)
		route.NodeIDs = append(route.NodeIDs, next.ID)
		route.Coordinates = append(route.Coordinates, next.Coords)
		route.Floors = append(route.Floors, next.FloorID)
		route.Segments = append(route.Segments, Segment{
			From:        prev.ID,
			To:          next.ID,
			Distance:    geometry.Distance(prev.Coords, next.Coords),
			Cost:        e.Cost,
			FloorChange: prev.FloorID != next.FloorID,
			FromFloor:   prev.FloorID,
			ToFloor:     next.FloorID,
			EdgeType:    e.Type,
		})
		prev = next
	}
	return route
}
