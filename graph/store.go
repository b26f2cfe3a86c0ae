package graph

import "github.com/tidwall/btree"

// store holds the node and edge tables shared by Builder and Graph.
type store struct {
	nodes         map[string]*Node
	order         []string
	byFloor       map[string][]string
	adjacency     map[string][]Edge
	edgeCount     int
	geometryIndex map[string]string
	floors        *btree.BTreeG[string]
}

func newStore() store {
	return store{
		nodes:         make(map[string]*Node),
		byFloor:       make(map[string][]string),
		adjacency:     make(map[string][]Edge),
		geometryIndex: make(map[string]string),
		floors: btree.NewBTreeG[string](func(a, b string) bool {
			return a < b
		}),
	}
}

// Node returns the node with the given id.
func (s *store) Node(id string) (Node, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// HasNode reports whether id is present.
func (s *store) HasNode(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// Nodes returns every node in insertion order.
func (s *store) Nodes() []Node {
	out := make([]Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.nodes[id])
	}
	return out
}

// NodesOnFloor returns the nodes of one floor in insertion order.
func (s *store) NodesOnFloor(floorID string) []Node {
	ids := s.byFloor[floorID]
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.nodes[id])
	}
	return out
}

// Floors returns the distinct floor ids in ascending order.
func (s *store) Floors() []string {
	out := make([]string, 0, s.floors.Len())
	s.floors.Scan(func(f string) bool {
		out = append(out, f)
		return true
	})
	return out
}

// NodeByGeometryID resolves a source geometry id to its node.
func (s *store) NodeByGeometryID(geometryID string) (Node, bool) {
	id, ok := s.geometryIndex[geometryID]
	if !ok {
		return Node{}, false
	}
	return s.Node(id)
}

// Edges returns the outgoing edges of a node. The slice must not be modified.
func (s *store) Edges(id string) []Edge {
	return s.adjacency[id]
}

// NodeCount returns the number of nodes.
func (s *store) NodeCount() int {
	return len(s.nodes)
}

// EdgeCount returns the number of directed edges.
func (s *store) EdgeCount() int {
	return s.edgeCount
}

// Stats returns node, edge and floor counts.
func (s *store) Stats() Stats {
	st := Stats{
		NodeCount:  len(s.nodes),
		EdgeCount:  s.edgeCount,
		FloorCount: s.floors.Len(),
	}
	if st.NodeCount > 0 {
		st.AvgEdgesPerNode = float64(st.EdgeCount) / float64(st.NodeCount)
	}
	return st
}
