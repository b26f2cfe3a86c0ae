package builder

import (
	"github.com/o0olele/wayfinder-go/geometry"
	"github.com/o0olele/wayfinder-go/graph"
	"github.com/o0olele/wayfinder-go/venue"
	"go.uber.org/zap"
)

// defaultAccessible reports whether a connection type is step-free.
func defaultAccessible(t graph.EdgeType) bool {
	switch t {
	case graph.EdgeStairs, graph.EdgeEscalator:
		return false
	}
	return true
}

// AddConnections joins the resolved endpoints of every connection into a clique.
// Each edge carries the connection's entryCost as both weight and cost.
// It returns the number of directed edges added.
func AddConnections(b *graph.Builder, conns []venue.ConnectionRecord, logger *zap.Logger) int {
	if logger == nil {
		logger = zap.NewNop()
	}

	added := 0
	for _, conn := range conns {
		log := logger.With(zap.String("connection", conn.ID))

		edgeType, err := graph.ParseEdgeType(conn.Type)
		if err != nil {
			log.Warn("Skipping connection", zap.Error(err))
			continue
		}
		accessible := defaultAccessible(edgeType)
		if conn.Accessible != nil {
			accessible = *conn.Accessible
		}

		var ids []string
		seen := make(map[string]bool)
		for _, ep := range conn.Endpoints() {
			n, ok := b.NodeByGeometryID(ep.GeometryID)
			if !ok {
				log.Warn("Unresolved connection endpoint",
					zap.String("geometry", ep.GeometryID),
					zap.String("floor", ep.FloorID))
				continue
			}
			if !seen[n.ID] {
				seen[n.ID] = true
				ids = append(ids, n.ID)
			}
		}

		opts := []graph.EdgeOption{
			graph.WithType(edgeType),
			graph.WithCost(conn.EntryCost),
			graph.WithAccessible(accessible),
			graph.WithExtension("connection", conn.ID),
		}
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				if err := b.AddBidirectionalEdge(ids[i], ids[j], conn.EntryCost, opts...); err != nil {
					log.Warn("Failed to add connection edge", zap.Error(err))
					continue
				}
				added += 2
			}
		}
	}
	return added
}

// AddNeighborLinks adds the authored neighbor edges of node records. They are
// trusted and skip line-of-sight checks.
func AddNeighborLinks(b *graph.Builder, nodes []venue.NodeRecord, logger *zap.Logger) int {
	if logger == nil {
		logger = zap.NewNop()
	}

	added := 0
	for _, rec := range nodes {
		from, ok := b.Node(rec.ID)
		if !ok {
			continue
		}
		for _, nb := range rec.Neighbors {
			to, ok := b.Node(nb.ID)
			if !ok {
				logger.Warn("Unknown neighbor", zap.String("node", rec.ID), zap.String("neighbor", nb.ID))
				continue
			}
			w := geometry.Distance(from.Coords, to.Coords)
			if err := b.AddEdge(from.ID, to.ID, w, graph.WithCost(nb.ExtraCost)); err != nil {
				logger.Warn("Failed to add neighbor edge",
					zap.String("node", rec.ID),
					zap.String("neighbor", nb.ID),
					zap.Error(err))
				continue
			}
			added++
		}
	}
	return added
}
