package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/o0olele/wayfinder-go/graph"
	"github.com/o0olele/wayfinder-go/query"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// RouteRequest asks for a route between two node ids, or between two
// coordinates that are snapped to their nearest nodes.
type RouteRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	FromCoords *orb.Point `json:"from_coords,omitempty"`
	FromFloor  string     `json:"from_floor,omitempty"`
	ToCoords   *orb.Point `json:"to_coords,omitempty"`
	ToFloor    string     `json:"to_floor,omitempty"`

	AccessibleOnly bool  `json:"accessible_only"`
	AvoidStairs    bool  `json:"avoid_stairs"`
	Smooth         *bool `json:"smooth,omitempty"`
}

// RouteResponse is the result of a route request.
type RouteResponse struct {
	Found     bool         `json:"found"`
	Route     *query.Route `json:"route,omitempty"`
	Smoothed  []orb.Point  `json:"smoothed,omitempty"`
	RequestID string       `json:"request_id"`
}

// ValidateRequest is a coordinate path with one floor id per coordinate.
type ValidateRequest struct {
	Coordinates []orb.Point `json:"coordinates"`
	Floors      []string    `json:"floors"`
}

// LoadRequest names a venue directory or snapshot file to serve.
type LoadRequest struct {
	NavigationFilename string `json:"navigation_filename"`
}

// StatsResponse summarizes the served navigation.
type StatsResponse struct {
	graph.Stats
	Floors    []string          `json:"floors"`
	Obstacles int               `json:"obstacles"`
	Cache     *query.CacheStats `json:"cache,omitempty"`
}

// NodeResponse is a graph node as returned by the nearest endpoint.
type NodeResponse struct {
	ID          string         `json:"id"`
	Coordinates orb.Point      `json:"coordinates"`
	FloorID     string         `json:"floor_id"`
	Type        graph.NodeType `json:"type"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// loaded returns the current navigator or answers 503.
func (s *Server) loaded(w http.ResponseWriter) (*query.Navigator, bool) {
	n := s.Navigator()
	if n == nil {
		http.Error(w, "Navigation not loaded", http.StatusServiceUnavailable)
		return nil, false
	}
	return n, true
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"loaded": s.Navigator() != nil,
	})
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	n, ok := s.loaded(w)
	if !ok {
		return
	}
	nav := n.Navigation()
	resp := StatsResponse{
		Stats:     nav.Stats(),
		Floors:    nav.Graph.Floors(),
		Obstacles: nav.Detector.ObstacleCount(),
	}
	if cs, ok := n.CacheStats(); ok {
		resp.Cache = &cs
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) routeHandler(w http.ResponseWriter, r *http.Request) {
	n, ok := s.loaded(w)
	if !ok {
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	opts := s.cfg.SearchOptions()
	opts.AccessibleOnly = req.AccessibleOnly
	opts.AvoidStairs = req.AvoidStairs

	var route *query.Route
	switch {
	case req.From != "" && req.To != "":
		route = n.FindPath(req.From, req.To, opts)
	case req.FromCoords != nil && req.ToCoords != nil:
		route = n.RouteBetween(*req.FromCoords, req.FromFloor, *req.ToCoords, req.ToFloor, opts)
	default:
		http.Error(w, "Either from/to or from_coords/to_coords is required", http.StatusBadRequest)
		return
	}

	resp := RouteResponse{
		Found:     route != nil,
		Route:     route,
		RequestID: RequestID(r.Context()),
	}
	smooth := s.cfg.Smoothing.Enabled
	if req.Smooth != nil {
		smooth = *req.Smooth
	}
	if route != nil && smooth {
		resp.Smoothed = n.Smooth(route)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) nearestHandler(w http.ResponseWriter, r *http.Request) {
	n, ok := s.loaded(w)
	if !ok {
		return
	}

	q := r.URL.Query()
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	floor := q.Get("floor")
	if errLon != nil || errLat != nil || floor == "" {
		http.Error(w, "lon, lat and floor are required", http.StatusBadRequest)
		return
	}

	radius := s.cfg.Graph.NearestRadius
	if v := q.Get("radius"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid radius", http.StatusBadRequest)
			return
		}
		radius = parsed
	}

	node, found := n.Graph().FindNearestNode(orb.Point{lon, lat}, floor, radius)
	if !found {
		http.Error(w, "No node in range", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, NodeResponse{
		ID:          node.ID,
		Coordinates: node.Coords,
		FloorID:     node.FloorID,
		Type:        node.Type,
	})
}

func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	n, ok := s.loaded(w)
	if !ok {
		return
	}

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.Coordinates) != len(req.Floors) {
		http.Error(w, "coordinates and floors must have the same length", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, n.Navigation().Detector.ValidatePath(req.Coordinates, req.Floors))
}

func (s *Server) loadHandler(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NavigationFilename == "" {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := s.Load(r.Context(), req.NavigationFilename); err != nil {
		s.logger.Warn("Failed to load navigation",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("source", req.NavigationFilename),
			zap.Error(err))
		http.Error(w, fmt.Sprintf("Failed to load navigation data: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "loaded",
		"stats":  s.Navigator().Graph().Stats(),
	})
}
