package venue

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/o0olele/wayfinder-go/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	NodesFile       = "nodes.geojson"
	ConnectionsFile = "connections.json"
	KindsFile       = "kinds.json"
	NonwalkableFile = "nonwalkable.json"
	GeometryDir     = "geometry"
)

// ErrMissingFile is returned when a required venue file does not exist.
var ErrMissingFile = errors.New("venue: missing file")

// Load reads a venue directory:
//
//	nodes.geojson          point features with floorId, neighbors, geometryIds
//	connections.json       inter-floor connection records (optional)
//	geometry/<floor>.geojson  classified floor geometry (optional)
//	kinds.json             geometry id -> kind (optional)
//	nonwalkable.json       list of non-walkable geometry ids (optional)
func Load(dir string) (*Dataset, error) {
	ds := &Dataset{
		Geometry:    make(map[string]*geojson.FeatureCollection),
		Kinds:       make(map[string]string),
		Nonwalkable: make(map[string]struct{}),
	}

	data, err := os.ReadFile(filepath.Join(dir, NodesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, NodesFile)
		}
		return nil, fmt.Errorf("failed to read nodes: %w", err)
	}
	if ds.Nodes, err = ParseNodes(data); err != nil {
		return nil, err
	}

	if err := readOptionalJSON(filepath.Join(dir, ConnectionsFile), &ds.Connections); err != nil {
		return nil, err
	}
	if err := readOptionalJSON(filepath.Join(dir, KindsFile), &ds.Kinds); err != nil {
		return nil, err
	}

	var nonwalkable []interface{}
	if err := readOptionalJSON(filepath.Join(dir, NonwalkableFile), &nonwalkable); err != nil {
		return nil, err
	}
	for _, id := range nonwalkable {
		ds.Nonwalkable[geometry.FormatID(id)] = struct{}{}
	}

	if err := ds.loadGeometry(filepath.Join(dir, GeometryDir)); err != nil {
		return nil, err
	}
	return ds, nil
}

func readOptionalJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (ds *Dataset) loadGeometry(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to list geometry: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".geojson") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("failed to read geometry %s: %w", e.Name(), err)
		}
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return fmt.Errorf("failed to parse geometry %s: %w", e.Name(), err)
		}
		ds.Geometry[strings.TrimSuffix(e.Name(), ".geojson")] = fc
	}
	return nil
}

type nodeProperties struct {
	FloorID     string        `json:"floorId"`
	Neighbors   []NeighborRef `json:"neighbors"`
	GeometryIDs []string      `json:"geometryIds"`
}

// ParseNodes decodes a FeatureCollection of point features into node records.
func ParseNodes(data []byte) ([]NodeRecord, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse nodes: %w", err)
	}

	nodes := make([]NodeRecord, 0, len(fc.Features))
	for i, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("node feature %d: expected Point geometry, got %T", i, f.Geometry)
		}

		// round-trip the properties through json to get typed fields
		raw, err := json.Marshal(f.Properties)
		if err != nil {
			return nil, fmt.Errorf("node feature %d: %w", i, err)
		}
		var props nodeProperties
		if err := json.Unmarshal(raw, &props); err != nil {
			return nil, fmt.Errorf("node feature %d: invalid properties: %w", i, err)
		}

		id := geometry.FeatureID(f)
		if id == "" {
			return nil, fmt.Errorf("node feature %d: missing id", i)
		}
		if props.FloorID == "" {
			return nil, fmt.Errorf("node %s: missing floorId", id)
		}

		nodes = append(nodes, NodeRecord{
			ID:          id,
			Coordinates: pt,
			FloorID:     props.FloorID,
			Neighbors:   props.Neighbors,
			GeometryIDs: props.GeometryIDs,
		})
	}
	return nodes, nil
}
