package venue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nodesJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "a", "geometry": {"type": "Point", "coordinates": [0, 0]},
     "properties": {"floorId": "1", "geometryIds": ["door-a"], "neighbors": [{"id": "b", "extraCost": 2.5}]}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [0.0003, 0]},
     "properties": {"id": "b", "floorId": "1"}}
  ]
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParseNodes(t *testing.T) {
	nodes, err := ParseNodes([]byte(nodesJSON))
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	assert.Equal(t, "a", nodes[0].ID)
	assert.Equal(t, orb.Point{0, 0}, nodes[0].Coordinates)
	assert.Equal(t, []string{"door-a"}, nodes[0].GeometryIDs)
	assert.Equal(t, []NeighborRef{{ID: "b", ExtraCost: 2.5}}, nodes[0].Neighbors)
	assert.Equal(t, "b", nodes[1].ID)
	assert.Equal(t, "1", nodes[1].FloorID)
}

func TestParseNodesErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"line geometry", `{"type":"FeatureCollection","features":[{"type":"Feature","id":"x","geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]},"properties":{"floorId":"1"}}]}`},
		{"missing floor", `{"type":"FeatureCollection","features":[{"type":"Feature","id":"x","geometry":{"type":"Point","coordinates":[0,0]},"properties":{}}]}`},
		{"missing id", `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[0,0]},"properties":{"floorId":"1"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNodes([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, NodesFile), nodesJSON)
	writeFile(t, filepath.Join(dir, ConnectionsFile), `[
	  {"id": "elev-1", "type": "elevator", "entryCost": 4,
	   "entrances": [{"geometryId": "door-a", "floorId": "1"}],
	   "exits": [{"geometryId": "door-c", "floorId": "2"}]}
	]`)
	writeFile(t, filepath.Join(dir, KindsFile), `{"w1": "wall"}`)
	writeFile(t, filepath.Join(dir, NonwalkableFile), `["kiosk"]`)
	writeFile(t, filepath.Join(dir, GeometryDir, "1.geojson"), `{"type":"FeatureCollection","features":[
	  {"type":"Feature","id":"w1","geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]},"properties":{}}
	]}`)
	writeFile(t, filepath.Join(dir, GeometryDir, "README.txt"), "ignored")

	ds, err := Load(dir)
	require.NoError(t, err)

	assert.Len(t, ds.Nodes, 2)
	require.Len(t, ds.Connections, 1)
	assert.Equal(t, 4.0, ds.Connections[0].EntryCost)
	assert.Len(t, ds.Connections[0].Endpoints(), 2)
	assert.Equal(t, "wall", ds.Kinds["w1"])
	assert.Contains(t, ds.Nonwalkable, "kiosk")
	require.Contains(t, ds.Geometry, "1")
	assert.Len(t, ds.Geometry["1"].Features, 1)
	assert.Len(t, ds.Geometry, 1)
}

func TestLoadMissingNodes(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestLoadOptionalFilesAbsent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, NodesFile), nodesJSON)

	ds, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, ds.Connections)
	assert.Empty(t, ds.Geometry)
	assert.Empty(t, ds.Kinds)
}

func TestLoadInvalidConnections(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, NodesFile), nodesJSON)
	writeFile(t, filepath.Join(dir, ConnectionsFile), `{not json`)

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestNumericIDs(t *testing.T) {
	nodes, err := ParseNodes([]byte(`{"type":"FeatureCollection","features":[
	  {"type":"Feature","id":1234567,"geometry":{"type":"Point","coordinates":[0,0]},
	   "properties":{"floorId":"1","neighbors":[{"id":"7654321","extraCost":0}]}},
	  {"type":"Feature","geometry":{"type":"Point","coordinates":[0.0001,0]},
	   "properties":{"id":7654321,"floorId":"1"}}
	]}`))
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "1234567", nodes[0].ID)
	assert.Equal(t, "7654321", nodes[1].ID)
	assert.Equal(t, nodes[1].ID, nodes[0].Neighbors[0].ID)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, NodesFile), nodesJSON)
	writeFile(t, filepath.Join(dir, NonwalkableFile), `[1234567, "kiosk"]`)

	ds, err := Load(dir)
	require.NoError(t, err)
	assert.Contains(t, ds.Nonwalkable, "1234567")
	assert.Contains(t, ds.Nonwalkable, "kiosk")
}
