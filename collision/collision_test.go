package collision

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var (
	pointA = orb.Point{0, 0}
	pointB = orb.Point{0.0003, 0}
)

// wallBetween is a thin polygon crossing the A-B segment.
func wallBetween() orb.Polygon {
	return orb.Polygon{{
		{0.00014, -0.0001}, {0.00016, -0.0001}, {0.00016, 0.0001}, {0.00014, 0.0001}, {0.00014, -0.0001},
	}}
}

func feature(id string, g orb.Geometry, props map[string]interface{}) *geojson.Feature {
	f := geojson.NewFeature(g)
	f.ID = id
	for k, v := range props {
		f.Properties[k] = v
	}
	return f
}

func collection(features ...*geojson.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		fc.Append(f)
	}
	return fc
}

func TestNoObstacleFastPath(t *testing.T) {
	d := New(Input{})

	assert.True(t, d.IsPathClear(pointA, pointB, "1"))
	assert.False(t, d.PointInObstacle(pointA, "1"))
	assert.False(t, d.LineIntersectsObstacle(pointA, pointB, "1"))
	assert.Equal(t, 0, d.ObstacleCount())
}

func TestClassification(t *testing.T) {
	in := Input{
		Geometry: map[string]*geojson.FeatureCollection{
			"1": collection(
				feature("wall-1", wallBetween(), nil),
				feature("room-1", orb.Polygon{{{1, 1}, {2, 1}, {2, 2}, {1, 1}}}, nil),
				feature("kiosk", orb.Polygon{{{3, 3}, {4, 3}, {4, 4}, {3, 3}}}, nil),
				feature("tagged", orb.Polygon{{{5, 5}, {6, 5}, {6, 6}, {5, 5}}}, map[string]interface{}{"kind": "wall"}),
				feature("door", orb.Point{0, 0}, nil),
			),
		},
		Nonwalkable: map[string]struct{}{"kiosk": {}},
		Kinds:       map[string]string{"wall-1": KindWall, "room-1": "room", "door": KindWall},
	}
	d := New(in)

	assert.Equal(t, 3, d.ObstacleCount())
	assert.Equal(t, []string{"1"}, d.Floors())
	assert.Len(t, d.Obstacles("1"), 3)
	assert.Nil(t, d.Obstacles("2"))
}

func TestWallBlocksSegment(t *testing.T) {
	d := New(Input{
		Geometry: map[string]*geojson.FeatureCollection{
			"1": collection(feature("w", wallBetween(), nil)),
		},
		Kinds: map[string]string{"w": KindWall},
	})

	assert.False(t, d.IsPathClear(pointA, pointB, "1"))
	assert.True(t, d.LineIntersectsObstacle(pointA, pointB, "1"))
	// other floors are unaffected
	assert.True(t, d.IsPathClear(pointA, pointB, "2"))
	// a segment that stops short of the wall
	assert.True(t, d.IsPathClear(pointA, orb.Point{0.0001, 0}, "1"))
	// endpoint inside the wall
	assert.True(t, d.PointInObstacle(orb.Point{0.00015, 0}, "1"))
	assert.False(t, d.IsPathClear(pointA, orb.Point{0.00015, 0}, "1"))
}

func TestLineFeatureIsBuffered(t *testing.T) {
	wall := orb.LineString{{0.00015, -0.0001}, {0.00015, 0.0001}}
	d := New(Input{
		Geometry: map[string]*geojson.FeatureCollection{
			"1": collection(feature("line-wall", wall, nil)),
		},
		Kinds: map[string]string{"line-wall": KindWall},
	}, WithBufferWidth(0.5))

	require.Equal(t, 1, d.ObstacleCount())
	assert.False(t, d.IsPathClear(pointA, pointB, "1"))
	assert.True(t, d.PointInObstacle(orb.Point{0.00015, 0}, "1"))
}

func TestDegenerateLineIsSkipped(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	d := New(Input{
		Geometry: map[string]*geojson.FeatureCollection{
			"1": collection(
				feature("bad", orb.LineString{{1, 1}, {1, 1}}, nil),
				feature("good", wallBetween(), nil),
			),
		},
		Kinds: map[string]string{"bad": KindWall, "good": KindWall},
	}, WithLogger(zap.New(core)))

	assert.Equal(t, 1, d.ObstacleCount())
	assert.Equal(t, 1, logs.FilterMessage("Failed to buffer wall line").Len())
}

func TestFailurePolicy(t *testing.T) {
	boom := func() bool { panic("degenerate geometry") }

	open := New(Input{})
	assert.False(t, open.guard("line", "1", boom))

	closed := New(Input{}, WithFailClosed(true))
	assert.True(t, closed.guard("line", "1", boom))
}

func TestValidatePath(t *testing.T) {
	d := NewFromObstacles(map[string][]orb.Polygon{"1": {wallBetween()}})

	tests := []struct {
		name   string
		coords []orb.Point
		floors []string
		want   Validation
	}{
		{
			name:   "clear",
			coords: []orb.Point{{0, 0.001}, {0.0003, 0.001}},
			floors: []string{"1", "1"},
			want:   Validation{Valid: true, BlockedSegment: -1},
		},
		{
			name:   "blocked second segment",
			coords: []orb.Point{{0, 0.001}, {0, 0}, pointB},
			floors: []string{"1", "1", "1"},
			want:   Validation{Valid: false, BlockedSegment: 1},
		},
		{
			name:   "floor transition is not checked",
			coords: []orb.Point{pointA, pointB},
			floors: []string{"1", "2"},
			want:   Validation{Valid: true, BlockedSegment: -1},
		},
		{
			name:   "missing floors",
			coords: []orb.Point{{0, 0.001}, {0.0001, 0.001}, {0.0003, 0.001}},
			floors: []string{"1", "1"},
			want:   Validation{Valid: false, BlockedSegment: 1},
		},
		{
			name:   "no floors",
			coords: []orb.Point{{0, 0.001}, {0.0001, 0.001}},
			want:   Validation{Valid: false, BlockedSegment: 0},
		},
		{
			name:   "empty",
			want:   Validation{Valid: true, BlockedSegment: -1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.ValidatePath(tt.coords, tt.floors))
		})
	}
}

func TestFeatureID(t *testing.T) {
	f := geojson.NewFeature(orb.Point{})
	f.Properties["id"] = "from-props"
	assert.Equal(t, "from-props", FeatureID(f))

	f.ID = 42
	assert.Equal(t, "42", FeatureID(f))

	f.ID = float64(1234567)
	assert.Equal(t, "1234567", FeatureID(f))

	f.ID = 2.5
	assert.Equal(t, "2.5", FeatureID(f))
}

func TestNumericFeatureIDs(t *testing.T) {
	fc, err := geojson.UnmarshalFeatureCollection([]byte(`{"type":"FeatureCollection","features":[
	  {"type":"Feature","id":1234567,"geometry":{"type":"Polygon","coordinates":[[[0.00014,-0.0001],[0.00016,-0.0001],[0.00016,0.0001],[0.00014,0.0001],[0.00014,-0.0001]]]},"properties":{}},
	  {"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[1,1],[2,1],[2,2],[1,1]]]},"properties":{"id":7654321}}
	]}`))
	require.NoError(t, err)

	assert.Equal(t, "1234567", FeatureID(fc.Features[0]))
	assert.Equal(t, "7654321", FeatureID(fc.Features[1]))

	d := New(Input{
		Geometry:    map[string]*geojson.FeatureCollection{"1": fc},
		Kinds:       map[string]string{"1234567": KindWall},
		Nonwalkable: map[string]struct{}{"7654321": {}},
	})
	assert.Equal(t, 2, d.ObstacleCount())
	assert.False(t, d.IsPathClear(pointA, pointB, "1"))
}
