package builder

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/o0olele/wayfinder-go/collision"
	"github.com/o0olele/wayfinder-go/graph"
	"github.com/o0olele/wayfinder-go/quadtree"
	"github.com/paulmach/orb"
)

const (
	SnapshotMagic   = 0x57415946 // "WAYF"
	SnapshotVersion = 1
)

// ErrInvalidSnapshot is returned for files that are not navigation snapshots.
var ErrInvalidSnapshot = errors.New("builder: invalid snapshot")

// FileHeader precedes the gob payload.
type FileHeader struct {
	Magic   uint32
	Version uint32
}

type snapshotNode struct {
	ID          string
	Coords      orb.Point
	FloorID     string
	Type        graph.NodeType
	GeometryIDs []string
}

type snapshot struct {
	Index     quadtree.Options
	Nodes     []snapshotNode
	Edges     []graph.Edge
	Obstacles map[string][]orb.Polygon
}

// Write encodes nav as a gzip-compressed snapshot.
func Write(w io.Writer, nav *Navigation, indexOpts quadtree.Options) error {
	snap := snapshot{
		Index:     indexOpts,
		Obstacles: make(map[string][]orb.Polygon),
	}
	for _, n := range nav.Graph.Nodes() {
		snap.Nodes = append(snap.Nodes, snapshotNode{
			ID:          n.ID,
			Coords:      n.Coords,
			FloorID:     n.FloorID,
			Type:        n.Metadata.Type,
			GeometryIDs: n.Metadata.GeometryIDs,
		})
		snap.Edges = append(snap.Edges, nav.Graph.Edges(n.ID)...)
	}
	if nav.Detector != nil {
		for _, floorID := range nav.Detector.Floors() {
			snap.Obstacles[floorID] = nav.Detector.Obstacles(floorID)
		}
	}

	zw := gzip.NewWriter(w)
	header := FileHeader{Magic: SnapshotMagic, Version: SnapshotVersion}
	if err := binary.Write(zw, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := gob.NewEncoder(zw).Encode(&snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return zw.Close()
}

// Read decodes a snapshot written by Write and rebuilds the navigation.
func Read(r io.Reader, opts ...collision.Option) (*Navigation, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	defer zr.Close()

	var header FileHeader
	if err := binary.Read(zr, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", ErrInvalidSnapshot, err)
	}
	if header.Magic != SnapshotMagic {
		return nil, fmt.Errorf("%w: magic number mismatch", ErrInvalidSnapshot)
	}
	if header.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, header.Version)
	}

	var snap snapshot
	if err := gob.NewDecoder(zr).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	gb := graph.NewBuilder(snap.Index)
	for _, n := range snap.Nodes {
		meta := graph.Metadata{Type: n.Type, GeometryIDs: n.GeometryIDs}
		if err := gb.AddNode(n.ID, n.Coords, n.FloorID, meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	}
	for _, e := range snap.Edges {
		edgeOpts := []graph.EdgeOption{
			graph.WithType(e.Type),
			graph.WithCost(e.Cost),
			graph.WithAccessible(e.Accessible),
		}
		for k, v := range e.Extensions {
			edgeOpts = append(edgeOpts, graph.WithExtension(k, v))
		}
		if err := gb.AddEdge(e.From, e.To, e.Weight, edgeOpts...); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	}

	g, err := gb.Build()
	if err != nil {
		return nil, err
	}
	return &Navigation{
		Graph:    g,
		Detector: collision.NewFromObstacles(snap.Obstacles, opts...),
	}, nil
}

// Save writes nav to filename.
func Save(nav *Navigation, indexOpts quadtree.Options, filename string) error {
	var buf bytes.Buffer
	if err := Write(&buf, nav, indexOpts); err != nil {
		return err
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Load reads a snapshot file.
func Load(filename string, opts ...collision.Option) (*Navigation, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	return Read(f, opts...)
}
