package kv

import (
	"lintang/postmanx/pkg/datastructure"
)

// NodeRecord is an intersection as stored inside a tile. OutEdges and
// InEdges hold raw ids of the directed edges touching the node.
type NodeRecord struct {
	ID           uint64
	Lat          float64
	Lon          float64
	TrafficLight bool
	OutEdges     []uint64
	InEdges      []uint64
}

func (n NodeRecord) ToNodeInfo() datastructure.NodeInfo {
	return datastructure.NodeInfo{
		ID:           datastructure.GraphID(n.ID),
		Lat:          n.Lat,
		Lon:          n.Lon,
		TrafficLight: n.TrafficLight,
	}
}

// EdgeRecord is a directed edge as stored inside a tile. Endpoint
// coordinates are denormalized so selection never needs the neighbor
// tile of a boundary edge.
type EdgeRecord struct {
	ID             uint64
	FromNode       uint64
	ToNode         uint64
	FromLat        float64
	FromLon        float64
	ToLat          float64
	ToLon          float64
	Forward        bool
	Dist           float64
	MaxSpeed       float64
	RoadClass      string
	Shortcut       bool
	InnerEdges     []uint64
	RestrictionIdx int
}

func (e EdgeRecord) ToDirectedEdge() datastructure.DirectedEdge {
	inner := make([]datastructure.GraphID, len(e.InnerEdges))
	for i, id := range e.InnerEdges {
		inner[i] = datastructure.GraphID(id)
	}
	return datastructure.DirectedEdge{
		ID:             datastructure.GraphID(e.ID),
		FromNode:       datastructure.GraphID(e.FromNode),
		ToNode:         datastructure.GraphID(e.ToNode),
		Forward:        e.Forward,
		Dist:           e.Dist,
		MaxSpeed:       e.MaxSpeed,
		RoadClass:      e.RoadClass,
		Shortcut:       e.Shortcut,
		InnerEdges:     inner,
		RestrictionIdx: e.RestrictionIdx,
	}
}

// Tile is one cell of the hierarchical tile grid, nodes and edges keyed
// by their within-tile index.
type Tile struct {
	TileID uint32
	Level  uint8
	Nodes  map[uint64]NodeRecord
	Edges  map[uint64]EdgeRecord
}

func NewTile(tileID uint32, level uint8) *Tile {
	return &Tile{
		TileID: tileID,
		Level:  level,
		Nodes:  make(map[uint64]NodeRecord),
		Edges:  make(map[uint64]EdgeRecord),
	}
}

// CandidateRecord is an edge candidate stored under an h3 cell key,
// used to snap request coordinates onto the network.
type CandidateRecord struct {
	EdgeID  uint64
	FromLat float64
	FromLon float64
	ToLat   float64
	ToLon   float64
}
