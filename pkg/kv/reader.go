package kv

import (
	"fmt"
	"sync"

	"lintang/postmanx/pkg/datastructure"
)

type tileCacheKey struct {
	level  uint8
	tileID uint32
}

// Reader is a per-request view over the tile store. Tiles are fetched
// lazily and cached for the lifetime of the request, so repeated lookups
// inside one route computation hit pebble at most once per tile. Safe
// for use by the distance-matrix workers.
type Reader struct {
	db    *KVDB
	mu    sync.RWMutex
	tiles map[tileCacheKey]Tile
}

func (k *KVDB) NewReader() *Reader {
	return &Reader{
		db:    k,
		tiles: make(map[tileCacheKey]Tile),
	}
}

func (r *Reader) tile(id datastructure.GraphID) (Tile, error) {
	key := tileCacheKey{level: id.Level(), tileID: id.TileID()}
	r.mu.RLock()
	t, ok := r.tiles[key]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}
	t, err := r.db.GetTile(key.level, key.tileID)
	if err != nil {
		return Tile{}, err
	}
	r.mu.Lock()
	r.tiles[key] = t
	r.mu.Unlock()
	return t, nil
}

func (r *Reader) DirectedEdge(id datastructure.GraphID) (datastructure.DirectedEdge, error) {
	t, err := r.tile(id)
	if err != nil {
		return datastructure.DirectedEdge{}, err
	}
	rec, ok := t.Edges[id.Index()]
	if !ok {
		return datastructure.DirectedEdge{}, fmt.Errorf("edge %d not in tile %d/%d", uint64(id), id.Level(), id.TileID())
	}
	return rec.ToDirectedEdge(), nil
}

func (r *Reader) NodeInfo(id datastructure.GraphID) (datastructure.NodeInfo, error) {
	t, err := r.tile(id)
	if err != nil {
		return datastructure.NodeInfo{}, err
	}
	rec, ok := t.Nodes[id.Index()]
	if !ok {
		return datastructure.NodeInfo{}, fmt.Errorf("node %d not in tile %d/%d", uint64(id), id.Level(), id.TileID())
	}
	return rec.ToNodeInfo(), nil
}

func (r *Reader) OutEdgeIDs(nodeID datastructure.GraphID) []datastructure.GraphID {
	t, err := r.tile(nodeID)
	if err != nil {
		return nil
	}
	rec, ok := t.Nodes[nodeID.Index()]
	if !ok {
		return nil
	}
	out := make([]datastructure.GraphID, len(rec.OutEdges))
	for i, e := range rec.OutEdges {
		out[i] = datastructure.GraphID(e)
	}
	return out
}

func (r *Reader) InEdgeIDs(nodeID datastructure.GraphID) []datastructure.GraphID {
	t, err := r.tile(nodeID)
	if err != nil {
		return nil
	}
	rec, ok := t.Nodes[nodeID.Index()]
	if !ok {
		return nil
	}
	in := make([]datastructure.GraphID, len(rec.InEdges))
	for i, e := range rec.InEdges {
		in[i] = datastructure.GraphID(e)
	}
	return in
}
