package selection_test

import (
	"testing"

	"lintang/postmanx/pkg/datastructure"
	"lintang/postmanx/pkg/geo"
	"lintang/postmanx/pkg/kv"
	"lintang/postmanx/pkg/selection"

	"github.com/stretchr/testify/assert"
)

type memTiles struct {
	tiles []kv.Tile
}

func (m *memTiles) IterTiles(fn func(kv.Tile) error) error {
	for _, t := range m.tiles {
		if err := fn(t); err != nil {
			return err
		}
	}
	return nil
}

func edgeAt(id uint64, fromLat, fromLon, toLat, toLon float64, forward, shortcut bool) kv.EdgeRecord {
	return kv.EdgeRecord{
		ID:             id,
		FromNode:       id * 10,
		ToNode:         id*10 + 1,
		FromLat:        fromLat,
		FromLon:        fromLon,
		ToLat:          toLat,
		ToLon:          toLon,
		Forward:        forward,
		Dist:           100,
		MaxSpeed:       36,
		RoadClass:      "residential",
		Shortcut:       shortcut,
		RestrictionIdx: -1,
	}
}

func selectedIDs(edges []selection.SelectedEdge) []uint64 {
	ids := make([]uint64, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, uint64(e.ID))
	}
	return ids
}

func TestSelectEdges(t *testing.T) {
	// unit square around the origin; edge midpoints determine membership
	polygon := []geo.Location{
		geo.NewLocation(-0.01, -0.01),
		geo.NewLocation(-0.01, 0.01),
		geo.NewLocation(0.01, 0.01),
		geo.NewLocation(0.01, -0.01),
	}

	tile := kv.NewTile(0, 2)
	tile.Edges[0] = edgeAt(3, 0, 0, 0, 0.002, true, false)         // inside
	tile.Edges[1] = edgeAt(1, 0.005, 0.005, 0.005, 0.007, true, false) // inside, smaller id
	tile.Edges[2] = edgeAt(2, 0.005, 0.005, 0.005, 0.007, false, false) // reverse half of a oneway
	tile.Edges[3] = edgeAt(4, 0, 0, 0, 0.002, true, true)          // shortcut, never indexed
	tile.Edges[4] = edgeAt(5, 0.5, 0.5, 0.5, 0.502, true, false)   // far outside

	sel, err := selection.NewSelector(&memTiles{tiles: []kv.Tile{*tile}})
	assert.NoError(t, err)

	t.Run("selects inside edges sorted by id", func(t *testing.T) {
		edges := sel.SelectEdges(polygon, nil)
		assert.Equal(t, []uint64{1, 3}, selectedIDs(edges))
	})

	t.Run("reverse oneway halves and shortcuts excluded", func(t *testing.T) {
		edges := sel.SelectEdges(polygon, nil)
		for _, e := range edges {
			assert.NotEqual(t, datastructure.GraphID(2), e.ID)
			assert.NotEqual(t, datastructure.GraphID(4), e.ID)
		}
	})

	t.Run("avoid polygon removes covered edges", func(t *testing.T) {
		avoid := [][]geo.Location{{
			geo.NewLocation(0.004, 0.004),
			geo.NewLocation(0.004, 0.008),
			geo.NewLocation(0.006, 0.008),
			geo.NewLocation(0.006, 0.004),
		}}
		edges := sel.SelectEdges(polygon, avoid)
		assert.Equal(t, []uint64{3}, selectedIDs(edges))
	})

	t.Run("degenerate polygon selects nothing", func(t *testing.T) {
		edges := sel.SelectEdges(polygon[:2], nil)
		assert.Empty(t, edges)
	})
}
