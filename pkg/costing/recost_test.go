package costing_test

import (
	"fmt"
	"testing"
	"time"

	"lintang/postmanx/pkg/costing"
	"lintang/postmanx/pkg/datastructure"

	"github.com/stretchr/testify/assert"
)

type fakeReader struct {
	edges map[datastructure.GraphID]datastructure.DirectedEdge
	nodes map[datastructure.GraphID]datastructure.NodeInfo
}

func (f *fakeReader) DirectedEdge(id datastructure.GraphID) (datastructure.DirectedEdge, error) {
	e, ok := f.edges[id]
	if !ok {
		return datastructure.DirectedEdge{}, fmt.Errorf("edge %d not found", uint64(id))
	}
	return e, nil
}

func (f *fakeReader) NodeInfo(id datastructure.GraphID) (datastructure.NodeInfo, error) {
	n, ok := f.nodes[id]
	if !ok {
		return datastructure.NodeInfo{}, fmt.Errorf("node %d not found", uint64(id))
	}
	return n, nil
}

func sliceEdgeCb(ids []datastructure.GraphID) costing.EdgeCallback {
	i := 0
	return func() datastructure.GraphID {
		if i == len(ids) {
			return datastructure.InvalidGraphID
		}
		id := ids[i]
		i++
		return id
	}
}

func TestRecostForward(t *testing.T) {
	nA := datastructure.NewGraphID(1, 0, 0)
	nB := datastructure.NewGraphID(1, 0, 1)
	nC := datastructure.NewGraphID(1, 0, 2)
	eAB := datastructure.NewGraphID(1, 0, 100)
	eBC := datastructure.NewGraphID(1, 0, 101)

	// 1000 m at 36 km/h = 100 s per edge
	reader := &fakeReader{
		edges: map[datastructure.GraphID]datastructure.DirectedEdge{
			eAB: {ID: eAB, FromNode: nA, ToNode: nB, Forward: true, Dist: 1000, MaxSpeed: 36},
			eBC: {ID: eBC, FromNode: nB, ToNode: nC, Forward: true, Dist: 1000, MaxSpeed: 36},
		},
		nodes: map[datastructure.GraphID]datastructure.NodeInfo{
			nA: {ID: nA},
			nB: {ID: nB},
			nC: {ID: nC},
		},
	}
	autoCost := costing.NewAutoCost()

	t.Run("source and target fractions trim first and last edge", func(t *testing.T) {
		labels := []costing.EdgeLabel{}
		err := costing.RecostForward(reader, autoCost, sliceEdgeCb([]datastructure.GraphID{eAB, eBC}),
			func(l costing.EdgeLabel) { labels = append(labels, l) },
			0.25, 0.5, costing.TimeInfo{}, true)

		assert.NoError(t, err)
		assert.Len(t, labels, 2)
		// first edge charges the remaining 75%, last edge the leading 50%
		assert.InDelta(t, 75.0, labels[0].Cost.Secs, 0.01)
		assert.InDelta(t, 125.0, labels[1].Cost.Secs, 0.01)
		assert.Equal(t, eAB, labels[0].EdgeID)
		assert.Equal(t, eBC, labels[1].EdgeID)
	})

	t.Run("single edge gets both fractions", func(t *testing.T) {
		labels := []costing.EdgeLabel{}
		err := costing.RecostForward(reader, autoCost, sliceEdgeCb([]datastructure.GraphID{eAB}),
			func(l costing.EdgeLabel) { labels = append(labels, l) },
			0.25, 0.5, costing.TimeInfo{}, true)

		assert.NoError(t, err)
		assert.Len(t, labels, 1)
		// 100 s * (1 - 0.25) * 0.5
		assert.InDelta(t, 37.5, labels[0].Cost.Secs, 0.01)
	})

	t.Run("traffic light adds transition cost on non-first edges", func(t *testing.T) {
		lightReader := &fakeReader{
			edges: reader.edges,
			nodes: map[datastructure.GraphID]datastructure.NodeInfo{
				nA: {ID: nA},
				nB: {ID: nB, TrafficLight: true},
				nC: {ID: nC},
			},
		}
		labels := []costing.EdgeLabel{}
		err := costing.RecostForward(lightReader, autoCost, sliceEdgeCb([]datastructure.GraphID{eAB, eBC}),
			func(l costing.EdgeLabel) { labels = append(labels, l) },
			0, 1, costing.TimeInfo{}, true)

		assert.NoError(t, err)
		assert.Len(t, labels, 2)
		assert.InDelta(t, 100.0, labels[0].Cost.Secs, 0.01)
		assert.InDelta(t, 15.0, labels[1].TransitionCost.Secs, 0.01)
		assert.InDelta(t, 215.0, labels[1].Cost.Secs, 0.01)
	})

	t.Run("empty path is an error", func(t *testing.T) {
		err := costing.RecostForward(reader, autoCost, sliceEdgeCb(nil),
			func(costing.EdgeLabel) {}, 0, 1, costing.TimeInfo{}, true)
		assert.Error(t, err)
	})

	t.Run("missing edge fails the recost", func(t *testing.T) {
		missing := datastructure.NewGraphID(9, 0, 999)
		err := costing.RecostForward(reader, autoCost, sliceEdgeCb([]datastructure.GraphID{missing}),
			func(costing.EdgeLabel) {}, 0, 1, costing.TimeInfo{}, true)
		assert.Error(t, err)
	})

	t.Run("rush hour multiplies cost but not seconds", func(t *testing.T) {
		ti := costing.NewTimeInfo(time.Date(2024, 3, 4, 7, 30, 0, 0, time.UTC))
		labels := []costing.EdgeLabel{}
		err := costing.RecostForward(reader, autoCost, sliceEdgeCb([]datastructure.GraphID{eAB}),
			func(l costing.EdgeLabel) { labels = append(labels, l) },
			0, 1, ti, false)

		assert.NoError(t, err)
		assert.InDelta(t, 100.0, labels[0].Cost.Secs, 0.01)
		assert.InDelta(t, 130.0, labels[0].Cost.Cost, 0.01)
	})
}
