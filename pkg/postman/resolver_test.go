package postman_test

import (
	"testing"

	"lintang/postmanx/pkg/concurrent"
	"lintang/postmanx/pkg/datastructure"
	"lintang/postmanx/pkg/engine/assignment"
	"lintang/postmanx/pkg/postman"

	"github.com/stretchr/testify/assert"
)

// fakeEngine serves canned shortest path results keyed by source/target.
type fakeEngine struct {
	results map[concurrent.SPPair]datastructure.SPResult
}

func (f *fakeEngine) CreateDistMatrix(pairs []concurrent.SPPair) map[datastructure.GraphID]map[datastructure.GraphID]datastructure.SPResult {
	matrix := make(map[datastructure.GraphID]map[datastructure.GraphID]datastructure.SPResult)
	for _, p := range pairs {
		res, ok := f.results[p]
		if !ok {
			res = datastructure.SPResult{Source: p.Source, Dest: p.Target, Dist: -1, Eta: -1}
		}
		if matrix[p.Source] == nil {
			matrix[p.Source] = make(map[datastructure.GraphID]datastructure.SPResult)
		}
		matrix[p.Source][p.Target] = res
	}
	return matrix
}

func TestImbalanceResolver(t *testing.T) {
	t.Run("balanced graph untouched", func(t *testing.T) {
		g := postman.NewMultigraph()
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e1)
		g.AddEdge(vB, vA, datastructure.NewCost(1, 1), e2)

		resolver := postman.NewImbalanceResolver(&fakeEngine{}, assignment.NewHungarian())
		assert.NoError(t, resolver.Balance(g))
		assert.Equal(t, 2, g.EdgeCount())
	})

	t.Run("duplicates least cost path from deficit to surplus", func(t *testing.T) {
		// A out=2 in=0 (surplus +2), C out=0 in=2 (deficit -2)
		g := postman.NewMultigraph()
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e1)
		g.AddEdge(vB, vC, datastructure.NewCost(1, 1), e2)
		g.AddEdge(vA, vC, datastructure.NewCost(1, 1), e3)

		engine := &fakeEngine{results: map[concurrent.SPPair]datastructure.SPResult{
			{Source: vC, Target: vA}: {
				Source: vC, Dest: vA,
				EdgePath: []datastructure.DirectedEdge{
					{ID: e4, FromNode: vC, ToNode: vA, Forward: true, Dist: 100},
				},
				Dist: 100, Eta: 12,
			},
		}}

		resolver := postman.NewImbalanceResolver(engine, assignment.NewHungarian())
		assert.NoError(t, resolver.Balance(g))

		// two duplicated C->A traversals resolve both imbalance units
		assert.Equal(t, 5, g.EdgeCount())
		assert.Empty(t, g.UnbalancedVertices())

		circuit, err := g.EulerCircuit(g.StartVertex())
		assert.NoError(t, err)
		assert.Len(t, circuit, 5)
	})

	t.Run("multi edge duplicated path", func(t *testing.T) {
		// deficit C reaches surplus A only through D
		g := postman.NewMultigraph()
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e1)
		g.AddEdge(vB, vC, datastructure.NewCost(1, 1), e2)

		engine := &fakeEngine{results: map[concurrent.SPPair]datastructure.SPResult{
			{Source: vC, Target: vA}: {
				Source: vC, Dest: vA,
				EdgePath: []datastructure.DirectedEdge{
					{ID: e5, FromNode: vC, ToNode: vD, Forward: true, Dist: 50},
					{ID: e6, FromNode: vD, ToNode: vA, Forward: true, Dist: 50},
				},
				Dist: 100, Eta: 20,
			},
		}}

		resolver := postman.NewImbalanceResolver(engine, assignment.NewHungarian())
		assert.NoError(t, resolver.Balance(g))
		assert.Empty(t, g.UnbalancedVertices())
		assert.Equal(t, 4, g.EdgeCount())
	})

	t.Run("unreachable pairs are unsolvable", func(t *testing.T) {
		g := postman.NewMultigraph()
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e1)
		g.AddEdge(vB, vC, datastructure.NewCost(1, 1), e2)

		resolver := postman.NewImbalanceResolver(&fakeEngine{}, assignment.NewHungarian())
		assert.ErrorIs(t, resolver.Balance(g), postman.ErrUnsolvableMatching)
	})
}
