package postman_test

import (
	"testing"

	"lintang/postmanx/pkg/datastructure"
	"lintang/postmanx/pkg/postman"

	"github.com/stretchr/testify/assert"
)

type testEdge struct {
	from, to datastructure.GraphID
}

// assertClosedWalk checks the circuit traverses every edge exactly once
// and forms a closed walk from start.
func assertClosedWalk(t *testing.T, circuit []datastructure.GraphID, edges map[datastructure.GraphID]testEdge, start datastructure.GraphID) {
	t.Helper()
	assert.Len(t, circuit, len(edges))

	seen := make(map[datastructure.GraphID]bool)
	curr := start
	for _, id := range circuit {
		e, ok := edges[id]
		assert.True(t, ok, "unknown edge in circuit")
		assert.False(t, seen[id], "edge traversed twice")
		seen[id] = true
		assert.Equal(t, curr, e.from, "walk is not contiguous")
		curr = e.to
	}
	assert.Equal(t, start, curr, "walk does not return to start")
}

func TestEulerCircuit(t *testing.T) {
	t.Run("empty graph yields empty circuit", func(t *testing.T) {
		g := postman.NewMultigraph()
		circuit, err := g.EulerCircuit(vA)
		assert.NoError(t, err)
		assert.Empty(t, circuit)
	})

	t.Run("four cycle", func(t *testing.T) {
		g := postman.NewMultigraph()
		edges := map[datastructure.GraphID]testEdge{
			e1: {vA, vB},
			e2: {vB, vC},
			e3: {vC, vD},
			e4: {vD, vA},
		}
		for id, e := range edges {
			g.AddEdge(e.from, e.to, datastructure.NewCost(1, 1), id)
		}

		circuit, err := g.EulerCircuit(g.StartVertex())
		assert.NoError(t, err)
		assertClosedWalk(t, circuit, edges, g.StartVertex())
	})

	t.Run("one way loop", func(t *testing.T) {
		g := postman.NewMultigraph()
		edges := map[datastructure.GraphID]testEdge{
			e1: {vA, vB},
			e2: {vB, vC},
			e3: {vC, vA},
		}
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e1)
		g.AddEdge(vB, vC, datastructure.NewCost(1, 1), e2)
		g.AddEdge(vC, vA, datastructure.NewCost(1, 1), e3)

		circuit, err := g.EulerCircuit(vA)
		assert.NoError(t, err)
		assertClosedWalk(t, circuit, edges, vA)
	})

	t.Run("parallel edges both traversed", func(t *testing.T) {
		g := postman.NewMultigraph()
		edges := map[datastructure.GraphID]testEdge{
			e1: {vA, vB},
			e2: {vA, vB},
			e3: {vB, vA},
			e4: {vB, vA},
		}
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e1)
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e2)
		g.AddEdge(vB, vA, datastructure.NewCost(1, 1), e3)
		g.AddEdge(vB, vA, datastructure.NewCost(1, 1), e4)

		circuit, err := g.EulerCircuit(vA)
		assert.NoError(t, err)
		assertClosedWalk(t, circuit, edges, vA)
	})

	t.Run("sub tour spliced into main tour", func(t *testing.T) {
		// main cycle A-B-C-A with a detour cycle B-D-B
		g := postman.NewMultigraph()
		edges := map[datastructure.GraphID]testEdge{
			e1: {vA, vB},
			e2: {vB, vC},
			e3: {vC, vA},
			e4: {vB, vD},
			e5: {vD, vB},
		}
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e1)
		g.AddEdge(vB, vC, datastructure.NewCost(1, 1), e2)
		g.AddEdge(vC, vA, datastructure.NewCost(1, 1), e3)
		g.AddEdge(vB, vD, datastructure.NewCost(1, 1), e4)
		g.AddEdge(vD, vB, datastructure.NewCost(1, 1), e5)

		circuit, err := g.EulerCircuit(vA)
		assert.NoError(t, err)
		assertClosedWalk(t, circuit, edges, vA)
	})

	t.Run("disconnected subgraph is rejected", func(t *testing.T) {
		g := postman.NewMultigraph()
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e1)
		g.AddEdge(vB, vA, datastructure.NewCost(1, 1), e2)
		g.AddEdge(vC, vD, datastructure.NewCost(1, 1), e3)
		g.AddEdge(vD, vC, datastructure.NewCost(1, 1), e4)

		_, err := g.EulerCircuit(vA)
		assert.ErrorIs(t, err, postman.ErrDisconnectedSubgraph)
	})

	t.Run("unknown start vertex is rejected", func(t *testing.T) {
		g := postman.NewMultigraph()
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e1)
		g.AddEdge(vB, vA, datastructure.NewCost(1, 1), e2)

		_, err := g.EulerCircuit(vD)
		assert.ErrorIs(t, err, postman.ErrDisconnectedSubgraph)
	})
}
