package postman_test

import (
	"testing"

	"lintang/postmanx/pkg/datastructure"
	"lintang/postmanx/pkg/postman"

	"github.com/stretchr/testify/assert"
)

var (
	vA = datastructure.NewGraphID(1, 0, 0)
	vB = datastructure.NewGraphID(1, 0, 1)
	vC = datastructure.NewGraphID(1, 0, 2)
	vD = datastructure.NewGraphID(1, 0, 3)

	e1 = datastructure.NewGraphID(1, 0, 100)
	e2 = datastructure.NewGraphID(1, 0, 101)
	e3 = datastructure.NewGraphID(1, 0, 102)
	e4 = datastructure.NewGraphID(1, 0, 103)
	e5 = datastructure.NewGraphID(1, 0, 104)
	e6 = datastructure.NewGraphID(1, 0, 105)
)

func TestMultigraph(t *testing.T) {
	t.Run("add vertex is idempotent", func(t *testing.T) {
		g := postman.NewMultigraph()
		g.AddVertex(vA)
		g.AddVertex(vA)
		g.AddVertex(vA)
		assert.Equal(t, 1, g.VertexCount())
	})

	t.Run("add edge creates missing endpoints", func(t *testing.T) {
		g := postman.NewMultigraph()
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e1)
		assert.Equal(t, 2, g.VertexCount())
		assert.Equal(t, 1, g.EdgeCount())
		assert.Equal(t, vA, g.StartVertex())
	})

	t.Run("parallel edges and self loops are kept", func(t *testing.T) {
		g := postman.NewMultigraph()
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e1)
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e2)
		g.AddEdge(vA, vA, datastructure.NewCost(1, 1), e3)
		assert.Equal(t, 3, g.EdgeCount())
		assert.Equal(t, 2, g.VertexCount())

		a, ok := g.Vertex(vA)
		assert.True(t, ok)
		assert.Equal(t, 3, a.OutDegree)
		assert.Equal(t, 1, a.InDegree)
	})

	t.Run("degree sums match edge count", func(t *testing.T) {
		g := postman.NewMultigraph()
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e1)
		g.AddEdge(vB, vC, datastructure.NewCost(1, 1), e2)
		g.AddEdge(vC, vA, datastructure.NewCost(1, 1), e3)
		g.AddEdge(vA, vC, datastructure.NewCost(1, 1), e4)

		sumOut, sumIn := 0, 0
		for _, id := range []datastructure.GraphID{vA, vB, vC} {
			v, ok := g.Vertex(id)
			assert.True(t, ok)
			sumOut += v.OutDegree
			sumIn += v.InDegree
		}
		assert.Equal(t, g.EdgeCount(), sumOut)
		assert.Equal(t, g.EdgeCount(), sumIn)
	})

	t.Run("unbalanced vertices report signed imbalance summing to zero", func(t *testing.T) {
		g := postman.NewMultigraph()
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e1)
		g.AddEdge(vB, vC, datastructure.NewCost(1, 1), e2)
		g.AddEdge(vA, vC, datastructure.NewCost(1, 1), e3)

		unbalanced := g.UnbalancedVertices()
		assert.Equal(t, map[datastructure.GraphID]int{vA: 2, vC: -2}, unbalanced)

		sum := 0
		for _, imbalance := range unbalanced {
			sum += imbalance
		}
		assert.Equal(t, 0, sum)
	})

	t.Run("balanced graph reports nothing", func(t *testing.T) {
		g := postman.NewMultigraph()
		g.AddEdge(vA, vB, datastructure.NewCost(1, 1), e1)
		g.AddEdge(vB, vA, datastructure.NewCost(1, 1), e2)
		assert.Empty(t, g.UnbalancedVertices())
	})
}
