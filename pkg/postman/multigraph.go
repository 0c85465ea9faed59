package postman

import (
	"lintang/postmanx/pkg/datastructure"
)

// CPVertex is one road-network intersection inside the selected
// subgraph. Degrees are maintained incrementally as edges are added.
type CPVertex struct {
	ID        datastructure.GraphID
	OutDegree int
	InDegree  int
}

// CPEdge is one selected directed road segment. Parallel edges are
// first-class: the same (From, To) pair may appear many times, each
// occurrence traversed separately by the circuit.
type CPEdge struct {
	Cost   datastructure.Cost
	EdgeID datastructure.GraphID // external network edge id
	From   datastructure.GraphID
	To     datastructure.GraphID
}

// Multigraph is the directed multigraph of the selected road segments.
// It is owned by a single request computation, built once and never
// mutated concurrently.
type Multigraph struct {
	vertices map[datastructure.GraphID]*CPVertex
	edges    []CPEdge
	outEdges map[datastructure.GraphID][]int // vertex -> indices into edges
	start    datastructure.GraphID           // source of the first inserted edge
}

func NewMultigraph() *Multigraph {
	return &Multigraph{
		vertices: make(map[datastructure.GraphID]*CPVertex),
		edges:    make([]CPEdge, 0),
		outEdges: make(map[datastructure.GraphID][]int),
		start:    datastructure.InvalidGraphID,
	}
}

// AddVertex idempotent, inserting the same id twice is a no-op.
func (g *Multigraph) AddVertex(id datastructure.GraphID) {
	if _, ok := g.vertices[id]; ok {
		return
	}
	g.vertices[id] = &CPVertex{ID: id}
}

// AddEdge inserts a directed edge. Missing endpoints are created.
// Parallel edges and self-loops are accepted.
func (g *Multigraph) AddEdge(from, to datastructure.GraphID, cost datastructure.Cost, edgeID datastructure.GraphID) {
	g.AddVertex(from)
	g.AddVertex(to)

	idx := len(g.edges)
	g.edges = append(g.edges, CPEdge{Cost: cost, EdgeID: edgeID, From: from, To: to})
	g.outEdges[from] = append(g.outEdges[from], idx)

	g.vertices[from].OutDegree++
	g.vertices[to].InDegree++

	if !g.start.IsValid() {
		g.start = from
	}
}

func (g *Multigraph) VertexCount() int {
	return len(g.vertices)
}

func (g *Multigraph) EdgeCount() int {
	return len(g.edges)
}

// StartVertex source vertex of the first inserted edge, the canonical
// start of the Eulerian circuit. Invalid while the graph is empty.
func (g *Multigraph) StartVertex() datastructure.GraphID {
	return g.start
}

func (g *Multigraph) Vertex(id datastructure.GraphID) (CPVertex, bool) {
	v, ok := g.vertices[id]
	if !ok {
		return CPVertex{}, false
	}
	return *v, true
}

// UnbalancedVertices imbalance (out-degree - in-degree) of every vertex
// with a nonzero imbalance. An empty result means the graph is ideal,
// assuming the selected subgraph is weakly connected from the start
// vertex; connectivity itself is an upstream precondition that is not
// re-validated here.
func (g *Multigraph) UnbalancedVertices() map[datastructure.GraphID]int {
	unbalanced := make(map[datastructure.GraphID]int)
	for id, v := range g.vertices {
		imbalance := v.OutDegree - v.InDegree
		if imbalance != 0 {
			unbalanced[id] = imbalance
		}
	}
	return unbalanced
}
