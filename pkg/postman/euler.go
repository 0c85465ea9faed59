package postman

import (
	"lintang/postmanx/pkg/datastructure"
	"lintang/postmanx/pkg/util"
)

type walkFrame struct {
	vertex  datastructure.GraphID
	viaEdge int // index of the edge used to reach vertex, -1 for the root
}

// EulerCircuit builds a closed walk from start that traverses every
// edge of the multigraph exactly once (Hierholzer). The returned slice
// holds the external edge ids in traversal order.
//
// The multigraph must be balanced; callers check UnbalancedVertices
// first. When edges remain unvisited after the walk, the subgraph is
// disconnected and ErrDisconnectedSubgraph is returned.
func (g *Multigraph) EulerCircuit(start datastructure.GraphID) ([]datastructure.GraphID, error) {
	if len(g.edges) == 0 {
		return []datastructure.GraphID{}, nil
	}
	if _, ok := g.vertices[start]; !ok {
		return nil, ErrDisconnectedSubgraph
	}

	// cursor[v] = how many outgoing edges of v are already consumed.
	// Sub-tours found at vertices with unused edges are spliced into the
	// main tour implicitly: an edge index is emitted only after the walk
	// below it is exhausted, so reversing the emit order yields the full
	// circuit.
	cursor := make(map[datastructure.GraphID]int, len(g.vertices))
	circuit := make([]int, 0, len(g.edges))

	stack := make([]walkFrame, 0, len(g.edges)+1)
	stack = append(stack, walkFrame{vertex: start, viaEdge: -1})

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		out := g.outEdges[top.vertex]
		if cursor[top.vertex] < len(out) {
			edgeIdx := out[cursor[top.vertex]]
			cursor[top.vertex]++
			stack = append(stack, walkFrame{vertex: g.edges[edgeIdx].To, viaEdge: edgeIdx})
		} else {
			stack = stack[:len(stack)-1]
			if top.viaEdge != -1 {
				circuit = append(circuit, top.viaEdge)
			}
		}
	}

	if len(circuit) != len(g.edges) {
		return nil, ErrDisconnectedSubgraph
	}

	util.ReverseG(circuit)

	edgeIDs := make([]datastructure.GraphID, len(circuit))
	for i, idx := range circuit {
		edgeIDs[i] = g.edges[idx].EdgeID
	}
	return edgeIDs, nil
}
