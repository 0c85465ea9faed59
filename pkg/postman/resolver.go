package postman

import (
	"math"

	"lintang/postmanx/pkg/concurrent"
	"lintang/postmanx/pkg/datastructure"

	"golang.org/x/exp/slices"
)

// RouteEngine computes least-cost paths over the full road network,
// not just the selected subgraph.
type RouteEngine interface {
	CreateDistMatrix(pairs []concurrent.SPPair) map[datastructure.GraphID]map[datastructure.GraphID]datastructure.SPResult
}

// Assignment solves a minimum-cost assignment over a cost matrix,
// returning the total cost and the row -> column matching.
type Assignment interface {
	Solve(matrix [][]float64) (float64, map[int]int, error)
}

// ImbalanceResolver balances a multigraph whose vertices have nonzero
// imbalance by duplicating selected-network edges along least-cost
// paths between unbalanced intersections.
type ImbalanceResolver struct {
	engine     RouteEngine
	assignment Assignment
}

func NewImbalanceResolver(engine RouteEngine, assignment Assignment) *ImbalanceResolver {
	return &ImbalanceResolver{engine: engine, assignment: assignment}
}

// Balance augments g until every vertex has zero imbalance.
//
// A deficit vertex (out < in) needs extra outgoing traversals and a
// surplus vertex (out > in) extra incoming ones, so duplicated paths
// run deficit -> surplus: each duplicated path raises the deficit's
// out-degree and the surplus' in-degree by one, resolving one unit on
// each side. A vertex with |imbalance| = k occupies k rows/columns of
// the assignment matrix. Unreachable pairs are priced out of the
// matching; if one still gets matched, or imbalance remains after
// augmentation, the topology is unsolvable.
func (r *ImbalanceResolver) Balance(g *Multigraph) error {
	unbalanced := g.UnbalancedVertices()
	if len(unbalanced) == 0 {
		return nil
	}

	vertices := make([]datastructure.GraphID, 0, len(unbalanced))
	for id := range unbalanced {
		vertices = append(vertices, id)
	}
	// deterministic row/column order across runs
	slices.Sort(vertices)

	deficits := make([]datastructure.GraphID, 0)
	surpluses := make([]datastructure.GraphID, 0)
	for _, id := range vertices {
		imbalance := unbalanced[id]
		if imbalance < 0 {
			for i := 0; i < -imbalance; i++ {
				deficits = append(deficits, id)
			}
		} else {
			for i := 0; i < imbalance; i++ {
				surpluses = append(surpluses, id)
			}
		}
	}
	if len(deficits) == 0 || len(surpluses) == 0 {
		return ErrUnsolvableMatching
	}

	pairs := make([]concurrent.SPPair, 0, len(deficits)*len(surpluses))
	seen := make(map[concurrent.SPPair]bool)
	for _, d := range deficits {
		for _, s := range surpluses {
			p := concurrent.SPPair{Source: d, Target: s}
			if seen[p] {
				continue
			}
			seen[p] = true
			pairs = append(pairs, p)
		}
	}

	spMap := r.engine.CreateDistMatrix(pairs)

	matrix := make([][]float64, len(deficits))
	for i, d := range deficits {
		matrix[i] = make([]float64, len(surpluses))
		for j, s := range surpluses {
			res := spMap[d][s]
			if res.Eta < 0 {
				// unreachable pair, excluded from the candidate set
				matrix[i][j] = math.MaxFloat64
			} else {
				matrix[i][j] = res.Eta
			}
		}
	}

	_, match, err := r.assignment.Solve(matrix)
	if err != nil {
		return ErrUnsolvableMatching
	}

	for i, j := range match {
		res := spMap[deficits[i]][surpluses[j]]
		if res.Eta < 0 {
			return ErrUnsolvableMatching
		}
		for _, e := range res.EdgePath {
			g.AddEdge(e.FromNode, e.ToNode, datastructure.NewCost(1, 1), e.ID)
		}
	}

	if len(g.UnbalancedVertices()) != 0 {
		return ErrUnsolvableMatching
	}
	return nil
}
