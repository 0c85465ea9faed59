package costing

import (
	"fmt"

	"lintang/postmanx/pkg/datastructure"
)

// GraphReader is the read-only view of the tiled network store used
// while recosting a path.
type GraphReader interface {
	DirectedEdge(id datastructure.GraphID) (datastructure.DirectedEdge, error)
	NodeInfo(id datastructure.GraphID) (datastructure.NodeInfo, error)
}

// EdgeCallback produces the next edge id of the path being recosted,
// InvalidGraphID once the path is exhausted.
type EdgeCallback func() datastructure.GraphID

// EdgeLabel is emitted for every recosted edge, carrying the cumulative
// elapsed cost up to and including that edge.
type EdgeLabel struct {
	Mode           string
	EdgeID         datastructure.GraphID
	Cost           datastructure.Cost
	TransitionCost datastructure.Cost
	RestrictionIdx int
}

// LabelCallback consumes one EdgeLabel per recosted edge.
type LabelCallback func(label EdgeLabel)

// RecostForward walks the edge sequence produced by edgeCb and re-evaluates
// each traversal against the full network's costing rules, emitting one
// label per edge through labelCb. sourcePct/targetPct are the fractional
// positions of the true origin along the first edge and the true
// destination along the last edge; only the remaining/leading fraction
// of those edges is charged.
func RecostForward(reader GraphReader, costing *AutoCost, edgeCb EdgeCallback, labelCb LabelCallback,
	sourcePct, targetPct float64, ti TimeInfo, invariant bool) error {

	curr := edgeCb()
	if !curr.IsValid() {
		return fmt.Errorf("empty path, nothing to recost")
	}

	elapsed := datastructure.Cost{}
	first := true
	for curr.IsValid() {
		next := edgeCb()

		edge, err := reader.DirectedEdge(curr)
		if err != nil {
			return fmt.Errorf("lookup edge %d: %w", uint64(curr), err)
		}
		if !costing.Allowed(edge) {
			return fmt.Errorf("edge %d not allowed by costing profile", uint64(curr))
		}

		transition := datastructure.Cost{}
		if !first {
			node, err := reader.NodeInfo(edge.FromNode)
			if err != nil {
				return fmt.Errorf("lookup node %d: %w", uint64(edge.FromNode), err)
			}
			transition = costing.TransitionCost(node)
		}

		cost := costing.EdgeCost(edge, ti, invariant)
		if first {
			cost = cost.Scale(1 - sourcePct)
			first = false
		}
		if !next.IsValid() {
			cost = cost.Scale(targetPct)
		}

		elapsed = elapsed.Add(transition).Add(cost)
		labelCb(EdgeLabel{
			Mode:           "auto",
			EdgeID:         curr,
			Cost:           elapsed,
			TransitionCost: transition,
			RestrictionIdx: edge.RestrictionIdx,
		})

		if !invariant && ti.Valid {
			ti.LocalTime = ti.LocalTime.Add(secsToDuration(cost.Secs + transition.Secs))
		}
		curr = next
	}
	return nil
}
