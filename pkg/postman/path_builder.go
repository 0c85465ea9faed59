package postman

import (
	"log"

	"lintang/postmanx/pkg/costing"
	"lintang/postmanx/pkg/datastructure"
)

// PathBuilder materializes a circuit (ordered external edge ids) into a
// cost-accurate path over the full network.
type PathBuilder struct {
	reader  costing.GraphReader
	costing *costing.AutoCost
}

func NewPathBuilder(reader costing.GraphReader, autoCost *costing.AutoCost) *PathBuilder {
	return &PathBuilder{reader: reader, costing: autoCost}
}

func findPercentAlong(loc datastructure.Location, edgeID datastructure.GraphID) (float64, error) {
	for _, e := range loc.PathEdges {
		if e.EdgeID == edgeID {
			return e.PercentAlong, nil
		}
	}
	return 0, ErrNoCandidateEdge
}

// BuildPath walks the circuit, expands shortcut edges into their
// recovered inner edges, and recosts the whole sequence with the true
// origin/destination fractions applied to the first and last edge.
//
// Correlation failures (origin or destination not snapped to the
// first/last circuit edge) are fatal. A recost failure partway is not:
// the error only affects cost accuracy, so it is logged and the
// accumulated best-effort path is returned.
func (pb *PathBuilder) BuildPath(circuit []datastructure.GraphID, origin, dest datastructure.Location,
	ti costing.TimeInfo, invariant bool) ([]datastructure.PathStep, error) {

	if len(circuit) == 0 {
		return nil, ErrNoCandidateEdge
	}

	// expand shortcuts; inner edges past the first are "recovered"
	expanded := make([]datastructure.GraphID, 0, len(circuit))
	recovered := make(map[datastructure.GraphID]bool)
	for _, id := range circuit {
		edge, err := pb.reader.DirectedEdge(id)
		if err != nil {
			return nil, err
		}
		if edge.Shortcut {
			for i, inner := range edge.InnerEdges {
				expanded = append(expanded, inner)
				if i > 0 {
					recovered[inner] = true
				}
			}
		} else {
			expanded = append(expanded, id)
		}
	}

	if len(expanded) == 0 {
		return nil, ErrNoCandidateEdge
	}

	// correlate against the first/last traversed real edge, shortcuts
	// never appear in snap candidates
	sourcePct, err := findPercentAlong(origin, expanded[0])
	if err != nil {
		return nil, err
	}
	targetPct, err := findPercentAlong(dest, expanded[len(expanded)-1])
	if err != nil {
		return nil, err
	}

	itr := 0
	edgeCb := func() datastructure.GraphID {
		if itr == len(expanded) {
			return datastructure.InvalidGraphID
		}
		id := expanded[itr]
		itr++
		return id
	}

	path := make([]datastructure.PathStep, 0, len(expanded))
	labelCb := func(label costing.EdgeLabel) {
		path = append(path, datastructure.PathStep{
			Mode:           label.Mode,
			ElapsedCost:    label.Cost,
			EdgeID:         label.EdgeID,
			RestrictionIdx: label.RestrictionIdx,
			TransitionCost: label.TransitionCost,
			FromShortcut:   recovered[label.EdgeID],
		})
	}

	if err := costing.RecostForward(pb.reader, pb.costing, edgeCb, labelCb, sourcePct, targetPct, ti, invariant); err != nil {
		log.Printf("failed to recost final path: %v", err)
	}
	return path, nil
}
