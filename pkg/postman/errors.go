package postman

import (
	"errors"
)

var (
	// ErrDisconnectedSubgraph edges remain unvisited after the Eulerian
	// walk exhausted every reachable vertex. The selected subgraph is not
	// weakly connected from the start vertex.
	ErrDisconnectedSubgraph = errors.New("selected subgraph is disconnected, circuit left unvisited road segments")

	// ErrUnsolvableMatching the surplus/deficit vertices cannot be fully
	// matched over the road network (unreachable pairs leave residual
	// imbalance).
	ErrUnsolvableMatching = errors.New("no feasible matching between unbalanced intersections")

	// ErrNoCandidateEdge a request location has no candidate edge that
	// matches the first/last edge of the circuit.
	ErrNoCandidateEdge = errors.New("could not find candidate edge for the location")
)
