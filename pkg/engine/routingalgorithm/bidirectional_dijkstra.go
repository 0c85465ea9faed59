package routingalgorithm

import (
	"math"

	"lintang/postmanx/pkg/costing"
	"lintang/postmanx/pkg/datastructure"
	"lintang/postmanx/pkg/util"
)

type cameFromPair struct {
	Edge   datastructure.DirectedEdge
	NodeID datastructure.GraphID
}

// GraphStore is the tiled-network view the route engine searches over.
type GraphStore interface {
	OutEdgeIDs(nodeID datastructure.GraphID) []datastructure.GraphID
	InEdgeIDs(nodeID datastructure.GraphID) []datastructure.GraphID
	DirectedEdge(edgeID datastructure.GraphID) (datastructure.DirectedEdge, error)
	NodeInfo(nodeID datastructure.GraphID) (datastructure.NodeInfo, error)
}

type RouteAlgorithm struct {
	store   GraphStore
	costing *costing.AutoCost
}

func NewRouteAlgorithm(store GraphStore, autoCost *costing.AutoCost) *RouteAlgorithm {
	return &RouteAlgorithm{store: store, costing: autoCost}
}

func (rt *RouteAlgorithm) edgeWeight(edge datastructure.DirectedEdge) float64 {
	// time-invariant cost, the matrix must not depend on request time
	return rt.costing.EdgeCost(edge, costing.TimeInfo{}, true).Cost
}

// ShortestPathBiDijkstra runs a bidirectional dijkstra between two
// intersections of the full network. Eta is in seconds, Dist in meters,
// both -1 when to is unreachable from from.
func (rt *RouteAlgorithm) ShortestPathBiDijkstra(from, to datastructure.GraphID) datastructure.SPResult {
	if from == to {
		return datastructure.SPResult{Source: from, Dest: to, EdgePath: []datastructure.DirectedEdge{}, Dist: 0, Eta: 0}
	}

	forwQ := NewMinHeap[datastructure.GraphID]()
	backQ := NewMinHeap[datastructure.GraphID]()

	df := make(map[datastructure.GraphID]float64)
	db := make(map[datastructure.GraphID]float64)
	df[from] = 0.0
	db[to] = 0.0

	forwQ.Insert(PriorityQueueNode[datastructure.GraphID]{Rank: 0, Item: from})
	backQ.Insert(PriorityQueueNode[datastructure.GraphID]{Rank: 0, Item: to})

	estimate := math.MaxFloat64
	bestCommonVertex := datastructure.InvalidGraphID

	cameFromf := make(map[datastructure.GraphID]cameFromPair)
	cameFromf[from] = cameFromPair{datastructure.DirectedEdge{}, datastructure.InvalidGraphID}

	cameFromb := make(map[datastructure.GraphID]cameFromPair)
	cameFromb[to] = cameFromPair{datastructure.DirectedEdge{}, datastructure.InvalidGraphID}

	frontFinished := false
	backFinished := false

	frontier := forwQ
	otherFrontier := backQ
	turnF := true
	for {
		if frontier.Size() == 0 {
			frontFinished = true
		}
		if otherFrontier.Size() == 0 {
			backFinished = true
		}

		if frontFinished && backFinished {
			break
		}

		smallestFront, err := frontier.GetMin()
		if err != nil || smallestFront.Rank >= estimate {
			// the smallest open node already costs more than the best
			// candidate path, this direction cannot improve it
			if turnF {
				frontFinished = true
			} else {
				backFinished = true
			}
		} else {
			node, _ := frontier.ExtractMin()
			if node.Rank >= estimate {
				break
			}
			if turnF {
				for _, arc := range rt.store.OutEdgeIDs(node.Item) {
					edge, err := rt.store.DirectedEdge(arc)
					if err != nil || !rt.costing.Allowed(edge) {
						continue
					}
					toNode := edge.ToNode
					newCost := rt.edgeWeight(edge) + df[node.Item]
					old, ok := df[toNode]
					if !ok {
						df[toNode] = newCost
						frontier.Insert(PriorityQueueNode[datastructure.GraphID]{Rank: newCost, Item: toNode})
						cameFromf[toNode] = cameFromPair{edge, node.Item}
					} else if newCost < old {
						df[toNode] = newCost
						frontier.DecreaseKey(PriorityQueueNode[datastructure.GraphID]{Rank: newCost, Item: toNode})
						cameFromf[toNode] = cameFromPair{edge, node.Item}
					}

					if dbCost, ok := db[toNode]; ok {
						pathDistance := df[toNode] + dbCost
						if pathDistance < estimate {
							estimate = pathDistance
							bestCommonVertex = toNode
						}
					}
				}
			} else {
				for _, arc := range rt.store.InEdgeIDs(node.Item) {
					edge, err := rt.store.DirectedEdge(arc)
					if err != nil || !rt.costing.Allowed(edge) {
						continue
					}
					// backward search settles the edge's tail
					toNode := edge.FromNode
					newCost := rt.edgeWeight(edge) + db[node.Item]
					old, ok := db[toNode]
					if !ok {
						db[toNode] = newCost
						frontier.Insert(PriorityQueueNode[datastructure.GraphID]{Rank: newCost, Item: toNode})
						cameFromb[toNode] = cameFromPair{edge, node.Item}
					} else if newCost < old {
						db[toNode] = newCost
						frontier.DecreaseKey(PriorityQueueNode[datastructure.GraphID]{Rank: newCost, Item: toNode})
						cameFromb[toNode] = cameFromPair{edge, node.Item}
					}

					if dfCost, ok := df[toNode]; ok {
						pathDistance := db[toNode] + dfCost
						if pathDistance < estimate {
							estimate = pathDistance
							bestCommonVertex = toNode
						}
					}
				}
			}
		}

		otherFinished := false
		if turnF {
			if backFinished {
				otherFinished = true
			}
		} else {
			if frontFinished {
				otherFinished = true
			}
		}
		if !otherFinished {
			frontier, otherFrontier = otherFrontier, frontier
			turnF = !turnF
		}
	}

	if estimate == math.MaxFloat64 {
		return datastructure.SPResult{Source: from, Dest: to, EdgePath: []datastructure.DirectedEdge{}, Dist: -1, Eta: -1}
	}
	return rt.createPath(bestCommonVertex, from, to, cameFromf, cameFromb)
}

func (rt *RouteAlgorithm) createPath(commonVertex, from, to datastructure.GraphID,
	cameFromf, cameFromb map[datastructure.GraphID]cameFromPair) datastructure.SPResult {

	fEdgePath := []datastructure.DirectedEdge{}
	eta := 0.0
	dist := 0.0

	v := commonVertex
	for v.IsValid() {
		pair, ok := cameFromf[v]
		if !ok {
			break
		}
		if pair.NodeID.IsValid() {
			eta += rt.edgeWeight(pair.Edge)
			dist += pair.Edge.Dist
			if node, err := rt.store.NodeInfo(pair.Edge.FromNode); err == nil {
				eta += rt.costing.TransitionCost(node).Secs
			}
			fEdgePath = append(fEdgePath, pair.Edge)
		}
		v = pair.NodeID
	}

	bEdgePath := []datastructure.DirectedEdge{}
	v = commonVertex
	for v.IsValid() {
		pair, ok := cameFromb[v]
		if !ok {
			break
		}
		if pair.NodeID.IsValid() {
			eta += rt.edgeWeight(pair.Edge)
			dist += pair.Edge.Dist
			if node, err := rt.store.NodeInfo(pair.Edge.ToNode); err == nil {
				eta += rt.costing.TransitionCost(node).Secs
			}
			bEdgePath = append(bEdgePath, pair.Edge)
		}
		v = pair.NodeID
	}

	util.ReverseG(fEdgePath)

	edgePath := make([]datastructure.DirectedEdge, 0, len(fEdgePath)+len(bEdgePath))
	edgePath = append(edgePath, fEdgePath...)
	edgePath = append(edgePath, bEdgePath...)

	return datastructure.SPResult{Source: from, Dest: to, EdgePath: edgePath, Dist: dist, Eta: eta}
}
