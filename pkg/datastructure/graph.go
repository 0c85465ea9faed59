package datastructure

// GraphID identifies a node or a directed edge inside the tiled,
// hierarchical road network. It packs the tile id (24 bit), the
// hierarchy level (3 bit) and the index within the tile/level (37 bit)
// into one value. GraphID is only a lookup key, the fields are never
// interpreted outside pkg/kv.
type GraphID uint64

const (
	tileIDBits = 24
	levelBits  = 3
	indexBits  = 37

	tileIDMask = 1<<tileIDBits - 1
	levelMask  = 1<<levelBits - 1
	indexMask  = 1<<indexBits - 1
)

// InvalidGraphID marks a missing/exhausted id (all bits set).
const InvalidGraphID GraphID = 1<<64 - 1

func NewGraphID(tileID uint32, level uint8, index uint64) GraphID {
	return GraphID(uint64(tileID)&tileIDMask |
		(uint64(level)&levelMask)<<tileIDBits |
		(index&indexMask)<<(tileIDBits+levelBits))
}

func (g GraphID) TileID() uint32 {
	return uint32(g & tileIDMask)
}

func (g GraphID) Level() uint8 {
	return uint8((g >> tileIDBits) & levelMask)
}

func (g GraphID) Index() uint64 {
	return uint64(g>>(tileIDBits+levelBits)) & indexMask
}

func (g GraphID) IsValid() bool {
	return g != InvalidGraphID
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Cost pairs elapsed seconds with the weighted cost the costing model
// assigned. Both are summable; the solver never interprets them.
type Cost struct {
	Secs float64
	Cost float64
}

func NewCost(secs, cost float64) Cost {
	return Cost{Secs: secs, Cost: cost}
}

func (c Cost) Add(o Cost) Cost {
	return Cost{Secs: c.Secs + o.Secs, Cost: c.Cost + o.Cost}
}

func (c Cost) Scale(f float64) Cost {
	return Cost{Secs: c.Secs * f, Cost: c.Cost * f}
}

// DirectedEdge is the stored record of one directed road segment.
type DirectedEdge struct {
	ID        GraphID
	FromNode  GraphID
	ToNode    GraphID
	Forward   bool // false for the reverse half of a oneway pair
	Dist      float64
	MaxSpeed  float64 // km/h
	RoadClass string

	Shortcut   bool
	InnerEdges []GraphID // constituent edges, only set when Shortcut

	RestrictionIdx int
}

type NodeInfo struct {
	ID           GraphID
	Lat          float64
	Lon          float64
	TrafficLight bool
}

// CandidateEdge is one of the network edges a request location can snap
// to, with the fractional position of the location along that edge.
type CandidateEdge struct {
	EdgeID       GraphID
	PercentAlong float64
	Dist         float64 // meters from the location to the edge
}

// Location is a correlated request location: the raw coordinate plus
// the candidate edges the snapper found for it.
type Location struct {
	Lat       float64
	Lon       float64
	PathEdges []CandidateEdge
}

// PathStep is one entry of the materialized path.
type PathStep struct {
	Mode           string
	ElapsedCost    Cost
	EdgeID         GraphID
	RestrictionIdx int
	TransitionCost Cost
	FromShortcut   bool // recovered from a shortcut expansion
}

// SPResult is one cell of a travel-cost matrix query: the least-cost
// path between two nodes over the full network.
type SPResult struct {
	Source   GraphID
	Dest     GraphID
	EdgePath []DirectedEdge
	Dist     float64
	Eta      float64 // seconds, -1 when unreachable
}

func RoadTypeMaxSpeed(roadType string) float64 {
	switch roadType {
	case "motorway":
		return 95
	case "trunk":
		return 85
	case "primary":
		return 75
	case "secondary":
		return 65
	case "tertiary":
		return 50
	case "unclassified":
		return 50
	case "residential":
		return 30
	case "service":
		return 20
	case "motorway_link":
		return 90
	case "trunk_link":
		return 80
	case "primary_link":
		return 70
	case "secondary_link":
		return 60
	case "tertiary_link":
		return 50
	case "living_street":
		return 20
	default:
		return 40
	}
}
