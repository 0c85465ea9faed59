package selection

import (
	"sort"

	"lintang/postmanx/pkg/datastructure"
	"lintang/postmanx/pkg/geo"
	"lintang/postmanx/pkg/kv"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/s2"
)

var tol = 0.0001

// SelectedEdge is one traversable edge of the requested coverage area.
type SelectedEdge struct {
	ID      datastructure.GraphID
	From    datastructure.GraphID
	To      datastructure.GraphID
	FromLoc geo.Location
	ToLoc   geo.Location
	Dist    float64
}

type edgeRect struct {
	Location rtreego.Point
	Edge     SelectedEdge
}

func (e *edgeRect) Bounds() rtreego.Rect {
	// rectangle centered at the edge midpoint with side lengths 2 * tol
	return e.Location.ToRect(tol)
}

// Selector answers "which directed edges lie inside this polygon" with
// an rtree over edge midpoints.
type Selector struct {
	rtree *rtreego.Rtree
}

// TileIterator walks every tile of the network store.
type TileIterator interface {
	IterTiles(fn func(kv.Tile) error) error
}

// NewSelector indexes every traversable edge of the tile store. Reverse
// halves of oneway streets and synthesized shortcut edges are excluded,
// they never belong to a coverage subgraph.
func NewSelector(db TileIterator) (*Selector, error) {
	rt := rtreego.NewTree(2, 25, 50) // 2 dimensions, 25 min entries, 50 max entries

	err := db.IterTiles(func(t kv.Tile) error {
		for _, rec := range t.Edges {
			if !rec.Forward || rec.Shortcut {
				continue
			}
			mid := geo.NewLocation((rec.FromLat+rec.ToLat)/2, (rec.FromLon+rec.ToLon)/2)
			rt.Insert(&edgeRect{
				Location: rtreego.Point{mid.Lat, mid.Lon},
				Edge: SelectedEdge{
					ID:      datastructure.GraphID(rec.ID),
					From:    datastructure.GraphID(rec.FromNode),
					To:      datastructure.GraphID(rec.ToNode),
					FromLoc: geo.NewLocation(rec.FromLat, rec.FromLon),
					ToLoc:   geo.NewLocation(rec.ToLat, rec.ToLon),
					Dist:    rec.Dist,
				},
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Selector{rtree: rt}, nil
}

func buildLoop(polygon []geo.Location) *s2.Loop {
	pts := make([]s2.Point, 0, len(polygon))
	for _, p := range polygon {
		pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon)))
	}
	loop := s2.LoopFromPoints(pts)
	// orient the loop so it encloses the smaller area regardless of the
	// winding the client sent
	loop.Normalize()
	return loop
}

func contains(loop *s2.Loop, p geo.Location) bool {
	return loop.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon)))
}

// SelectEdges returns all indexed edges whose midpoint lies inside
// polygon and outside every avoid polygon, sorted by edge id so the
// resulting subgraph is deterministic.
func (s *Selector) SelectEdges(polygon []geo.Location, avoidPolygons [][]geo.Location) []SelectedEdge {
	if len(polygon) < 3 {
		return nil
	}

	minLat, minLon := polygon[0].Lat, polygon[0].Lon
	maxLat, maxLon := polygon[0].Lat, polygon[0].Lon
	for _, p := range polygon[1:] {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}
	rect, err := rtreego.NewRectFromPoints(
		rtreego.Point{minLat - tol, minLon - tol},
		rtreego.Point{maxLat + tol, maxLon + tol},
	)
	if err != nil {
		return nil
	}

	loop := buildLoop(polygon)
	avoidLoops := make([]*s2.Loop, 0, len(avoidPolygons))
	for _, ap := range avoidPolygons {
		if len(ap) >= 3 {
			avoidLoops = append(avoidLoops, buildLoop(ap))
		}
	}

	results := s.rtree.SearchIntersect(rect)
	selected := make([]SelectedEdge, 0, len(results))
	for _, res := range results {
		er := res.(*edgeRect)
		mid := geo.NewLocation(er.Location[0], er.Location[1])
		if !contains(loop, mid) {
			continue
		}
		avoided := false
		for _, al := range avoidLoops {
			if contains(al, mid) {
				avoided = true
				break
			}
		}
		if avoided {
			continue
		}
		selected = append(selected, er.Edge)
	}

	sort.Slice(selected, func(i, j int) bool { return selected[i].ID < selected[j].ID })
	return selected
}
