package selection

import (
	"sort"

	"lintang/postmanx/pkg/datastructure"
	"lintang/postmanx/pkg/geo"
	"lintang/postmanx/pkg/kv"
)

const maxSnapCandidates = 5

// Snapper correlates a raw request coordinate onto the road network
// through the h3-indexed candidate cells.
type Snapper struct {
	db *kv.KVDB
}

func NewSnapper(db *kv.KVDB) *Snapper {
	return &Snapper{db: db}
}

// CorrelateLocation snaps lat,lon onto nearby edges and returns the
// location with its candidate edges, nearest first. Each candidate
// carries the fraction of the edge already covered at the snap point.
func (s *Snapper) CorrelateLocation(lat, lon float64) (datastructure.Location, error) {
	records, err := s.db.GetNearbyCandidates(lat, lon)
	if err != nil {
		return datastructure.Location{}, err
	}

	point := geo.NewLocation(lat, lon)
	cands := make([]datastructure.CandidateEdge, 0, len(records))
	for _, rec := range records {
		from := geo.NewLocation(rec.FromLat, rec.FromLon)
		to := geo.NewLocation(rec.ToLat, rec.ToLon)
		proj := geo.ProjectPointToSegment(from, to, point)
		cands = append(cands, datastructure.CandidateEdge{
			EdgeID:       datastructure.GraphID(rec.EdgeID),
			PercentAlong: geo.PercentAlong(from, to, point),
			Dist:         geo.HaversineDistance(point, proj) * 1000, // meters
		})
	}

	sort.Slice(cands, func(i, j int) bool { return cands[i].Dist < cands[j].Dist })
	if len(cands) > maxSnapCandidates {
		cands = cands[:maxSnapCandidates]
	}

	return datastructure.Location{Lat: lat, Lon: lon, PathEdges: cands}, nil
}
