package geo

import (
	"github.com/golang/geo/s2"
)

// ProjectPointToSegment snaps p onto the great-circle segment a-b and
// returns the projected coordinate.
func ProjectPointToSegment(a, b, p Location) Location {
	aS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon))
	bS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon))
	pS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon))
	projection := s2.Project(pS2, aS2, bS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return Location{Lat: projectLatLng.Lat.Degrees(), Lon: projectLatLng.Lng.Degrees()}
}

// PercentAlong fraction of the segment a-b covered when walking from a
// to the projection of p onto a-b. 0.0 at a, 1.0 at b.
func PercentAlong(a, b, p Location) float64 {
	proj := ProjectPointToSegment(a, b, p)
	segLen := HaversineDistance(a, b)
	if segLen == 0 {
		return 0
	}
	frac := HaversineDistance(a, proj) / segLen
	if frac > 1 {
		frac = 1
	}
	return frac
}
