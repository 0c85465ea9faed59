package geo

import (
	"math"
)

const earthRadiusKm = 6371.0

type Location struct {
	Lat float64
	Lon float64
}

func NewLocation(lat, lon float64) Location {
	return Location{Lat: lat, Lon: lon}
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

// HaversineDistance distance between two coordinates in km.
// https://www.movable-type.co.uk/scripts/latlong.html
func HaversineDistance(p1, p2 Location) float64 {
	lat1 := degToRad(p1.Lat)
	lat2 := degToRad(p2.Lat)
	dLat := degToRad(p2.Lat - p1.Lat)
	dLon := degToRad(p2.Lon - p1.Lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
