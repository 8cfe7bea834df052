package geo

import "math"

const earthRadiusKm = 6371.0

// kmPerDegree approximates the length of one degree of latitude.
const kmPerDegree = 111.0

type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Distance is the haversine distance between a and b in kilometres.
func Distance(a, b Point) float64 {
	dLat := deg2rad(b.Latitude - a.Latitude)
	dLon := deg2rad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Latitude))*math.Cos(deg2rad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// BoundingBox returns an approximate box containing every point within radiusKm of center.
func BoundingBox(center Point, radiusKm float64) Bounds {
	latDelta := radiusKm / kmPerDegree
	lonDelta := radiusKm / (kmPerDegree * math.Cos(deg2rad(center.Latitude)))

	return Bounds{
		North: center.Latitude + latDelta,
		South: center.Latitude - latDelta,
		East:  center.Longitude + lonDelta,
		West:  center.Longitude - lonDelta,
	}
}

func (b Bounds) Contains(p Point) bool {
	return p.Latitude >= b.South && p.Latitude <= b.North &&
		p.Longitude >= b.West && p.Longitude <= b.East
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180
}
