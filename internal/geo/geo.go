// Package geo provides the static location directory and great-circle
// distance math used by the geo drift detector.
package geo

import "math"

const earthRadiusKm = 6371.0

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Directory maps known location names to coordinates. Transactions from
// locations outside the directory cannot be geo-checked and pass through.
type Directory map[string]Coordinates

// DefaultDirectory covers the locations the service currently screens.
func DefaultDirectory() Directory {
	return Directory{
		"Chennai":   {Lat: 13.0827, Lon: 80.2707},
		"Mumbai":    {Lat: 19.0760, Lon: 72.8777},
		"Delhi":     {Lat: 28.6139, Lon: 77.2090},
		"Bangalore": {Lat: 12.9716, Lon: 77.5946},
	}
}

// Lookup returns the coordinates for a location name.
func (d Directory) Lookup(name string) (Coordinates, bool) {
	c, ok := d[name]
	return c, ok
}

// Distance returns the haversine great-circle distance between two points
// in kilometers.
func Distance(a, b Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}
