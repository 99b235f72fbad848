package btdf

import "math"

const earthRadiusKm = 6371.0

// Average speed assumed when estimating arrival times for intercity buses.
const assumedSpeedKmh = 30.0

type Location struct {
	Latitude  float64 `json:"lat" bson:"lat" groups:"basic"`
	Longitude float64 `json:"lng" bson:"lng" groups:"basic"`
}

// Distance returns the great-circle distance between the two points in
// kilometres, using the haversine formula.
func (l *Location) Distance(other *Location) float64 {
	lat1 := l.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	deltaLat := (other.Latitude - l.Latitude) * math.Pi / 180
	deltaLon := (other.Longitude - l.Longitude) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// EstimateETA converts a remaining distance into whole minutes at the assumed
// average speed.
func EstimateETA(distanceKm float64) int {
	return int(math.Round(distanceKm / assumedSpeedKmh * 60))
}
