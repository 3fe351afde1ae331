package geo

type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p Point) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// Centroid returns the arithmetic mean of the points. ok is false when there
// is nothing to average.
func Centroid(points []Point) (center Point, ok bool) {
	if len(points) == 0 {
		return Point{}, false
	}

	var lat, lng float64
	for _, p := range points {
		lat += p.Latitude
		lng += p.Longitude
	}

	n := float64(len(points))
	return Point{Latitude: lat / n, Longitude: lng / n}, true
}
