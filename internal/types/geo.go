// README: Common value objects shared across modules.
package types

import "strconv"

// ID is an opaque identifier assigned by a persistence backend.
type ID string

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String renders p as "lat,lng", the form mapping APIs accept.
func (p Point) String() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}
