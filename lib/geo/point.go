package geo

import (
	"fmt"
	"strconv"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TikZ formats p as a TikZ coordinate, e.g. (1.5, -2).
// Values are written with the shortest representation that round-trips.
func (p Point) TikZ() string {
	return fmt.Sprintf("(%s, %s)", formatCoord(p.X), formatCoord(p.Y))
}

func formatCoord(v float64) string {
	if v == 0 {
		// Avoids -0.
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (start Point) AddVector(v Vector) Point {
	return start.ToVector().Add(v).ToPoint()
}

// Creates a Vector pointing to point
func (endpoint Point) ToVector() Vector {
	return []float64{endpoint.X, endpoint.Y}
}
