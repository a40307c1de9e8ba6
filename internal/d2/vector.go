package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// 2D vector, angle and intersection routines used by the wheel model.
// Degenerate inputs produce NaN instead of an error; callers treat NaN
// as a rejected configuration.

func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// IsNaN returns true if any component of a is NaN.
func IsNaN(a r2.Vec) bool { return math.IsNaN(a.X) || math.IsNaN(a.Y) }

// Length returns the euclidean length of a.
func Length(a r2.Vec) float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y)
}

// AngleBetween returns the angle between a and b in degrees.
// The result is NaN if either vector has zero length or if rounding
// pushes the cosine outside [-1, 1].
func AngleBetween(a, b r2.Vec) float64 {
	cos := (a.X*b.X + a.Y*b.Y) / (Length(a) * Length(b))
	return math.Acos(cos) * 180 / math.Pi
}

// LineCircleIntersection returns a point where the line through p1 and p2
// crosses the circle of radius r centered at the origin. Of the two roots
// the one selected by the sign of the chord's y delta is returned.
// Both coordinates are NaN when the line misses the circle.
func LineCircleIntersection(r float64, p1, p2 r2.Vec) r2.Vec {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	dr := math.Sqrt(dx*dx + dy*dy)
	d := p1.X*p2.Y - p2.X*p1.Y
	disc := math.Sqrt(r*r*dr*dr - d*d)
	return r2.Vec{
		X: (d*dy + sign(dy)*dx*disc) / (dr * dr),
		Y: (-d*dx + math.Abs(dy)*disc) / (dr * dr),
	}
}

// PointToSegmentDistance returns the distance from p to the segment a-b.
// The projection parameter is clamped to [0, 1].
func PointToSegmentDistance(a, b, p r2.Vec) float64 {
	ab := r2.Sub(b, a)
	t := r2.Dot(r2.Sub(p, a), ab) / r2.Dot(ab, ab)
	t = clamp(t, 0, 1)
	return Length(r2.Sub(r2.Add(a, r2.Scale(t, ab)), p))
}

// sign returns -1 for negative x and 1 otherwise, zero included.
func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// Clamp x between a and b, assume a <= b
func clamp(x, a, b float64) float64 {
	return math.Min(b, math.Max(x, a))
}
