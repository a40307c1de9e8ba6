package grind

import (
	"math"
)

const (
	pi      = math.Pi
	epsilon = 1e-12

	// DefaultArcSections is the number of segments used to sample a fillet arc.
	DefaultArcSections = 36
)

// DtoR converts degrees to radians
func DtoR(degrees float64) float64 {
	return (pi / 180) * degrees
}

// RtoD converts radians to degrees
func RtoD(radians float64) float64 {
	return (180 / pi) * radians
}

// ValueByStep returns the step'th of steps+1 evenly spaced values in [min, max].
func ValueByStep(min, max float64, step, steps int) float64 {
	return min + (max-min)*float64(step)/float64(steps)
}

// GenerateAxisValues returns steps+1 evenly spaced values from min to max,
// both ends included. steps == 0 yields the single value min.
func GenerateAxisValues(min, max float64, steps int) []float64 {
	if steps <= 0 {
		return []float64{min}
	}
	values := make([]float64, steps+1)
	for i := 0; i < steps; i++ {
		values[i] = ValueByStep(min, max, i, steps)
	}
	values[steps] = max
	return values
}

// anyNaN reports whether any of the arguments is NaN.
func anyNaN(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
