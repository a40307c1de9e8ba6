package d2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestAngleBetween(t *testing.T) {
	const tol = 1e-12
	for _, test := range []struct {
		a, b r2.Vec
		want float64
	}{
		{a: r2.Vec{X: 1}, b: r2.Vec{Y: 2}, want: 90},
		{a: r2.Vec{X: 1}, b: r2.Vec{X: -3}, want: 180},
		{a: r2.Vec{X: 1, Y: 1}, b: r2.Vec{X: 5}, want: 45},
		{a: r2.Vec{X: 2}, b: r2.Vec{X: 0.5}, want: 0},
	} {
		got := AngleBetween(test.a, test.b)
		assert.InDelta(t, test.want, got, tol, "angle between %v and %v", test.a, test.b)
	}
}

func TestAngleBetweenZeroVector(t *testing.T) {
	assert.True(t, math.IsNaN(AngleBetween(r2.Vec{}, r2.Vec{X: 1})))
	assert.True(t, math.IsNaN(AngleBetween(r2.Vec{X: 1}, r2.Vec{})))
}

func TestLineCircleIntersection(t *testing.T) {
	const tol = 1e-12
	for _, test := range []struct {
		name   string
		r      float64
		p1, p2 r2.Vec
		want   r2.Vec
	}{
		// Horizontal line: dy is zero and takes the positive root.
		{name: "horizontal", r: 5, p1: r2.Vec{X: -10, Y: 3}, p2: r2.Vec{X: 10, Y: 3}, want: r2.Vec{X: 4, Y: 3}},
		{name: "vertical", r: 5, p1: r2.Vec{X: 3, Y: -10}, p2: r2.Vec{X: 3, Y: 10}, want: r2.Vec{X: 3, Y: 4}},
		{name: "through origin", r: 2, p1: r2.Vec{X: -1, Y: -1}, p2: r2.Vec{X: 1, Y: 1}, want: r2.Vec{X: math.Sqrt2, Y: math.Sqrt2}},
	} {
		got := LineCircleIntersection(test.r, test.p1, test.p2)
		if !EqualWithin(got, test.want, tol) {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
		assert.InDelta(t, test.r, Length(got), tol, test.name)
	}
}

func TestLineCircleIntersectionMiss(t *testing.T) {
	got := LineCircleIntersection(5, r2.Vec{X: -10, Y: 6}, r2.Vec{X: 10, Y: 6})
	assert.True(t, IsNaN(got), "line outside circle should give NaN, got %v", got)
	assert.True(t, math.IsNaN(got.X) && math.IsNaN(got.Y))
}

func TestPointToSegmentDistance(t *testing.T) {
	a, b := r2.Vec{}, r2.Vec{X: 10}
	for _, test := range []struct {
		p    r2.Vec
		want float64
	}{
		{p: r2.Vec{X: 5, Y: 3}, want: 3},
		{p: r2.Vec{X: -4, Y: 3}, want: 5},  // clamped to a
		{p: r2.Vec{X: 13, Y: -4}, want: 5}, // clamped to b
		{p: r2.Vec{X: 7}, want: 0},
	} {
		assert.InDelta(t, test.want, PointToSegmentDistance(a, b, test.p), 1e-12, "point %v", test.p)
	}
}

func TestSign(t *testing.T) {
	assert.Equal(t, 1.0, sign(0))
	assert.Equal(t, 1.0, sign(2))
	assert.Equal(t, -1.0, sign(-1e-300))
}
