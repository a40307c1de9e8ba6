package grind

import (
	"math"
	"testing"

	"github.com/soypat/grind/internal/d3"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewPlacement(t *testing.T) {
	const tol = 1e-12
	pl := NewPlacement(120, 5, 60, 2)
	for _, test := range []struct {
		in, want r3.Vec
	}{
		{in: r3.Vec{}, want: r3.Vec{X: 5, Y: 120, Z: 2}},
		{in: r3.Vec{X: 1}, want: r3.Vec{X: 5 + math.Cos(DtoR(30)), Y: 120, Z: 2 + math.Sin(DtoR(30))}},
		{in: r3.Vec{Y: -3}, want: r3.Vec{X: 5, Y: 117, Z: 2}},
	} {
		got := pl.Apply(test.in)
		if !d3.EqualWithin(got, test.want, tol) {
			t.Errorf("Apply(%v): got %v, want %v", test.in, got, test.want)
		}
	}
	// A 90 degree tilt leaves the wheel axes aligned with the tool.
	assert.True(t, d3.EqualWithin(NewPlacement(0, 0, 90, 0).Apply(r3.Vec{X: 1, Y: 2}), r3.Vec{X: 1, Y: 2}, tol))
}

func TestPlacementZeroValue(t *testing.T) {
	var pl Placement
	v := r3.Vec{X: 1, Y: 2, Z: 3}
	assert.Equal(t, v, pl.Apply(v))
	els := pl.Elements()
	assert.Len(t, els, 16)
	assert.Equal(t, 1.0, els[0])
	assert.Equal(t, 1.0, els[15])
}

func TestSweptPlacementRotatesAboutToolAxis(t *testing.T) {
	const tol = 1e-12
	p := ProfileParams{OffsetRadius: 100, RotationDeg: 90}
	got := sweptPlacement(p, 0, math.Pi/2).Apply(r3.Vec{})
	if !d3.EqualWithin(got, r3.Vec{X: -100}, tol) {
		t.Errorf("got %v, want (-100,0,0)", got)
	}
	got = sweptPlacement(p, 7, 0).Apply(r3.Vec{})
	assert.InDelta(t, 7, got.Z, tol)
}

func TestOffsetRotationRoundTrip(t *testing.T) {
	for _, test := range []struct {
		rotation, diameter, angle float64
	}{
		{rotation: 0.25, diameter: 100, angle: 60},
		{rotation: -1.3, diameter: 12, angle: 30},
		{rotation: 0, diameter: 50, angle: 45},
	} {
		off := OffsetFromRotation(test.rotation, test.diameter, test.angle)
		back := RotationFromOffset(off, test.diameter, test.angle)
		assert.InDelta(t, test.rotation, back, 1e-12)
	}
	// One radian at 45 degrees travels one tool radius.
	assert.InDelta(t, 25.0, OffsetFromRotation(1, 50, 45), 1e-12)
}
