package grind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCheck(t *testing.T) {
	for _, test := range []struct {
		name string
		w    WheelParams
		p    ProfileParams
		want Feasibility
	}{
		{
			name: "R2 inside tool",
			w:    refWheel,
			p:    refProfile,
			want: Feasibility{FilletsFit: true, LeftHubAbove: true, RightHubAbove: true,
				LeftHubClear: true, RightHubClear: true, R1Inside: true, R2Outside: false},
		},
		{
			name: "valid",
			w:    goodWheel,
			p:    goodProfile,
			want: Feasibility{FilletsFit: true, LeftHubAbove: true, RightHubAbove: true,
				LeftHubClear: true, RightHubClear: true, R1Inside: true, R2Outside: true},
		},
	} {
		s := Shape(test.w)
		got := Check(s, test.w, neutralPlacement(test.p), refTool.Diameter)
		assert.Equal(t, test.want, got, test.name)
		assert.Equal(t, test.want.OK(), IsValid(s, test.w, neutralPlacement(test.p), refTool.Diameter), test.name)
	}
}

func TestCheckFilletsExactlyFillWidth(t *testing.T) {
	// Fillet extents 6 + 4 equal the width, which is not strictly less.
	w := WheelParams{Diameter: 240, Width: 10, R1: 6, R2: 4, BevelDeg: 0}
	f := Check(Shape(w), w, neutralPlacement(goodProfile), refTool.Diameter)
	assert.False(t, f.FilletsFit)
	assert.False(t, f.OK())

	w.R2 = 3.9
	f = Check(Shape(w), w, neutralPlacement(goodProfile), refTool.Diameter)
	assert.True(t, f.FilletsFit)
}

func TestInsideToolBoundary(t *testing.T) {
	assert.True(t, insideTool(r3.Vec{X: 30, Y: 40, Z: 9}, 100), "boundary counts as inside")
	assert.False(t, insideTool(r3.Vec{Y: 50.0001}, 100))
}
