package grind

import (
	"math"
	"testing"

	"github.com/soypat/grind/internal/d2"
	"github.com/soypat/grind/internal/d3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestArcPoints(t *testing.T) {
	const tol = 1e-12
	c := r2.Vec{X: 1, Y: -2}
	pts := ArcPoints(c, 3, 0, 90, 4)
	require.Len(t, pts, 5)
	assert.True(t, d2.EqualWithin(pts[0], r2.Vec{X: 4, Y: -2}, tol), "first %v", pts[0])
	assert.True(t, d2.EqualWithin(pts[4], r2.Vec{X: 1, Y: 1}, tol), "last %v", pts[4])
	for _, p := range pts {
		assert.InDelta(t, 3, d2.Length(r2.Sub(p, c)), tol)
	}
	assert.Len(t, ArcPoints(c, 1, 0, 10, 0), 2, "sections raised to one")
}

func TestOutlineFollowsShape(t *testing.T) {
	const tol = 1e-9
	for _, w := range []WheelParams{refWheel, goodWheel} {
		s := Shape(w)
		out := s.Outline(w, DefaultArcSections)
		require.Len(t, out, 2*(DefaultArcSections+1)+2)
		n := DefaultArcSections + 1
		for _, test := range []struct {
			idx  int
			want r2.Vec
		}{
			{0, d3.XY(s.LeftHubCenter)},
			{1, d3.XY(s.R1Start)},
			{n, d3.XY(s.R1End)},
			{n + 1, d3.XY(s.R2Start)},
			{2 * n, d3.XY(s.R2End)},
			{2*n + 1, d3.XY(s.RightHubCenter)},
		} {
			got := d3.XY(out[test.idx])
			assert.True(t, d2.EqualWithin(got, test.want, tol), "point %d: got %v want %v", test.idx, got, test.want)
		}
	}
}

func TestFilletAxisDistance(t *testing.T) {
	pl := neutralPlacement(goodProfile)
	s := Shape(goodWheel)
	got := filletAxisDistance(s, goodWheel, pl, DefaultArcSections)
	assert.InDelta(t, 47.026705772/2, got, 1e-6)

	// Sampled fillets can only come closer to the axis than the rim chord.
	chord := d2.PointToSegmentDistance(pl.ApplyXY(s.R1End), pl.ApplyXY(s.R2Start), r2.Vec{})
	assert.LessOrEqual(t, got, chord+1e-12)
	assert.False(t, math.IsNaN(got))
}

func TestFilletAxisDistanceIgnoresWalls(t *testing.T) {
	// The wheel straddles the tool axis: its left wall passes about 3.5 from
	// the axis but only the R1 fillet counts.
	w := WheelParams{Diameter: 240, Width: 15, R1: 2, R2: 1, BevelDeg: 15}
	p := ProfileParams{OffsetRadius: 100, OffsetAxis: 10, RotationDeg: 60}
	s := Shape(w)
	pl := neutralPlacement(p)
	got := filletAxisDistance(s, w, pl, DefaultArcSections)
	assert.InDelta(t, 35.486292852/2, got, 1e-6)
	assert.InDelta(t, d2.Length(pl.ApplyXY(s.R1Start)), got, 1e-9, "nearest vertex is R1Start")

	chord, ok := Measure(w, p, refTool, EvaluateOptions{})
	require.True(t, ok)
	assert.InDelta(t, 40.284640358, chord.InternalDiameter, 1e-6)
	outline, ok := Measure(w, p, refTool, EvaluateOptions{Diameter: DiameterOutline})
	require.True(t, ok)
	assert.InDelta(t, 35.486292852, outline.InternalDiameter, 1e-6)
	assert.Equal(t, chord.FrontAngle, outline.FrontAngle)
	assert.Equal(t, chord.StepAngle, outline.StepAngle)
}

func TestOutlineBounds(t *testing.T) {
	b := outlineBounds([]r2.Vec{{X: 1, Y: -2}, {X: -3, Y: 4}, {X: 0.5, Y: 0}})
	assert.Equal(t, r2.Box{Min: r2.Vec{X: -3, Y: -2}, Max: r2.Vec{X: 1, Y: 4}}, b)

	b = outlineBounds(nil)
	assert.True(t, math.IsNaN(b.Min.X) && math.IsNaN(b.Max.Y), "degenerate outline gives NaN box %v", b)
}
