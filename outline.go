package grind

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/soypat/grind/internal/d2"
	"github.com/soypat/grind/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ArcPoints samples sections+1 points of the circle arc about center running
// from startDeg to endDeg, both ends included.
func ArcPoints(center r2.Vec, radius, startDeg, endDeg float64, sections int) []r2.Vec {
	if sections < 1 {
		sections = 1
	}
	pts := make([]r2.Vec, 0, sections+1)
	for i := 0; i <= sections; i++ {
		s, c := math.Sincos(DtoR(ValueByStep(startDeg, endDeg, i, sections)))
		pts = append(pts, r2.Vec{X: radius*c + center.X, Y: radius*s + center.Y})
	}
	return pts
}

// Outline returns the closed cross-section outline of the wheel in the wheel
// frame: left hub center, the sampled R1 fillet, the sampled R2 fillet and
// the right hub center. Points on the fillets are in rim order.
func (s ShapeGeometry) Outline(w WheelParams, sections int) []r3.Vec {
	rimDeg := 270 + w.BevelDeg
	arc1 := ArcPoints(d3.XY(s.R1Center), w.R1, 180, rimDeg, sections)
	arc2 := ArcPoints(d3.XY(s.R2Center), w.R2, rimDeg, 360, sections)
	out := make([]r3.Vec, 0, len(arc1)+len(arc2)+2)
	out = append(out, s.LeftHubCenter)
	for _, p := range arc1 {
		out = append(out, d3.FromR2(p, 0))
	}
	for _, p := range arc2 {
		out = append(out, d3.FromR2(p, 0))
	}
	return append(out, s.RightHubCenter)
}

// PlacedOutline returns the outline of the wheel placed by pl projected onto
// the tool cross-section plane.
func (s ShapeGeometry) PlacedOutline(w WheelParams, pl Placement, sections int) []r2.Vec {
	outline := s.Outline(w, sections)
	pts := make([]r2.Vec, len(outline))
	for i, p := range outline {
		pts[i] = pl.ApplyXY(p)
	}
	return pts
}

// filletAxisDistance returns the distance from the tool axis to the nearest
// sampled vertex of the R1 fillet of the wheel placed by pl, measured in the
// tool cross-section plane. Side walls and the hub line are not considered.
func filletAxisDistance(s ShapeGeometry, w WheelParams, pl Placement, sections int) float64 {
	dist := math.Inf(1)
	for _, p := range ArcPoints(d3.XY(s.R1Center), w.R1, 180, 270+w.BevelDeg, sections) {
		dist = math.Min(dist, d2.Length(pl.ApplyXY(d3.FromR2(p, 0))))
	}
	return dist
}

// outlineBounds returns the bounding box of a placed outline.
func outlineBounds(outline []r2.Vec) r2.Box {
	vertices := make([]v2.Vec, len(outline))
	for i, p := range outline {
		vertices[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	poly, err := sdf.Polygon2D(vertices)
	if err != nil {
		nan := math.NaN()
		return r2.Box{Min: r2.Vec{X: nan, Y: nan}, Max: r2.Vec{X: nan, Y: nan}}
	}
	bb := poly.BoundingBox()
	return r2.Box{
		Min: r2.Vec{X: bb.Min.X, Y: bb.Min.Y},
		Max: r2.Vec{X: bb.Max.X, Y: bb.Max.Y},
	}
}
