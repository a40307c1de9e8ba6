package grind

import (
	"math"

	"github.com/soypat/grind/internal/d2"
)

// SweepLimit is one extreme of wheel travel along the tool axis.
// Offset and RotationRad describe the same position; they are related
// through OffsetFromRotation and RotationFromOffset.
type SweepLimit struct {
	Offset      float64
	RotationRad float64
}

// SweepRange holds the travel extremes through which the wheel stays in contact.
type SweepRange struct {
	Min SweepLimit
	Max SweepLimit
}

// MinRotationDeg and MaxRotationDeg return the rotation limits in degrees.
func (s SweepRange) MinRotationDeg() float64 { return RtoD(s.Min.RotationRad) }
func (s SweepRange) MaxRotationDeg() float64 { return RtoD(s.Max.RotationRad) }

// Sweep computes the travel range of the wheel along the tool axis.
//
// The maximum comes from the wheel width and the flute angle alone. The
// minimum is found by extending the rim line (R1End to R2Start, neutral
// placement) to the tool circle and converting the axial distance of that
// crossing from the wheel offset into a travel offset. The two limits are
// not symmetric. A rim line that misses the tool yields NaN minimums.
func Sweep(s ShapeGeometry, w WheelParams, p ProfileParams, t ToolParams) SweepRange {
	var r SweepRange
	r.Max.Offset = math.Sin(DtoR(90-t.HalfAngleDeg)) * w.Width / 2
	r.Max.RotationRad = RotationFromOffset(r.Max.Offset, t.Diameter, t.HalfAngleDeg)

	pl := neutralPlacement(p)
	cross := d2.LineCircleIntersection(t.Radius(), pl.ApplyXY(s.R1End), pl.ApplyXY(s.R2Start))
	dx := cross.X - p.OffsetAxis
	r.Min.Offset = -math.Tan(DtoR(90-p.RotationDeg)) * dx
	r.Min.RotationRad = RotationFromOffset(r.Min.Offset, t.Diameter, t.HalfAngleDeg)
	return r
}
