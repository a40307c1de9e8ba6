package grind

import (
	"math"

	"github.com/soypat/grind/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// tiltAxis is the axis the wheel frame is tilted about when placed against the tool.
var tiltAxis = r3.Vec{Y: -1}

// Placement maps points of the wheel frame into the tool frame.
// The zero value is the identity placement.
type Placement struct {
	t d3.Transform
}

// NewPlacement returns the transform that tilts the wheel by 90-tiltDeg
// degrees about the negative Y axis and then translates it by
// (offsetAxis, offsetRadius, sweepOffset).
func NewPlacement(offsetRadius, offsetAxis, tiltDeg, sweepOffset float64) Placement {
	pos := r3.Vec{X: offsetAxis, Y: offsetRadius, Z: sweepOffset}
	q := r3.NewRotation(DtoR(90-tiltDeg), tiltAxis)
	return Placement{t: d3.ComposeTransform(pos, d3.Elem(1), q)}
}

// neutralPlacement is the placement of p with no sweep applied.
func neutralPlacement(p ProfileParams) Placement {
	return NewPlacement(p.OffsetRadius, p.OffsetAxis, p.RotationDeg, 0)
}

// sweptPlacement places the wheel at a sweep extreme: the profile placement
// moved by offset along the tool axis, then turned by rotation radians about it.
func sweptPlacement(p ProfileParams, offset, rotation float64) Placement {
	pl := NewPlacement(p.OffsetRadius, p.OffsetAxis, p.RotationDeg, offset)
	return Placement{t: d3.RotateZ(rotation).Mul(pl.t)}
}

// Apply transforms a wheel frame point into the tool frame.
func (p Placement) Apply(v r3.Vec) r3.Vec { return p.t.Transform(v) }

// ApplyXY transforms v and projects it onto the tool cross-section plane.
func (p Placement) ApplyXY(v r3.Vec) r2.Vec { return d3.XY(p.t.Transform(v)) }

// Elements returns the 16 matrix elements in row major order.
func (p Placement) Elements() []float64 { return p.t.SliceCopy() }

// OffsetFromRotation converts a rotation about the tool axis (radians) into the
// equivalent linear offset along the tool axis of a helix with the given flute angle.
func OffsetFromRotation(rotation, toolDiameter, toolAngleDeg float64) float64 {
	return rotation * (toolDiameter / 2) * math.Tan(DtoR(toolAngleDeg))
}

// RotationFromOffset is the inverse of OffsetFromRotation.
func RotationFromOffset(offset, toolDiameter, toolAngleDeg float64) float64 {
	return (offset / math.Tan(DtoR(toolAngleDeg))) / (toolDiameter / 2)
}
