package grind

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// WheelParams is the cross-section of a grinding wheel in its own frame.
// Lengths share one unit (millimetres in practice), angles are in degrees.
type WheelParams struct {
	Diameter float64
	Width    float64
	// R1 is the left fillet radius, R2 the right fillet radius.
	R1, R2   float64
	BevelDeg float64
}

// ProfileParams places the wheel frame relative to the tool frame before sweeping.
type ProfileParams struct {
	// OffsetRadius moves the wheel along the tool radius.
	OffsetRadius float64
	// OffsetAxis moves the wheel along the tool axis.
	OffsetAxis float64
	// RotationDeg is the tilt of the wheel axis used by the placement matrix.
	RotationDeg float64
}

// ToolParams describes the cylindrical tool being ground.
type ToolParams struct {
	Diameter float64
	// Height is display-only.
	Height float64
	// HalfAngleDeg is the flute wall angle.
	HalfAngleDeg float64
}

// Radius returns half the tool diameter.
func (t ToolParams) Radius() float64 { return t.Diameter / 2 }

// ShapeGeometry holds the characteristic points of a wheel cross-section.
// The hub centers sit on the wheel axis (Y=0) at X=-Width/2 and X=+Width/2;
// the grinding rim is at Y=-Diameter/2. All points lie in the Z=0 plane.
type ShapeGeometry struct {
	LeftHubCenter  r3.Vec
	RightHubCenter r3.Vec

	R1Center r3.Vec
	R1Start  r3.Vec
	R1End    r3.Vec

	R2Center r3.Vec
	R2Start  r3.Vec
	R2End    r3.Vec
}

// Shape derives the cross-section points of the wheel. Each rim corner is
// replaced by a fillet tangent to the side wall and to the rim line, which
// is inclined by the bevel angle. No validity checks are made: impossible
// parameter sets still produce points, see Check.
func Shape(w WheelParams) ShapeGeometry {
	halfW := w.Width / 2
	halfD := w.Diameter / 2
	sin, cos := math.Sincos(DtoR(w.BevelDeg))
	tan := math.Tan(DtoR(w.BevelDeg))

	// Left fillet, offsets measured from the left wall and the rim.
	r1EndDX := w.R1 + sin*w.R1
	r1EndDY := tan * r1EndDX
	r1End := r3.Vec{X: -halfW + r1EndDX, Y: -halfD + r1EndDY}
	r1CenterY := -halfD + r1EndDY + cos*w.R1

	// Right fillet hangs off the end of the bevelled rim line.
	r2StartDX := w.R2 - sin*w.R2
	rimDX := w.Width - r1EndDX - r2StartDX
	r2Start := r3.Vec{X: r1End.X + rimDX, Y: r1End.Y + tan*rimDX}
	r2CenterY := r2Start.Y + cos*w.R2

	return ShapeGeometry{
		LeftHubCenter:  r3.Vec{X: -halfW},
		RightHubCenter: r3.Vec{X: halfW},

		R1Center: r3.Vec{X: -halfW + w.R1, Y: r1CenterY},
		R1Start:  r3.Vec{X: -halfW, Y: r1CenterY},
		R1End:    r1End,

		R2Center: r3.Vec{X: halfW - w.R2, Y: r2CenterY},
		R2Start:  r2Start,
		R2End:    r3.Vec{X: halfW, Y: r2CenterY},
	}
}
