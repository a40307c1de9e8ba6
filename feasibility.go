package grind

import (
	"github.com/soypat/grind/internal/d2"
	"github.com/soypat/grind/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Feasibility holds the outcome of each geometric predicate a placed wheel
// must satisfy to contact the tool the expected way.
type Feasibility struct {
	// FilletsFit is set when the two fillets' horizontal extents sum to less than the width.
	FilletsFit bool
	// LeftHubAbove and RightHubAbove are set when the hub centers sit
	// further out than the adjacent fillet ends.
	LeftHubAbove  bool
	RightHubAbove bool
	// LeftHubClear and RightHubClear are set when the placed hub centers
	// are outside the tool.
	LeftHubClear  bool
	RightHubClear bool
	// R1Inside is set when both placed R1 ends are inside the tool.
	R1Inside bool
	// R2Outside is set when both placed R2 ends are outside the tool.
	R2Outside bool
}

// OK reports whether all predicates hold.
func (f Feasibility) OK() bool {
	return f.FilletsFit && f.LeftHubAbove && f.RightHubAbove &&
		f.LeftHubClear && f.RightHubClear && f.R1Inside && f.R2Outside
}

// Check evaluates every feasibility predicate of shape s of wheel w
// placed by pl against a tool of the given diameter.
func Check(s ShapeGeometry, w WheelParams, pl Placement, toolDiameter float64) Feasibility {
	inside := func(p r3.Vec) bool { return insideTool(pl.Apply(p), toolDiameter) }
	return Feasibility{
		FilletsFit:    (s.R1End.X-s.R1Start.X)+(s.R2End.X-s.R2Start.X) < w.Width,
		LeftHubAbove:  s.LeftHubCenter.Y > s.R1Start.Y,
		RightHubAbove: s.RightHubCenter.Y > s.R2End.Y,
		LeftHubClear:  !inside(s.LeftHubCenter),
		RightHubClear: !inside(s.RightHubCenter),
		R1Inside:      inside(s.R1Start) && inside(s.R1End),
		R2Outside:     !inside(s.R2Start) && !inside(s.R2End),
	}
}

// IsValid reports whether the placed wheel passes every feasibility predicate.
func IsValid(s ShapeGeometry, w WheelParams, pl Placement, toolDiameter float64) bool {
	return Check(s, w, pl, toolDiameter).OK()
}

// insideTool reports whether the tool frame point p lies within the tool's
// cylindrical envelope, boundary included.
func insideTool(p r3.Vec, toolDiameter float64) bool {
	return d2.Length(d3.XY(p)) <= toolDiameter/2
}
