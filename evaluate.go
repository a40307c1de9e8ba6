package grind

import (
	"fmt"
	"math"

	"github.com/soypat/grind/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Metrics are the three derived quantities of a placed wheel. The same type
// carries search targets.
type Metrics struct {
	// FrontAngle is the relief angle at the cutting edge in degrees.
	FrontAngle float64
	// StepAngle is the angle between successive flute contact points in degrees.
	StepAngle float64
	// InternalDiameter is the diameter at the flute root.
	InternalDiameter float64
}

// Delta returns the L1 distance between m and target.
func (m Metrics) Delta(target Metrics) float64 {
	return math.Abs(m.FrontAngle-target.FrontAngle) +
		math.Abs(m.StepAngle-target.StepAngle) +
		math.Abs(m.InternalDiameter-target.InternalDiameter)
}

// Gate selects how a grid point is rejected.
type Gate uint8

const (
	// GateNaN rejects a point only when a metric evaluates to NaN.
	GateNaN Gate = iota
	// GateFeasibility additionally rejects points failing Check
	// at the neutral placement before any metric is computed.
	GateFeasibility
)

func (g Gate) String() string {
	switch g {
	case GateNaN:
		return "nan"
	case GateFeasibility:
		return "feasibility"
	}
	return fmt.Sprintf("Gate(%d)", uint8(g))
}

// ParseGate parses the names returned by Gate.String.
func ParseGate(s string) (Gate, error) {
	switch s {
	case "", "nan":
		return GateNaN, nil
	case "feasibility":
		return GateFeasibility, nil
	}
	return 0, fmt.Errorf("unknown gate %q", s)
}

// DiameterMode selects how the internal diameter is measured.
type DiameterMode uint8

const (
	// DiameterChord measures to the rim line between R1End and R2Start.
	DiameterChord DiameterMode = iota
	// DiameterOutline also measures to the sampled R1 fillet vertices and keeps the smaller value.
	DiameterOutline
)

func (d DiameterMode) String() string {
	switch d {
	case DiameterChord:
		return "chord"
	case DiameterOutline:
		return "outline"
	}
	return fmt.Sprintf("DiameterMode(%d)", uint8(d))
}

// ParseDiameterMode parses the names returned by DiameterMode.String.
func ParseDiameterMode(s string) (DiameterMode, error) {
	switch s {
	case "", "chord":
		return DiameterChord, nil
	case "outline":
		return DiameterOutline, nil
	}
	return 0, fmt.Errorf("unknown diameter mode %q", s)
}

// EvaluateOptions tune how a single grid point is evaluated.
// The zero value uses NaN rejection and chord diameters.
type EvaluateOptions struct {
	Gate     Gate
	Diameter DiameterMode
	// ArcSections is the fillet sampling used by DiameterOutline and the
	// probe outline. Zero means DefaultArcSections.
	ArcSections int
}

func (o EvaluateOptions) arcSections() int {
	if o.ArcSections <= 0 {
		return DefaultArcSections
	}
	return o.ArcSections
}

// BestResult is the configuration closest to the targets found so far.
type BestResult struct {
	Wheel   WheelParams
	Profile ProfileParams
	Metrics Metrics
}

// SearchMeta counts evaluated and rejected grid points.
type SearchMeta struct {
	Calculated    int
	Rejected      int
	HasBestResult bool
}

// Accumulator is the running state of one search partition.
type Accumulator struct {
	// Nearest tracks, per metric, the achieved value closest to its target.
	// It is diagnostic and does not influence Best.
	Nearest     Metrics
	LowestDelta float64
	Best        BestResult
	Meta        SearchMeta
}

// NewAccumulator returns an accumulator that has seen no results.
func NewAccumulator() Accumulator {
	inf := math.Inf(1)
	return Accumulator{
		Nearest:     Metrics{FrontAngle: inf, StepAngle: inf, InternalDiameter: inf},
		LowestDelta: inf,
	}
}

// observe folds a successfully measured grid point into the accumulator.
func (a *Accumulator) observe(w WheelParams, p ProfileParams, m, target Metrics) {
	if math.Abs(m.FrontAngle-target.FrontAngle) < math.Abs(a.Nearest.FrontAngle-target.FrontAngle) {
		a.Nearest.FrontAngle = m.FrontAngle
	}
	if math.Abs(m.StepAngle-target.StepAngle) < math.Abs(a.Nearest.StepAngle-target.StepAngle) {
		a.Nearest.StepAngle = m.StepAngle
	}
	if math.Abs(m.InternalDiameter-target.InternalDiameter) < math.Abs(a.Nearest.InternalDiameter-target.InternalDiameter) {
		a.Nearest.InternalDiameter = m.InternalDiameter
	}
	delta := m.Delta(target)
	if delta < a.LowestDelta {
		a.LowestDelta = delta
		a.Best = BestResult{Wheel: w, Profile: p, Metrics: m}
		a.Meta.HasBestResult = true
	}
}

// merge folds b into a. Ties keep a's values so that merging partitions in
// index order matches a sequential run.
func (a *Accumulator) merge(b Accumulator, target Metrics) {
	a.Meta.Calculated += b.Meta.Calculated
	a.Meta.Rejected += b.Meta.Rejected
	if math.Abs(b.Nearest.FrontAngle-target.FrontAngle) < math.Abs(a.Nearest.FrontAngle-target.FrontAngle) {
		a.Nearest.FrontAngle = b.Nearest.FrontAngle
	}
	if math.Abs(b.Nearest.StepAngle-target.StepAngle) < math.Abs(a.Nearest.StepAngle-target.StepAngle) {
		a.Nearest.StepAngle = b.Nearest.StepAngle
	}
	if math.Abs(b.Nearest.InternalDiameter-target.InternalDiameter) < math.Abs(a.Nearest.InternalDiameter-target.InternalDiameter) {
		a.Nearest.InternalDiameter = b.Nearest.InternalDiameter
	}
	if b.Meta.HasBestResult && b.LowestDelta < a.LowestDelta {
		a.LowestDelta = b.LowestDelta
		a.Best = b.Best
		a.Meta.HasBestResult = true
	}
}

// EvaluateOne measures one grid point and folds it into acc.
// Rejected points only increment acc.Meta.Rejected.
func EvaluateOne(w WheelParams, p ProfileParams, t ToolParams, target Metrics, acc *Accumulator, opts EvaluateOptions) {
	acc.evaluate(Shape(w), w, p, t, target, opts)
}

// evaluate is EvaluateOne for a shape already derived from w.
func (a *Accumulator) evaluate(s ShapeGeometry, w WheelParams, p ProfileParams, t ToolParams, target Metrics, opts EvaluateOptions) {
	a.Meta.Calculated++
	m, ok := measure(s, w, p, t, opts)
	if !ok {
		a.Meta.Rejected++
		return
	}
	a.observe(w, p, m, target)
}

// Measure computes the metrics of wheel w placed by p against tool t.
// ok is false when the configuration is rejected.
func Measure(w WheelParams, p ProfileParams, t ToolParams, opts EvaluateOptions) (m Metrics, ok bool) {
	return measure(Shape(w), w, p, t, opts)
}

func measure(s ShapeGeometry, w WheelParams, p ProfileParams, t ToolParams, opts EvaluateOptions) (m Metrics, ok bool) {
	neutral := neutralPlacement(p)
	if opts.Gate == GateFeasibility && !IsValid(s, w, neutral, t.Diameter) {
		return m, false
	}
	sw := Sweep(s, w, p, t)
	radius := t.Radius()

	// Front angle at the far end of travel, between the left wall and the tool radius.
	maxPl := sweptPlacement(p, sw.Max.Offset, sw.Max.RotationRad)
	hub := maxPl.ApplyXY(s.LeftHubCenter)
	r1Start := maxPl.ApplyXY(s.R1Start)
	leftOnTool := d2.LineCircleIntersection(radius, hub, r1Start)
	m.FrontAngle = d2.AngleBetween(r2.Sub(r1Start, hub), r2.Scale(-1, leftOnTool))
	if math.IsNaN(m.FrontAngle) {
		return m, false
	}

	// Step angle between the contact points at both ends of travel.
	minPl := sweptPlacement(p, sw.Min.Offset, sw.Min.RotationRad)
	rightOnTool := d2.LineCircleIntersection(radius, minPl.ApplyXY(s.R1End), minPl.ApplyXY(s.R2Start))
	m.StepAngle = d2.AngleBetween(rightOnTool, leftOnTool)
	if math.IsNaN(m.StepAngle) {
		return m, false
	}

	m.InternalDiameter = internalDiameter(s, w, neutral, opts)
	if math.IsNaN(m.InternalDiameter) {
		return m, false
	}
	return m, true
}

// internalDiameter is twice the distance from the tool axis to the rim line
// of the wheel at placement pl. DiameterOutline also considers the sampled R1
// fillet and keeps the smaller value.
func internalDiameter(s ShapeGeometry, w WheelParams, pl Placement, opts EvaluateOptions) float64 {
	d := 2 * d2.PointToSegmentDistance(pl.ApplyXY(s.R1End), pl.ApplyXY(s.R2Start), r2.Vec{})
	if opts.Diameter == DiameterOutline {
		d = math.Min(d, 2*filletAxisDistance(s, w, pl, opts.arcSections()))
	}
	return d
}

// Probe is the derived geometry of one fixed configuration.
type Probe struct {
	Shape ShapeGeometry
	// Feasibility is checked at the neutral placement.
	Feasibility Feasibility
	Valid       bool
	Sweep       SweepRange
	// Placement is the neutral placement of the wheel.
	Placement Placement
	// Bounds encloses the placed outline in the tool cross-section plane.
	Bounds  r2.Box
	Metrics Metrics
	// MetricsOK is false when the configuration would be rejected by a search
	// using the same options.
	MetricsOK bool
}

// EvaluateConfiguration derives shape, validity, sweep range and metrics for a
// single manually chosen configuration.
func EvaluateConfiguration(w WheelParams, p ProfileParams, t ToolParams, opts EvaluateOptions) Probe {
	s := Shape(w)
	pl := neutralPlacement(p)
	f := Check(s, w, pl, t.Diameter)
	m, ok := measure(s, w, p, t, opts)
	return Probe{
		Shape:       s,
		Feasibility: f,
		Valid:       f.OK(),
		Sweep:       Sweep(s, w, p, t),
		Placement:   pl,
		Bounds:      outlineBounds(s.PlacedOutline(w, pl, opts.arcSections())),
		Metrics:     m,
		MetricsOK:   ok,
	}
}
