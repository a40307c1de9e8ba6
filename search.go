package grind

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrInvalidGrid is returned by RunSearch for malformed axis ranges.
	ErrInvalidGrid = errors.New("invalid grid")
	// ErrInvalidTool is returned by RunSearch for unusable tool parameters.
	ErrInvalidTool = errors.New("invalid tool")
)

// AxisRange is one searched parameter: Steps+1 evenly spaced samples from Min to Max.
// A zero Steps fixes the axis at Min.
type AxisRange struct {
	Min, Max float64
	Steps    int
}

// Fixed returns an axis holding the single value v.
func Fixed(v float64) AxisRange { return AxisRange{Min: v, Max: v} }

// Values returns the samples of the axis.
func (a AxisRange) Values() []float64 { return GenerateAxisValues(a.Min, a.Max, a.Steps) }

// Len returns the number of samples of the axis.
func (a AxisRange) Len() int {
	if a.Steps <= 0 {
		return 1
	}
	return a.Steps + 1
}

// Validate checks the axis bounds are finite and ordered and Steps is not negative.
func (a AxisRange) Validate() error {
	switch {
	case anyNaN(a.Min, a.Max) || math.IsInf(a.Min, 0) || math.IsInf(a.Max, 0):
		return fmt.Errorf("%w: bounds must be finite", ErrInvalidGrid)
	case a.Min > a.Max:
		return fmt.Errorf("%w: min %g greater than max %g", ErrInvalidGrid, a.Min, a.Max)
	case a.Steps < 0:
		return fmt.Errorf("%w: steps %d is negative", ErrInvalidGrid, a.Steps)
	}
	return nil
}

// GridConfig lists the searched axes. Enumeration order, outermost first,
// follows the field order.
type GridConfig struct {
	Width        AxisRange
	Diameter     AxisRange
	R1           AxisRange
	R2           AxisRange
	Bevel        AxisRange
	OffsetRadius AxisRange
	OffsetAxis   AxisRange
	Rotation     AxisRange
}

// Combinations returns the number of grid points.
func (g GridConfig) Combinations() int {
	n := 1
	for _, a := range g.axes() {
		n *= a.Len()
	}
	return n
}

func (g GridConfig) axes() [8]AxisRange {
	return [8]AxisRange{g.Width, g.Diameter, g.R1, g.R2, g.Bevel, g.OffsetRadius, g.OffsetAxis, g.Rotation}
}

// Validate checks every axis.
func (g GridConfig) Validate() error {
	names := [8]string{"width", "diameter", "r1", "r2", "bevel", "offset radius", "offset axis", "rotation"}
	for i, a := range g.axes() {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("%s axis: %w", names[i], err)
		}
	}
	return nil
}

// Validate checks t can be used for a search.
func (t ToolParams) Validate() error {
	if !(t.Diameter > 0) {
		return fmt.Errorf("%w: diameter %g must be positive", ErrInvalidTool, t.Diameter)
	}
	if !(t.HalfAngleDeg > 0 && t.HalfAngleDeg < 90) {
		return fmt.Errorf("%w: angle %g must be in (0, 90)", ErrInvalidTool, t.HalfAngleDeg)
	}
	return nil
}

// SearchConfig tunes RunSearch. The zero value is usable.
type SearchConfig struct {
	// Workers is the number of goroutines evaluating partitions.
	// Zero means runtime.NumCPU().
	Workers      int
	Gate         Gate
	DiameterMode DiameterMode
	// ArcSections is the fillet sampling used by DiameterOutline.
	ArcSections int
	// Log receives progress and summary events. Nil disables logging.
	Log *zerolog.Logger
}

func (c SearchConfig) options() EvaluateOptions {
	return EvaluateOptions{Gate: c.Gate, Diameter: c.DiameterMode, ArcSections: c.ArcSections}
}

// SearchResult is the outcome of a completed search.
type SearchResult struct {
	// Best is only meaningful when Meta.HasBestResult is set.
	Best        BestResult
	LowestDelta float64
	Meta        SearchMeta
	// Nearest holds per metric the achieved value closest to its target.
	Nearest      Metrics
	Combinations int
	Elapsed      time.Duration
}

// RejectedPercent returns the share of evaluated points that were rejected.
func (r SearchResult) RejectedPercent() float64 {
	if r.Meta.Calculated == 0 {
		return 0
	}
	return 100 * float64(r.Meta.Rejected) / float64(r.Meta.Calculated)
}

// RunSearch evaluates every grid point and returns the one whose metrics are
// closest to target. The outermost axis is partitioned across workers; each
// partition accumulates privately and partitions are merged in index order,
// so the result does not depend on the worker count.
//
// When ctx is cancelled RunSearch stops handing out partitions and returns ctx.Err().
func RunSearch(ctx context.Context, grid GridConfig, tool ToolParams, target Metrics, cfg SearchConfig) (SearchResult, error) {
	if err := grid.Validate(); err != nil {
		return SearchResult{}, err
	}
	if err := tool.Validate(); err != nil {
		return SearchResult{}, err
	}
	if cfg.Workers < 0 {
		return SearchResult{}, fmt.Errorf("workers %d is negative", cfg.Workers)
	}
	log := zerolog.Nop()
	if cfg.Log != nil {
		log = *cfg.Log
	}
	start := time.Now()

	widths := grid.Width.Values()
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(widths) {
		workers = len(widths)
	}
	log.Debug().Int("partitions", len(widths)).Int("workers", workers).
		Int("combinations", grid.Combinations()).Msg("search start")

	opts := cfg.options()
	accs := make([]Accumulator, len(widths))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				accs[i] = searchPartition(widths[i], grid, tool, target, opts)
				log.Debug().Int("partition", i).Float64("width", widths[i]).
					Int("calculated", accs[i].Meta.Calculated).
					Int("rejected", accs[i].Meta.Rejected).Msg("partition done")
			}
		}()
	}
	var cancelled error
feed:
	for i := range widths {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if cancelled != nil {
		log.Warn().Err(cancelled).Msg("search cancelled")
		return SearchResult{}, cancelled
	}

	total := NewAccumulator()
	for i := range accs {
		total.merge(accs[i], target)
	}
	res := SearchResult{
		Best:         total.Best,
		LowestDelta:  total.LowestDelta,
		Meta:         total.Meta,
		Nearest:      total.Nearest,
		Combinations: grid.Combinations(),
		Elapsed:      time.Since(start),
	}
	log.Info().Int("combinations", res.Combinations).
		Int("calculated", res.Meta.Calculated).
		Int("rejected", res.Meta.Rejected).
		Float64("rejected_pct", res.RejectedPercent()).
		Dur("elapsed", res.Elapsed).
		Float64("nearest_front", res.Nearest.FrontAngle).
		Float64("nearest_step", res.Nearest.StepAngle).
		Float64("nearest_diameter", res.Nearest.InternalDiameter).
		Bool("found", res.Meta.HasBestResult).
		Msg("search finished")
	return res, nil
}

// searchPartition enumerates the inner axes for a single width sample.
func searchPartition(width float64, grid GridConfig, tool ToolParams, target Metrics, opts EvaluateOptions) Accumulator {
	acc := NewAccumulator()
	diameters := grid.Diameter.Values()
	r1s := grid.R1.Values()
	r2s := grid.R2.Values()
	bevels := grid.Bevel.Values()
	radii := grid.OffsetRadius.Values()
	axials := grid.OffsetAxis.Values()
	rotations := grid.Rotation.Values()
	for _, diameter := range diameters {
		for _, r1 := range r1s {
			for _, r2 := range r2s {
				for _, bevel := range bevels {
					w := WheelParams{Diameter: diameter, Width: width, R1: r1, R2: r2, BevelDeg: bevel}
					s := Shape(w)
					for _, radius := range radii {
						for _, axial := range axials {
							for _, rot := range rotations {
								p := ProfileParams{OffsetRadius: radius, OffsetAxis: axial, RotationDeg: rot}
								acc.evaluate(s, w, p, tool, target, opts)
							}
						}
					}
				}
			}
		}
	}
	return acc
}
