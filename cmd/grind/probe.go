package main

import (
	"fmt"
	"io"

	"github.com/soypat/grind"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

var probeFlags struct {
	width, r1, r2, bevel     float64
	offsetRadius, offsetAxis float64
	rotation                 float64
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Evaluate a single wheel configuration",
	Long: `Print the characteristic points, feasibility predicates, sweep range and
metrics of one wheel shape and placement. Values come from the probe section of
the configuration and may be overridden by flags.`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func init() {
	f := probeCmd.Flags()
	f.Float64Var(&probeFlags.width, "width", 0, "wheel width")
	f.Float64Var(&probeFlags.r1, "r1", 0, "left fillet radius")
	f.Float64Var(&probeFlags.r2, "r2", 0, "right fillet radius")
	f.Float64Var(&probeFlags.bevel, "bevel", 0, "bevel angle in degrees")
	f.Float64Var(&probeFlags.offsetRadius, "offset-radius", 0, "wheel offset along the tool radius")
	f.Float64Var(&probeFlags.offsetAxis, "offset-axis", 0, "wheel offset along the tool axis")
	f.Float64Var(&probeFlags.rotation, "rotation", 0, "wheel tilt in degrees")
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	for name, dst := range map[string]*float64{
		"width":         &cfg.Probe.Width,
		"r1":            &cfg.Probe.R1,
		"r2":            &cfg.Probe.R2,
		"bevel":         &cfg.Probe.BevelDeg,
		"offset-radius": &cfg.Probe.OffsetRadius,
		"offset-axis":   &cfg.Probe.OffsetAxis,
		"rotation":      &cfg.Probe.RotationDeg,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetFloat64(name)
		}
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	tool := cfg.ToolParams()
	if err := tool.Validate(); err != nil {
		return err
	}
	w, p := cfg.ProbeParams()
	pr := grind.EvaluateConfiguration(w, p, tool, cfg.EvaluateOptions())
	log.Debug().Bool("valid", pr.Valid).Bool("metrics_ok", pr.MetricsOK).Msg("probe evaluated")
	printProbe(cmd.OutOrStdout(), w, p, pr)
	return nil
}

func printProbe(out io.Writer, w grind.WheelParams, p grind.ProfileParams, pr grind.Probe) {
	fmt.Fprintln(out, "Wheel Configuration")
	fmt.Fprintln(out, "===================")
	fmt.Fprintf(out, "  Wheel:   diameter %.4f  width %.4f  R1 %.4f  R2 %.4f  bevel %.4f deg\n",
		w.Diameter, w.Width, w.R1, w.R2, w.BevelDeg)
	fmt.Fprintf(out, "  Profile: offset radius %.4f  offset axis %.4f  rotation %.4f deg\n\n",
		p.OffsetRadius, p.OffsetAxis, p.RotationDeg)

	s := pr.Shape
	fmt.Fprintln(out, "Shape (wheel frame):")
	for _, pt := range []struct {
		name string
		v    r3.Vec
	}{
		{"Left hub center", s.LeftHubCenter},
		{"R1 center", s.R1Center},
		{"R1 start", s.R1Start},
		{"R1 end", s.R1End},
		{"R2 start", s.R2Start},
		{"R2 end", s.R2End},
		{"R2 center", s.R2Center},
		{"Right hub center", s.RightHubCenter},
	} {
		fmt.Fprintf(out, "  %-17s (%.4f, %.4f)\n", pt.name+":", pt.v.X, pt.v.Y)
	}

	f := pr.Feasibility
	fmt.Fprintf(out, "\nFeasibility: %v\n", pr.Valid)
	for _, c := range []struct {
		name string
		ok   bool
	}{
		{"Fillets fit width", f.FilletsFit},
		{"Left hub above R1", f.LeftHubAbove},
		{"Right hub above R2", f.RightHubAbove},
		{"Left hub clear of tool", f.LeftHubClear},
		{"Right hub clear of tool", f.RightHubClear},
		{"R1 inside tool", f.R1Inside},
		{"R2 outside tool", f.R2Outside},
	} {
		fmt.Fprintf(out, "  %-24s %v\n", c.name+":", c.ok)
	}

	fmt.Fprintln(out, "\nSweep range:")
	fmt.Fprintf(out, "  Min: offset %.4f  rotation %.4f deg\n", pr.Sweep.Min.Offset, pr.Sweep.MinRotationDeg())
	fmt.Fprintf(out, "  Max: offset %.4f  rotation %.4f deg\n", pr.Sweep.Max.Offset, pr.Sweep.MaxRotationDeg())

	fmt.Fprintln(out, "\nPlacement matrix:")
	m := pr.Placement.Elements()
	for i := 0; i < 4; i++ {
		fmt.Fprintf(out, "  % 10.4f % 10.4f % 10.4f % 10.4f\n", m[4*i], m[4*i+1], m[4*i+2], m[4*i+3])
	}

	fmt.Fprintf(out, "\nPlaced outline bounds: (%.4f, %.4f) to (%.4f, %.4f)\n",
		pr.Bounds.Min.X, pr.Bounds.Min.Y, pr.Bounds.Max.X, pr.Bounds.Max.Y)

	fmt.Fprintln(out, "\nMetrics:")
	if !pr.MetricsOK {
		fmt.Fprintln(out, "  rejected")
		return
	}
	fmt.Fprintf(out, "  Front angle:       %.4f deg\n", pr.Metrics.FrontAngle)
	fmt.Fprintf(out, "  Step angle:        %.4f deg\n", pr.Metrics.StepAngle)
	fmt.Fprintf(out, "  Internal diameter: %.4f\n", pr.Metrics.InternalDiameter)
}
