package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/soypat/grind"
	"github.com/spf13/cobra"
)

var searchFlags struct {
	workers      int
	gate         string
	diameterMode string
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the configured grid for the wheel closest to the targets",
	Long: `Evaluate every combination of the configured axes and report the wheel
shape and placement with the lowest summed distance to the target metrics.
Interrupting the command stops the search between partitions.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.IntVarP(&searchFlags.workers, "workers", "j", 0, "number of worker goroutines (0 = one per CPU)")
	f.StringVar(&searchFlags.gate, "gate", "", "rejection gate: nan or feasibility")
	f.StringVar(&searchFlags.diameterMode, "diameter-mode", "", "internal diameter measure: chord or outline")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Search.Workers = searchFlags.workers
	}
	if cmd.Flags().Changed("gate") {
		cfg.Search.Gate = searchFlags.gate
	}
	if cmd.Flags().Changed("diameter-mode") {
		cfg.Search.DiameterMode = searchFlags.diameterMode
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scfg := cfg.SearchConfig()
	scfg.Log = &log
	grid := cfg.GridConfig()
	log.Info().Int("combinations", grid.Combinations()).Str("gate", scfg.Gate.String()).
		Str("diameter_mode", scfg.DiameterMode.String()).Msg("starting search")
	res, err := grind.RunSearch(ctx, grid, cfg.ToolParams(), cfg.TargetMetrics(), scfg)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	printSearchResult(cmd, scfg, res)
	return nil
}

func printSearchResult(cmd *cobra.Command, scfg grind.SearchConfig, res grind.SearchResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Search Summary")
	fmt.Fprintln(out, "==============")
	fmt.Fprintf(out, "  Gate:         %s\n", scfg.Gate)
	fmt.Fprintf(out, "  Diameter:     %s\n", scfg.DiameterMode)
	fmt.Fprintf(out, "  Combinations: %d\n", res.Combinations)
	fmt.Fprintf(out, "  Calculated:   %d\n", res.Meta.Calculated)
	fmt.Fprintf(out, "  Rejected:     %d (%.2f%%)\n", res.Meta.Rejected, res.RejectedPercent())
	fmt.Fprintf(out, "  Elapsed:      %s\n\n", res.Elapsed)
	fmt.Fprintln(out, "Nearest per metric:")
	fmt.Fprintf(out, "  Front angle:       %.4f deg\n", res.Nearest.FrontAngle)
	fmt.Fprintf(out, "  Step angle:        %.4f deg\n", res.Nearest.StepAngle)
	fmt.Fprintf(out, "  Internal diameter: %.4f\n\n", res.Nearest.InternalDiameter)
	if !res.Meta.HasBestResult {
		fmt.Fprintln(out, "No valid configuration found.")
		return
	}
	b := res.Best
	fmt.Fprintf(out, "Best result (delta %.4f):\n", res.LowestDelta)
	fmt.Fprintf(out, "  Wheel:   diameter %.4f  width %.4f  R1 %.4f  R2 %.4f  bevel %.4f deg\n",
		b.Wheel.Diameter, b.Wheel.Width, b.Wheel.R1, b.Wheel.R2, b.Wheel.BevelDeg)
	fmt.Fprintf(out, "  Profile: offset radius %.4f  offset axis %.4f  rotation %.4f deg\n",
		b.Profile.OffsetRadius, b.Profile.OffsetAxis, b.Profile.RotationDeg)
	fmt.Fprintf(out, "  Metrics: front %.4f deg  step %.4f deg  internal diameter %.4f\n",
		b.Metrics.FrontAngle, b.Metrics.StepAngle, b.Metrics.InternalDiameter)
}
