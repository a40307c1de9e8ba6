package main

import (
	"fmt"

	"github.com/soypat/grind"
	"github.com/spf13/cobra"
)

var axisFlags struct {
	min, max float64
	steps    int
}

var axisCmd = &cobra.Command{
	Use:   "axis",
	Short: "Print the samples of one search axis",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := grind.AxisRange{Min: axisFlags.min, Max: axisFlags.max, Steps: axisFlags.steps}
		if err := a.Validate(); err != nil {
			return err
		}
		for i, v := range a.Values() {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d  %.6f\n", i, v)
		}
		return nil
	},
}

func init() {
	f := axisCmd.Flags()
	f.Float64Var(&axisFlags.min, "min", 0, "first sample")
	f.Float64Var(&axisFlags.max, "max", 1, "last sample")
	f.IntVar(&axisFlags.steps, "steps", 10, "number of steps; samples = steps+1")
	rootCmd.AddCommand(axisCmd)
}
