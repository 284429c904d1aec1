package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gowalk/internal/measurement"
	"github.com/philipparndt/gowalk/internal/telemetry"
	"github.com/spf13/cobra"
)

var (
	measurePoints string
	measureUnit   string
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Measure distances between picked points",
	Long: `Feed points into the measurement tool as if they were picked in the viewer.
Every second point completes a measurement.`,
	Args: cobra.NoArgs,
	Run:  runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)
	measureCmd.Flags().StringVar(&measurePoints, "points", "", `points as "x,y,z;x,y,z;..."`)
	measureCmd.Flags().StringVar(&measureUnit, "unit", "m", "display unit: m or ft")
	measureCmd.MarkFlagRequired("points")
}

func runMeasure(cmd *cobra.Command, args []string) {
	_, logger := setup()

	unit, err := measurement.ParseUnit(measureUnit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	points, err := parsePoints(measurePoints)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing points: %v\n", err)
		os.Exit(1)
	}

	tool := measurement.NewEngine(logger, telemetry.New())
	for _, p := range points {
		tool.AddPoint(p)
	}

	fmt.Println("Measurements")
	fmt.Println("============")
	for i, m := range tool.Measurements() {
		fmt.Printf("#%d  (%.3f, %.3f, %.3f) -> (%.3f, %.3f, %.3f)  %s\n",
			i+1, m.Start.X, m.Start.Y, m.Start.Z, m.End.X, m.End.Y, m.End.Z, measurement.Format(m, unit))
	}
	if tool.Len() == 0 {
		fmt.Println("No completed measurements")
	}
	if p, ok := tool.Pending(); ok {
		fmt.Printf("Pending start point: (%.3f, %.3f, %.3f)\n", p.X, p.Y, p.Z)
	}
	if tool.Len() > 1 {
		total := tool.Total()
		if unit == measurement.Feet {
			total *= measurement.FeetPerMeter
		}
		fmt.Printf("Total: %s\n", measurement.FormatDistance(total, unit))
	}
}
