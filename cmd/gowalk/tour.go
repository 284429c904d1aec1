package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gowalk/internal/transition"
	"github.com/spf13/cobra"
)

var (
	tourFrom  string
	tourDt    float64
	tourEvery int
)

var tourCmd = &cobra.Command{
	Use:   "tour <room>",
	Short: "Print the camera flight from one room to another",
	Long:  "Sample the eased camera transition between two viewpoints and print position and target along the way.",
	Args:  cobra.ExactArgs(1),
	Run:   runTour,
}

func init() {
	rootCmd.AddCommand(tourCmd)
	tourCmd.Flags().StringVar(&tourFrom, "from", transition.DefaultKey, "viewpoint the flight starts at")
	tourCmd.Flags().Float64Var(&tourDt, "dt", 0.016, "simulated frame time in seconds")
	tourCmd.Flags().IntVar(&tourEvery, "every", 10, "print a sample every N ticks")
}

func runTour(cmd *cobra.Command, args []string) {
	cfg, _ := setup()
	table := viewpointTable(cfg)

	for _, key := range []string{tourFrom, args[0]} {
		if !table.Has(key) {
			fmt.Fprintf(os.Stderr, "Error: unknown room %q (see 'gowalk rooms')\n", key)
			os.Exit(1)
		}
	}
	if tourDt <= 0 || tourEvery <= 0 {
		fmt.Fprintf(os.Stderr, "Error: --dt and --every must be positive\n")
		os.Exit(1)
	}

	from := table.Lookup(tourFrom)
	to := table.Lookup(args[0])

	flight := transition.New(cfg.Transition.Duration)
	flight.AnimateTo(from.Frame, to.Frame)

	fmt.Printf("Flight: %s -> %s (%.2fs)\n", from.Name, to.Name, flight.Duration())
	fmt.Println("===============================")
	printFrame(0, 0, from.Frame)

	clock := 0.0
	for tick := 1; flight.Active(); tick++ {
		frame, _ := flight.Advance(tourDt)
		clock += tourDt
		done := !flight.Active()
		if tick%tourEvery == 0 || done {
			progress := 1.0
			if !done {
				progress = flight.Progress()
			}
			printFrame(clock, progress, frame)
		}
	}
}

func printFrame(clock, progress float64, f transition.Frame) {
	fmt.Printf("t=%5.2fs  p=%4.2f  pos=(%7.3f, %7.3f, %7.3f)  target=(%7.3f, %7.3f, %7.3f)\n",
		clock, progress, f.Position.X, f.Position.Y, f.Position.Z, f.Target.X, f.Target.Y, f.Target.Z)
}
