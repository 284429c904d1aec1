package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/philipparndt/gowalk/internal/assets"
	"github.com/philipparndt/gowalk/internal/bounds"
	"github.com/philipparndt/gowalk/internal/engine"
	"github.com/philipparndt/gowalk/internal/telemetry"
	"github.com/philipparndt/gowalk/pkg/scene"
	"github.com/spf13/cobra"
)

// scanTimeout caps the simulated time spent waiting for scene bounds
const scanTimeout = 30.0

var (
	walkScript string
	walkDt     float64
	walkEvery  int
)

var walkCmd = &cobra.Command{
	Use:   "walk <file>",
	Short: "Walk through a model headlessly and print the path",
	Long: `Run the first-person walker against a model without a window. The script
lists held keys and durations, e.g. "W:0.5,WD:1,:1" walks forward for half a
second, forward and right for a second, then coasts for a second.`,
	Args: cobra.ExactArgs(1),
	Run:  runWalk,
}

func init() {
	rootCmd.AddCommand(walkCmd)
	addAssetFlags(walkCmd)
	walkCmd.Flags().StringVar(&walkScript, "script", "W:1", "walk script of KEYS:SECONDS steps")
	walkCmd.Flags().Float64Var(&walkDt, "dt", 0.016, "simulated frame time in seconds")
	walkCmd.Flags().IntVar(&walkEvery, "every", 10, "print the pose every N ticks")
}

func runWalk(cmd *cobra.Command, args []string) {
	cfg, logger := setup()

	steps, err := parseScript(walkScript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing script: %v\n", err)
		os.Exit(1)
	}
	if walkDt <= 0 || walkEvery <= 0 {
		fmt.Fprintf(os.Stderr, "Error: --dt and --every must be positive\n")
		os.Exit(1)
	}

	asset, err := assets.Load(context.Background(), args[0], assetOptions(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(engine.Options{
		Config:     cfg,
		Source:     scene.NewStatic(asset.Root),
		Viewpoints: viewpointTable(cfg),
		Logger:     logger,
		Metrics:    telemetry.New(),
		Mode:       engine.ModeFirstPerson,
	})
	defer eng.Close()

	snap := eng.Snapshot()
	for elapsed := 0.0; !snap.BoundsKnown && snap.Scan != bounds.ScanFailed && elapsed < scanTimeout; elapsed += walkDt {
		snap = eng.Tick(walkDt)
	}
	if !snap.BoundsKnown {
		fmt.Fprintf(os.Stderr, "Error: scene bounds unavailable (scan %s)\n", snap.Scan)
		os.Exit(1)
	}

	eng.PointerLock(true)
	snap = eng.Tick(0)

	fmt.Println("Walk")
	fmt.Println("====")
	printWalkPose(0, snap)

	clock := 0.0
	for _, step := range steps {
		for _, k := range step.keys {
			eng.KeyDown(k)
		}
		ticks := int(math.Round(step.seconds / walkDt))
		for i := 1; i <= ticks; i++ {
			snap = eng.Tick(walkDt)
			clock += walkDt
			if i%walkEvery == 0 || i == ticks {
				printWalkPose(clock, snap)
			}
		}
		for _, k := range step.keys {
			eng.KeyUp(k)
		}
	}
}

func printWalkPose(clock float64, snap engine.Snapshot) {
	p := snap.Pose.Position
	room := snap.Room
	if room == "" {
		room = "-"
	}
	fmt.Printf("t=%6.2fs  pos=(%7.3f, %6.3f, %7.3f)  yaw=%6.1f°  map=(%5.1f, %5.1f)  room=%s\n",
		clock, p.X, p.Y, p.Z, snap.Pose.Yaw*180/math.Pi, snap.Map.X, snap.Map.Y, room)
}
