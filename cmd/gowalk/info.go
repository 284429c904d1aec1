package main

import (
	"context"
	"fmt"
	"os"

	"github.com/philipparndt/gowalk/internal/assets"
	"github.com/philipparndt/gowalk/internal/bounds"
	"github.com/philipparndt/gowalk/pkg/scene"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Display scene statistics and walkable bounds",
	Long:  "Show triangle and mesh counts, surface area, the walkable bounding volume and the first-person spawn point.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	addAssetFlags(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	cfg, logger := setup()
	filename := args[0]

	asset, err := assets.Load(context.Background(), filename, assetOptions(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	stats := scene.Summarize(asset.Root)

	fmt.Println("Scene Information")
	fmt.Println("=================")
	if asset.Model.Name != "" {
		fmt.Printf("Name: %s\n", asset.Model.Name)
	}
	fmt.Printf("File: %s\n", filename)
	if len(asset.Sources) > 1 {
		fmt.Printf("Sources: %d files\n", len(asset.Sources))
	}
	fmt.Println()

	fmt.Println("Scene Statistics:")
	fmt.Printf("  Meshes: %d\n", stats.MeshCount)
	fmt.Printf("  Triangles: %d\n", stats.TriangleCount)
	fmt.Printf("  Surface Area: %.3f m²\n\n", stats.SurfaceArea)

	volume, err := bounds.Compute(asset.Root, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing bounds: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Walkable Bounds:")
	fmt.Printf("  Min: (%.3f, %.3f, %.3f)\n", volume.Min.X, volume.Min.Y, volume.Min.Z)
	fmt.Printf("  Max: (%.3f, %.3f, %.3f)\n", volume.Max.X, volume.Max.Y, volume.Max.Z)
	fmt.Printf("  Size: %.3f x %.3f x %.3f m\n", volume.Size.X, volume.Size.Y, volume.Size.Z)
	fmt.Printf("  Floor Area: %.3f m²\n", volume.Size.X*volume.Size.Z)
	if volume.Degenerate() {
		fmt.Println("  Warning: scene has no horizontal extent on X or Z")
	}

	spawn := bounds.SpawnPose(volume, cfg.Locomotion.EyeHeight)
	fmt.Printf("\nSpawn Point: (%.3f, %.3f, %.3f)\n", spawn.X, spawn.Y, spawn.Z)
}
