package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gowalk/version"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "gowalk",
	Short: "Walk through and measure 3D apartment models",
	Long: `gowalk explores an apartment model (STL or OpenSCAD) by orbiting it or
walking through it in first-person with collision detection, smooth flights
between rooms, a live mini-map and point-to-point measurements.`,
	Version: version.GetFullVersion(),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./gowalk.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
