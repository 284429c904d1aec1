package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gowalk/internal/assets"
	"github.com/philipparndt/gowalk/internal/config"
	"github.com/philipparndt/gowalk/internal/logging"
	"github.com/philipparndt/gowalk/internal/transition"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	zUp   bool
	scale float64
)

// addAssetFlags registers the model placement flags on cmd
func addAssetFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&zUp, "zup", false, "treat the model as Z-up (CAD export) and rotate it to Y-up")
	cmd.Flags().Float64Var(&scale, "scale", 1, "uniform scale applied to the model")
}

func assetOptions() assets.Options {
	return assets.Options{ZUp: zUp, Scale: scale}
}

// setup loads the configuration and builds the logger. Errors end the process.
func setup() (config.Config, zerolog.Logger) {
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, logging.New(cfg.LogLevel, os.Stderr)
}

// viewpointTable returns the built-in rooms, overridden by the configured file
func viewpointTable(cfg config.Config) *transition.Table {
	table := transition.DefaultTable()
	if cfg.Viewpoints.File != "" {
		if err := table.LoadFile(cfg.Viewpoints.File); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading viewpoints: %v\n", err)
			os.Exit(1)
		}
	}
	return table
}
