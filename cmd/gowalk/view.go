package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/philipparndt/gowalk/internal/app"
	"github.com/philipparndt/gowalk/internal/engine"
	"github.com/philipparndt/gowalk/internal/telemetry"
	"github.com/spf13/cobra"
)

var (
	viewMode   string
	autoRotate bool
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Open the interactive viewer",
	Long: `Open a window showing the model. Tab switches between orbit and walk mode,
1-9 fly to the configured rooms, clicks measure. The model and the viewpoint
file are reloaded when they change on disk.`,
	Args: cobra.ExactArgs(1),
	Run:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	addAssetFlags(viewCmd)
	viewCmd.Flags().StringVar(&viewMode, "mode", "orbit", "initial mode: orbit or walk")
	viewCmd.Flags().BoolVar(&autoRotate, "auto-rotate", true, "slowly circle the model until the first interaction")
}

func runView(cmd *cobra.Command, args []string) {
	cfg, logger := setup()

	mode, err := engine.ParseMode(viewMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	table := viewpointTable(cfg)
	if cfg.Viewpoints.File != "" {
		fw, err := table.Watch(ctx, cfg.Viewpoints.File, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Viewpoint reload will not be available")
		} else {
			defer fw.Close()
		}
	}

	err = app.Run(ctx, app.Options{
		File:       args[0],
		Config:     cfg,
		Asset:      assetOptions(),
		Mode:       mode,
		AutoRotate: autoRotate,
		Viewpoints: table,
		Logger:     logger,
		Metrics:    telemetry.New(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
}
