package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List the named viewpoints",
	Args:  cobra.NoArgs,
	Run:   runRooms,
}

func init() {
	rootCmd.AddCommand(roomsCmd)
}

func runRooms(cmd *cobra.Command, args []string) {
	cfg, _ := setup()
	table := viewpointTable(cfg)

	fmt.Println("Viewpoints")
	fmt.Println("==========")
	for i, vp := range table.All() {
		p, t := vp.Frame.Position, vp.Frame.Target
		fmt.Printf("%d  %-12s %-14s pos=(%.1f, %.1f, %.1f)  target=(%.1f, %.1f, %.1f)\n",
			i+1, vp.Key, vp.Name, p.X, p.Y, p.Z, t.X, t.Y, t.Z)
	}
}
