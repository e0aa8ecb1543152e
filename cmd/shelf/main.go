package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shelf",
		Short: "Incremental catalog shelf server",
		Long: `Shelf serves a game-library catalog rendered through an
incremental list engine.

Tiles are mounted and unmounted as the catalog changes, thumbnail
resources are acquired only while a tile is on screen, and connected
clients receive fresh snapshots over a websocket feed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
