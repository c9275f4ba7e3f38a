// Package cmd defines the quadrium command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quadrium-music/quadrium/internal/build"
)

var rootCmd = &cobra.Command{
	Use:     "quadrium",
	Short:   "Quadrium music player daemon",
	Long:    "An event-driven music library daemon: scans FLAC collections, serves metadata and manages playlists.",
	Version: build.String(),
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)
}
