package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quadrium-music/quadrium/internal/eventbus"
	"github.com/quadrium-music/quadrium/internal/library"
	"github.com/quadrium-music/quadrium/internal/logger"
	"github.com/quadrium-music/quadrium/internal/presenter"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.flac>",
	Short: "Print the metadata of a FLAC file",
	Long: `Inspect a single FLAC file and print its tags and stream properties.

The file is read through the same event pipeline the daemon uses.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	consoleLogger := logger.NewConsoleLogger(slog.LevelWarn)

	bus := eventbus.New(consoleLogger)
	library.RegisterMetadataService(bus, consoleLogger)
	presenter.Register(bus, os.Stdout, consoleLogger)

	// The presenter runs before this listener for the same kind, so once
	// done fires the output has been written.
	done := make(chan struct{})
	bus.Register(eventbus.KindMusicInformationRetrieved, func(eventbus.Event) {
		close(done)
	})

	bus.Start()
	defer bus.Stop()

	bus.Publish(eventbus.Event{
		Kind:    eventbus.KindAskRetrieveMusicInformation,
		Payload: library.PathRequest{Path: path},
	})

	select {
	case <-done:
		return nil
	case <-time.After(10 * time.Second):
		return fmt.Errorf("no metadata for %q: not a readable FLAC file", path)
	}
}
