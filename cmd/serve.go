package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quadrium-music/quadrium/internal/api"
	"github.com/quadrium-music/quadrium/internal/build"
	"github.com/quadrium-music/quadrium/internal/config"
	"github.com/quadrium-music/quadrium/internal/eventbus"
	"github.com/quadrium-music/quadrium/internal/library"
	"github.com/quadrium-music/quadrium/internal/logger"
	"github.com/quadrium-music/quadrium/internal/playlist"
	"github.com/quadrium-music/quadrium/internal/presenter"
	"github.com/quadrium-music/quadrium/internal/scheduler"
	"github.com/quadrium-music/quadrium/internal/server"
	"github.com/quadrium-music/quadrium/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Quadrium daemon",
	Long: `Start the event bus, library services and the HTTP API server.

The daemon scans the configured music directories on a schedule, answers
metadata requests over the bus and persists playlists in SQLite.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "HTTP server port (overrides PORT env var)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sysLogger, err := logger.NewSystemLogger(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	sysLogger.Info("quadrium starting",
		slog.Int("port", cfg.Port),
		slog.String("data_dir", cfg.DataDir),
		slog.String("version", build.Version),
		slog.String("commit", build.CommitSHA),
	)

	db, err := storage.NewSQLiteDB(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	playlists := storage.NewSQLitePlaylistStore(db)

	bus := eventbus.New(sysLogger)
	library.RegisterMetadataService(bus, sysLogger)
	library.RegisterScannerService(bus, sysLogger)
	library.RegisterReadService(bus, sysLogger)
	playlist.RegisterService(bus, playlists, sysLogger)
	presenter.Register(bus, os.Stdout, sysLogger)
	bus.Start()
	defer bus.Stop()

	libCfg, err := config.LoadLibrary(cfg.LibraryFile())
	if err != nil {
		return fmt.Errorf("loading library configuration: %w", err)
	}

	sched, err := scheduler.New(bus, cfg.ScanInterval(), sysLogger)
	if err != nil {
		return fmt.Errorf("initializing scan scheduler: %w", err)
	}
	if err := sched.Start(libCfg.EffectiveDirectories(cfg.MusicDir)); err != nil {
		return fmt.Errorf("starting scan scheduler: %w", err)
	}
	defer func() { _ = sched.Stop() }()

	apiSrv := api.New(bus, playlists, sysLogger)
	srv := server.New(apiSrv, cfg.Port, sysLogger)

	fmt.Fprintf(os.Stderr, "Quadrium %s listening on http://localhost:%d\n", build.Version, cfg.Port)
	fmt.Fprintf(os.Stderr, "Logs: %s\n", cfg.LogDir())

	return srv.Run(ctx)
}
