// Package scheduler periodically republishes library scan requests so the
// music directories stay fresh without user action.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"github.com/quadrium-music/quadrium/internal/eventbus"
	"github.com/quadrium-music/quadrium/internal/library"
)

// EventPublisher allows the scheduler to emit events without depending on a
// concrete event bus implementation.
type EventPublisher interface {
	Publish(ev eventbus.Event)
}

// Scheduler manages the periodic library rescan jobs using gocron.
type Scheduler struct {
	cron      gocron.Scheduler
	publisher EventPublisher
	interval  time.Duration
	jobs      map[string]uuid.UUID // directory → gocron job UUID
	logger    *slog.Logger
}

// New creates a Scheduler that publishes an ask-retrieve-music-directory
// event for each directory every interval.
func New(publisher EventPublisher, interval time.Duration, logger *slog.Logger) (*Scheduler, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating gocron scheduler: %w", err)
	}
	return &Scheduler{
		cron:      cron,
		publisher: publisher,
		interval:  interval,
		jobs:      make(map[string]uuid.UUID),
		logger:    logger,
	}, nil
}

// Start schedules a rescan job per directory and starts the gocron
// scheduler. Each job fires immediately and then every interval.
func (s *Scheduler) Start(directories []string) error {
	if s.interval <= 0 {
		s.logger.Info("periodic library scan disabled")
		return nil
	}

	for _, dir := range directories {
		dir := dir
		job, err := s.cron.NewJob(
			gocron.DurationJob(s.interval),
			gocron.NewTask(func() { s.scan(dir) }),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			return fmt.Errorf("scheduling scan of %q: %w", dir, err)
		}
		s.jobs[dir] = job.ID()
	}

	s.cron.Start()
	s.logger.Info("library scan scheduler started",
		"directories", len(s.jobs), "interval", s.interval)
	return nil
}

// Stop shuts down the gocron scheduler.
func (s *Scheduler) Stop() error {
	return s.cron.Shutdown()
}

func (s *Scheduler) scan(dir string) {
	s.logger.Debug("publishing scheduled library scan", "directory", dir)
	s.publisher.Publish(eventbus.Event{
		Kind:    eventbus.KindAskRetrieveMusicDirectory,
		Payload: library.DirectoryRequest{Path: dir},
	})
}
