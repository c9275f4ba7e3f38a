// Package library implements the metadata-extraction collaborators of the
// event bus: the track information service, the directory scanner, and the
// read-readiness probe. Each registers listeners for its ask kind and
// publishes results through the bus's deferred handle, since results are
// emitted from inside dispatch callbacks.
package library

import (
	"log/slog"
	"os"

	"github.com/quadrium-music/quadrium/internal/eventbus"
	"github.com/quadrium-music/quadrium/internal/flac"
)

// MetadataService answers ask-retrieve-music-information events with
// music-information-retrieved events carrying the track's field list.
type MetadataService struct {
	reader   flac.Reader
	deferred *eventbus.DeferredQueue
	logger   *slog.Logger
}

// RegisterMetadataService attaches the service to the bus.
func RegisterMetadataService(bus *eventbus.Bus, logger *slog.Logger) *MetadataService {
	s := &MetadataService{
		deferred: bus.Deferred(),
		logger:   logger,
	}
	bus.Register(eventbus.KindAskRetrieveMusicInformation, s.handleAsk)
	return s
}

// handleAsk runs on the dispatcher goroutine. The request payload must
// describe exactly one field (the file path); anything else is ignored
// rather than treated as an error, per the collaborator contract.
func (s *MetadataService) handleAsk(ev eventbus.Event) {
	fields := ev.Payload.Describe()
	if len(fields) != 1 {
		return
	}
	path := fields[0].Value

	info, err := s.reader.ReadInformation(path)
	if err != nil {
		// Malformed files are the collaborator's problem to swallow; the bus
		// carries no error events.
		s.logger.Warn("failed to read track information", "path", path, "error", err)
		return
	}

	s.deferred.Publish(eventbus.Event{
		Kind:    eventbus.KindMusicInformationRetrieved,
		Payload: info,
	})
}

// ReadService answers ask-read-music events with read-music-state events
// reporting whether the file is a readable FLAC stream.
type ReadService struct {
	deferred *eventbus.DeferredQueue
	logger   *slog.Logger
}

// RegisterReadService attaches the service to the bus.
func RegisterReadService(bus *eventbus.Bus, logger *slog.Logger) *ReadService {
	s := &ReadService{
		deferred: bus.Deferred(),
		logger:   logger,
	}
	bus.Register(eventbus.KindAskReadMusic, s.handleRead)
	return s
}

func (s *ReadService) handleRead(ev eventbus.Event) {
	fields := ev.Payload.Describe()
	if len(fields) != 1 {
		return
	}
	path := fields[0].Value

	state := ReadState{Path: path, State: ReadStateReady}
	if err := probeFlac(path); err != nil {
		state.State = ReadStateFailed
		state.Detail = err.Error()
		s.logger.Warn("music file not readable", "path", path, "error", err)
	}

	s.deferred.Publish(eventbus.Event{
		Kind:    eventbus.KindReadMusicState,
		Payload: state,
	})
}

// probeFlac checks that the file exists and starts with the FLAC magic.
func probeFlac(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	if !flac.IsFlacFile(f) {
		return flac.ErrNotFlac
	}
	return nil
}
