package library

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/quadrium-music/quadrium/internal/eventbus"
)

// ScannerService answers ask-retrieve-music-directory events with
// music-directory-retrieved events listing the FLAC files under the
// requested directory.
type ScannerService struct {
	deferred *eventbus.DeferredQueue
	logger   *slog.Logger
}

// RegisterScannerService attaches the service to the bus.
func RegisterScannerService(bus *eventbus.Bus, logger *slog.Logger) *ScannerService {
	s := &ScannerService{
		deferred: bus.Deferred(),
		logger:   logger,
	}
	bus.Register(eventbus.KindAskRetrieveMusicDirectory, s.handleScan)
	return s
}

func (s *ScannerService) handleScan(ev eventbus.Event) {
	fields := ev.Payload.Describe()
	if len(fields) != 1 {
		return
	}
	dir := fields[0].Value

	files, err := scanDirectory(dir)
	if err != nil {
		s.logger.Warn("failed to scan music directory", "directory", dir, "error", err)
		return
	}
	s.logger.Info("scanned music directory", "directory", dir, "files", len(files))

	s.deferred.Publish(eventbus.Event{
		Kind:    eventbus.KindMusicDirectoryRetrieved,
		Payload: DirectoryListing{Directory: dir, Files: files},
	})
}

// scanDirectory walks dir and returns the paths of all .flac files in
// lexical walk order.
func scanDirectory(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".flac") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
