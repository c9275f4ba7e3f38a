package presenter_test

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrium-music/quadrium/internal/eventbus"
	"github.com/quadrium-music/quadrium/internal/presenter"
)

// syncWriter makes the shared buffer safe to read while the dispatcher
// goroutine is still writing.
type syncWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *syncWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestRenderFieldsInDeclaredOrder(t *testing.T) {
	out := &syncWriter{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	bus := eventbus.New(logger)
	presenter.Register(bus, out, logger)
	bus.Start()
	defer bus.Stop()

	bus.Publish(eventbus.Event{
		Kind: eventbus.KindMusicInformationRetrieved,
		Payload: eventbus.Fields{
			{Name: "music_name", Type: eventbus.FieldString, Value: "Ephemeral"},
			{Name: "artist_name", Type: eventbus.FieldString, Value: "The Nightjars"},
			{Name: "track_rate", Type: eventbus.FieldString, Value: "44100"},
		},
	})

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "44100")
	}, time.Second, 5*time.Millisecond)

	rendered := out.String()
	assert.Contains(t, rendered, string(eventbus.KindMusicInformationRetrieved))
	assert.Contains(t, rendered, "Ephemeral")
	assert.Contains(t, rendered, "The Nightjars")

	// Field order must match the payload's declared order.
	assert.Less(t,
		strings.Index(rendered, "music_name"),
		strings.Index(rendered, "artist_name"))
	assert.Less(t,
		strings.Index(rendered, "artist_name"),
		strings.Index(rendered, "track_rate"))
}

func TestRenderHandlesArbitraryFieldCount(t *testing.T) {
	out := &syncWriter{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	bus := eventbus.New(logger)
	presenter.Register(bus, out, logger)
	bus.Start()
	defer bus.Stop()

	bus.Publish(eventbus.Event{
		Kind:    eventbus.KindReadMusicState,
		Payload: eventbus.Fields{},
	})

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), string(eventbus.KindReadMusicState))
	}, time.Second, 5*time.Millisecond)
}
