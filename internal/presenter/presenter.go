// Package presenter is the presentation-layer collaborator of the event bus:
// it renders result events as "name: value" lines, one per payload field, in
// the producer's declared field order. It makes no assumption about field
// count or names beyond that ordering guarantee.
package presenter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/quadrium-music/quadrium/internal/eventbus"
)

// resultKinds are the event kinds the presenter renders.
var resultKinds = []eventbus.Kind{
	eventbus.KindMusicInformationRetrieved,
	eventbus.KindMusicDirectoryRetrieved,
	eventbus.KindReadMusicState,
	eventbus.KindOperatePlaylistState,
	eventbus.KindPlaylistRetrieved,
}

// Presenter renders result events to an output writer.
type Presenter struct {
	out    io.Writer
	logger *slog.Logger

	headerStyle lipgloss.Style
	nameStyle   lipgloss.Style
}

// Register creates a Presenter writing to out and attaches it to every
// result kind on the bus.
func Register(bus *eventbus.Bus, out io.Writer, logger *slog.Logger) *Presenter {
	p := &Presenter{
		out:         out,
		logger:      logger,
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		nameStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
	for _, kind := range resultKinds {
		bus.Register(kind, p.render)
	}
	return p
}

// render runs on the dispatcher goroutine.
func (p *Presenter) render(ev eventbus.Event) {
	fields := ev.Payload.Describe()

	fmt.Fprintln(p.out, p.headerStyle.Render(string(ev.Kind)))
	for _, f := range fields {
		fmt.Fprintf(p.out, "  %s: %s\n", p.nameStyle.Render(f.Name), f.Value)
	}

	p.logger.Info("rendered event", "kind", string(ev.Kind), "fields", len(fields))
}
