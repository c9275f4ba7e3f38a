package flac

import (
	"strconv"

	"github.com/quadrium-music/quadrium/internal/eventbus"
)

// Describe converts the track metadata into the ordered field list carried by
// music-information-retrieved events. Numeric attributes travel as decimal
// strings; the field order is part of the contract with the presentation
// layer.
func (t *TrackInfo) Describe() []eventbus.Field {
	return []eventbus.Field{
		{Name: "music_name", Type: eventbus.FieldString, Value: t.Name},
		{Name: "music_type", Type: eventbus.FieldString, Value: t.Genre},
		{Name: "artist_name", Type: eventbus.FieldString, Value: t.Artist},
		{Name: "track_number", Type: eventbus.FieldString, Value: t.TrackNumber},
		{Name: "album", Type: eventbus.FieldString, Value: t.Album},
		{Name: "date", Type: eventbus.FieldString, Value: t.Date},
		{Name: "duration", Type: eventbus.FieldString, Value: t.Duration},
		{Name: "track_rate", Type: eventbus.FieldString, Value: strconv.FormatUint(uint64(t.Rate), 10)},
		{Name: "channel_count", Type: eventbus.FieldString, Value: strconv.FormatUint(uint64(t.ChannelCount), 10)},
		{Name: "bits_per_sample", Type: eventbus.FieldString, Value: strconv.FormatUint(uint64(t.BitsPerSample), 10)},
	}
}
