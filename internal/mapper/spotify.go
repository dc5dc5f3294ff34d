package mapper

import (
	"strings"

	"github.com/desertthunder/tracktab/internal/table"
	"github.com/zmb3/spotify/v2"
)

// DurationDivisor scales duration_ms into the duration column of playlist tables.
//
// Not a unit conversion: the column is duration_ms / 3600.
//
// The typed client decodes an absent duration_ms or popularity as 0. Every real track has a
// length, so a zero duration is Missing. Popularity 0 is a value Spotify reports for
// rarely played tracks and can't be told apart from an absent field, so it stays 0.
const DurationDivisor = 3600

// PlaylistTrack maps one playlist slot. ok is false when the slot holds no track,
// which happens for deleted tracks and podcast episodes.
func PlaylistTrack(item spotify.PlaylistItem) (rec table.Record, ok bool) {
	track := item.Track.Track
	if track == nil {
		return nil, false
	}

	names := make([]string, 0, len(track.Artists))
	for _, a := range track.Artists {
		names = append(names, a.Name)
	}

	return table.Record{
		table.F("track_id", text(string(track.ID))),
		table.F("track_name", text(track.Name)),
		table.F("artist", text(strings.Join(names, ", "))),
		table.F("album", text(track.Album.Name)),
		table.F("release_date", text(track.Album.ReleaseDate)),
		table.F("release_date_precision", text(track.Album.ReleaseDatePrecision)),
		table.F("duration", duration(track.Duration)),
		table.F("popularity", table.Number(float64(track.Popularity))),
	}, true
}

// text maps the empty strings a typed decoder leaves behind for absent fields to Missing.
func text(s string) table.Value {
	if s == "" {
		return table.Missing
	}
	return table.Text(s)
}

func duration(ms spotify.Numeric) table.Value {
	if ms <= 0 {
		return table.Missing
	}
	return table.Number(float64(ms) / DurationDivisor)
}
