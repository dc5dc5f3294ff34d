package mapper

import (
	"fmt"

	"github.com/desertthunder/tracktab/internal/table"
)

// Kind names the entity an item is mapped as.
type Kind int

const (
	KindTrack Kind = iota
	KindArtist
	KindAlbum
	KindGenre
)

func (k Kind) String() string {
	switch k {
	case KindTrack:
		return "track"
	case KindArtist:
		return "artist"
	case KindAlbum:
		return "album"
	case KindGenre:
		return "genre"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Columns coerced to numbers when building tables of each kind.
var (
	ArtistNumeric = []string{"nb_albums", "nb_fans"}
	AlbumNumeric  = []string{"nb_tracks"}
)

// Track maps a Deezer track (search or chart item).
func Track(item Object) table.Record {
	return table.Record{
		table.F("track_id", Get(item, "id")),
		table.F("track_title", Get(item, "title")),
		table.F("duration_sec", Get(item, "duration")),
		table.F("rank", Get(item, "rank")),
		table.F("artist_name", Get(item, "artist", "name")),
		table.F("album_title", Get(item, "album", "title")),
	}
}

// Artist maps a Deezer artist search item.
func Artist(item Object) table.Record {
	return table.Record{
		table.F("artist_id", Get(item, "id")),
		table.F("artist_name", Get(item, "name")),
		table.F("nb_albums", Get(item, "nb_album")),
		table.F("nb_fans", Get(item, "nb_fan")),
		table.F("radio", Get(item, "radio")),
		table.F("tracklist_url", Get(item, "tracklist")),
	}
}

// Album maps a Deezer album search item. record_type is album, single, ep or compile.
func Album(item Object) table.Record {
	artist := Child(item, "artist")
	return table.Record{
		table.F("album_id", Get(item, "id")),
		table.F("album_title", Get(item, "title")),
		table.F("release_date", Get(item, "release_date")),
		table.F("nb_tracks", Get(item, "nb_tracks")),
		table.F("artist_id", Get(artist, "id")),
		table.F("artist_name", Get(artist, "name")),
		table.F("record_type", Get(item, "record_type")),
		table.F("explicit_lyrics", Get(item, "explicit_lyrics")),
	}
}

// Genre maps a Deezer genre.
func Genre(item Object) table.Record {
	return table.Record{
		table.F("genre_id", Get(item, "id")),
		table.F("genre_name", Get(item, "name")),
	}
}

// Map dispatches on kind. Unknown kinds map to an empty record.
func Map(kind Kind, item Object) table.Record {
	switch kind {
	case KindTrack:
		return Track(item)
	case KindArtist:
		return Artist(item)
	case KindAlbum:
		return Album(item)
	case KindGenre:
		return Genre(item)
	default:
		return table.Record{}
	}
}

// numericColumns returns the columns coerced for kind.
func numericColumns(kind Kind) []string {
	switch kind {
	case KindArtist:
		return ArtistNumeric
	case KindAlbum:
		return AlbumNumeric
	default:
		return nil
	}
}

// ParseTable maps every item of a response body as kind and builds a table.
func ParseTable(kind Kind, body Object) *table.Table {
	items := Items(body)
	records := make([]table.Record, 0, len(items))
	for _, it := range items {
		records = append(records, Map(kind, it))
	}
	return table.Build(records, numericColumns(kind)...)
}

// TracksTable builds a track table from a search or chart response.
func TracksTable(body Object) *table.Table { return ParseTable(KindTrack, body) }

// ArtistsTable builds an artist table with nb_albums and nb_fans coerced to numbers.
func ArtistsTable(body Object) *table.Table { return ParseTable(KindArtist, body) }

// AlbumsTable builds an album table with nb_tracks coerced to numbers.
func AlbumsTable(body Object) *table.Table { return ParseTable(KindAlbum, body) }

// GenresTable builds a genre table from the genre listing.
func GenresTable(body Object) *table.Table { return ParseTable(KindGenre, body) }
