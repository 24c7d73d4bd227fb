package formatter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/samber/lo"
)

// FormatDuration renders a duration as m:ss, or h:mm:ss from one hour up.
func FormatDuration(d time.Duration) string {
	total := int(d.Round(time.Second) / time.Second)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Visibility describes a playlist's public flag, which may be unset.
func Visibility(public *bool) string {
	switch {
	case public == nil:
		return "Unknown"
	case *public:
		return "Public"
	default:
		return "Private"
	}
}

var trackHeaders = []string{"#", "ID", "Title", "Artist", "Album", "Duration", "ISRC"}

func trackRow(i int, t models.Track) []string {
	return []string{strconv.Itoa(i + 1), t.ID, t.Name, t.ArtistNames(), t.Album.Name, FormatDuration(t.Duration), t.ISRC()}
}

// TracksTable lists full tracks.
func TracksTable(title string, tracks []models.Track) Table {
	return Table{
		Title:   title,
		Headers: trackHeaders,
		Rows:    lo.Map(tracks, func(t models.Track, i int) []string { return trackRow(i, t) }),
	}
}

// SimpleTracksTable lists album tracks, numbered by disc and track number.
func SimpleTracksTable(title string, tracks []models.SimpleTrack) Table {
	return Table{
		Title:   title,
		Headers: []string{"#", "ID", "Title", "Artist", "Duration"},
		Rows: lo.Map(tracks, func(t models.SimpleTrack, _ int) []string {
			n := strconv.Itoa(t.TrackNumber)
			if t.DiscNumber > 1 {
				n = fmt.Sprintf("%d-%d", t.DiscNumber, t.TrackNumber)
			}
			return []string{n, t.ID, t.Name, t.ArtistNames(), FormatDuration(t.Duration)}
		}),
	}
}

// AlbumTable shows an album and its first page of tracks.
func AlbumTable(a models.Album) Table {
	t := SimpleTracksTable(a.Name, a.Tracks.Items)
	t.Fields = []Field{
		{"ID", a.ID},
		{"Artist", a.ArtistNames()},
		{"Type", string(a.AlbumType)},
		{"Released", a.ReleaseDate},
		{"Label", a.Label},
		{"Tracks", strconv.Itoa(a.TotalTracks)},
		{"Popularity", strconv.Itoa(a.Popularity)},
	}
	if len(a.Genres) > 0 {
		t.Fields = append(t.Fields, Field{"Genres", strings.Join(a.Genres, ", ")})
	}
	for _, c := range a.Copyrights {
		t.Fields = append(t.Fields, Field{"Copyright " + c.Type.Code(), c.Text})
	}
	return t
}

// AlbumsTable lists simplified albums.
func AlbumsTable(title string, albums []models.SimpleAlbum) Table {
	return Table{
		Title:   title,
		Headers: []string{"#", "ID", "Name", "Artist", "Type", "Released", "Tracks"},
		Rows: lo.Map(albums, func(a models.SimpleAlbum, i int) []string {
			return []string{strconv.Itoa(i + 1), a.ID, a.Name, a.ArtistNames(), string(a.AlbumType), a.ReleaseDate, strconv.Itoa(a.TotalTracks)}
		}),
	}
}

// SavedAlbumsTable lists library albums with the time they were saved.
func SavedAlbumsTable(saved []models.SavedAlbum) Table {
	t := AlbumsTable("Saved Albums", lo.Map(saved, func(s models.SavedAlbum, _ int) models.SimpleAlbum { return s.Album.SimpleAlbum }))
	t.Headers = append(t.Headers, "Added")
	for i, s := range saved {
		t.Rows[i] = append(t.Rows[i], s.AddedAt.Format(time.DateOnly))
	}
	return t
}

// ArtistTable shows an artist profile.
func ArtistTable(a models.Artist) Table {
	return Table{
		Title: a.Name,
		Fields: []Field{
			{"ID", a.ID},
			{"Followers", strconv.Itoa(a.Followers.Total)},
			{"Popularity", strconv.Itoa(a.Popularity)},
			{"Genres", strings.Join(a.Genres, ", ")},
			{"URI", a.URI},
		},
	}
}

// ArtistsTable lists artists.
func ArtistsTable(title string, artists []models.Artist) Table {
	return Table{
		Title:   title,
		Headers: []string{"#", "ID", "Name", "Followers", "Popularity", "Genres"},
		Rows: lo.Map(artists, func(a models.Artist, i int) []string {
			return []string{strconv.Itoa(i + 1), a.ID, a.Name, strconv.Itoa(a.Followers.Total), strconv.Itoa(a.Popularity), strings.Join(a.Genres, ", ")}
		}),
	}
}

// SavedTracksTable lists library tracks with the time they were saved.
func SavedTracksTable(saved []models.SavedTrack) Table {
	t := TracksTable("Saved Tracks", lo.Map(saved, func(s models.SavedTrack, _ int) models.Track { return s.Track }))
	t.Headers = append(slices.Clone(t.Headers), "Added")
	for i, s := range saved {
		t.Rows[i] = append(t.Rows[i], s.AddedAt.Format(time.DateOnly))
	}
	return t
}

// ShowsTable lists shows.
func ShowsTable(title string, shows []models.SimpleShow) Table {
	return Table{
		Title:   title,
		Headers: []string{"#", "ID", "Name", "Publisher", "Episodes"},
		Rows: lo.Map(shows, func(s models.SimpleShow, i int) []string {
			return []string{strconv.Itoa(i + 1), s.ID, s.Name, s.Publisher, strconv.Itoa(s.TotalEpisodes)}
		}),
	}
}

// EpisodesTable lists episodes.
func EpisodesTable(title string, episodes []models.SimpleEpisode) Table {
	return Table{
		Title:   title,
		Headers: []string{"#", "ID", "Name", "Released", "Duration"},
		Rows: lo.Map(episodes, func(e models.SimpleEpisode, i int) []string {
			return []string{strconv.Itoa(i + 1), e.ID, e.Name, e.ReleaseDate, FormatDuration(e.Duration)}
		}),
	}
}

// PlaylistsTable lists playlists.
func PlaylistsTable(title string, playlists []models.SimplePlaylist) Table {
	return Table{
		Title:   title,
		Headers: []string{"#", "ID", "Name", "Owner", "Tracks", "Visibility"},
		Rows: lo.Map(playlists, func(p models.SimplePlaylist, i int) []string {
			return []string{strconv.Itoa(i + 1), p.ID, p.Name, p.Owner.DisplayName, strconv.Itoa(p.Tracks.Total), Visibility(p.Public)}
		}),
	}
}

// PlaylistTable shows a playlist and the given items, which may span several pages.
func PlaylistTable(p models.Playlist, items []models.PlaylistTrack) Table {
	fields := []Field{
		{"ID", p.ID},
		{"Owner", p.Owner.DisplayName},
		{"Tracks", strconv.Itoa(p.Tracks.Total)},
		{"Followers", strconv.Itoa(p.Followers.Total)},
		{"Visibility", Visibility(p.Public)},
	}
	if p.Description != "" {
		fields = append([]Field{{"Description", p.Description}}, fields...)
	}

	return Table{
		Title:   p.Name,
		Fields:  fields,
		Headers: []string{"#", "Type", "ID", "Title", "Artist", "Duration", "Added"},
		Rows: lo.Map(items, func(item models.PlaylistTrack, i int) []string {
			row := []string{strconv.Itoa(i + 1), string(item.Type()), "", item.Name(), "", "", ""}
			switch {
			case item.Track != nil:
				row[2], row[4], row[5] = item.Track.ID, item.Track.ArtistNames(), FormatDuration(item.Track.Duration)
			case item.Episode != nil:
				row[2], row[4], row[5] = item.Episode.ID, item.Episode.Show.Name, FormatDuration(item.Episode.Duration)
			}
			if !item.AddedAt.IsZero() {
				row[6] = item.AddedAt.Format(time.DateOnly)
			}
			return row
		}),
	}
}

// SearchTables renders one table per searched type, in result order.
func SearchTables(results []models.SearchResult) []Table {
	return lo.Map(results, func(r models.SearchResult, _ int) Table {
		title := fmt.Sprintf("%ss (%d total)", titleCase(string(r.Type)), r.Total())
		switch {
		case r.Albums != nil:
			return AlbumsTable(title, r.Albums.Items)
		case r.Artists != nil:
			return ArtistsTable(title, r.Artists.Items)
		case r.Tracks != nil:
			return TracksTable(title, r.Tracks.Items)
		case r.Shows != nil:
			return ShowsTable(title, r.Shows.Items)
		case r.Episodes != nil:
			return EpisodesTable(title, r.Episodes.Items)
		default:
			return Table{Title: title}
		}
	})
}

// UserTable shows a user profile. Private fields are included when known.
func UserTable(u models.PrivateUser) Table {
	t := Table{
		Title: u.DisplayName,
		Fields: []Field{
			{"ID", u.ID},
			{"Followers", strconv.Itoa(u.Followers.Total)},
			{"URI", u.URI},
		},
	}
	if t.Title == "" {
		t.Title = u.ID
	}
	for _, f := range []Field{{"Email", u.Email}, {"Country", u.Country}, {"Product", u.Product}} {
		if f.Value != "" {
			t.Fields = append(t.Fields, f)
		}
	}
	return t
}

// CategoriesTable lists browse categories.
func CategoriesTable(categories []models.Category) Table {
	return Table{
		Title:   "Categories",
		Headers: []string{"ID", "Name"},
		Rows:    lo.Map(categories, func(c models.Category, _ int) []string { return []string{c.ID, c.Name} }),
	}
}

// AudioFeaturesTable lists the audio features of tracks.
func AudioFeaturesTable(features []models.AudioFeatures) Table {
	f2 := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	return Table{
		Title:   "Audio Features",
		Headers: []string{"ID", "Key", "Mode", "Tempo", "Energy", "Danceability", "Valence", "Duration"},
		Rows: lo.Map(features, func(a models.AudioFeatures, _ int) []string {
			return []string{a.ID, a.Key.String(), a.Mode.String(), f2(a.Tempo), f2(a.Energy), f2(a.Danceability), f2(a.Valence), FormatDuration(a.Duration)}
		}),
	}
}

// ListTable is a single column of values, such as markets or genre seeds.
func ListTable(title, header string, values []string) Table {
	return Table{
		Title:   title,
		Headers: []string{header},
		Rows:    lo.Map(values, func(v string, _ int) []string { return []string{v} }),
	}
}

// ChecksTable pairs IDs with the answers of a contains endpoint.
func ChecksTable(title string, ids []string, answers []bool) Table {
	return Table{
		Title:   title,
		Headers: []string{"ID", title},
		Rows: lo.Map(ids, func(id string, i int) []string {
			return []string{id, strconv.FormatBool(i < len(answers) && answers[i])}
		}),
	}
}

// SessionsTable lists stored sessions without their tokens.
func SessionsTable(sessions []*models.Session, now time.Time) Table {
	return Table{
		Title:   "Sessions",
		Headers: []string{"Name", "Flow", "User", "Scopes", "Expires", "Refreshable"},
		Rows: lo.Map(sessions, func(s *models.Session, _ int) []string {
			cred := s.Credential()
			expires := "never"
			switch {
			case cred.ExpiresAt.IsZero():
			case cred.Expired(now):
				expires = "expired"
			default:
				expires = cred.ExpiresAt.Local().Format(time.DateTime)
			}
			return []string{s.Name(), string(s.Flow()), s.UserID(), strconv.Itoa(len(cred.Scopes)), expires, strconv.FormatBool(cred.CanRefresh())}
		}),
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
