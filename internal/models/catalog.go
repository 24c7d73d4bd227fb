package models

import (
	"strings"
	"time"
)

// SimpleArtist is the artist reference embedded in albums and tracks.
type SimpleArtist struct {
	ID           string
	Name         string
	URI          string
	Href         string
	Type         ObjectType
	ExternalURLs map[string]string
}

// Artist is the full artist object.
type Artist struct {
	SimpleArtist
	Followers  Followers
	Genres     []string
	Images     []Image
	Popularity int
}

// SimpleAlbum is the album reference embedded in tracks and listings.
type SimpleAlbum struct {
	ID                   string
	Name                 string
	URI                  string
	Href                 string
	AlbumType            AlbumType
	AlbumGroup           AlbumGroup // only set by the artist albums endpoint
	TotalTracks          int
	AvailableMarkets     []string
	Artists              []SimpleArtist
	Images               []Image
	ReleaseDate          string
	ReleaseDatePrecision ReleaseDatePrecision
	Restrictions         *Restrictions
	ExternalURLs         map[string]string
}

// ArtistNames joins the names of the album's artists.
func (a SimpleAlbum) ArtistNames() string { return joinArtists(a.Artists) }

// Album is the full album object including its first page of tracks.
type Album struct {
	SimpleAlbum
	Copyrights  []Copyright
	ExternalIDs map[string]string
	Genres      []string
	Label       string
	Popularity  int
	Tracks      Paging[SimpleTrack]
}

// TrackLink identifies the originally requested track when track relinking replaced it.
type TrackLink struct {
	ID           string
	URI          string
	Href         string
	ExternalURLs map[string]string
}

// SimpleTrack is the track object embedded in albums.
type SimpleTrack struct {
	ID               string
	Name             string
	URI              string
	Href             string
	PreviewURL       string
	Artists          []SimpleArtist
	AvailableMarkets []string
	DiscNumber       int
	TrackNumber      int
	Duration         time.Duration
	Explicit         bool
	IsLocal          bool
	IsPlayable       bool
	LinkedFrom       *TrackLink
	Restrictions     *Restrictions
	ExternalURLs     map[string]string
}

// ArtistNames joins the names of the track's artists.
func (t SimpleTrack) ArtistNames() string { return joinArtists(t.Artists) }

// Track is the full track object.
type Track struct {
	SimpleTrack
	Album       SimpleAlbum
	ExternalIDs map[string]string
	Popularity  int
}

// ISRC returns the International Standard Recording Code if the API reported one.
func (t Track) ISRC() string { return t.ExternalIDs["isrc"] }

func joinArtists(artists []SimpleArtist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}
