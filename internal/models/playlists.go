package models

import "time"

// PlaylistTracksRef points at the items of a playlist without including them.
type PlaylistTracksRef struct {
	Href  string
	Total int
}

// SimplePlaylist is the playlist object returned by listings.
type SimplePlaylist struct {
	ID            string
	Name          string
	Description   string
	SnapshotID    string
	URI           string
	Href          string
	Collaborative bool
	Public        *bool // nil when the owner has not set it
	Images        []Image
	Owner         PublicUser
	Tracks        PlaylistTracksRef
	ExternalURLs  map[string]string
}

// Playlist is the full playlist object with its first page of items.
type Playlist struct {
	ID            string
	Name          string
	Description   string
	SnapshotID    string
	URI           string
	Href          string
	Collaborative bool
	Public        *bool
	Images        []Image
	Owner         PublicUser
	Followers     Followers
	Tracks        Paging[PlaylistTrack]
	ExternalURLs  map[string]string
}

// PlaylistTrack is one entry of a playlist. Exactly one of Track and Episode is set
// unless the item has been removed from the catalog, in which case both are nil.
type PlaylistTrack struct {
	AddedAt time.Time
	AddedBy *PublicUser
	IsLocal bool
	Track   *Track
	Episode *Episode
}

// Type reports which kind of item the entry holds.
func (p PlaylistTrack) Type() ObjectType {
	switch {
	case p.Track != nil:
		return ObjectTypeTrack
	case p.Episode != nil:
		return ObjectTypeEpisode
	default:
		return ""
	}
}

// Name is the title of the held item.
func (p PlaylistTrack) Name() string {
	switch {
	case p.Track != nil:
		return p.Track.Name
	case p.Episode != nil:
		return p.Episode.Name
	default:
		return ""
	}
}
