package models

import "time"

// SavedAlbum is an album in the current user's library.
type SavedAlbum struct {
	AddedAt time.Time
	Album   Album
}

// SavedTrack is a track in the current user's library.
type SavedTrack struct {
	AddedAt time.Time
	Track   Track
}

// SavedShow is a show the current user follows.
type SavedShow struct {
	AddedAt time.Time
	Show    SimpleShow
}
