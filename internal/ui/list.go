package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/spotx/internal/formatter"
	"github.com/desertthunder/spotx/internal/models"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = entryItem{}
)

// playlistItem wraps [models.SimplePlaylist] to implement [list.Item].
// marked is shared with the model so toggling needs no list rebuild.
type playlistItem struct {
	playlist models.SimplePlaylist
	marked   map[string]bool
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string {
	if i.marked[i.playlist.ID] {
		return styles.mark.Render("● ") + i.playlist.Name
	}
	return i.playlist.Name
}
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d items • %s", i.playlist.Tracks.Total, i.playlist.Owner.DisplayName)
	if i.playlist.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.playlist.Description)
	}
	return desc
}

// entryItem wraps [models.PlaylistTrack] to implement [list.Item].
type entryItem struct {
	entry models.PlaylistTrack
}

func (i entryItem) FilterValue() string { return i.entry.Name() }
func (i entryItem) Title() string {
	if name := i.entry.Name(); name != "" {
		return name
	}
	return "(unavailable)"
}
func (i entryItem) Description() string {
	switch {
	case i.entry.Track != nil:
		t := i.entry.Track
		return fmt.Sprintf("%s • %s • %s", t.ArtistNames(), t.Album.Name, formatter.FormatDuration(t.Duration))
	case i.entry.Episode != nil:
		e := i.entry.Episode
		return fmt.Sprintf("%s • %s", e.Show.Name, formatter.FormatDuration(e.Duration))
	default:
		return ""
	}
}
