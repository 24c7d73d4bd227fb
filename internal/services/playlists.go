package services

import (
	"context"

	"github.com/desertthunder/spotx/internal/models"
)

var playlistItemTypes = []models.ObjectType{models.ObjectTypeTrack, models.ObjectTypeEpisode}

// GetPlaylist retrieves a playlist by ID with its first page of items.
// Supports [Market], [Fields] and [AdditionalTypes].
func (s *SpotifyService) GetPlaylist(ctx context.Context, id string, opts ...RequestOption) (*models.Playlist, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	o := processOptions(opts...)
	if err := validateEnum("additional_types", playlistItemTypes, o.additionalTypes...); err != nil {
		return nil, err
	}

	w, err := get[playlistJSON](ctx, s, apiPath("playlists", id), o.query("market", "fields", "additional_types"))
	if err != nil {
		return nil, err
	}
	playlist := playlistFromJSON(w)
	return &playlist, nil
}

// GetPlaylistItems retrieves a page of a playlist's tracks and episodes.
// Supports [Market], [Fields], [AdditionalTypes], [Limit] (1-100) and [Offset].
func (s *SpotifyService) GetPlaylistItems(ctx context.Context, id string, opts ...RequestOption) (*models.Paging[models.PlaylistTrack], error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	o := processOptions(opts...)
	if err := validateEnum("additional_types", playlistItemTypes, o.additionalTypes...); err != nil {
		return nil, err
	}
	if err := o.validatePage(maxPlaylistItemsLimit); err != nil {
		return nil, err
	}

	w, err := get[pagingJSON[playlistTrackJSON]](ctx, s, apiPath("playlists", id, "tracks"),
		o.query("market", "fields", "additional_types", "limit", "offset"))
	if err != nil {
		return nil, err
	}
	page := pagingFromJSON(w, playlistTrackFromJSON)
	return &page, nil
}

// GetCurrentUserPlaylists retrieves the current user's playlists with pagination. Supports [Limit] (1-50) and [Offset].
func (s *SpotifyService) GetCurrentUserPlaylists(ctx context.Context, opts ...RequestOption) (*models.Paging[models.SimplePlaylist], error) {
	o := processOptions(opts...)
	if err := o.validatePage(maxPageLimit); err != nil {
		return nil, err
	}

	w, err := get[pagingJSON[simplePlaylistJSON]](ctx, s, "/me/playlists", o.query("limit", "offset"))
	if err != nil {
		return nil, err
	}
	page := pagingFromJSON(w, simplePlaylistFromJSON)
	return &page, nil
}

// GetUserPlaylists retrieves a user's public playlists. Supports [Limit] (1-50) and [Offset].
func (s *SpotifyService) GetUserPlaylists(ctx context.Context, userID string, opts ...RequestOption) (*models.Paging[models.SimplePlaylist], error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}
	o := processOptions(opts...)
	if err := o.validatePage(maxPageLimit); err != nil {
		return nil, err
	}

	w, err := get[pagingJSON[simplePlaylistJSON]](ctx, s, apiPath("users", userID, "playlists"), o.query("limit", "offset"))
	if err != nil {
		return nil, err
	}
	page := pagingFromJSON(w, simplePlaylistFromJSON)
	return &page, nil
}

// GetPlaylistCoverImage retrieves the cover images of a playlist.
func (s *SpotifyService) GetPlaylistCoverImage(ctx context.Context, id string) ([]models.Image, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}

	w, err := get[[]imageJSON](ctx, s, apiPath("playlists", id, "images"), nil)
	if err != nil {
		return nil, err
	}
	return imagesFromJSON(w), nil
}

// AllCurrentUserPlaylists walks every page of the current user's playlists.
func (s *SpotifyService) AllCurrentUserPlaylists(ctx context.Context) ([]models.SimplePlaylist, error) {
	var all []models.SimplePlaylist
	offset := 0

	for {
		page, err := s.GetCurrentUserPlaylists(ctx, Limit(maxPageLimit), Offset(offset))
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)

		if !page.HasNext() || len(page.Items) == 0 {
			break
		}
		offset = page.NextOffset()
	}

	return all, nil
}
