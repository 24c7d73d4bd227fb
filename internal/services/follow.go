package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/desertthunder/spotx/internal/models"
)

var followIDTypes = []models.IDType{models.IDTypeArtist, models.IDTypeUser}

func followQuery(idType models.IDType, ids []string) (url.Values, error) {
	if err := validateEnum("type", followIDTypes, idType); err != nil {
		return nil, err
	}
	if err := validateIDs("ids", ids, maxBatchIDs); err != nil {
		return nil, err
	}
	return idsQuery(ids, url.Values{"type": {string(idType)}}), nil
}

// IsFollowing reports, per ID, whether the current user follows the artists or users.
func (s *SpotifyService) IsFollowing(ctx context.Context, idType models.IDType, ids []string) ([]bool, error) {
	query, err := followQuery(idType, ids)
	if err != nil {
		return nil, err
	}
	return get[[]bool](ctx, s, "/me/following/contains", query)
}

// Follow adds the artists or users to the current user's follows.
func (s *SpotifyService) Follow(ctx context.Context, idType models.IDType, ids []string) error {
	query, err := followQuery(idType, ids)
	if err != nil {
		return err
	}
	return s.expectStatus(ctx, http.MethodPut, "/me/following", query, nil, http.StatusNoContent)
}

// Unfollow removes the artists or users from the current user's follows.
func (s *SpotifyService) Unfollow(ctx context.Context, idType models.IDType, ids []string) error {
	query, err := followQuery(idType, ids)
	if err != nil {
		return err
	}
	return s.expectStatus(ctx, http.MethodDelete, "/me/following", query, nil, http.StatusNoContent)
}

// GetFollowedArtists retrieves a cursor page of followed artists. Supports [After] and [Limit] (1-50).
func (s *SpotifyService) GetFollowedArtists(ctx context.Context, opts ...RequestOption) (*models.CursorPaging[models.Artist], error) {
	o := processOptions(opts...)
	if err := o.validateLimit(1, maxPageLimit); err != nil {
		return nil, err
	}

	query := o.query("after", "limit")
	query.Set("type", string(models.IDTypeArtist))

	response, err := get[followedArtistsEnvelope](ctx, s, "/me/following", query)
	if err != nil {
		return nil, err
	}
	page := cursorPagingFromJSON(response.Artists, artistFromJSON)
	return &page, nil
}

// FollowPlaylist adds the current user as a follower of a playlist, publicly or privately.
func (s *SpotifyService) FollowPlaylist(ctx context.Context, playlistID string, public bool) error {
	if err := requireID("playlist_id", playlistID); err != nil {
		return err
	}
	body := struct {
		Public bool `json:"public"`
	}{public}
	return s.expectStatus(ctx, http.MethodPut, apiPath("playlists", playlistID, "followers"), nil, body, http.StatusOK)
}

// UnfollowPlaylist removes the current user as a follower of a playlist.
func (s *SpotifyService) UnfollowPlaylist(ctx context.Context, playlistID string) error {
	if err := requireID("playlist_id", playlistID); err != nil {
		return err
	}
	return s.expectStatus(ctx, http.MethodDelete, apiPath("playlists", playlistID, "followers"), nil, nil, http.StatusOK)
}

// UsersFollowPlaylist reports, per user ID (up to 5), whether the user follows the playlist.
func (s *SpotifyService) UsersFollowPlaylist(ctx context.Context, playlistID string, userIDs []string) ([]bool, error) {
	if err := requireID("playlist_id", playlistID); err != nil {
		return nil, err
	}
	if err := validateIDs("ids", userIDs, maxPlaylistFollowerIDs); err != nil {
		return nil, err
	}
	return get[[]bool](ctx, s, apiPath("playlists", playlistID, "followers", "contains"), idsQuery(userIDs, nil))
}
