package services

import (
	"context"

	"github.com/desertthunder/spotx/internal/models"
)

// GetAlbum retrieves an album by ID. Supports [Market].
func (s *SpotifyService) GetAlbum(ctx context.Context, id string, opts ...RequestOption) (*models.Album, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	o := processOptions(opts...)

	w, err := get[albumJSON](ctx, s, apiPath("albums", id), o.query("market"))
	if err != nil {
		return nil, err
	}
	album := albumFromJSON(w)
	return &album, nil
}

// GetAlbums retrieves up to 20 albums. Unknown IDs are omitted from the result. Supports [Market].
func (s *SpotifyService) GetAlbums(ctx context.Context, ids []string, opts ...RequestOption) ([]models.Album, error) {
	if err := validateIDs("ids", ids, maxAlbumIDs); err != nil {
		return nil, err
	}
	o := processOptions(opts...)

	response, err := get[albumsEnvelope](ctx, s, "/albums", idsQuery(ids, o.query("market")))
	if err != nil {
		return nil, err
	}
	return mapPresent(response.Albums, albumFromJSON), nil
}

// GetAlbumTracks retrieves a page of an album's tracks. Supports [Limit] (1-50), [Offset] and [Market].
func (s *SpotifyService) GetAlbumTracks(ctx context.Context, id string, opts ...RequestOption) (*models.Paging[models.SimpleTrack], error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	o := processOptions(opts...)
	if err := o.validatePage(maxPageLimit); err != nil {
		return nil, err
	}

	w, err := get[pagingJSON[simpleTrackJSON]](ctx, s, apiPath("albums", id, "tracks"), o.query("limit", "offset", "market"))
	if err != nil {
		return nil, err
	}
	page := pagingFromJSON(w, simpleTrackFromJSON)
	return &page, nil
}
