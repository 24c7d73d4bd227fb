package services

import (
	"context"

	"github.com/desertthunder/spotx/internal/models"
)

// GetArtist retrieves an artist by ID.
func (s *SpotifyService) GetArtist(ctx context.Context, id string) (*models.Artist, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}

	w, err := get[artistJSON](ctx, s, apiPath("artists", id), nil)
	if err != nil {
		return nil, err
	}
	artist := artistFromJSON(w)
	return &artist, nil
}

// GetArtists retrieves up to 50 artists. Unknown IDs are omitted from the result.
func (s *SpotifyService) GetArtists(ctx context.Context, ids []string) ([]models.Artist, error) {
	if err := validateIDs("ids", ids, maxBatchIDs); err != nil {
		return nil, err
	}

	response, err := get[artistsEnvelope](ctx, s, "/artists", idsQuery(ids, nil))
	if err != nil {
		return nil, err
	}
	return mapPresent(response.Artists, artistFromJSON), nil
}

// GetArtistAlbums retrieves a page of an artist's albums.
// Supports [IncludeGroups], [Market], [Limit] (1-50) and [Offset].
func (s *SpotifyService) GetArtistAlbums(ctx context.Context, id string, opts ...RequestOption) (*models.Paging[models.SimpleAlbum], error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	o := processOptions(opts...)
	if err := validateEnum("include_groups", models.IncludeGroups, o.includeGroups...); err != nil {
		return nil, err
	}
	if err := o.validatePage(maxPageLimit); err != nil {
		return nil, err
	}

	w, err := get[pagingJSON[simpleAlbumJSON]](ctx, s, apiPath("artists", id, "albums"), o.query("include_groups", "market", "limit", "offset"))
	if err != nil {
		return nil, err
	}
	page := pagingFromJSON(w, simpleAlbumFromJSON)
	return &page, nil
}

// GetArtistTopTracks retrieves an artist's top tracks in market, which is required.
func (s *SpotifyService) GetArtistTopTracks(ctx context.Context, id, market string) ([]models.Track, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	if err := requireID("market", market); err != nil {
		return nil, err
	}

	response, err := get[tracksEnvelope](ctx, s, apiPath("artists", id, "top-tracks"), processOptions(Market(market)).query("market"))
	if err != nil {
		return nil, err
	}
	return mapPresent(response.Tracks, trackFromJSON), nil
}

// GetArtistRelatedArtists retrieves artists similar to the given one.
func (s *SpotifyService) GetArtistRelatedArtists(ctx context.Context, id string) ([]models.Artist, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}

	response, err := get[artistsEnvelope](ctx, s, apiPath("artists", id, "related-artists"), nil)
	if err != nil {
		return nil, err
	}
	return mapPresent(response.Artists, artistFromJSON), nil
}
