package services

import (
	"context"

	"github.com/desertthunder/spotx/internal/models"
)

// GetShow retrieves a podcast show with its first page of episodes. Supports [Market].
func (s *SpotifyService) GetShow(ctx context.Context, id string, opts ...RequestOption) (*models.Show, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	o := processOptions(opts...)

	w, err := get[showJSON](ctx, s, apiPath("shows", id), o.query("market"))
	if err != nil {
		return nil, err
	}
	show := showFromJSON(w)
	return &show, nil
}

// GetShows retrieves up to 50 shows. Unknown IDs are omitted. Supports [Market].
func (s *SpotifyService) GetShows(ctx context.Context, ids []string, opts ...RequestOption) ([]models.SimpleShow, error) {
	if err := validateIDs("ids", ids, maxBatchIDs); err != nil {
		return nil, err
	}
	o := processOptions(opts...)

	response, err := get[showsEnvelope](ctx, s, "/shows", idsQuery(ids, o.query("market")))
	if err != nil {
		return nil, err
	}
	return mapPresent(response.Shows, simpleShowFromJSON), nil
}

// GetShowEpisodes retrieves a page of a show's episodes. Supports [Market], [Limit] (1-50) and [Offset].
func (s *SpotifyService) GetShowEpisodes(ctx context.Context, id string, opts ...RequestOption) (*models.Paging[models.SimpleEpisode], error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	o := processOptions(opts...)
	if err := o.validatePage(maxPageLimit); err != nil {
		return nil, err
	}

	w, err := get[pagingJSON[simpleEpisodeJSON]](ctx, s, apiPath("shows", id, "episodes"), o.query("market", "limit", "offset"))
	if err != nil {
		return nil, err
	}
	page := pagingFromJSON(w, simpleEpisodeFromJSON)
	return &page, nil
}
