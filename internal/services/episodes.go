package services

import (
	"context"

	"github.com/desertthunder/spotx/internal/models"
)

// GetEpisode retrieves a podcast episode. Supports [Market].
func (s *SpotifyService) GetEpisode(ctx context.Context, id string, opts ...RequestOption) (*models.Episode, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	o := processOptions(opts...)

	w, err := get[episodeJSON](ctx, s, apiPath("episodes", id), o.query("market"))
	if err != nil {
		return nil, err
	}
	episode := episodeFromJSON(w)
	return &episode, nil
}

// GetEpisodes retrieves up to 50 episodes. Unknown IDs are omitted. Supports [Market].
func (s *SpotifyService) GetEpisodes(ctx context.Context, ids []string, opts ...RequestOption) ([]models.Episode, error) {
	if err := validateIDs("ids", ids, maxBatchIDs); err != nil {
		return nil, err
	}
	o := processOptions(opts...)

	response, err := get[episodesEnvelope](ctx, s, "/episodes", idsQuery(ids, o.query("market")))
	if err != nil {
		return nil, err
	}
	return mapPresent(response.Episodes, episodeFromJSON), nil
}
