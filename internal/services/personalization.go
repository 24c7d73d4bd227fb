package services

import (
	"context"

	"github.com/desertthunder/spotx/internal/models"
)

var timeRanges = []models.TimeRange{models.TimeRangeShort, models.TimeRangeMedium, models.TimeRangeLong}

func topQueryOptions(opts []RequestOption) (requestOptions, error) {
	o := processOptions(opts...)
	if o.timeRange != "" {
		if err := validateEnum("time_range", timeRanges, o.timeRange); err != nil {
			return o, err
		}
	}
	return o, o.validatePage(maxPageLimit)
}

// GetTopArtists retrieves the current user's top artists. Supports [WithTimeRange], [Limit] (1-50) and [Offset].
func (s *SpotifyService) GetTopArtists(ctx context.Context, opts ...RequestOption) (*models.Paging[models.Artist], error) {
	o, err := topQueryOptions(opts)
	if err != nil {
		return nil, err
	}

	w, err := get[pagingJSON[artistJSON]](ctx, s, "/me/top/artists", o.query("time_range", "limit", "offset"))
	if err != nil {
		return nil, err
	}
	page := pagingFromJSON(w, artistFromJSON)
	return &page, nil
}

// GetTopTracks retrieves the current user's top tracks. Supports [WithTimeRange], [Limit] (1-50) and [Offset].
func (s *SpotifyService) GetTopTracks(ctx context.Context, opts ...RequestOption) (*models.Paging[models.Track], error) {
	o, err := topQueryOptions(opts)
	if err != nil {
		return nil, err
	}

	w, err := get[pagingJSON[trackJSON]](ctx, s, "/me/top/tracks", o.query("time_range", "limit", "offset"))
	if err != nil {
		return nil, err
	}
	page := pagingFromJSON(w, trackFromJSON)
	return &page, nil
}
