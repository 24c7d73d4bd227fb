package services

import (
	"context"
	"strings"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/samber/lo"
)

// GetCategory retrieves a browse category. Supports [Country] and [Locale].
func (s *SpotifyService) GetCategory(ctx context.Context, id string, opts ...RequestOption) (*models.Category, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	o := processOptions(opts...)

	w, err := get[categoryJSON](ctx, s, apiPath("browse", "categories", id), o.query("country", "locale"))
	if err != nil {
		return nil, err
	}
	category := categoryFromJSON(w)
	return &category, nil
}

// GetCategories retrieves a page of browse categories. Supports [Country], [Locale], [Limit] (1-50) and [Offset].
func (s *SpotifyService) GetCategories(ctx context.Context, opts ...RequestOption) (*models.Paging[models.Category], error) {
	o := processOptions(opts...)
	if err := o.validatePage(maxPageLimit); err != nil {
		return nil, err
	}

	response, err := get[categoriesEnvelope](ctx, s, "/browse/categories", o.query("country", "locale", "limit", "offset"))
	if err != nil {
		return nil, err
	}
	page := pagingFromJSON(response.Categories, categoryFromJSON)
	return &page, nil
}

// GetCategoryPlaylists retrieves a page of playlists tagged with a category. Supports [Country], [Limit] (1-50) and [Offset].
func (s *SpotifyService) GetCategoryPlaylists(ctx context.Context, id string, opts ...RequestOption) (*models.Paging[models.SimplePlaylist], error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	o := processOptions(opts...)
	if err := o.validatePage(maxPageLimit); err != nil {
		return nil, err
	}

	response, err := get[playlistsPageEnvelope](ctx, s, apiPath("browse", "categories", id, "playlists"), o.query("country", "limit", "offset"))
	if err != nil {
		return nil, err
	}
	page := pagingFromJSON(response.Playlists, simplePlaylistFromJSON)
	return &page, nil
}

// GetFeaturedPlaylists retrieves editorial playlists with their localized message.
// Supports [Country], [Locale], [Timestamp], [Limit] (1-50) and [Offset].
func (s *SpotifyService) GetFeaturedPlaylists(ctx context.Context, opts ...RequestOption) (*models.FeaturedPlaylists, error) {
	o := processOptions(opts...)
	if err := o.validatePage(maxPageLimit); err != nil {
		return nil, err
	}

	response, err := get[playlistsPageEnvelope](ctx, s, "/browse/featured-playlists", o.query("country", "locale", "timestamp", "limit", "offset"))
	if err != nil {
		return nil, err
	}
	return &models.FeaturedPlaylists{
		Message:   response.Message,
		Playlists: pagingFromJSON(response.Playlists, simplePlaylistFromJSON),
	}, nil
}

// GetNewReleases retrieves a page of new album releases. Supports [Country], [Limit] (1-50) and [Offset].
func (s *SpotifyService) GetNewReleases(ctx context.Context, opts ...RequestOption) (*models.Paging[models.SimpleAlbum], error) {
	o := processOptions(opts...)
	if err := o.validatePage(maxPageLimit); err != nil {
		return nil, err
	}

	response, err := get[albumsPageEnvelope](ctx, s, "/browse/new-releases", o.query("country", "limit", "offset"))
	if err != nil {
		return nil, err
	}
	page := pagingFromJSON(response.Albums, simpleAlbumFromJSON)
	return &page, nil
}

// Seeds are the inputs of a recommendations request. At least one and at most five seeds in total are allowed.
type Seeds struct {
	Artists []string
	Genres  []string
	Tracks  []string
}

func (s Seeds) all() []string { return append(append(append([]string{}, s.Artists...), s.Genres...), s.Tracks...) }

func (s Seeds) validate() error {
	all := s.all()
	if len(all) == 0 {
		return invalid("seeds", "at least one seed artist, genre or track is required")
	}
	if lo.ContainsBy(all, func(seed string) bool { return strings.TrimSpace(seed) == "" }) {
		return invalid("seeds", "seeds must not be empty")
	}
	if len(all) > maxRecommendationSeeds {
		return invalid("seeds", "%d seeds given, at most %d allowed", len(all), maxRecommendationSeeds)
	}
	return nil
}

var tunableAttributes = []string{
	"acousticness", "danceability", "duration_ms", "energy", "instrumentalness", "key", "liveness",
	"loudness", "mode", "popularity", "speechiness", "tempo", "time_signature", "valence",
}

func validateAttribute(key string) error {
	for _, prefix := range []string{"min_", "max_", "target_"} {
		if name, ok := strings.CutPrefix(key, prefix); ok && lo.Contains(tunableAttributes, name) {
			return nil
		}
	}
	return invalid("attribute", "%q is not a tunable track attribute", key)
}

// GetRecommendations generates tracks from seeds. Supports [Limit] (1-100), [Market] and [TrackAttribute].
func (s *SpotifyService) GetRecommendations(ctx context.Context, seeds Seeds, opts ...RequestOption) (*models.Recommendations, error) {
	if err := seeds.validate(); err != nil {
		return nil, err
	}
	o := processOptions(opts...)
	if err := o.validateLimit(1, maxRecommendationsLimit); err != nil {
		return nil, err
	}
	for key := range o.attributes {
		if err := validateAttribute(key); err != nil {
			return nil, err
		}
	}

	query := o.query(append([]string{"limit", "market"}, lo.Keys(o.attributes)...)...)
	setList(query, "seed_artists", seeds.Artists)
	setList(query, "seed_genres", seeds.Genres)
	setList(query, "seed_tracks", seeds.Tracks)

	w, err := get[recommendationsJSON](ctx, s, "/recommendations", query)
	if err != nil {
		return nil, err
	}
	recs := recommendationsFromJSON(w)
	return &recs, nil
}

// GetAvailableGenreSeeds lists the genres accepted as recommendation seeds.
func (s *SpotifyService) GetAvailableGenreSeeds(ctx context.Context) ([]string, error) {
	response, err := get[genresEnvelope](ctx, s, "/recommendations/available-genre-seeds", nil)
	if err != nil {
		return nil, err
	}
	return response.Genres, nil
}

// GetAvailableMarkets lists the markets where Spotify is available.
func (s *SpotifyService) GetAvailableMarkets(ctx context.Context) ([]string, error) {
	response, err := get[marketsEnvelope](ctx, s, "/markets", nil)
	if err != nil {
		return nil, err
	}
	return response.Markets, nil
}
