package services

import (
	"context"
	"net/url"

	"github.com/desertthunder/spotx/internal/models"
)

// Catalog is the subset of [SpotifyService] the CLI depends on, so commands can run against a test double.
type Catalog interface {
	// Name returns the name of the service
	Name() string

	// Credential returns the currently held access credential.
	Credential() models.AccessCredential

	// RequestRefreshedToken replaces the held credential.
	RequestRefreshedToken(ctx context.Context) error

	GetCurrentUserProfile(ctx context.Context) (*models.PrivateUser, error)
	GetAlbum(ctx context.Context, id string, opts ...RequestOption) (*models.Album, error)
	GetArtist(ctx context.Context, id string) (*models.Artist, error)
	GetArtistAlbums(ctx context.Context, id string, opts ...RequestOption) (*models.Paging[models.SimpleAlbum], error)
	GetArtistTopTracks(ctx context.Context, id, market string) ([]models.Track, error)
	GetArtistRelatedArtists(ctx context.Context, id string) ([]models.Artist, error)
	GetTrack(ctx context.Context, id string, opts ...RequestOption) (*models.Track, error)
	GetAudioFeatures(ctx context.Context, id string) (*models.AudioFeatures, error)
	GetPlaylist(ctx context.Context, id string, opts ...RequestOption) (*models.Playlist, error)
	GetPlaylistItems(ctx context.Context, id string, opts ...RequestOption) (*models.Paging[models.PlaylistTrack], error)
	Search(ctx context.Context, query string, types []models.ObjectType, opts ...RequestOption) ([]models.SearchResult, error)

	// Library
	GetSavedTracks(ctx context.Context, opts ...RequestOption) (*models.Paging[models.SavedTrack], error)
	GetSavedAlbums(ctx context.Context, opts ...RequestOption) (*models.Paging[models.SavedAlbum], error)
	AllCurrentUserPlaylists(ctx context.Context) ([]models.SimplePlaylist, error)
	SaveTracks(ctx context.Context, ids []string) error
	RemoveTracks(ctx context.Context, ids []string) error
	SaveAlbums(ctx context.Context, ids []string) error
	RemoveAlbums(ctx context.Context, ids []string) error
	SaveShows(ctx context.Context, ids []string) error
	RemoveShows(ctx context.Context, ids []string) error
	CheckSavedTracks(ctx context.Context, ids []string) ([]bool, error)
	CheckSavedAlbums(ctx context.Context, ids []string) ([]bool, error)
	CheckSavedShows(ctx context.Context, ids []string) ([]bool, error)

	// Follow
	Follow(ctx context.Context, idType models.IDType, ids []string) error
	Unfollow(ctx context.Context, idType models.IDType, ids []string) error
	IsFollowing(ctx context.Context, idType models.IDType, ids []string) ([]bool, error)
	GetFollowedArtists(ctx context.Context, opts ...RequestOption) (*models.CursorPaging[models.Artist], error)

	// Personalization and browse
	GetTopArtists(ctx context.Context, opts ...RequestOption) (*models.Paging[models.Artist], error)
	GetTopTracks(ctx context.Context, opts ...RequestOption) (*models.Paging[models.Track], error)
	GetNewReleases(ctx context.Context, opts ...RequestOption) (*models.Paging[models.SimpleAlbum], error)
	GetFeaturedPlaylists(ctx context.Context, opts ...RequestOption) (*models.FeaturedPlaylists, error)
	GetCategories(ctx context.Context, opts ...RequestOption) (*models.Paging[models.Category], error)
	GetAvailableGenreSeeds(ctx context.Context) ([]string, error)
	GetRecommendations(ctx context.Context, seeds Seeds, opts ...RequestOption) (*models.Recommendations, error)
	GetAvailableMarkets(ctx context.Context) ([]string, error)

	Raw(ctx context.Context, method, endpoint string, query url.Values, body []byte) (*APIResponse, error)
}

var _ Catalog = (*SpotifyService)(nil)
