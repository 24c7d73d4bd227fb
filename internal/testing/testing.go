// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/services"
)

// MockCatalog is a test double for [services.Catalog].
//
// Methods return the canned values below, or Err when it is set. Every call is recorded by method name
// followed by its string arguments.
type MockCatalog struct {
	mu    sync.Mutex
	calls []string

	Err        error
	Cred       models.AccessCredential
	User       models.PrivateUser
	Album      models.Album
	Albums     []models.SimpleAlbum
	Artist     models.Artist
	Artists    []models.Artist
	Track      models.Track
	Tracks     []models.Track
	Features   models.AudioFeatures
	Playlist   models.Playlist
	Items      []models.PlaylistTrack
	Playlists  []models.SimplePlaylist
	Results    []models.SearchResult
	Saved      []models.SavedTrack
	SavedAlb   []models.SavedAlbum
	Categories []models.Category
	Strings    []string
	Checks     []bool
	Recs       models.Recommendations
	RawResp    services.APIResponse
}

var _ services.Catalog = (*MockCatalog)(nil)

func (m *MockCatalog) record(method string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, strings.TrimSpace(method+" "+strings.Join(args, " ")))
	return m.Err
}

// Calls returns the recorded calls in order.
func (m *MockCatalog) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func page[T any](items []T) *models.Paging[T] {
	return &models.Paging[T]{Items: items, Limit: len(items), Total: len(items)}
}

func (m *MockCatalog) Name() string                        { return "mock" }
func (m *MockCatalog) Credential() models.AccessCredential { return m.Cred }

func (m *MockCatalog) RequestRefreshedToken(context.Context) error {
	return m.record("RequestRefreshedToken")
}

func (m *MockCatalog) GetCurrentUserProfile(context.Context) (*models.PrivateUser, error) {
	if err := m.record("GetCurrentUserProfile"); err != nil {
		return nil, err
	}
	return &m.User, nil
}

func (m *MockCatalog) GetAlbum(_ context.Context, id string, _ ...services.RequestOption) (*models.Album, error) {
	if err := m.record("GetAlbum", id); err != nil {
		return nil, err
	}
	return &m.Album, nil
}

func (m *MockCatalog) GetArtist(_ context.Context, id string) (*models.Artist, error) {
	if err := m.record("GetArtist", id); err != nil {
		return nil, err
	}
	return &m.Artist, nil
}

func (m *MockCatalog) GetArtistAlbums(_ context.Context, id string, _ ...services.RequestOption) (*models.Paging[models.SimpleAlbum], error) {
	if err := m.record("GetArtistAlbums", id); err != nil {
		return nil, err
	}
	return page(m.Albums), nil
}

func (m *MockCatalog) GetArtistTopTracks(_ context.Context, id, market string) ([]models.Track, error) {
	return m.Tracks, m.record("GetArtistTopTracks", id, market)
}

func (m *MockCatalog) GetArtistRelatedArtists(_ context.Context, id string) ([]models.Artist, error) {
	return m.Artists, m.record("GetArtistRelatedArtists", id)
}

func (m *MockCatalog) GetTrack(_ context.Context, id string, _ ...services.RequestOption) (*models.Track, error) {
	if err := m.record("GetTrack", id); err != nil {
		return nil, err
	}
	return &m.Track, nil
}

func (m *MockCatalog) GetAudioFeatures(_ context.Context, id string) (*models.AudioFeatures, error) {
	if err := m.record("GetAudioFeatures", id); err != nil {
		return nil, err
	}
	return &m.Features, nil
}

func (m *MockCatalog) GetPlaylist(_ context.Context, id string, _ ...services.RequestOption) (*models.Playlist, error) {
	if err := m.record("GetPlaylist", id); err != nil {
		return nil, err
	}
	return &m.Playlist, nil
}

func (m *MockCatalog) GetPlaylistItems(_ context.Context, id string, _ ...services.RequestOption) (*models.Paging[models.PlaylistTrack], error) {
	if err := m.record("GetPlaylistItems", id); err != nil {
		return nil, err
	}
	return page(m.Items), nil
}

func (m *MockCatalog) Search(_ context.Context, query string, types []models.ObjectType, _ ...services.RequestOption) ([]models.SearchResult, error) {
	args := []string{query}
	for _, t := range types {
		args = append(args, string(t))
	}
	return m.Results, m.record("Search", args...)
}

func (m *MockCatalog) GetSavedTracks(context.Context, ...services.RequestOption) (*models.Paging[models.SavedTrack], error) {
	if err := m.record("GetSavedTracks"); err != nil {
		return nil, err
	}
	return page(m.Saved), nil
}

func (m *MockCatalog) GetSavedAlbums(context.Context, ...services.RequestOption) (*models.Paging[models.SavedAlbum], error) {
	if err := m.record("GetSavedAlbums"); err != nil {
		return nil, err
	}
	return page(m.SavedAlb), nil
}

func (m *MockCatalog) AllCurrentUserPlaylists(context.Context) ([]models.SimplePlaylist, error) {
	return m.Playlists, m.record("AllCurrentUserPlaylists")
}

func (m *MockCatalog) SaveTracks(_ context.Context, ids []string) error {
	return m.record("SaveTracks", ids...)
}

func (m *MockCatalog) RemoveTracks(_ context.Context, ids []string) error {
	return m.record("RemoveTracks", ids...)
}

func (m *MockCatalog) SaveAlbums(_ context.Context, ids []string) error {
	return m.record("SaveAlbums", ids...)
}

func (m *MockCatalog) RemoveAlbums(_ context.Context, ids []string) error {
	return m.record("RemoveAlbums", ids...)
}

func (m *MockCatalog) SaveShows(_ context.Context, ids []string) error {
	return m.record("SaveShows", ids...)
}

func (m *MockCatalog) RemoveShows(_ context.Context, ids []string) error {
	return m.record("RemoveShows", ids...)
}

func (m *MockCatalog) CheckSavedTracks(_ context.Context, ids []string) ([]bool, error) {
	return m.Checks, m.record("CheckSavedTracks", ids...)
}

func (m *MockCatalog) CheckSavedAlbums(_ context.Context, ids []string) ([]bool, error) {
	return m.Checks, m.record("CheckSavedAlbums", ids...)
}

func (m *MockCatalog) CheckSavedShows(_ context.Context, ids []string) ([]bool, error) {
	return m.Checks, m.record("CheckSavedShows", ids...)
}

func (m *MockCatalog) Follow(_ context.Context, idType models.IDType, ids []string) error {
	return m.record("Follow", append([]string{string(idType)}, ids...)...)
}

func (m *MockCatalog) Unfollow(_ context.Context, idType models.IDType, ids []string) error {
	return m.record("Unfollow", append([]string{string(idType)}, ids...)...)
}

func (m *MockCatalog) IsFollowing(_ context.Context, idType models.IDType, ids []string) ([]bool, error) {
	return m.Checks, m.record("IsFollowing", append([]string{string(idType)}, ids...)...)
}

func (m *MockCatalog) GetFollowedArtists(context.Context, ...services.RequestOption) (*models.CursorPaging[models.Artist], error) {
	if err := m.record("GetFollowedArtists"); err != nil {
		return nil, err
	}
	return &models.CursorPaging[models.Artist]{Items: m.Artists, Total: len(m.Artists)}, nil
}

func (m *MockCatalog) GetTopArtists(context.Context, ...services.RequestOption) (*models.Paging[models.Artist], error) {
	if err := m.record("GetTopArtists"); err != nil {
		return nil, err
	}
	return page(m.Artists), nil
}

func (m *MockCatalog) GetTopTracks(context.Context, ...services.RequestOption) (*models.Paging[models.Track], error) {
	if err := m.record("GetTopTracks"); err != nil {
		return nil, err
	}
	return page(m.Tracks), nil
}

func (m *MockCatalog) GetNewReleases(context.Context, ...services.RequestOption) (*models.Paging[models.SimpleAlbum], error) {
	if err := m.record("GetNewReleases"); err != nil {
		return nil, err
	}
	return page(m.Albums), nil
}

func (m *MockCatalog) GetFeaturedPlaylists(context.Context, ...services.RequestOption) (*models.FeaturedPlaylists, error) {
	if err := m.record("GetFeaturedPlaylists"); err != nil {
		return nil, err
	}
	return &models.FeaturedPlaylists{Message: "Featured", Playlists: *page(m.Playlists)}, nil
}

func (m *MockCatalog) GetCategories(context.Context, ...services.RequestOption) (*models.Paging[models.Category], error) {
	if err := m.record("GetCategories"); err != nil {
		return nil, err
	}
	return page(m.Categories), nil
}

func (m *MockCatalog) GetAvailableGenreSeeds(context.Context) ([]string, error) {
	return m.Strings, m.record("GetAvailableGenreSeeds")
}

func (m *MockCatalog) GetRecommendations(_ context.Context, seeds services.Seeds, _ ...services.RequestOption) (*models.Recommendations, error) {
	args := append(append(append([]string{}, seeds.Artists...), seeds.Genres...), seeds.Tracks...)
	if err := m.record("GetRecommendations", args...); err != nil {
		return nil, err
	}
	return &m.Recs, nil
}

func (m *MockCatalog) GetAvailableMarkets(context.Context) ([]string, error) {
	return m.Strings, m.record("GetAvailableMarkets")
}

func (m *MockCatalog) Raw(_ context.Context, method, endpoint string, _ url.Values, _ []byte) (*services.APIResponse, error) {
	if err := m.record("Raw", method, endpoint); err != nil {
		return nil, err
	}
	return &m.RawResp, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
