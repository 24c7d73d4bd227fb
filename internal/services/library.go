package services

import (
	"context"
	"net/http"

	"github.com/desertthunder/spotx/internal/models"
)

// libraryCollection is a /me collection that supports save, remove and contains.
type libraryCollection struct {
	path   string
	maxIDs int
}

var (
	savedAlbums = libraryCollection{path: "/me/albums", maxIDs: maxAlbumIDs}
	savedTracks = libraryCollection{path: "/me/tracks", maxIDs: maxBatchIDs}
	savedShows  = libraryCollection{path: "/me/shows", maxIDs: maxBatchIDs}
)

func (s *SpotifyService) modifyLibrary(ctx context.Context, c libraryCollection, method string, ids []string) error {
	if err := validateIDs("ids", ids, c.maxIDs); err != nil {
		return err
	}
	return s.expectStatus(ctx, method, c.path, idsQuery(ids, nil), nil, http.StatusOK)
}

func (s *SpotifyService) checkLibrary(ctx context.Context, c libraryCollection, ids []string) ([]bool, error) {
	if err := validateIDs("ids", ids, c.maxIDs); err != nil {
		return nil, err
	}
	return get[[]bool](ctx, s, c.path+"/contains", idsQuery(ids, nil))
}

// GetSavedAlbums retrieves a page of the current user's saved albums. Supports [Limit] (1-50), [Offset] and [Market].
func (s *SpotifyService) GetSavedAlbums(ctx context.Context, opts ...RequestOption) (*models.Paging[models.SavedAlbum], error) {
	o := processOptions(opts...)
	if err := o.validatePage(maxPageLimit); err != nil {
		return nil, err
	}

	w, err := get[pagingJSON[savedAlbumJSON]](ctx, s, savedAlbums.path, o.query("limit", "offset", "market"))
	if err != nil {
		return nil, err
	}
	page := pagingFromJSON(w, savedAlbumFromJSON)
	return &page, nil
}

// SaveAlbums adds up to 20 albums to the current user's library.
func (s *SpotifyService) SaveAlbums(ctx context.Context, ids []string) error {
	return s.modifyLibrary(ctx, savedAlbums, http.MethodPut, ids)
}

// RemoveAlbums removes up to 20 albums from the current user's library.
func (s *SpotifyService) RemoveAlbums(ctx context.Context, ids []string) error {
	return s.modifyLibrary(ctx, savedAlbums, http.MethodDelete, ids)
}

// CheckSavedAlbums reports, per ID (up to 20), whether the album is saved.
func (s *SpotifyService) CheckSavedAlbums(ctx context.Context, ids []string) ([]bool, error) {
	return s.checkLibrary(ctx, savedAlbums, ids)
}

// GetSavedTracks retrieves the user's saved tracks with pagination. Supports [Limit] (1-50), [Offset] and [Market].
func (s *SpotifyService) GetSavedTracks(ctx context.Context, opts ...RequestOption) (*models.Paging[models.SavedTrack], error) {
	o := processOptions(opts...)
	if err := o.validatePage(maxPageLimit); err != nil {
		return nil, err
	}

	w, err := get[pagingJSON[savedTrackJSON]](ctx, s, savedTracks.path, o.query("limit", "offset", "market"))
	if err != nil {
		return nil, err
	}
	page := pagingFromJSON(w, savedTrackFromJSON)
	return &page, nil
}

// SaveTracks adds up to 50 tracks to the current user's library.
func (s *SpotifyService) SaveTracks(ctx context.Context, ids []string) error {
	return s.modifyLibrary(ctx, savedTracks, http.MethodPut, ids)
}

// RemoveTracks removes up to 50 tracks from the current user's library.
func (s *SpotifyService) RemoveTracks(ctx context.Context, ids []string) error {
	return s.modifyLibrary(ctx, savedTracks, http.MethodDelete, ids)
}

// CheckSavedTracks reports, per ID (up to 50), whether the track is saved.
func (s *SpotifyService) CheckSavedTracks(ctx context.Context, ids []string) ([]bool, error) {
	return s.checkLibrary(ctx, savedTracks, ids)
}

// GetSavedShows retrieves a page of the shows the current user follows. Supports [Limit] (1-50) and [Offset].
func (s *SpotifyService) GetSavedShows(ctx context.Context, opts ...RequestOption) (*models.Paging[models.SavedShow], error) {
	o := processOptions(opts...)
	if err := o.validatePage(maxPageLimit); err != nil {
		return nil, err
	}

	w, err := get[pagingJSON[savedShowJSON]](ctx, s, savedShows.path, o.query("limit", "offset"))
	if err != nil {
		return nil, err
	}
	page := pagingFromJSON(w, savedShowFromJSON)
	return &page, nil
}

// SaveShows adds up to 50 shows to the current user's library.
func (s *SpotifyService) SaveShows(ctx context.Context, ids []string) error {
	return s.modifyLibrary(ctx, savedShows, http.MethodPut, ids)
}

// RemoveShows removes up to 50 shows from the current user's library.
func (s *SpotifyService) RemoveShows(ctx context.Context, ids []string) error {
	return s.modifyLibrary(ctx, savedShows, http.MethodDelete, ids)
}

// CheckSavedShows reports, per ID (up to 50), whether the show is saved.
func (s *SpotifyService) CheckSavedShows(ctx context.Context, ids []string) ([]bool, error) {
	return s.checkLibrary(ctx, savedShows, ids)
}
