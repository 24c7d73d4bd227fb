package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("id%d", i)
	}
	return out
}

func TestValidation(t *testing.T) {
	fake := newFakeSpotify(t)
	srv := fake.service(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		field string
		call  func() error
	}{
		{"GetAlbum Empty ID", "id", func() error { _, err := srv.GetAlbum(ctx, " "); return err }},
		{"GetAlbums Too Many", "ids", func() error { _, err := srv.GetAlbums(ctx, ids(21)); return err }},
		{"GetAlbums None", "ids", func() error { _, err := srv.GetAlbums(ctx, nil); return err }},
		{"GetAlbums Blank Entry", "ids", func() error { _, err := srv.GetAlbums(ctx, []string{"a", ""}); return err }},
		{"GetAlbumTracks Limit Zero", "limit", func() error { _, err := srv.GetAlbumTracks(ctx, "a", Limit(0)); return err }},
		{"GetAlbumTracks Limit 51", "limit", func() error { _, err := srv.GetAlbumTracks(ctx, "a", Limit(51)); return err }},
		{"GetAlbumTracks Negative Offset", "offset", func() error { _, err := srv.GetAlbumTracks(ctx, "a", Offset(-1)); return err }},
		{"GetArtists Too Many", "ids", func() error { _, err := srv.GetArtists(ctx, ids(51)); return err }},
		{"GetArtistAlbums Bad Group", "include_groups", func() error {
			_, err := srv.GetArtistAlbums(ctx, "a", IncludeGroups("remix"))
			return err
		}},
		{"GetArtistTopTracks Missing Market", "market", func() error { _, err := srv.GetArtistTopTracks(ctx, "a", ""); return err }},
		{"GetTracks Too Many", "ids", func() error { _, err := srv.GetTracks(ctx, ids(51)); return err }},
		{"GetAudioFeaturesMultiple Too Many", "ids", func() error { _, err := srv.GetAudioFeaturesMultiple(ctx, ids(101)); return err }},
		{"GetEpisodes Too Many", "ids", func() error { _, err := srv.GetEpisodes(ctx, ids(51)); return err }},
		{"GetShows Too Many", "ids", func() error { _, err := srv.GetShows(ctx, ids(51)); return err }},
		{"GetUserProfile Empty", "user_id", func() error { _, err := srv.GetUserProfile(ctx, ""); return err }},
		{"GetPlaylistItems Limit 101", "limit", func() error { _, err := srv.GetPlaylistItems(ctx, "p", Limit(101)); return err }},
		{"GetPlaylist Bad Additional Type", "additional_types", func() error {
			_, err := srv.GetPlaylist(ctx, "p", AdditionalTypes(models.ObjectTypeAlbum))
			return err
		}},
		{"GetUserPlaylists Empty User", "user_id", func() error { _, err := srv.GetUserPlaylists(ctx, ""); return err }},
		{"GetTopTracks Bad Range", "time_range", func() error {
			_, err := srv.GetTopTracks(ctx, WithTimeRange("forever"))
			return err
		}},
		{"Follow Bad Type", "type", func() error { return srv.Follow(ctx, "group", []string{"x"}) }},
		{"Follow No IDs", "ids", func() error { return srv.Follow(ctx, models.IDTypeArtist, nil) }},
		{"Unfollow Too Many", "ids", func() error { return srv.Unfollow(ctx, models.IDTypeUser, ids(51)) }},
		{"GetFollowedArtists Limit 51", "limit", func() error { _, err := srv.GetFollowedArtists(ctx, Limit(51)); return err }},
		{"UsersFollowPlaylist Too Many", "ids", func() error {
			_, err := srv.UsersFollowPlaylist(ctx, "p", ids(6))
			return err
		}},
		{"SaveAlbums Too Many", "ids", func() error { return srv.SaveAlbums(ctx, ids(21)) }},
		{"RemoveTracks Too Many", "ids", func() error { return srv.RemoveTracks(ctx, ids(51)) }},
		{"CheckSavedShows None", "ids", func() error { _, err := srv.CheckSavedShows(ctx, nil); return err }},
		{"GetCategories Limit Zero", "limit", func() error { _, err := srv.GetCategories(ctx, Limit(0)); return err }},
		{"GetRecommendations No Seeds", "seeds", func() error { _, err := srv.GetRecommendations(ctx, Seeds{}); return err }},
		{"GetRecommendations Blank Seed", "seeds", func() error {
			_, err := srv.GetRecommendations(ctx, Seeds{Artists: []string{""}})
			return err
		}},
		{"GetRecommendations Blank Seeds Across Lists", "seeds", func() error {
			_, err := srv.GetRecommendations(ctx, Seeds{Artists: []string{""}, Genres: []string{" "}})
			return err
		}},
		{"GetRecommendations Six Seeds", "seeds", func() error {
			_, err := srv.GetRecommendations(ctx, Seeds{Artists: ids(3), Tracks: ids(3)})
			return err
		}},
		{"GetRecommendations Limit 101", "limit", func() error {
			_, err := srv.GetRecommendations(ctx, Seeds{Genres: []string{"rock"}}, Limit(101))
			return err
		}},
		{"GetRecommendations Unknown Attribute", "attribute", func() error {
			_, err := srv.GetRecommendations(ctx, Seeds{Genres: []string{"rock"}}, TrackAttribute("min_vibes", 1))
			return err
		}},
		{"Search Empty Query", "q", func() error { _, err := srv.Search(ctx, "", []models.ObjectType{models.ObjectTypeTrack}); return err }},
		{"Search No Types", "type", func() error { _, err := srv.Search(ctx, "q", nil); return err }},
		{"Search Unsearchable Type", "type", func() error {
			_, err := srv.Search(ctx, "q", []models.ObjectType{models.ObjectTypeUser})
			return err
		}},
		{"Search Duplicate Type", "type", func() error {
			_, err := srv.Search(ctx, "q", []models.ObjectType{models.ObjectTypeTrack, models.ObjectTypeTrack})
			return err
		}},
		{"Search Offset 2001", "offset", func() error {
			_, err := srv.Search(ctx, "q", []models.ObjectType{models.ObjectTypeTrack}, Offset(2001))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, shared.ErrInvalidArgument)
		})
	}

	assert.Zero(t, fake.apiHits.Load(), "invalid calls must not reach the network")
}

func TestQueryParameters(t *testing.T) {
	t.Run("Only Documented Parameters Are Sent", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("GET /albums/{id}/tracks", respondRaw(http.StatusOK, `{"items":[],"limit":10,"offset":5,"total":0}`))

		_, err := fake.service(t).GetAlbumTracks(context.Background(), "abc",
			Limit(10), Offset(5), Market("GB"), Country("SE"), WithTimeRange(models.TimeRangeLong))
		require.NoError(t, err)

		q := fake.lastRequest(t).URL.Query()
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "5", q.Get("offset"))
		assert.Equal(t, "GB", q.Get("market"))
		assert.False(t, q.Has("country"))
		assert.False(t, q.Has("time_range"))
	})

	t.Run("Empty Values Are Omitted", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("GET /albums/{id}", respondRaw(http.StatusOK, `{"id":"abc"}`))

		_, err := fake.service(t).GetAlbum(context.Background(), "abc", Market(""))
		require.NoError(t, err)

		assert.Empty(t, fake.lastRequest(t).URL.RawQuery)
	})

	t.Run("Lists Are Comma Joined", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("GET /artists/{id}/albums", respondRaw(http.StatusOK, `{"items":[]}`))

		_, err := fake.service(t).GetArtistAlbums(context.Background(), "a",
			IncludeGroups(models.AlbumGroupAlbum, models.AlbumGroupSingle))
		require.NoError(t, err)

		assert.Equal(t, "album,single", fake.lastRequest(t).URL.Query().Get("include_groups"))
	})

	t.Run("Recommendation Seeds And Attributes", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("GET /recommendations", respondRaw(http.StatusOK,
			`{"seeds":[{"id":"rock","type":"GENRE","initialPoolSize":250,"afterFilteringSize":200,"afterRelinkingSize":200}],"tracks":[{"id":"t1","name":"One"}]}`))

		recs, err := fake.service(t).GetRecommendations(context.Background(),
			Seeds{Artists: []string{"a1", "a2"}, Genres: []string{"rock"}},
			Limit(5), TrackAttribute("min_energy", 0.4), TrackAttribute("target_tempo", 120))
		require.NoError(t, err)

		q := fake.lastRequest(t).URL.Query()
		assert.Equal(t, "a1,a2", q.Get("seed_artists"))
		assert.Equal(t, "rock", q.Get("seed_genres"))
		assert.False(t, q.Has("seed_tracks"))
		assert.Equal(t, "0.4", q.Get("min_energy"))
		assert.Equal(t, "120", q.Get("target_tempo"))
		assert.Equal(t, "5", q.Get("limit"))

		require.Len(t, recs.Tracks, 1)
		require.Len(t, recs.Seeds, 1)
		assert.Equal(t, "rock", recs.Seeds[0].ID)
	})

	t.Run("Featured Playlists Timestamp", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("GET /browse/featured-playlists", respondRaw(http.StatusOK,
			`{"message":"Monday morning music","playlists":{"items":[{"id":"p1","name":"Wake Up","tracks":{"total":3}}],"total":1}}`))

		ts := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		featured, err := fake.service(t).GetFeaturedPlaylists(context.Background(), Timestamp(ts), Locale("sv_SE"))
		require.NoError(t, err)

		q := fake.lastRequest(t).URL.Query()
		assert.Equal(t, "2026-03-02T09:00:00", q.Get("timestamp"))
		assert.Equal(t, "sv_SE", q.Get("locale"))
		assert.Equal(t, "Monday morning music", featured.Message)
		require.Len(t, featured.Playlists.Items, 1)
		assert.Equal(t, 3, featured.Playlists.Items[0].Tracks.Total)
	})
}

func TestBatchEndpoints(t *testing.T) {
	t.Run("Null Entries Are Dropped", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("GET /albums", respondRaw(http.StatusOK, `{"albums":[{"id":"a1","name":"First"},null,{"id":"a3","name":"Third"}]}`))

		albums, err := fake.service(t).GetAlbums(context.Background(), []string{"a1", "missing", "a3"})
		require.NoError(t, err)

		require.Len(t, albums, 2)
		assert.Equal(t, "a1", albums[0].ID)
		assert.Equal(t, "a3", albums[1].ID)
		assert.Equal(t, "a1,missing,a3", fake.lastRequest(t).URL.Query().Get("ids"))
	})

	t.Run("Audio Features", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("GET /audio-features", respondRaw(http.StatusOK,
			`{"audio_features":[{"id":"t1","danceability":0.7,"key":5,"mode":1,"tempo":118.2,"duration_ms":200000}]}`))

		features, err := fake.service(t).GetAudioFeaturesMultiple(context.Background(), []string{"t1"})
		require.NoError(t, err)

		require.Len(t, features, 1)
		assert.Equal(t, models.Key(5), features[0].Key)
		assert.Equal(t, models.ModeMajor, features[0].Mode)
		assert.Equal(t, 200*time.Second, features[0].Duration)
	})

	t.Run("Markets And Genres", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("GET /markets", respondRaw(http.StatusOK, `{"markets":["US","SE"]}`))
		fake.handle("GET /recommendations/available-genre-seeds", respondRaw(http.StatusOK, `{"genres":["acoustic","rock"]}`))
		srv := fake.service(t)

		markets, err := srv.GetAvailableMarkets(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"US", "SE"}, markets)

		genres, err := srv.GetAvailableGenreSeeds(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"acoustic", "rock"}, genres)
	})
}

func TestFollowAndLibrary(t *testing.T) {
	t.Run("Follow Expects No Content", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("PUT /me/following", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		err := fake.service(t).Follow(context.Background(), models.IDTypeArtist, []string{"a1", "a2"})
		require.NoError(t, err)

		q := fake.lastRequest(t).URL.Query()
		assert.Equal(t, "artist", q.Get("type"))
		assert.Equal(t, "a1,a2", q.Get("ids"))
	})

	t.Run("Follow Rejects Other Success Status", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("DELETE /me/following", respondRaw(http.StatusOK, `{}`))

		err := fake.service(t).Unfollow(context.Background(), models.IDTypeUser, []string{"u1"})
		assert.ErrorIs(t, err, shared.ErrUnexpectedStatus)
	})

	t.Run("Is Following", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("GET /me/following/contains", respondRaw(http.StatusOK, `[true,false]`))

		got, err := fake.service(t).IsFollowing(context.Background(), models.IDTypeUser, []string{"u1", "u2"})
		require.NoError(t, err)
		assert.Equal(t, []bool{true, false}, got)
	})

	t.Run("Followed Artists Cursor", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("GET /me/following", respondRaw(http.StatusOK,
			`{"artists":{"items":[{"id":"a1","name":"One"}],"limit":1,"total":4,"next":"https://api.spotify.com/v1/me/following?after=a1","cursors":{"after":"a1"}}}`))

		page, err := fake.service(t).GetFollowedArtists(context.Background(), After("a0"), Limit(1))
		require.NoError(t, err)

		q := fake.lastRequest(t).URL.Query()
		assert.Equal(t, "artist", q.Get("type"))
		assert.Equal(t, "a0", q.Get("after"))
		assert.Equal(t, "a1", page.Cursors.After)
		assert.True(t, page.HasNext())
	})

	t.Run("Follow Playlist Sends Visibility", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("PUT /playlists/{id}/followers", func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			if strings.TrimSpace(string(body)) != `{"public":false}` {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		err := fake.service(t).FollowPlaylist(context.Background(), "p1", false)
		require.NoError(t, err)
		assert.Equal(t, "application/json", fake.lastRequest(t).Header.Get("Content-Type"))
	})

	t.Run("Save Tracks Expects OK", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("PUT /me/tracks", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		fake.handle("DELETE /me/tracks", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		srv := fake.service(t)

		require.NoError(t, srv.SaveTracks(context.Background(), []string{"t1"}))
		assert.ErrorIs(t, srv.RemoveTracks(context.Background(), []string{"t1"}), shared.ErrUnexpectedStatus)
	})

	t.Run("Saved Albums Page", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("GET /me/albums", respondRaw(http.StatusOK,
			`{"items":[{"added_at":"2024-05-01T10:00:00Z","album":{"id":"a1","name":"Saved"}}],"limit":20,"offset":0,"total":1}`))

		page, err := fake.service(t).GetSavedAlbums(context.Background())
		require.NoError(t, err)

		require.Len(t, page.Items, 1)
		assert.Equal(t, "Saved", page.Items[0].Album.Name)
		assert.Equal(t, 2024, page.Items[0].AddedAt.Year())
	})

	t.Run("Library Contains", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("GET /me/shows/contains", respondRaw(http.StatusOK, `[false]`))

		got, err := fake.service(t).CheckSavedShows(context.Background(), []string{"s1"})
		require.NoError(t, err)
		assert.Equal(t, []bool{false}, got)
	})
}

func TestPlaylists(t *testing.T) {
	t.Run("All Current User Playlists Walks Pages", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("GET /me/playlists", func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Query().Get("offset") {
			case "0":
				writeJSON(w, http.StatusOK, map[string]any{
					"items":  []map[string]any{{"id": "p1"}, {"id": "p2"}},
					"limit":  50,
					"offset": 0,
					"total":  3,
					"next":   "https://api.spotify.com/v1/me/playlists?offset=50",
				})
			default:
				writeJSON(w, http.StatusOK, map[string]any{
					"items":  []map[string]any{{"id": "p3"}},
					"limit":  50,
					"offset": 50,
					"total":  3,
				})
			}
		})

		all, err := fake.service(t).AllCurrentUserPlaylists(context.Background())
		require.NoError(t, err)

		require.Len(t, all, 3)
		assert.Equal(t, "p3", all[2].ID)
		assert.EqualValues(t, 2, fake.apiHits.Load())
	})

	t.Run("Items Discriminate Tracks And Episodes", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("GET /playlists/{id}/tracks", respondRaw(http.StatusOK, `{
			"items": [
				{"added_at":"2024-01-01T00:00:00Z","is_local":false,"track":{"type":"track","id":"t1","name":"Song","duration_ms":1000}},
				{"added_at":null,"is_local":false,"track":{"type":"episode","id":"e1","name":"Talk","duration_ms":2000}},
				{"added_at":null,"is_local":true,"track":null}
			],
			"limit": 100, "offset": 0, "total": 3
		}`))

		page, err := fake.service(t).GetPlaylistItems(context.Background(), "p1",
			AdditionalTypes(models.ObjectTypeTrack, models.ObjectTypeEpisode))
		require.NoError(t, err)

		assert.Equal(t, "track,episode", fake.lastRequest(t).URL.Query().Get("additional_types"))
		require.Len(t, page.Items, 3)

		assert.Equal(t, models.ObjectTypeTrack, page.Items[0].Type())
		assert.Equal(t, "Song", page.Items[0].Name())
		assert.Equal(t, time.Second, page.Items[0].Track.Duration)

		assert.Equal(t, models.ObjectTypeEpisode, page.Items[1].Type())
		assert.Equal(t, "Talk", page.Items[1].Episode.Name)
		assert.True(t, page.Items[1].AddedAt.IsZero())

		assert.Nil(t, page.Items[2].Track)
		assert.Nil(t, page.Items[2].Episode)
		assert.True(t, page.Items[2].IsLocal)
	})

	t.Run("Cover Image", func(t *testing.T) {
		fake := newFakeSpotify(t)
		fake.handle("GET /playlists/{id}/images", respondRaw(http.StatusOK, `[{"url":"https://i.scdn.co/image/x","height":640,"width":640}]`))

		images, err := fake.service(t).GetPlaylistCoverImage(context.Background(), "p1")
		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Equal(t, "https://i.scdn.co/image/x", images[0].URL)
	})
}
