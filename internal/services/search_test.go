package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reverseGroup runs tasks sequentially in reverse submission order.
type reverseGroup struct {
	tasks []func() error
}

func (g *reverseGroup) Go(fn func() error) { g.tasks = append(g.tasks, fn) }

func (g *reverseGroup) Wait() error {
	var errs []error
	for i := len(g.tasks) - 1; i >= 0; i-- {
		if err := g.tasks[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func searchHandler(t *testing.T, seen *sync.Map) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		seen.Store(q.Get("type"), q)

		switch q.Get("type") {
		case "album":
			writeJSON(w, http.StatusOK, map[string]any{"albums": map[string]any{
				"items": []map[string]any{{"id": "al1", "name": "Album Hit"}}, "total": 7, "limit": 1, "offset": 0,
			}})
		case "track":
			writeJSON(w, http.StatusOK, map[string]any{"tracks": map[string]any{
				"items": []map[string]any{{"id": "tr1", "name": "Track Hit", "duration_ms": 180000}}, "total": 42, "limit": 1, "offset": 0,
			}})
		case "artist":
			respondRaw(http.StatusTooManyRequests, `{"error":{"status":429,"message":"API rate limit exceeded"}}`)(w, r)
		case "show":
			writeJSON(w, http.StatusOK, map[string]any{})
		default:
			t.Errorf("unexpected search type %q", q.Get("type"))
			w.WriteHeader(http.StatusBadRequest)
		}
	}
}

func TestSearch(t *testing.T) {
	t.Run("One Request Per Type In Order", func(t *testing.T) {
		var seen sync.Map
		fake := newFakeSpotify(t)
		fake.handle("GET /search", searchHandler(t, &seen))

		group := &reverseGroup{}
		srv := fake.service(t, WithSearchGroup(func(ctx context.Context) (Group, context.Context) {
			return group, ctx
		}))

		results, err := srv.Search(context.Background(), "daft punk",
			[]models.ObjectType{models.ObjectTypeAlbum, models.ObjectTypeTrack},
			Limit(1), Market("US"), IncludeExternalAudio())
		require.NoError(t, err)

		require.Len(t, results, 2)
		assert.Equal(t, models.ObjectTypeAlbum, results[0].Type)
		require.NotNil(t, results[0].Albums)
		assert.Equal(t, "Album Hit", results[0].Albums.Items[0].Name)
		assert.Nil(t, results[0].Tracks)
		assert.Equal(t, 7, results[0].Total())

		assert.Equal(t, models.ObjectTypeTrack, results[1].Type)
		require.NotNil(t, results[1].Tracks)
		assert.Equal(t, 42, results[1].Total())

		assert.EqualValues(t, 2, fake.apiHits.Load())
		for _, typ := range []string{"album", "track"} {
			v, ok := seen.Load(typ)
			require.True(t, ok, "no request for %s", typ)
			q := v.(url.Values)
			assert.Equal(t, []string{"daft punk"}, q["q"])
			assert.Equal(t, []string{"1"}, q["limit"])
			assert.Equal(t, []string{"US"}, q["market"])
			assert.Equal(t, []string{"audio"}, q["include_external"])
		}
	})

	t.Run("Concurrent Default Group", func(t *testing.T) {
		var seen sync.Map
		fake := newFakeSpotify(t)
		fake.handle("GET /search", searchHandler(t, &seen))

		results, err := fake.service(t).Search(context.Background(), "q",
			[]models.ObjectType{models.ObjectTypeTrack, models.ObjectTypeAlbum})
		require.NoError(t, err)

		require.Len(t, results, 2)
		assert.Equal(t, models.ObjectTypeTrack, results[0].Type)
		assert.Equal(t, models.ObjectTypeAlbum, results[1].Type)
	})

	t.Run("Failure Returns Error And No Results", func(t *testing.T) {
		var seen sync.Map
		fake := newFakeSpotify(t)
		fake.handle("GET /search", searchHandler(t, &seen))

		results, err := fake.service(t).Search(context.Background(), "q",
			[]models.ObjectType{models.ObjectTypeTrack, models.ObjectTypeArtist})
		assert.Nil(t, results)

		var apiErr models.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	})

	t.Run("Missing Page Is Unexpected", func(t *testing.T) {
		var seen sync.Map
		fake := newFakeSpotify(t)
		fake.handle("GET /search", searchHandler(t, &seen))

		_, err := fake.service(t).Search(context.Background(), "q", []models.ObjectType{models.ObjectTypeShow})
		assert.ErrorIs(t, err, shared.ErrUnexpectedResponse)
	})

	t.Run("Offset Bound Is Inclusive", func(t *testing.T) {
		var seen sync.Map
		fake := newFakeSpotify(t)
		fake.handle("GET /search", searchHandler(t, &seen))

		_, err := fake.service(t).Search(context.Background(), "q",
			[]models.ObjectType{models.ObjectTypeAlbum}, Offset(2000))
		require.NoError(t, err)
		assert.Equal(t, "2000", fake.lastRequest(t).URL.Query().Get("offset"))
	})
}
