package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagingFromJSON(t *testing.T) {
	next := "https://api.spotify.com/v1/me/tracks?offset=20&limit=10"
	in := pagingJSON[simpleTrackJSON]{
		Href:   "https://api.spotify.com/v1/me/tracks?offset=10&limit=10",
		Items:  []simpleTrackJSON{{ID: "a", DurationMS: 1500}, {ID: "b"}},
		Limit:  10,
		Offset: 10,
		Total:  95,
		Next:   &next,
	}

	page := pagingFromJSON(in, simpleTrackFromJSON)

	assert.Equal(t, in.Href, page.Href)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 10, page.Offset)
	assert.Equal(t, 95, page.Total)
	assert.Equal(t, next, page.Next)
	assert.Empty(t, page.Previous)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "a", page.Items[0].ID)
	assert.Equal(t, 1500*time.Millisecond, page.Items[0].Duration)
	assert.Equal(t, "b", page.Items[1].ID)
	assert.True(t, page.HasNext())
	assert.Equal(t, 20, page.NextOffset())
}

func TestCursorPagingFromJSON(t *testing.T) {
	after := "xyz"
	page := cursorPagingFromJSON(cursorPagingJSON[artistJSON]{
		Items:   []artistJSON{{simpleArtistJSON: simpleArtistJSON{ID: "a"}}},
		Limit:   1,
		Total:   3,
		Cursors: &cursorsJSON{After: &after},
	}, artistFromJSON)

	assert.Equal(t, "xyz", page.Cursors.After)
	assert.Empty(t, page.Cursors.Before)
	assert.Equal(t, 3, page.Total)
}

func TestMapPresent(t *testing.T) {
	a, b := artistJSON{}, artistJSON{}
	a.ID, b.ID = "1", "3"

	got := mapPresent([]*artistJSON{&a, nil, &b}, artistFromJSON)

	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestSimpleTrackFromJSON(t *testing.T) {
	t.Run("Playable Defaults To True", func(t *testing.T) {
		assert.True(t, simpleTrackFromJSON(simpleTrackJSON{}).IsPlayable)

		no := false
		assert.False(t, simpleTrackFromJSON(simpleTrackJSON{IsPlayable: &no}).IsPlayable)
	})

	t.Run("Linked From", func(t *testing.T) {
		var w simpleTrackJSON
		require.NoError(t, json.Unmarshal([]byte(`{"id":"t2","linked_from":{"id":"t1","uri":"spotify:track:t1"}}`), &w))

		track := simpleTrackFromJSON(w)
		require.NotNil(t, track.LinkedFrom)
		assert.Equal(t, "t1", track.LinkedFrom.ID)
	})
}

func TestCopyrightJSON(t *testing.T) {
	t.Run("Codes", func(t *testing.T) {
		var w []copyrightJSON
		require.NoError(t, json.Unmarshal([]byte(`[{"text":"(C) 2020","type":"C"},{"text":"(P) 2020","type":"P"}]`), &w))

		got := copyrightsFromJSON(w)
		assert.Equal(t, models.CopyrightPerformance, got[0].Type)
		assert.Equal(t, models.CopyrightSoundRecording, got[1].Type)

		data, err := json.Marshal(w)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"text":"(C) 2020","type":"C"},{"text":"(P) 2020","type":"P"}]`, string(data))
	})

	t.Run("Unknown Code", func(t *testing.T) {
		var w copyrightJSON
		err := json.Unmarshal([]byte(`{"text":"x","type":"Z"}`), &w)
		assert.ErrorIs(t, err, shared.ErrUnrecognizedValue)
	})
}

func TestPlaylistItemJSON(t *testing.T) {
	t.Run("Round Trip Keeps Kind", func(t *testing.T) {
		in := `[{"type":"track","id":"t1","name":"Song"},{"type":"episode","id":"e1","name":"Talk"}]`

		var items []playlistItemJSON
		require.NoError(t, json.Unmarshal([]byte(in), &items))
		require.NotNil(t, items[0].Track)
		require.NotNil(t, items[1].Episode)

		data, err := json.Marshal(items)
		require.NoError(t, err)

		var again []playlistItemJSON
		require.NoError(t, json.Unmarshal(data, &again))
		assert.Equal(t, "t1", again[0].Track.ID)
		assert.Nil(t, again[0].Episode)
		assert.Equal(t, "e1", again[1].Episode.ID)
		assert.Nil(t, again[1].Track)
	})

	t.Run("Missing Type Is A Track", func(t *testing.T) {
		var item playlistItemJSON
		require.NoError(t, json.Unmarshal([]byte(`{"id":"t1"}`), &item))
		assert.NotNil(t, item.Track)
	})

	t.Run("Unknown Type", func(t *testing.T) {
		var item playlistItemJSON
		assert.Error(t, json.Unmarshal([]byte(`{"type":"audiobook"}`), &item))
	})
}

func TestAPIErrorJSON(t *testing.T) {
	var env errorEnvelope
	require.NoError(t, json.Unmarshal([]byte(`{"error":{"status":400,"message":"invalid id"}}`), &env))
	assert.Equal(t, 400, env.Error.Status)
	assert.Equal(t, "invalid id", env.Error.Message)

	env = errorEnvelope{}
	require.NoError(t, json.Unmarshal([]byte(`{"error":"invalid_client","error_description":"x"}`), &env))
	assert.Equal(t, "invalid_client", env.Error.Message)
}
