package models

import (
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/spotx/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyrightType(t *testing.T) {
	t.Run("Known Codes", func(t *testing.T) {
		c, err := ParseCopyrightType("C")
		require.NoError(t, err)
		assert.Equal(t, CopyrightPerformance, c)
		assert.Equal(t, "C", c.Code())

		p, err := ParseCopyrightType("P")
		require.NoError(t, err)
		assert.Equal(t, CopyrightSoundRecording, p)
		assert.Equal(t, "P", p.Code())
	})

	t.Run("Unknown Codes", func(t *testing.T) {
		for _, code := range []string{"", "c", "p", "X", "CP"} {
			_, err := ParseCopyrightType(code)
			assert.ErrorIs(t, err, shared.ErrUnrecognizedValue, "code %q", code)
		}
	})
}

func TestEnums(t *testing.T) {
	t.Run("Object Type", func(t *testing.T) {
		got, err := ParseObjectType(" Track ")
		require.NoError(t, err)
		assert.Equal(t, ObjectTypeTrack, got)

		_, err = ParseObjectType("group")
		assert.ErrorIs(t, err, shared.ErrUnrecognizedValue)
	})

	t.Run("Album Type Is Lower Cased", func(t *testing.T) {
		assert.Equal(t, AlbumTypeCompilation, ParseAlbumType("COMPILATION"))
	})

	t.Run("Time Range", func(t *testing.T) {
		tt := []struct {
			in   string
			want TimeRange
		}{
			{"short", TimeRangeShort},
			{"medium_term", TimeRangeMedium},
			{"LONG", TimeRangeLong},
		}
		for _, tc := range tt {
			got, err := ParseTimeRange(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		}

		_, err := ParseTimeRange("forever")
		assert.Error(t, err)
	})

	t.Run("Key And Mode", func(t *testing.T) {
		assert.Equal(t, "C", Key(0).String())
		assert.Equal(t, "B", Key(11).String())
		assert.Equal(t, "unknown", KeyUnknown.String())
		assert.Equal(t, "major", ModeMajor.String())
		assert.Equal(t, "minor", ModeMinor.String())
	})
}

func TestPaging(t *testing.T) {
	p := Paging[int]{Items: []int{1, 2, 3}, Limit: 3, Offset: 6, Total: 20, Next: "https://api.spotify.com/v1/x?offset=9"}
	assert.True(t, p.HasNext())
	assert.Equal(t, 9, p.NextOffset())

	last := Paging[int]{Items: []int{1}, Limit: 3, Offset: 18, Total: 19}
	assert.False(t, last.HasNext())

	c := CursorPaging[string]{Cursors: Cursors{After: "abc"}}
	assert.False(t, c.HasNext())
}

func TestAccessCredential(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	cred := AccessCredential{AccessToken: "a", ExpiresAt: now.Add(time.Hour), Scopes: []string{"user-read-private"}}
	assert.False(t, cred.Expired(now))
	assert.True(t, cred.Expired(now.Add(time.Hour)))
	assert.False(t, AccessCredential{}.Expired(now))
	assert.False(t, cred.CanRefresh())
	assert.True(t, cred.HasScope("user-read-private"))
	assert.False(t, cred.HasScope("user-library-read"))
}

func TestError(t *testing.T) {
	var err error = Error{Status: 404, Message: "Non existing id"}

	assert.True(t, errors.Is(err, shared.ErrAPIRequest))
	assert.Contains(t, err.Error(), "404")

	var apiErr Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Non existing id", apiErr.Message)
}

func TestPlaylistTrack(t *testing.T) {
	track := PlaylistTrack{Track: &Track{SimpleTrack: SimpleTrack{Name: "Song"}}}
	assert.Equal(t, ObjectTypeTrack, track.Type())
	assert.Equal(t, "Song", track.Name())

	episode := PlaylistTrack{Episode: &Episode{SimpleEpisode: SimpleEpisode{Name: "Ep"}}}
	assert.Equal(t, ObjectTypeEpisode, episode.Type())

	assert.Equal(t, ObjectType(""), PlaylistTrack{}.Type())
}

func TestSession(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		s := NewSession(1, "default", FlowAuthorizationCode, AccessCredential{AccessToken: "tok"})
		assert.NoError(t, s.Validate())

		missingName := NewSession(1, "", FlowAuthorizationCode, AccessCredential{AccessToken: "tok"})
		assert.ErrorIs(t, missingName.Validate(), shared.ErrInvalidInput)

		badFlow := NewSession(1, "default", FlowKind("implicit"), AccessCredential{AccessToken: "tok"})
		assert.ErrorIs(t, badFlow.Validate(), shared.ErrInvalidInput)

		noToken := NewSession(1, "default", FlowPKCE, AccessCredential{})
		assert.ErrorIs(t, noToken.Validate(), shared.ErrInvalidInput)
	})

	t.Run("Soft Delete", func(t *testing.T) {
		s := NewSession(1, "default", FlowPKCE, AccessCredential{AccessToken: "tok"})
		assert.False(t, s.IsDeleted())
		now := time.Now()
		s.SetDeletedAt(&now)
		assert.True(t, s.IsDeleted())
	})

	t.Run("Flow Kind Aliases", func(t *testing.T) {
		k, err := ParseFlowKind("pkce")
		require.NoError(t, err)
		assert.Equal(t, FlowPKCE, k)
	})
}
