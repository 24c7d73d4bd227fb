package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/spotx/internal/models"
)

// Wire shapes mirror the API's JSON, nullable fields included. They never leave this package;
// see mapping.go for the conversion to [models] types.

type imageJSON struct {
	URL    string `json:"url"`
	Height *int   `json:"height"`
	Width  *int   `json:"width"`
}

type followersJSON struct {
	Href  *string `json:"href"`
	Total int     `json:"total"`
}

type restrictionsJSON struct {
	Reason string `json:"reason"`
}

type resumePointJSON struct {
	FullyPlayed      bool `json:"fully_played"`
	ResumePositionMS int  `json:"resume_position_ms"`
}

type explicitContentJSON struct {
	FilterEnabled bool `json:"filter_enabled"`
	FilterLocked  bool `json:"filter_locked"`
}

// copyrightType is the only wire value whose decoding can fail on an otherwise well formed body.
type copyrightType models.CopyrightType

func (c *copyrightType) UnmarshalJSON(b []byte) error {
	var code string
	if err := json.Unmarshal(b, &code); err != nil {
		return err
	}
	t, err := models.ParseCopyrightType(code)
	if err != nil {
		return err
	}
	*c = copyrightType(t)
	return nil
}

func (c copyrightType) MarshalJSON() ([]byte, error) {
	return json.Marshal(models.CopyrightType(c).Code())
}

type copyrightJSON struct {
	Text string        `json:"text"`
	Type copyrightType `json:"type"`
}

type pagingJSON[T any] struct {
	Href     string  `json:"href"`
	Items    []T     `json:"items"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Total    int     `json:"total"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

type cursorsJSON struct {
	After  *string `json:"after"`
	Before *string `json:"before"`
}

type cursorPagingJSON[T any] struct {
	Href    string       `json:"href"`
	Items   []T          `json:"items"`
	Limit   int          `json:"limit"`
	Total   int          `json:"total"`
	Next    *string      `json:"next"`
	Cursors *cursorsJSON `json:"cursors"`
}

type simpleArtistJSON struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	URI          string            `json:"uri"`
	Href         string            `json:"href"`
	Type         string            `json:"type"`
	ExternalURLs map[string]string `json:"external_urls"`
}

type artistJSON struct {
	simpleArtistJSON
	Followers  followersJSON `json:"followers"`
	Genres     []string      `json:"genres"`
	Images     []imageJSON   `json:"images"`
	Popularity int           `json:"popularity"`
}

type simpleAlbumJSON struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name"`
	URI                  string             `json:"uri"`
	Href                 string             `json:"href"`
	AlbumType            string             `json:"album_type"`
	AlbumGroup           string             `json:"album_group,omitempty"`
	TotalTracks          int                `json:"total_tracks"`
	AvailableMarkets     []string           `json:"available_markets"`
	Artists              []simpleArtistJSON `json:"artists"`
	Images               []imageJSON        `json:"images"`
	ReleaseDate          string             `json:"release_date"`
	ReleaseDatePrecision string             `json:"release_date_precision"`
	Restrictions         *restrictionsJSON  `json:"restrictions,omitempty"`
	ExternalURLs         map[string]string  `json:"external_urls"`
}

type albumJSON struct {
	simpleAlbumJSON
	Copyrights  []copyrightJSON             `json:"copyrights"`
	ExternalIDs map[string]string           `json:"external_ids"`
	Genres      []string                    `json:"genres"`
	Label       string                      `json:"label"`
	Popularity  int                         `json:"popularity"`
	Tracks      pagingJSON[simpleTrackJSON] `json:"tracks"`
}

type trackLinkJSON struct {
	ID           string            `json:"id"`
	URI          string            `json:"uri"`
	Href         string            `json:"href"`
	ExternalURLs map[string]string `json:"external_urls"`
}

type simpleTrackJSON struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	URI              string             `json:"uri"`
	Href             string             `json:"href"`
	PreviewURL       *string            `json:"preview_url"`
	Artists          []simpleArtistJSON `json:"artists"`
	AvailableMarkets []string           `json:"available_markets"`
	DiscNumber       int                `json:"disc_number"`
	TrackNumber      int                `json:"track_number"`
	DurationMS       int                `json:"duration_ms"`
	Explicit         bool               `json:"explicit"`
	IsLocal          bool               `json:"is_local"`
	IsPlayable       *bool              `json:"is_playable,omitempty"`
	LinkedFrom       *trackLinkJSON     `json:"linked_from,omitempty"`
	Restrictions     *restrictionsJSON  `json:"restrictions,omitempty"`
	ExternalURLs     map[string]string  `json:"external_urls"`
}

type trackJSON struct {
	simpleTrackJSON
	Album       simpleAlbumJSON   `json:"album"`
	ExternalIDs map[string]string `json:"external_ids"`
	Popularity  int               `json:"popularity"`
}

type simpleShowJSON struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	HTMLDescription    string            `json:"html_description"`
	Publisher          string            `json:"publisher"`
	MediaType          string            `json:"media_type"`
	URI                string            `json:"uri"`
	Href               string            `json:"href"`
	AvailableMarkets   []string          `json:"available_markets"`
	Copyrights         []copyrightJSON   `json:"copyrights"`
	Explicit           bool              `json:"explicit"`
	IsExternallyHosted *bool             `json:"is_externally_hosted"`
	Images             []imageJSON       `json:"images"`
	Languages          []string          `json:"languages"`
	TotalEpisodes      int               `json:"total_episodes"`
	ExternalURLs       map[string]string `json:"external_urls"`
}

type showJSON struct {
	simpleShowJSON
	Episodes pagingJSON[simpleEpisodeJSON] `json:"episodes"`
}

type simpleEpisodeJSON struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	Description          string            `json:"description"`
	HTMLDescription      string            `json:"html_description"`
	AudioPreviewURL      *string           `json:"audio_preview_url"`
	URI                  string            `json:"uri"`
	Href                 string            `json:"href"`
	DurationMS           int               `json:"duration_ms"`
	Explicit             bool              `json:"explicit"`
	IsExternallyHosted   bool              `json:"is_externally_hosted"`
	IsPlayable           bool              `json:"is_playable"`
	Images               []imageJSON       `json:"images"`
	Languages            []string          `json:"languages"`
	ReleaseDate          string            `json:"release_date"`
	ReleaseDatePrecision string            `json:"release_date_precision"`
	ResumePoint          *resumePointJSON  `json:"resume_point,omitempty"`
	Restrictions         *restrictionsJSON `json:"restrictions,omitempty"`
	ExternalURLs         map[string]string `json:"external_urls"`
}

type episodeJSON struct {
	simpleEpisodeJSON
	Show simpleShowJSON `json:"show"`
}

type publicUserJSON struct {
	ID           string            `json:"id"`
	DisplayName  *string           `json:"display_name"`
	URI          string            `json:"uri"`
	Href         string            `json:"href"`
	Followers    *followersJSON    `json:"followers,omitempty"`
	Images       []imageJSON       `json:"images"`
	ExternalURLs map[string]string `json:"external_urls"`
}

type privateUserJSON struct {
	publicUserJSON
	Country         string               `json:"country"`
	Email           string               `json:"email"`
	Product         string               `json:"product"`
	ExplicitContent *explicitContentJSON `json:"explicit_content,omitempty"`
}

type playlistBaseJSON struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   *string           `json:"description"`
	SnapshotID    string            `json:"snapshot_id"`
	URI           string            `json:"uri"`
	Href          string            `json:"href"`
	Collaborative bool              `json:"collaborative"`
	Public        *bool             `json:"public"`
	Images        []imageJSON       `json:"images"`
	Owner         publicUserJSON    `json:"owner"`
	ExternalURLs  map[string]string `json:"external_urls"`
}

type playlistTracksRefJSON struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

type simplePlaylistJSON struct {
	playlistBaseJSON
	Tracks playlistTracksRefJSON `json:"tracks"`
}

type playlistJSON struct {
	playlistBaseJSON
	Followers followersJSON                 `json:"followers"`
	Tracks    pagingJSON[playlistTrackJSON] `json:"tracks"`
}

type playlistTrackJSON struct {
	AddedAt *time.Time        `json:"added_at"`
	AddedBy *publicUserJSON   `json:"added_by"`
	IsLocal bool              `json:"is_local"`
	Track   *playlistItemJSON `json:"track"`
}

// playlistItemJSON holds either a track or an episode, discriminated by "type".
type playlistItemJSON struct {
	Track   *trackJSON
	Episode *episodeJSON
}

func (p *playlistItemJSON) UnmarshalJSON(b []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}

	switch probe.Type {
	case string(models.ObjectTypeEpisode):
		var e episodeJSON
		if err := json.Unmarshal(b, &e); err != nil {
			return err
		}
		p.Episode = &e
	case string(models.ObjectTypeTrack), "":
		var t trackJSON
		if err := json.Unmarshal(b, &t); err != nil {
			return err
		}
		p.Track = &t
	default:
		return fmt.Errorf("playlist item type %q", probe.Type)
	}
	return nil
}

func (p playlistItemJSON) MarshalJSON() ([]byte, error) {
	if p.Episode != nil {
		return json.Marshal(struct {
			Type string `json:"type"`
			episodeJSON
		}{string(models.ObjectTypeEpisode), *p.Episode})
	}
	if p.Track != nil {
		return json.Marshal(struct {
			Type string `json:"type"`
			trackJSON
		}{string(models.ObjectTypeTrack), *p.Track})
	}
	return []byte("null"), nil
}

type savedAlbumJSON struct {
	AddedAt time.Time `json:"added_at"`
	Album   albumJSON `json:"album"`
}

type savedTrackJSON struct {
	AddedAt time.Time `json:"added_at"`
	Track   trackJSON `json:"track"`
}

type savedShowJSON struct {
	AddedAt time.Time      `json:"added_at"`
	Show    simpleShowJSON `json:"show"`
}

type categoryJSON struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Href  string      `json:"href"`
	Icons []imageJSON `json:"icons"`
}

type recommendationSeedJSON struct {
	ID                 string  `json:"id"`
	Type               string  `json:"type"`
	Href               *string `json:"href"`
	InitialPoolSize    int     `json:"initialPoolSize"`
	AfterFilteringSize int     `json:"afterFilteringSize"`
	AfterRelinkingSize int     `json:"afterRelinkingSize"`
}

type recommendationsJSON struct {
	Seeds  []recommendationSeedJSON `json:"seeds"`
	Tracks []trackJSON              `json:"tracks"`
}

type audioFeaturesJSON struct {
	ID               string  `json:"id"`
	URI              string  `json:"uri"`
	TrackHref        string  `json:"track_href"`
	AnalysisURL      string  `json:"analysis_url"`
	Acousticness     float64 `json:"acousticness"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Loudness         float64 `json:"loudness"`
	Speechiness      float64 `json:"speechiness"`
	Tempo            float64 `json:"tempo"`
	Valence          float64 `json:"valence"`
	DurationMS       int     `json:"duration_ms"`
	Key              int     `json:"key"`
	Mode             int     `json:"mode"`
	TimeSignature    int     `json:"time_signature"`
}

type analysisMetaJSON struct {
	AnalyzerVersion string  `json:"analyzer_version"`
	Platform        string  `json:"platform"`
	DetailedStatus  string  `json:"detailed_status"`
	StatusCode      int     `json:"status_code"`
	Timestamp       int64   `json:"timestamp"`
	AnalysisTime    float64 `json:"analysis_time"`
	InputProcess    string  `json:"input_process"`
}

type analysisTrackJSON struct {
	NumSamples              int     `json:"num_samples"`
	Duration                float64 `json:"duration"`
	SampleMD5               string  `json:"sample_md5"`
	OffsetSeconds           int     `json:"offset_seconds"`
	WindowSeconds           int     `json:"window_seconds"`
	AnalysisSampleRate      int     `json:"analysis_sample_rate"`
	AnalysisChannels        int     `json:"analysis_channels"`
	EndOfFadeIn             float64 `json:"end_of_fade_in"`
	StartOfFadeOut          float64 `json:"start_of_fade_out"`
	Loudness                float64 `json:"loudness"`
	Tempo                   float64 `json:"tempo"`
	TempoConfidence         float64 `json:"tempo_confidence"`
	TimeSignature           int     `json:"time_signature"`
	TimeSignatureConfidence float64 `json:"time_signature_confidence"`
	Key                     int     `json:"key"`
	KeyConfidence           float64 `json:"key_confidence"`
	Mode                    int     `json:"mode"`
	ModeConfidence          float64 `json:"mode_confidence"`
}

type timeIntervalJSON struct {
	Start      float64 `json:"start"`
	Duration   float64 `json:"duration"`
	Confidence float64 `json:"confidence"`
}

type sectionJSON struct {
	timeIntervalJSON
	Loudness                float64 `json:"loudness"`
	Tempo                   float64 `json:"tempo"`
	TempoConfidence         float64 `json:"tempo_confidence"`
	Key                     int     `json:"key"`
	KeyConfidence           float64 `json:"key_confidence"`
	Mode                    int     `json:"mode"`
	ModeConfidence          float64 `json:"mode_confidence"`
	TimeSignature           int     `json:"time_signature"`
	TimeSignatureConfidence float64 `json:"time_signature_confidence"`
}

type segmentJSON struct {
	timeIntervalJSON
	LoudnessStart   float64   `json:"loudness_start"`
	LoudnessMax     float64   `json:"loudness_max"`
	LoudnessMaxTime float64   `json:"loudness_max_time"`
	LoudnessEnd     float64   `json:"loudness_end"`
	Pitches         []float64 `json:"pitches"`
	Timbre          []float64 `json:"timbre"`
}

type audioAnalysisJSON struct {
	Meta     analysisMetaJSON   `json:"meta"`
	Track    analysisTrackJSON  `json:"track"`
	Bars     []timeIntervalJSON `json:"bars"`
	Beats    []timeIntervalJSON `json:"beats"`
	Tatums   []timeIntervalJSON `json:"tatums"`
	Sections []sectionJSON      `json:"sections"`
	Segments []segmentJSON      `json:"segments"`
}

// apiErrorJSON accepts both {"status": 400, "message": "..."} and a bare string.
type apiErrorJSON struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *apiErrorJSON) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &e.Message)
	}
	type plain apiErrorJSON
	return json.Unmarshal(b, (*plain)(e))
}

type errorEnvelope struct {
	Error *apiErrorJSON `json:"error"`
}

// Envelopes wrapping the payload of list and browse endpoints.

type albumsEnvelope struct {
	Albums []*albumJSON `json:"albums"`
}

type artistsEnvelope struct {
	Artists []*artistJSON `json:"artists"`
}

type tracksEnvelope struct {
	Tracks []*trackJSON `json:"tracks"`
}

type episodesEnvelope struct {
	Episodes []*episodeJSON `json:"episodes"`
}

type showsEnvelope struct {
	Shows []*simpleShowJSON `json:"shows"`
}

type audioFeaturesEnvelope struct {
	AudioFeatures []*audioFeaturesJSON `json:"audio_features"`
}

type categoriesEnvelope struct {
	Categories pagingJSON[categoryJSON] `json:"categories"`
}

// playlistsPageEnvelope also carries the message of the featured playlists response.
type playlistsPageEnvelope struct {
	Message   string                         `json:"message,omitempty"`
	Playlists pagingJSON[simplePlaylistJSON] `json:"playlists"`
}

type albumsPageEnvelope struct {
	Albums pagingJSON[simpleAlbumJSON] `json:"albums"`
}

type followedArtistsEnvelope struct {
	Artists cursorPagingJSON[artistJSON] `json:"artists"`
}

type genresEnvelope struct {
	Genres []string `json:"genres"`
}

type marketsEnvelope struct {
	Markets []string `json:"markets"`
}

type searchEnvelope struct {
	Albums   *pagingJSON[simpleAlbumJSON]   `json:"albums,omitempty"`
	Artists  *pagingJSON[artistJSON]        `json:"artists,omitempty"`
	Tracks   *pagingJSON[trackJSON]         `json:"tracks,omitempty"`
	Shows    *pagingJSON[simpleShowJSON]    `json:"shows,omitempty"`
	Episodes *pagingJSON[simpleEpisodeJSON] `json:"episodes,omitempty"`
}
