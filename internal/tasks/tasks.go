package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/services"
	"golang.org/x/time/rate"
)

// itemsPageSize is the largest page the playlist items endpoint serves.
const itemsPageSize = 100

var errNoSource = errors.New("playlist source not initialized")

// PlaylistSource reads playlists and their item pages. [services.Catalog] satisfies it.
type PlaylistSource interface {
	GetPlaylist(ctx context.Context, id string, opts ...services.RequestOption) (*models.Playlist, error)
	GetPlaylistItems(ctx context.Context, id string, opts ...services.RequestOption) (*models.Paging[models.PlaylistTrack], error)
}

// PlaylistExport is a playlist together with the items gathered for it.
type PlaylistExport struct {
	Playlist *models.Playlist       `json:"playlist"`
	Items    []models.PlaylistTrack `json:"items"`
}

// FetchOpts controls how [PlaylistEngine.FetchPlaylist] reads a playlist.
type FetchOpts struct {
	Market  string        // Market for relinking, empty for none
	All     bool          // Follow next links past the first page
	Limiter *rate.Limiter // Optional pacing applied before every request
}

// PlaylistEngine runs playlist jobs against a [PlaylistSource].
type PlaylistEngine struct {
	source PlaylistSource
	client *http.Client // used for cover downloads
	logger *log.Logger
}

// NewPlaylistEngine creates a PlaylistEngine. A nil logger discards output.
func NewPlaylistEngine(source PlaylistSource, client *http.Client, logger *log.Logger) *PlaylistEngine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &PlaylistEngine{source: source, client: client, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *PlaylistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func wait(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}

// FetchPlaylist gets a playlist. With opts.All, pages of items are requested until the
// paging object reports no next page or a page comes back empty.
func (e *PlaylistEngine) FetchPlaylist(ctx context.Context, progress chan<- ProgressUpdate, id string, opts FetchOpts) (*PlaylistExport, error) {
	if e.source == nil {
		return nil, errNoSource
	}

	var base []services.RequestOption
	if opts.Market != "" {
		base = append(base, services.Market(opts.Market))
	}

	if err := wait(ctx, opts.Limiter); err != nil {
		return nil, err
	}
	playlist, err := e.source.GetPlaylist(ctx, id, base...)
	if err != nil {
		return nil, err
	}

	export := &PlaylistExport{Playlist: playlist, Items: playlist.Tracks.Items}
	e.sendProgress(progress, foundPlaylistUpdate(1, 1, export))
	if !opts.All {
		return export, nil
	}

	total := playlist.Tracks.Total
	page := playlist.Tracks
	for page.HasNext() {
		offset := page.NextOffset()
		e.logger.Debug("fetching playlist items", "playlist", id, "offset", offset)
		e.sendProgress(progress, fetchItemsUpdate(len(export.Items), total, id, offset))

		if err := wait(ctx, opts.Limiter); err != nil {
			return nil, err
		}
		pageOpts := append([]services.RequestOption{services.Offset(offset), services.Limit(itemsPageSize)}, base...)
		next, err := e.source.GetPlaylistItems(ctx, id, pageOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch items of %s at offset %d: %w", id, offset, err)
		}
		if len(next.Items) == 0 {
			break
		}
		export.Items = append(export.Items, next.Items...)
		page = *next
	}
	return export, nil
}
