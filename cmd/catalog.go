package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spotx/internal/formatter"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/services"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/desertthunder/spotx/internal/tasks"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
)

func requireArg(cmd *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("%w: <%s>", shared.ErrMissingArgument, name)
	}
	return v, nil
}

func requireIDs(cmd *cli.Command) ([]string, error) {
	ids := lo.Compact(cmd.Args().Slice())
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one <id>", shared.ErrMissingArgument)
	}
	return ids, nil
}

// splitList flattens repeated and comma separated flag values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// pageOptions maps --limit and --offset. An explicit value is always sent, zero included, so
// out of range values are rejected by the library. Unset flags with no default are left to the API.
func pageOptions(cmd *cli.Command) []services.RequestOption {
	var opts []services.RequestOption
	if n := cmd.Int("limit"); n != 0 || cmd.IsSet("limit") {
		opts = append(opts, services.Limit(n))
	}
	if n := cmd.Int("offset"); n != 0 || cmd.IsSet("offset") {
		opts = append(opts, services.Offset(n))
	}
	return opts
}

// Me shows the current user's profile.
func (r *Runner) Me(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	user, err := catalog.GetCurrentUserProfile(ctx)
	if err != nil {
		return err
	}
	return r.render(cmd, user, formatter.UserTable(*user))
}

// Album shows an album, with its first page of tracks when --tracks is set.
func (r *Runner) Album(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}

	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	album, err := catalog.GetAlbum(ctx, id, services.Market(r.market(cmd)))
	if err != nil {
		return err
	}

	table := formatter.AlbumTable(*album)
	if !cmd.Bool("tracks") {
		table.Headers, table.Rows = nil, nil
	}
	return r.render(cmd, album, table)
}

type artistView struct {
	Artist    *models.Artist       `json:"artist"`
	TopTracks []models.Track       `json:"top_tracks,omitempty"`
	Albums    []models.SimpleAlbum `json:"albums,omitempty"`
	Related   []models.Artist      `json:"related,omitempty"`
}

// Artist shows an artist with optional top tracks, albums and related artists.
func (r *Runner) Artist(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}

	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	artist, err := catalog.GetArtist(ctx, id)
	if err != nil {
		return err
	}

	view := artistView{Artist: artist}
	tables := []formatter.Table{formatter.ArtistTable(*artist)}

	if cmd.Bool("top") {
		if view.TopTracks, err = catalog.GetArtistTopTracks(ctx, id, r.market(cmd)); err != nil {
			return err
		}
		tables = append(tables, formatter.TracksTable("Top Tracks", view.TopTracks))
	}

	if cmd.Bool("albums") {
		groups := lo.Map(splitList(cmd.StringSlice("include-groups")), func(g string, _ int) models.AlbumGroup {
			return models.AlbumGroup(strings.ToLower(g))
		})
		opts := []services.RequestOption{services.Market(r.market(cmd))}
		if len(groups) > 0 {
			opts = append(opts, services.IncludeGroups(groups...))
		}
		albums, err := catalog.GetArtistAlbums(ctx, id, opts...)
		if err != nil {
			return err
		}
		view.Albums = albums.Items
		tables = append(tables, formatter.AlbumsTable(fmt.Sprintf("Albums (%d total)", albums.Total), albums.Items))
	}

	if cmd.Bool("related") {
		if view.Related, err = catalog.GetArtistRelatedArtists(ctx, id); err != nil {
			return err
		}
		tables = append(tables, formatter.ArtistsTable("Related Artists", view.Related))
	}

	return r.render(cmd, view, tables...)
}

type trackView struct {
	Track    *models.Track         `json:"track"`
	Features *models.AudioFeatures `json:"audio_features,omitempty"`
}

// Track shows a track, with its audio features when --features is set.
func (r *Runner) Track(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}

	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	track, err := catalog.GetTrack(ctx, id, services.Market(r.market(cmd)))
	if err != nil {
		return err
	}

	view := trackView{Track: track}
	tables := []formatter.Table{formatter.TracksTable(track.Name, []models.Track{*track})}

	if cmd.Bool("features") {
		if view.Features, err = catalog.GetAudioFeatures(ctx, id); err != nil {
			return err
		}
		tables = append(tables, formatter.AudioFeaturesTable([]models.AudioFeatures{*view.Features}))
	}

	return r.render(cmd, view, tables...)
}

// Playlist shows a playlist. With --all every page of items is fetched, and with --export the
// playlist is written to disk instead of the terminal.
func (r *Runner) Playlist(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}

	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	engine := tasks.NewPlaylistEngine(catalog, r.httpClient, r.logger)
	view, err := engine.FetchPlaylist(ctx, nil, id, tasks.FetchOpts{Market: r.market(cmd), All: cmd.Bool("all")})
	if err != nil {
		return err
	}
	playlist, items := view.Playlist, view.Items
	table := formatter.PlaylistTable(*playlist, items)

	dest := cmd.String("export")
	if dest == "" {
		return r.render(cmd, view, table)
	}

	format, err := r.format(cmd)
	if err != nil {
		return err
	}

	if format == formatter.FormatMarkdown {
		result, err := formatter.WriteMarkdownExport(r.httpClient, r.logger, *playlist, items, dest)
		if err != nil {
			return err
		}
		r.logger.Info("playlist exported", "dir", result.Directory, "files", len(result.Files))
		return r.writePlain("✓ Exported %d items to %s\n", len(items), result.Directory)
	}

	path, err := formatter.WriteExport(dest, playlist.ID, format, view, table)
	if err != nil {
		return err
	}
	r.logger.Info("playlist exported", "path", path, "format", format)
	return r.writePlain("✓ Exported %d items to %s\n", len(items), path)
}

// Search queries the catalog for each --type concurrently and prints one table per type.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query, err := requireArg(cmd, "query")
	if err != nil {
		return err
	}

	var types []models.ObjectType
	for _, name := range splitList(cmd.StringSlice("type")) {
		t, err := models.ParseObjectType(name)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}
		types = append(types, t)
	}

	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	opts := append(pageOptions(cmd), services.Market(r.market(cmd)))
	results, err := catalog.Search(ctx, query, types, opts...)
	if err != nil {
		return err
	}

	r.logger.Debug("search complete", "query", query, "types", len(results))
	return r.render(cmd, results, formatter.SearchTables(results)...)
}

// Markets lists the markets where Spotify is available.
func (r *Runner) Markets(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	markets, err := catalog.GetAvailableMarkets(ctx)
	if err != nil {
		return err
	}
	return r.render(cmd, markets, formatter.ListTable("Markets", "Market", markets))
}
