package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/spotx/internal/formatter"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/services"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/urfave/cli/v3"
)

// LibraryTracks lists a page of saved tracks.
func (r *Runner) LibraryTracks(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	page, err := catalog.GetSavedTracks(ctx, append(pageOptions(cmd), services.Market(r.market(cmd)))...)
	if err != nil {
		return err
	}
	r.logger.Debug("saved tracks", "total", page.Total, "offset", page.Offset)
	return r.render(cmd, page, formatter.SavedTracksTable(page.Items))
}

// LibraryAlbums lists a page of saved albums.
func (r *Runner) LibraryAlbums(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	page, err := catalog.GetSavedAlbums(ctx, append(pageOptions(cmd), services.Market(r.market(cmd)))...)
	if err != nil {
		return err
	}
	r.logger.Debug("saved albums", "total", page.Total, "offset", page.Offset)
	return r.render(cmd, page, formatter.SavedAlbumsTable(page.Items))
}

// LibraryPlaylists lists every playlist owned or followed by the user.
func (r *Runner) LibraryPlaylists(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	playlists, err := catalog.AllCurrentUserPlaylists(ctx)
	if err != nil {
		return err
	}
	return r.render(cmd, playlists, formatter.PlaylistsTable(fmt.Sprintf("Playlists (%d)", len(playlists)), playlists))
}

type collection string

const (
	collectionTracks collection = "tracks"
	collectionAlbums collection = "albums"
	collectionShows  collection = "shows"
)

func parseCollection(s string) (collection, error) {
	switch c := collection(strings.ToLower(strings.TrimSpace(s))); c {
	case collectionTracks, collectionAlbums, collectionShows:
		return c, nil
	case "track", "album", "show":
		return c + "s", nil
	default:
		return "", fmt.Errorf("%w: --type %q (want tracks, albums or shows)", shared.ErrInvalidFlag, s)
	}
}

func (r *Runner) modifyLibrary(ctx context.Context, cmd *cli.Command, save bool) error {
	c, err := parseCollection(cmd.String("type"))
	if err != nil {
		return err
	}
	ids, err := requireIDs(cmd)
	if err != nil {
		return err
	}

	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	var fn func(context.Context, []string) error
	switch {
	case c == collectionTracks && save:
		fn = catalog.SaveTracks
	case c == collectionTracks:
		fn = catalog.RemoveTracks
	case c == collectionAlbums && save:
		fn = catalog.SaveAlbums
	case c == collectionAlbums:
		fn = catalog.RemoveAlbums
	case c == collectionShows && save:
		fn = catalog.SaveShows
	default:
		fn = catalog.RemoveShows
	}

	if err := fn(ctx, ids); err != nil {
		return err
	}

	verb := "Removed"
	if save {
		verb = "Saved"
	}
	return r.writePlain("✓ %s %d %s\n", verb, len(ids), c)
}

// LibrarySave saves the given IDs to the --type collection.
func (r *Runner) LibrarySave(ctx context.Context, cmd *cli.Command) error {
	return r.modifyLibrary(ctx, cmd, true)
}

// LibraryRemove removes the given IDs from the --type collection.
func (r *Runner) LibraryRemove(ctx context.Context, cmd *cli.Command) error {
	return r.modifyLibrary(ctx, cmd, false)
}

// LibraryCheck reports whether each ID is in the --type collection.
func (r *Runner) LibraryCheck(ctx context.Context, cmd *cli.Command) error {
	c, err := parseCollection(cmd.String("type"))
	if err != nil {
		return err
	}
	ids, err := requireIDs(cmd)
	if err != nil {
		return err
	}

	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	var saved []bool
	switch c {
	case collectionTracks:
		saved, err = catalog.CheckSavedTracks(ctx, ids)
	case collectionAlbums:
		saved, err = catalog.CheckSavedAlbums(ctx, ids)
	default:
		saved, err = catalog.CheckSavedShows(ctx, ids)
	}
	if err != nil {
		return err
	}
	return r.render(cmd, checks(ids, saved), formatter.ChecksTable("Saved", ids, saved))
}

func checks(ids []string, answers []bool) map[string]bool {
	out := make(map[string]bool, len(ids))
	for i, id := range ids {
		out[id] = i < len(answers) && answers[i]
	}
	return out
}

func parseIDType(s string) (models.IDType, error) {
	switch t := models.IDType(strings.ToLower(s)); t {
	case models.IDTypeArtist, models.IDTypeUser:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q (want artist or user)", shared.ErrInvalidArgument, s)
	}
}

// followAction follows or unfollows the IDs given to the "artist" or "user" subcommand.
func (r *Runner) followAction(follow bool) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		idType, err := parseIDType(cmd.Name)
		if err != nil {
			return err
		}
		ids, err := requireIDs(cmd)
		if err != nil {
			return err
		}

		catalog, err := r.catalogFor(ctx, cmd)
		if err != nil {
			return err
		}

		verb := "Followed"
		if follow {
			err = catalog.Follow(ctx, idType, ids)
		} else {
			verb = "Unfollowed"
			err = catalog.Unfollow(ctx, idType, ids)
		}
		if err != nil {
			return err
		}
		return r.writePlain("✓ %s %d %s(s)\n", verb, len(ids), idType)
	}
}

// FollowedArtists lists the first page of followed artists.
func (r *Runner) FollowedArtists(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	page, err := catalog.GetFollowedArtists(ctx, services.Limit(cmd.Int("limit")))
	if err != nil {
		return err
	}
	return r.render(cmd, page, formatter.ArtistsTable(fmt.Sprintf("Followed Artists (%d total)", page.Total), page.Items))
}

// FollowCheck reports whether the user follows each artist or user. The first argument is the type.
func (r *Runner) FollowCheck(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("%w: artist|user <id>...", shared.ErrMissingArgument)
	}
	idType, err := parseIDType(args[0])
	if err != nil {
		return err
	}

	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	ids := args[1:]
	following, err := catalog.IsFollowing(ctx, idType, ids)
	if err != nil {
		return err
	}
	return r.render(cmd, checks(ids, following), formatter.ChecksTable("Following", ids, following))
}

// Top lists the user's top artists or tracks over --range.
func (r *Runner) Top(ctx context.Context, cmd *cli.Command) error {
	kind := strings.ToLower(cmd.Args().First())
	if kind == "" {
		kind = "tracks"
	}

	timeRange, err := models.ParseTimeRange(cmd.String("range"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	opts := append(pageOptions(cmd), services.WithTimeRange(timeRange))
	switch kind {
	case "artists", "artist":
		page, err := catalog.GetTopArtists(ctx, opts...)
		if err != nil {
			return err
		}
		return r.render(cmd, page, formatter.ArtistsTable("Top Artists", page.Items))
	case "tracks", "track":
		page, err := catalog.GetTopTracks(ctx, opts...)
		if err != nil {
			return err
		}
		return r.render(cmd, page, formatter.TracksTable("Top Tracks", page.Items))
	default:
		return fmt.Errorf("%w: %q (want artists or tracks)", shared.ErrInvalidArgument, kind)
	}
}

func localeOptions(cmd *cli.Command) []services.RequestOption {
	opts := pageOptions(cmd)
	if c := cmd.String("country"); c != "" {
		opts = append(opts, services.Country(c))
	}
	if l := cmd.String("locale"); l != "" {
		opts = append(opts, services.Locale(l))
	}
	return opts
}

// NewReleases lists new album releases.
func (r *Runner) NewReleases(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	page, err := catalog.GetNewReleases(ctx, localeOptions(cmd)...)
	if err != nil {
		return err
	}
	return r.render(cmd, page, formatter.AlbumsTable("New Releases", page.Items))
}

// Featured lists featured playlists for the current local time.
func (r *Runner) Featured(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	featured, err := catalog.GetFeaturedPlaylists(ctx, append(localeOptions(cmd), services.Timestamp(r.now()))...)
	if err != nil {
		return err
	}

	title := featured.Message
	if title == "" {
		title = "Featured Playlists"
	}
	return r.render(cmd, featured, formatter.PlaylistsTable(title, featured.Playlists.Items))
}

// Categories lists browse categories.
func (r *Runner) Categories(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	page, err := catalog.GetCategories(ctx, localeOptions(cmd)...)
	if err != nil {
		return err
	}
	return r.render(cmd, page, formatter.CategoriesTable(page.Items))
}

// Genres lists the genres accepted as recommendation seeds.
func (r *Runner) Genres(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	genres, err := catalog.GetAvailableGenreSeeds(ctx)
	if err != nil {
		return err
	}
	return r.render(cmd, genres, formatter.ListTable("Genre Seeds", "Genre", genres))
}

// parseAttributes reads key=value pairs such as target_energy=0.8.
func parseAttributes(values []string) ([]services.RequestOption, error) {
	var opts []services.RequestOption
	for _, kv := range splitList(values) {
		key, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("%w: --attr %q is not key=value", shared.ErrInvalidFlag, kv)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: --attr %q: %v", shared.ErrInvalidFlag, kv, err)
		}
		opts = append(opts, services.TrackAttribute(strings.TrimSpace(key), value))
	}
	return opts, nil
}

// Recommend lists tracks recommended from the seed flags.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	seeds := services.Seeds{
		Artists: splitList(cmd.StringSlice("seed-artist")),
		Genres:  splitList(cmd.StringSlice("seed-genre")),
		Tracks:  splitList(cmd.StringSlice("seed-track")),
	}

	opts, err := parseAttributes(cmd.StringSlice("attr"))
	if err != nil {
		return err
	}
	opts = append(opts, services.Limit(cmd.Int("limit")), services.Market(r.market(cmd)))

	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	recs, err := catalog.GetRecommendations(ctx, seeds, opts...)
	if err != nil {
		return err
	}
	return r.render(cmd, recs, formatter.TracksTable("Recommendations", recs.Tracks))
}
