// submodule cmd contains command definitions
package main

import (
	"time"

	"github.com/urfave/cli/v3"
)

func marketFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "market",
		Aliases: []string{"m"},
		Usage:   "ISO 3166-1 alpha-2 country code, defaults to api.market from the config",
	}
}

func limitFlag(value int) cli.Flag {
	return &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"l"},
		Usage:   "Maximum number of items to return",
		Value:   value,
	}
}

func offsetFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "offset",
		Usage: "Index of the first item to return",
	}
}

func collectionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "type",
		Aliases: []string{"t"},
		Usage:   "Collection: tracks, albums or shows",
		Value:   "tracks",
	}
}

// setupCommand handles setup operations for configuration and the session store.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write the default configuration file",
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the session store and run migrations",
				Action: r.action(r.SetupDatabase),
			},
		},
	}
}

// authCommand handles user consent and stored sessions
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authentication and session management",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authorize spotx in the browser and store the session",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pkce",
						Usage: "Use the authorization code flow with PKCE instead of the configured flow",
					},
					&cli.BoolFlag{
						Name:  "show-dialog",
						Usage: "Ask for consent even if it was already given",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for the browser redirect",
						Value: 5 * time.Minute,
					},
				},
				Action: r.action(r.AuthLogin),
			},
			{
				Name:   "status",
				Usage:  "List stored sessions",
				Action: r.action(r.AuthStatus),
			},
			{
				Name:   "refresh",
				Usage:  "Refresh the access token of the current session",
				Action: r.action(r.AuthRefresh),
			},
			{
				Name:   "logout",
				Usage:  "Delete the current session",
				Action: r.action(r.AuthLogout),
			},
		},
	}
}

func meCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "me",
		Usage:  "Show the current user's profile",
		Action: r.action(r.Me),
	}
}

func albumCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "album",
		Usage:     "Show an album",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags: []cli.Flag{
			marketFlag(),
			&cli.BoolFlag{
				Name:  "tracks",
				Usage: "List the album's tracks",
			},
		},
		Action: r.action(r.Album),
	}
}

func artistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "artist",
		Usage:     "Show an artist",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags: []cli.Flag{
			marketFlag(),
			&cli.BoolFlag{
				Name:  "top",
				Usage: "Include the artist's top tracks",
			},
			&cli.BoolFlag{
				Name:  "albums",
				Usage: "Include the artist's albums",
			},
			&cli.StringSliceFlag{
				Name:  "include-groups",
				Usage: "Album groups to list: album, single, appears_on, compilation",
			},
			&cli.BoolFlag{
				Name:  "related",
				Usage: "Include related artists",
			},
		},
		Action: r.action(r.Artist),
	}
}

func trackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "track",
		Usage:     "Show a track",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags: []cli.Flag{
			marketFlag(),
			&cli.BoolFlag{
				Name:  "features",
				Usage: "Include audio features",
			},
		},
		Action: r.action(r.Track),
	}
}

func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "playlist",
		Usage:     "Show a playlist and its items",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags: []cli.Flag{
			marketFlag(),
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Fetch every page of items",
			},
			&cli.StringFlag{
				Name:    "export",
				Aliases: []string{"o"},
				Usage:   "Export in --format instead of printing: a directory for markdown, a file otherwise",
			},
		},
		Action: r.action(r.Playlist),
	}
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the catalog",
		Arguments: []cli.Argument{&cli.StringArg{Name: "query"}},
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Object types to search: album, artist, track, show, episode",
				Value:   []string{"track"},
			},
			limitFlag(10),
			offsetFlag(),
			marketFlag(),
		},
		Action: r.action(r.Search),
	}
}

func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "The current user's saved items",
		Commands: []*cli.Command{
			{
				Name:   "tracks",
				Usage:  "List saved tracks",
				Flags:  []cli.Flag{limitFlag(20), offsetFlag(), marketFlag()},
				Action: r.action(r.LibraryTracks),
			},
			{
				Name:   "albums",
				Usage:  "List saved albums",
				Flags:  []cli.Flag{limitFlag(20), offsetFlag(), marketFlag()},
				Action: r.action(r.LibraryAlbums),
			},
			{
				Name:   "playlists",
				Usage:  "List every playlist the user owns or follows",
				Action: r.action(r.LibraryPlaylists),
			},
			{
				Name:      "save",
				Usage:     "Save items to the library",
				ArgsUsage: "<id>...",
				Flags:     []cli.Flag{collectionFlag()},
				Action:    r.action(r.LibrarySave),
			},
			{
				Name:      "remove",
				Usage:     "Remove items from the library",
				ArgsUsage: "<id>...",
				Flags:     []cli.Flag{collectionFlag()},
				Action:    r.action(r.LibraryRemove),
			},
			{
				Name:      "check",
				Usage:     "Check whether items are saved",
				ArgsUsage: "<id>...",
				Flags:     []cli.Flag{collectionFlag()},
				Action:    r.action(r.LibraryCheck),
			},
		},
	}
}

func followCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "follow",
		Usage: "Follow artists or users",
		Commands: []*cli.Command{
			{
				Name:      "artist",
				Usage:     "Follow artists",
				ArgsUsage: "<id>...",
				Action:    r.action(r.followAction(true)),
			},
			{
				Name:      "user",
				Usage:     "Follow users",
				ArgsUsage: "<id>...",
				Action:    r.action(r.followAction(true)),
			},
			{
				Name:   "list",
				Usage:  "List followed artists",
				Flags:  []cli.Flag{limitFlag(20)},
				Action: r.action(r.FollowedArtists),
			},
			{
				Name:      "check",
				Usage:     "Check whether artists or users are followed",
				ArgsUsage: "artist|user <id>...",
				Action:    r.action(r.FollowCheck),
			},
		},
	}
}

func unfollowCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "unfollow",
		Usage: "Unfollow artists or users",
		Commands: []*cli.Command{
			{
				Name:      "artist",
				Usage:     "Unfollow artists",
				ArgsUsage: "<id>...",
				Action:    r.action(r.followAction(false)),
			},
			{
				Name:      "user",
				Usage:     "Unfollow users",
				ArgsUsage: "<id>...",
				Action:    r.action(r.followAction(false)),
			},
		},
	}
}

func topCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "top",
		Usage:     "The current user's top artists or tracks",
		ArgsUsage: "artists|tracks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "range",
				Aliases: []string{"r"},
				Usage:   "Time range: short, medium or long",
				Value:   "medium",
			},
			limitFlag(20),
			offsetFlag(),
		},
		Action: r.action(r.Top),
	}
}

func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Editorial content",
		Commands: []*cli.Command{
			{
				Name:  "new-releases",
				Usage: "List new album releases",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "country", Usage: "ISO 3166-1 alpha-2 country code"},
					limitFlag(20),
					offsetFlag(),
				},
				Action: r.action(r.NewReleases),
			},
			{
				Name:  "featured",
				Usage: "List featured playlists",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "country", Usage: "ISO 3166-1 alpha-2 country code"},
					&cli.StringFlag{Name: "locale", Usage: "Language and country, e.g. es_MX"},
					limitFlag(20),
					offsetFlag(),
				},
				Action: r.action(r.Featured),
			},
			{
				Name:  "categories",
				Usage: "List browse categories",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "country", Usage: "ISO 3166-1 alpha-2 country code"},
					&cli.StringFlag{Name: "locale", Usage: "Language and country, e.g. es_MX"},
					limitFlag(20),
					offsetFlag(),
				},
				Action: r.action(r.Categories),
			},
			{
				Name:   "genres",
				Usage:  "List genres usable as recommendation seeds",
				Action: r.action(r.Genres),
			},
		},
	}
}

func recommendCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "recommend",
		Usage: "Get track recommendations from up to five seeds",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "seed-artist", Usage: "Artist ID seed"},
			&cli.StringSliceFlag{Name: "seed-genre", Usage: "Genre seed"},
			&cli.StringSliceFlag{Name: "seed-track", Usage: "Track ID seed"},
			&cli.StringSliceFlag{
				Name:  "attr",
				Usage: "Tunable attribute as key=value, e.g. target_energy=0.8",
			},
			limitFlag(20),
			marketFlag(),
		},
		Action: r.action(r.Recommend),
	}
}

func marketsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "markets",
		Usage:  "List markets where Spotify is available",
		Action: r.action(r.Markets),
	}
}
