package main

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/services"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/desertthunder/spotx/internal/tasks"
	"github.com/desertthunder/spotx/internal/ui"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
)

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export playlists with every item in --format, defaults to all of your playlists",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: spotify_export_{epoch})",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Playlists exported concurrently, at most 10",
				Value: 5,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Requests per second across all workers",
				Value: 5,
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Pick playlists in a terminal UI",
			},
			marketFlag(),
		},
		Action: r.action(r.Export),
	}
}

// Export writes the playlists named as arguments, or every playlist of the current user,
// to one directory along with a manifest. Any failed playlist makes the command fail after
// the summary is printed.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := r.format(cmd)
	if err != nil {
		return err
	}

	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	opts := tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("dir"),
		Market:     r.market(cmd),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
		Now:        r.now,
	}

	if cmd.Bool("interactive") {
		return r.exportInteractive(ctx, catalog, opts)
	}

	ids := lo.Compact(cmd.Args().Slice())
	if len(ids) == 0 {
		r.logger.Info("listing playlists of the current user")
		playlists, err := catalog.AllCurrentUserPlaylists(ctx)
		if err != nil {
			return err
		}
		ids = lo.Map(playlists, func(p models.SimplePlaylist, _ int) string { return p.ID })
	}
	if len(ids) == 0 {
		return r.writePlain("No playlists to export\n")
	}

	progress := make(chan tasks.ProgressUpdate, len(ids))
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for u := range progress {
			r.logger.Info(u.Message, "phase", u.Phase)
		}
	}()

	engine := tasks.NewPlaylistEngine(catalog, r.httpClient, r.logger)
	result, err := engine.BulkExport(ctx, progress, ids, opts)
	close(progress)
	wg.Wait()
	if result == nil {
		return err
	}

	r.writePlain("✓ Exported %d of %d playlists to %s\n", result.SuccessfulExports, result.TotalPlaylists, result.OutputDirectory)
	for _, res := range result.Results {
		if !res.Success {
			r.writePlain("✗ %s: %s\n", res.PlaylistName, res.Message)
		}
	}
	if err != nil {
		return err
	}
	if result.ManifestPath != "" {
		r.writePlain("Manifest: %s\n", result.ManifestPath)
	}
	if result.FailedExports > 0 {
		return fmt.Errorf("%w: %d playlists failed to export", shared.ErrAPIRequest, result.FailedExports)
	}
	return nil
}

// exportInteractive runs the playlist picker. The engine logs nowhere while the TUI owns the terminal.
func (r *Runner) exportInteractive(ctx context.Context, catalog services.Catalog, opts tasks.BulkExportOpts) error {
	engine := tasks.NewPlaylistEngine(catalog, r.httpClient, nil)
	model := ui.NewModel(ctx, catalog, engine, opts)

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	if err := model.Err(); err != nil {
		return err
	}
	if result := model.Result(); result != nil {
		return r.writePlain("✓ Exported %d of %d playlists to %s\n", result.SuccessfulExports, result.TotalPlaylists, result.OutputDirectory)
	}
	return nil
}
