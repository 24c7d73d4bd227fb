package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/spotx/internal/formatter"
	"github.com/desertthunder/spotx/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultWorkers   = 5
	maxWorkers       = 10
	defaultRateLimit = 5.0
	manifestFile     = "export_manifest.json"
)

// BulkExportOpts contains configuration for bulk playlist exports.
type BulkExportOpts struct {
	Format     formatter.Format // Output format for every playlist (default: json)
	OutputDir  string           // Base output directory (default: spotify_export_{epoch})
	Market     string           // Market passed to every request
	NumWorkers int              // Concurrent workers (default: 5, max: 10)
	RateLimit  float64          // Requests per second across all workers (default: 5)
	Now        func() time.Time // Clock for the default directory and manifest
}

// PlaylistExportResult is the outcome for a single playlist.
type PlaylistExportResult struct {
	PlaylistID   string   `json:"playlist_id"`
	PlaylistName string   `json:"playlist_name"`
	Items        int      `json:"items"`
	Files        []string `json:"files,omitempty"`
	Success      bool     `json:"success"`
	Error        error    `json:"-"`
	Message      string   `json:"error,omitempty"`
}

// BulkExportResult summarizes a [PlaylistEngine.BulkExport] run.
type BulkExportResult struct {
	TotalPlaylists    int                    `json:"total_playlists"`
	SuccessfulExports int                    `json:"successful_exports"`
	FailedExports     int                    `json:"failed_exports"`
	OutputDirectory   string                 `json:"output_directory"`
	Format            formatter.Format       `json:"format"`
	ExportedAt        time.Time              `json:"exported_at"`
	Results           []PlaylistExportResult `json:"results"`
	ManifestPath      string                 `json:"-"`
}

func (o *BulkExportOpts) defaults() {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Format == "" {
		o.Format = formatter.FormatJSON
	}
	if o.OutputDir == "" {
		o.OutputDir = fmt.Sprintf("spotify_export_%d", o.Now().Unix())
	}
	if o.NumWorkers <= 0 {
		o.NumWorkers = defaultWorkers
	}
	if o.NumWorkers > maxWorkers {
		o.NumWorkers = maxWorkers
	}
	if o.RateLimit <= 0 {
		o.RateLimit = defaultRateLimit
	}
}

// BulkExport fetches every playlist in ids with all of its items and writes each one to
// opts.OutputDir, using a worker pool paced by a shared rate limiter.
//
// A failed playlist is recorded in the result and does not stop the others. Results keep the
// order of ids. The manifest is written even when some exports fail; cancellation stops new
// work and returns the context error.
func (e *PlaylistEngine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, ids []string, opts BulkExportOpts) (*BulkExportResult, error) {
	if e.source == nil {
		return nil, errNoSource
	}
	opts.defaults()

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalPlaylists:  len(ids),
		OutputDirectory: opts.OutputDir,
		Format:          opts.Format,
		ExportedAt:      opts.Now().UTC(),
		Results:         make([]PlaylistExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	type job struct {
		index int
		id    string
	}
	type outcome struct {
		index int
		res   PlaylistExportResult
	}

	jobs := make(chan job, len(ids))
	results := make(chan outcome, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					return
				}
				results <- outcome{j.index, e.exportSinglePlaylist(ctx, j.id, limiter, opts)}
			}
		}()
	}

	for i, id := range ids {
		jobs <- job{i, id}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]*PlaylistExportResult, len(ids))
	completed := 0
	for out := range results {
		completed++
		res := out.res
		ordered[out.index] = &res

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(ids), res.PlaylistName, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(ids), res.PlaylistName, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, res := range ordered {
		if res != nil {
			result.Results = append(result.Results, *res)
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, manifestFile)
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// checkFileName rejects ids that would place an export outside the output directory.
func checkFileName(id string) error {
	if id == "" || id == "." || strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: playlist id %q cannot be used as a file name", shared.ErrInvalidArgument, id)
	}
	return nil
}

// exportSinglePlaylist fetches one playlist and writes it in opts.Format.
func (e *PlaylistEngine) exportSinglePlaylist(ctx context.Context, id string, limiter *rate.Limiter, opts BulkExportOpts) PlaylistExportResult {
	result := PlaylistExportResult{PlaylistID: id, PlaylistName: fmt.Sprintf("Unknown (%s)", id)}
	fail := func(err error) PlaylistExportResult {
		result.Error = err
		result.Message = err.Error()
		return result
	}
	if err := checkFileName(id); err != nil {
		return fail(err)
	}

	export, err := e.FetchPlaylist(ctx, nil, id, FetchOpts{Market: opts.Market, All: true, Limiter: limiter})
	if err != nil {
		return fail(fmt.Errorf("failed to fetch playlist: %w", err))
	}
	result.PlaylistName = export.Playlist.Name
	result.Items = len(export.Items)

	if opts.Format == formatter.FormatMarkdown {
		md, err := formatter.WriteMarkdownExport(e.client, e.logger, *export.Playlist, export.Items, filepath.Join(opts.OutputDir, id))
		if err != nil {
			return fail(fmt.Errorf("markdown export failed: %w", err))
		}
		result.Files = md.Files
		result.Success = true
		return result
	}

	path := filepath.Join(opts.OutputDir, id+opts.Format.Extension())
	table := formatter.PlaylistTable(*export.Playlist, export.Items)
	written, err := formatter.WriteExport(path, id, opts.Format, export, table)
	if err != nil {
		return fail(fmt.Errorf("%s export failed: %w", opts.Format, err))
	}
	result.Files = []string{written}
	result.Success = true
	return result
}

func writeManifest(result *BulkExportResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
