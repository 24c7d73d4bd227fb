package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/spotx/internal/formatter"
	"github.com/desertthunder/spotx/internal/shared"
)

func playlistIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("playlist%d", i+1)
	}
	return ids
}

func TestBulkExport_SuccessfulExport(t *testing.T) {
	tests := []struct {
		name          string
		format        formatter.Format
		playlistCount int
		validate      func(t *testing.T, result *BulkExportResult, dir string)
	}{
		{
			name:          "single playlist json export",
			format:        formatter.FormatJSON,
			playlistCount: 1,
			validate: func(t *testing.T, result *BulkExportResult, dir string) {
				data, err := os.ReadFile(filepath.Join(dir, "playlist1.json"))
				if err != nil {
					t.Fatalf("JSON file not created: %v", err)
				}
				var export PlaylistExport
				if err := json.Unmarshal(data, &export); err != nil {
					t.Fatalf("invalid JSON export: %v", err)
				}
				if len(export.Items) != 3 {
					t.Errorf("expected every page exported, got %d items", len(export.Items))
				}
			},
		},
		{
			name:          "multiple playlists csv export",
			format:        formatter.FormatCSV,
			playlistCount: 3,
			validate: func(t *testing.T, result *BulkExportResult, dir string) {
				for _, id := range playlistIDs(3) {
					if _, err := os.Stat(filepath.Join(dir, id+".csv")); err != nil {
						t.Errorf("CSV file for %s not created: %v", id, err)
					}
				}
			},
		},
		{
			name:          "text export",
			format:        formatter.FormatText,
			playlistCount: 2,
			validate: func(t *testing.T, result *BulkExportResult, dir string) {
				data, err := os.ReadFile(filepath.Join(dir, "playlist2.txt"))
				if err != nil {
					t.Fatalf("text file not created: %v", err)
				}
				if !strings.Contains(string(data), "Song 2") {
					t.Errorf("expected item names in text export, got %s", data)
				}
			},
		},
		{
			name:          "markdown export",
			format:        formatter.FormatMarkdown,
			playlistCount: 1,
			validate: func(t *testing.T, result *BulkExportResult, dir string) {
				if _, err := os.Stat(filepath.Join(dir, "playlist1", "README.md")); err != nil {
					t.Errorf("README.md not created: %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			source := newFakeSource(2)
			ids := playlistIDs(tt.playlistCount)
			for _, id := range ids {
				source.items[id] = 3
			}

			engine := NewPlaylistEngine(source, nil, nil)
			result, err := engine.BulkExport(context.Background(), nil, ids, BulkExportOpts{
				Format:     tt.format,
				OutputDir:  dir,
				NumWorkers: 2,
				RateLimit:  1000,
			})
			if err != nil {
				t.Fatalf("BulkExport() error = %v", err)
			}

			if result.SuccessfulExports != tt.playlistCount || result.FailedExports != 0 {
				t.Errorf("expected %d successes and no failures, got %d/%d", tt.playlistCount, result.SuccessfulExports, result.FailedExports)
			}
			if len(result.Results) != tt.playlistCount {
				t.Fatalf("expected %d results, got %d", tt.playlistCount, len(result.Results))
			}
			for i, res := range result.Results {
				if res.PlaylistID != ids[i] {
					t.Errorf("result %d: expected %s, got %s", i, ids[i], res.PlaylistID)
				}
				if res.Items != 3 {
					t.Errorf("result %d: expected 3 items, got %d", i, res.Items)
				}
				if len(res.Files) == 0 {
					t.Errorf("result %d: expected files", i)
				}
			}
			tt.validate(t, result, dir)
		})
	}
}

func TestBulkExport_PartialFailures(t *testing.T) {
	dir := t.TempDir()
	source := newFakeSource(10)
	ids := playlistIDs(3)
	for _, id := range ids {
		source.items[id] = 1
	}
	source.errs["playlist2"] = errors.New("not found")

	engine := NewPlaylistEngine(source, nil, nil)
	result, err := engine.BulkExport(context.Background(), nil, ids, BulkExportOpts{OutputDir: dir, RateLimit: 1000})
	if err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}

	if result.SuccessfulExports != 2 || result.FailedExports != 1 {
		t.Errorf("expected 2 successes and 1 failure, got %d/%d", result.SuccessfulExports, result.FailedExports)
	}

	failed := result.Results[1]
	if failed.Success || failed.Error == nil {
		t.Fatalf("expected playlist2 to fail, got %+v", failed)
	}
	if failed.PlaylistName != "Unknown (playlist2)" {
		t.Errorf("expected placeholder name, got %s", failed.PlaylistName)
	}
	if !strings.Contains(failed.Message, "not found") {
		t.Errorf("expected error message, got %q", failed.Message)
	}

	data, err := os.ReadFile(result.ManifestPath)
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	var manifest map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("invalid manifest: %v", err)
	}
	if manifest["failed_exports"] != float64(1) {
		t.Errorf("expected failed_exports 1 in manifest, got %v", manifest["failed_exports"])
	}
	if !strings.Contains(string(data), `"error": "failed to fetch playlist: not found"`) {
		t.Errorf("expected failure message in manifest, got %s", data)
	}
}

func TestBulkExport_ServiceError(t *testing.T) {
	engine := NewPlaylistEngine(nil, nil, nil)
	_, err := engine.BulkExport(context.Background(), nil, []string{"p1"}, BulkExportOpts{OutputDir: t.TempDir()})
	if !errors.Is(err, errNoSource) {
		t.Errorf("expected errNoSource, got %v", err)
	}
}

func TestBulkExport_ContextCancellation(t *testing.T) {
	source := newFakeSource(10)
	ids := playlistIDs(5)
	for _, id := range ids {
		source.items[id] = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewPlaylistEngine(source, nil, nil)
	result, err := engine.BulkExport(ctx, nil, ids, BulkExportOpts{OutputDir: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result != nil {
		t.Error("expected no result after cancellation")
	}
}

func TestBulkExport_DefaultOptions(t *testing.T) {
	t.Chdir(t.TempDir())

	source := newFakeSource(10)
	source.items["p1"] = 1
	now := time.Unix(1700000000, 0)

	engine := NewPlaylistEngine(source, nil, nil)
	result, err := engine.BulkExport(context.Background(), nil, []string{"p1"}, BulkExportOpts{
		RateLimit: 1000,
		Now:       func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}

	if result.OutputDirectory != "spotify_export_1700000000" {
		t.Errorf("expected default directory, got %s", result.OutputDirectory)
	}
	if result.Format != formatter.FormatJSON {
		t.Errorf("expected json default, got %s", result.Format)
	}
	if !result.ExportedAt.Equal(now) {
		t.Errorf("expected exported_at %v, got %v", now, result.ExportedAt)
	}
	if _, err := os.Stat(filepath.Join("spotify_export_1700000000", "p1.json")); err != nil {
		t.Errorf("expected export in default directory: %v", err)
	}
}

func TestBulkExport_WorkerPoolLimits(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"zero uses default", 0, defaultWorkers},
		{"negative uses default", -3, defaultWorkers},
		{"within range", 7, 7},
		{"capped at max", 50, maxWorkers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := BulkExportOpts{NumWorkers: tt.workers, OutputDir: "out"}
			opts.defaults()
			if opts.NumWorkers != tt.want {
				t.Errorf("expected %d workers, got %d", tt.want, opts.NumWorkers)
			}
			if opts.RateLimit != defaultRateLimit {
				t.Errorf("expected default rate limit, got %v", opts.RateLimit)
			}
		})
	}
}

func TestBulkExport_RateLimiting(t *testing.T) {
	source := newFakeSource(10)
	ids := playlistIDs(4)
	for _, id := range ids {
		source.items[id] = 1
	}

	engine := NewPlaylistEngine(source, nil, nil)
	start := time.Now()
	_, err := engine.BulkExport(context.Background(), nil, ids, BulkExportOpts{
		OutputDir:  t.TempDir(),
		NumWorkers: 4,
		RateLimit:  20,
	})
	if err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}

	// 4 requests at 20/s with a burst of 1 need at least 3 intervals of 50ms.
	if elapsed := time.Since(start); elapsed < 140*time.Millisecond {
		t.Errorf("expected requests to be paced, finished in %v", elapsed)
	}
}

func TestBulkExport_ProgressUpdates(t *testing.T) {
	source := newFakeSource(10)
	ids := playlistIDs(3)
	for _, id := range ids {
		source.items[id] = 1
	}
	source.errs["playlist3"] = errors.New("gone")

	progress := make(chan ProgressUpdate, 10)
	engine := NewPlaylistEngine(source, nil, nil)
	if _, err := engine.BulkExport(context.Background(), progress, ids, BulkExportOpts{OutputDir: t.TempDir(), RateLimit: 1000}); err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}
	close(progress)

	var done, failed int
	for u := range progress {
		if u.Phase != ExportPlaylist {
			t.Errorf("unexpected phase %s", u.Phase)
		}
		if u.Total != 3 {
			t.Errorf("expected total 3, got %d", u.Total)
		}
		switch {
		case strings.Contains(u.Message, "✓"):
			done++
		case strings.Contains(u.Message, "✗"):
			failed++
		}
	}
	if done != 2 || failed != 1 {
		t.Errorf("expected 2 completed and 1 failed update, got %d/%d", done, failed)
	}
}

func TestBulkExport_InvalidOutputDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	source := newFakeSource(10)
	engine := NewPlaylistEngine(source, nil, nil)
	_, err := engine.BulkExport(context.Background(), nil, []string{"p1"}, BulkExportOpts{OutputDir: filepath.Join(file, "sub")})
	if err == nil || !strings.Contains(err.Error(), "failed to create output directory") {
		t.Errorf("expected output directory error, got %v", err)
	}
	if got := source.count("GetPlaylist"); got != 0 {
		t.Errorf("expected no requests, got %d", got)
	}
}

func TestBulkExport_UnknownFormat(t *testing.T) {
	source := newFakeSource(10)
	source.items["p1"] = 1

	engine := NewPlaylistEngine(source, nil, nil)
	result, err := engine.BulkExport(context.Background(), nil, []string{"p1"}, BulkExportOpts{
		OutputDir: t.TempDir(),
		Format:    formatter.Format("yaml"),
		RateLimit: 1000,
	})
	if err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}
	if result.FailedExports != 1 {
		t.Errorf("expected the playlist to fail, got %+v", result.Results)
	}
}

func TestBulkExport_UnsafePlaylistIDs(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "out")

	source := newFakeSource(10)
	ids := []string{"../escaped", "good", `..\win`, "nested/id", ".."}
	for _, id := range ids {
		source.items[id] = 1
	}

	engine := NewPlaylistEngine(source, nil, nil)
	result, err := engine.BulkExport(context.Background(), nil, ids, BulkExportOpts{OutputDir: dir, RateLimit: 1000})
	if err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}

	if result.SuccessfulExports != 1 || result.FailedExports != 4 {
		t.Errorf("expected 1 success and 4 failures, got %d/%d", result.SuccessfulExports, result.FailedExports)
	}
	for _, res := range result.Results {
		if res.PlaylistID == "good" {
			continue
		}
		if !errors.Is(res.Error, shared.ErrInvalidArgument) {
			t.Errorf("%s: expected ErrInvalidArgument, got %v", res.PlaylistID, res.Error)
		}
	}
	if got := source.count("GetPlaylist "); got != 1 {
		t.Errorf("expected only the safe id to be fetched, got %d requests", got)
	}
	if _, err := os.Stat(filepath.Join(root, "escaped.json")); !os.IsNotExist(err) {
		t.Errorf("expected nothing written outside the output directory, got %v", err)
	}
}
