package formatter

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotx/internal/models"
)

// Extension returns the file extension used when exporting in format.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatCSV:
		return ".csv"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// WriteExport renders value and its tables in format to path.
// Defaults to {base}{ext} in the working directory when path is empty.
func WriteExport(path, base string, format Format, value any, tables ...Table) (string, error) {
	if path == "" {
		path = base + format.Extension()
	}

	var buf bytes.Buffer
	if err := Render(&buf, format, value, tables...); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// MarkdownExportResult contains information about files created by [WriteMarkdownExport]
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports a playlist to {dir}/README.md with its cover image next to it.
//
// Directory name defaults to the playlist ID. A failed cover download is logged and skipped.
func WriteMarkdownExport(client *http.Client, logger *log.Logger, p models.Playlist, items []models.PlaylistTrack, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = p.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{Directory: outputDir, Files: []string{}}

	var cover []byte
	if len(p.Images) > 0 {
		imageData, err := DownloadImage(client, p.Images[0].URL)
		if err != nil {
			logger.Warn("failed to download cover image", "playlist", p.ID, "error", err)
		} else {
			coverPath := filepath.Join(outputDir, "cover.jpg")
			if err := os.WriteFile(coverPath, imageData, 0644); err != nil {
				logger.Warn("failed to save cover image", "path", coverPath, "error", err)
			} else {
				cover = imageData
				result.CoverImage = coverPath
				result.Files = append(result.Files, coverPath)
			}
		}
	}

	md := ToMarkdown(PlaylistTable(p, items))
	if cover != nil {
		md = bytes.Replace(md, []byte("\n\n"), []byte("\n\n![Cover](cover.jpg)\n\n"), 1)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, md, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}
	result.Files = append(result.Files, mdFile)

	return result, nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(client *http.Client, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}
