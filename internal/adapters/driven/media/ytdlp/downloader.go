// Package ytdlp downloads video audio tracks through the external yt-dlp
// tool.
package ytdlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/sitesage/internal/core/ports/driven"
	"github.com/custodia-labs/sitesage/internal/logger"
)

// Ensure Downloader implements the interface.
var _ driven.AudioDownloader = (*Downloader)(nil)

// Binary is the yt-dlp executable name resolved from PATH.
const Binary = "yt-dlp"

// Downloader shells out to yt-dlp to extract the best audio track as a
// wav file.
type Downloader struct {
	runner driven.CommandRunner
}

// New creates a downloader over the given command runner.
func New(runner driven.CommandRunner) *Downloader {
	return &Downloader{runner: runner}
}

// DownloadAudio downloads the audio track of videoURL into destDir and
// returns the path of the resulting wav file.
func (d *Downloader) DownloadAudio(ctx context.Context, videoURL, destDir string) (string, error) {
	out, err := d.runner.Run(ctx, Binary,
		"-f", "bestaudio",
		"-x", "--audio-format", "wav",
		"-o", filepath.Join(destDir, "audio.%(ext)s"),
		"--quiet",
		videoURL,
	)
	if err != nil {
		logger.Debug("yt-dlp output: %s", string(out))
		return "", fmt.Errorf("audio download failed: %w", err)
	}

	entries, err := os.ReadDir(destDir)
	if err != nil {
		return "", fmt.Errorf("read download directory: %w", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".wav") {
			return filepath.Join(destDir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("audio download failed: no wav file produced")
}
