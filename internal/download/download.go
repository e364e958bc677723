// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download streams remote PDFs to local files.
package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/pdiddy/grant-sampler/internal/httputil"
)

// chunkSize is the copy buffer size; the body is never held in memory whole.
const chunkSize = 8192

// Downloader writes remote resources to disk, reporting progress to a
// writer. It does not inspect or checksum the content.
type Downloader struct {
	client   *httputil.Client
	progress io.Writer
}

// New returns a Downloader. Progress bars are drawn on progress; pass
// io.Discard to disable them.
func New(client *httputil.Client, progress io.Writer) *Downloader {
	if progress == nil {
		progress = io.Discard
	}
	return &Downloader{client: client, progress: progress}
}

// Download fetches url to destPath through a temporary file in the same
// directory, renamed on success. On any failure no file is left at
// destPath and the error describes the cause.
func (d *Downloader) Download(ctx context.Context, url, destPath string) error {
	resp, err := d.client.GetFile(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Close()

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	bar := makeBar(resp.ContentLength, filepath.Base(destPath), d.progress)
	buf := make([]byte, chunkSize)
	_, copyErr := io.CopyBuffer(io.MultiWriter(tmpFile, bar), resp.Body, buf)
	bar.Close()
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// makeBar builds the progress bar for each download; tests replace it.
var makeBar = newBar

// newBar returns a byte progress bar sized from Content-Length; an unknown
// length yields a spinner. The bar is cleared when finished.
func newBar(total int64, description string, w io.Writer) *progressbar.ProgressBar {
	if total <= 0 {
		total = -1
	}
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
