// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sampler runs one collection pass: for each source it collects
// candidates, downloads them in order, and writes the manifests.
package sampler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/pdiddy/grant-sampler/internal/collect"
	"github.com/pdiddy/grant-sampler/internal/download"
	"github.com/pdiddy/grant-sampler/internal/manifest"
	"github.com/pdiddy/grant-sampler/pkg/types"
)

// Collector produces the bounded candidate list for a source.
type Collector interface {
	Collect(ctx context.Context, src types.Source, limit int) []types.Candidate
}

// Downloader fetches one URL to a local path.
type Downloader interface {
	Download(ctx context.Context, url, destPath string) error
}

// Result holds the outcome of a run.
type Result struct {
	Downloaded int
	Skipped    int
	Failed     int
	Sources    manifest.Index
}

// Total returns the number of candidates processed.
func (r Result) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any download failed.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Sampler drives the pipeline. Its fields are set once by New.
type Sampler struct {
	cfg        types.SamplerConfig
	collector  Collector
	downloader Downloader
	log        zerolog.Logger
}

// New returns a Sampler for cfg.
func New(cfg types.SamplerConfig, c Collector, d Downloader, log zerolog.Logger) *Sampler {
	return &Sampler{cfg: cfg, collector: c, downloader: d, log: log}
}

// Run processes sources in order, one at a time. Network failures are
// logged and skipped; only local filesystem errors on the output tree stop
// the run.
func (s *Sampler) Run(ctx context.Context, sources []types.Source) (Result, error) {
	var result Result
	if err := os.MkdirAll(s.cfg.OutDir, 0o755); err != nil {
		return result, fmt.Errorf("creating output directory %s: %w", s.cfg.OutDir, err)
	}

	mw := manifest.NewWriter(s.cfg.OutDir)
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := s.runSource(ctx, src, mw, &result); err != nil {
			return result, err
		}
	}

	result.Sources = mw.Index()
	path, err := mw.WriteIndex()
	if err != nil {
		return result, err
	}
	if path != "" {
		s.log.Info().Str("path", path).Msg("saved overall manifest")
	} else {
		s.log.Warn().Msg("no documents collected")
	}

	s.log.Info().
		Int("downloaded", result.Downloaded).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Int("total", result.Total()).
		Msg("done")
	return result, nil
}

func (s *Sampler) runSource(ctx context.Context, src types.Source, mw *manifest.Writer, result *Result) error {
	log := s.log.With().Str("source", src.Name).Logger()
	log.Info().Msg("collecting")

	candidates := s.collector.Collect(ctx, src, s.cfg.MaxPerSource)
	if len(candidates) == 0 {
		log.Warn().Msg("no links found")
		return nil
	}

	srcDir := filepath.Join(s.cfg.OutDir, src.Name)
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", srcDir, err)
	}

	for i, c := range candidates {
		name := download.NumberedName(i+1, collect.Basename(c.URL))
		outPath := filepath.Join(srcDir, name)

		if _, err := os.Stat(outPath); err == nil && !s.cfg.Force {
			log.Info().Str("path", outPath).Msg("skip: exists")
			result.Skipped++
		} else {
			log.Info().Str("url", c.URL).Str("path", outPath).Msg("downloading")
			if err := s.downloader.Download(ctx, c.URL, outPath); err != nil {
				log.Warn().Str("url", c.URL).Err(err).Msg("failed to download")
				result.Failed++
				continue
			}
			result.Downloaded++
		}

		mw.Add(manifest.Entry{
			Filename: name,
			URL:      c.URL,
			Title:    c.Title,
			Source:   src.Name,
		})
	}

	path, err := mw.WriteSource(src.Name)
	if err != nil {
		return err
	}
	if path != "" {
		log.Info().Str("path", path).Int("entries", mw.Len(src.Name)).Msg("wrote manifest")
	}
	return nil
}
