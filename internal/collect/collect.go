// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect builds the bounded, de-duplicated candidate list for a
// source by walking its start URLs.
package collect

import (
	"context"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/grant-sampler/internal/links"
	"github.com/pdiddy/grant-sampler/pkg/types"
)

// PDFClassifier decides whether a start URL is itself a PDF.
type PDFClassifier interface {
	IsPDF(ctx context.Context, url string) bool
}

// LinkExtractor returns the PDF links found on a listing page.
type LinkExtractor interface {
	Extract(ctx context.Context, pageURL string, allowedDomains []string) ([]links.Link, error)
}

// Collector turns a source's start URLs into download candidates.
type Collector struct {
	classifier PDFClassifier
	extractor  LinkExtractor
	log        zerolog.Logger
}

// New returns a Collector.
func New(classifier PDFClassifier, extractor LinkExtractor, log zerolog.Logger) *Collector {
	return &Collector{classifier: classifier, extractor: extractor, log: log}
}

// Collect returns at most limit candidates for src with pairwise distinct
// URLs, in discovery order. Start URLs that are PDFs are taken directly;
// the rest are scraped one hop deep. A page that cannot be fetched is
// logged and contributes nothing.
func (c *Collector) Collect(ctx context.Context, src types.Source, limit int) []types.Candidate {
	if limit <= 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var results []types.Candidate

	add := func(u, title string) {
		if _, dup := seen[u]; dup {
			return
		}
		seen[u] = struct{}{}
		if title == "" {
			title = Basename(u)
		}
		results = append(results, types.Candidate{URL: u, Title: title})
	}

	for _, start := range src.StartURLs {
		if len(results) >= limit || ctx.Err() != nil {
			break
		}

		if c.classifier.IsPDF(ctx, start) {
			add(start, "")
			continue
		}

		found, err := c.extractor.Extract(ctx, start, src.AllowedDomains)
		if err != nil {
			c.log.Warn().Str("source", src.Name).Str("url", start).Err(err).Msg("failed to fetch listing page")
			continue
		}
		c.log.Debug().Str("source", src.Name).Str("url", start).Int("links", len(found)).Msg("scraped listing page")

		for _, l := range found {
			if len(results) >= limit {
				break
			}
			add(l.URL, l.Text)
		}
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Basename returns the last segment of rawURL's path, ignoring trailing
// slashes. The path is decoded unless the URL carries a non-canonical raw
// form, which is kept as written. It is empty when the path is.
func Basename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	p := u.Path
	if u.RawPath != "" {
		p = u.RawPath
	}
	p = strings.TrimRight(p, "/")
	return p[strings.LastIndex(p, "/")+1:]
}
