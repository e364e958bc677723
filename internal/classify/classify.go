// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides whether a URL names a PDF resource.
package classify

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// pdfSuffix matches ".pdf" at the end of the URL or right before a query.
var pdfSuffix = regexp.MustCompile(`(?i)\.pdf($|\?)`)

const pdfContentType = "application/pdf"

// HasPDFSuffix reports whether rawURL ends in .pdf, optionally followed by
// a query string. Matching is case-insensitive and never touches the network.
func HasPDFSuffix(rawURL string) bool {
	return pdfSuffix.MatchString(rawURL)
}

// Header returns the headers of a HEAD request for url.
// *httputil.Client satisfies it.
type Header interface {
	Head(ctx context.Context, url string) (http.Header, error)
}

// Classifier combines the suffix check with a HEAD content-type probe.
type Classifier struct {
	client Header
	log    zerolog.Logger
}

// New returns a Classifier that probes through client.
func New(client Header, log zerolog.Logger) *Classifier {
	return &Classifier{client: client, log: log}
}

// IsPDF reports whether url names a PDF. Suffix matches return true without
// any request; otherwise one HEAD probe decides. A failed probe yields false.
func (c *Classifier) IsPDF(ctx context.Context, url string) bool {
	if HasPDFSuffix(url) {
		return true
	}
	ok, err := c.Probe(ctx, url)
	if err != nil {
		c.log.Debug().Str("url", url).Err(err).Msg("content-type probe failed")
		return false
	}
	return ok
}

// Probe issues a HEAD request and reports whether the Content-Type contains
// application/pdf.
func (c *Classifier) Probe(ctx context.Context, url string) (bool, error) {
	h, err := c.client.Head(ctx, url)
	if err != nil {
		return false, err
	}
	ct := strings.ToLower(h.Get("Content-Type"))
	return strings.Contains(ct, pdfContentType), nil
}
