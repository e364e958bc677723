// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package links extracts PDF links from a listing page.
package links

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/idna"

	"github.com/pdiddy/grant-sampler/internal/classify"
	"github.com/pdiddy/grant-sampler/internal/httputil"
)

// Link is an absolute PDF URL and the visible text of its anchor.
type Link struct {
	URL  string
	Text string
}

// Extractor fetches listing pages and collects the PDF links on them.
type Extractor struct {
	client *httputil.Client
}

// New returns an Extractor that fetches pages through client.
func New(client *httputil.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract fetches pageURL and returns every anchor whose resolved target
// ends in .pdf and whose host passes allowedDomains, in document order.
// No HEAD probes are made, so the page costs exactly one GET. The error
// describes a failed fetch or parse; callers treat it as "no links".
func (e *Extractor) Extract(ctx context.Context, pageURL string, allowedDomains []string) ([]Link, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}

	resp, err := e.client.GetPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return FromDocument(doc, base, allowedDomains), nil
}

// FromDocument walks a parsed document and applies the same filtering as
// Extract, resolving hrefs against base.
func FromDocument(doc *goquery.Document, base *url.URL, allowedDomains []string) []Link {
	var out []Link
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		if !AllowedHost(abs.Hostname(), allowedDomains) {
			return
		}
		s := abs.String()
		if !classify.HasPDFSuffix(s) {
			return
		}
		out = append(out, Link{URL: s, Text: anchorText(a)})
	})
	return out
}

// AllowedHost reports whether host equals one of domains or is a subdomain
// of one. An empty list allows every host.
func AllowedHost(host string, domains []string) bool {
	if len(domains) == 0 {
		return true
	}
	host = normalizeHost(host)
	if host == "" {
		return false
	}
	for _, d := range domains {
		d = normalizeHost(d)
		if d == "" {
			continue
		}
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func normalizeHost(h string) string {
	h = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(h)), ".")
	if ascii, err := idna.Lookup.ToASCII(h); err == nil {
		return ascii
	}
	return h
}

// anchorText returns the anchor's text trimmed at both ends; inner
// whitespace is kept as written.
func anchorText(a *goquery.Selection) string {
	return strings.TrimSpace(a.Text())
}
