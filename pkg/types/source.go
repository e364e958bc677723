// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Source is a named site to collect grant proposal PDFs from.
type Source struct {
	// Name is a unique slug used as the output subdirectory (e.g. "neh").
	Name string `json:"name" yaml:"name"`

	// StartURLs are listing pages or direct PDF links, visited in order.
	StartURLs []string `json:"start_urls" yaml:"start_urls"`

	// AllowedDomains restricts extracted links to these hosts and their
	// subdomains. Empty allows any host.
	AllowedDomains []string `json:"allowed_domains,omitempty" yaml:"allowed_domains,omitempty"`
}

// Candidate is a PDF URL selected for download, with a display title.
type Candidate struct {
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title" yaml:"title"`
}
