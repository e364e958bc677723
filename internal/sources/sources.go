// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources holds the built-in list of grant proposal sources.
package sources

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/grant-sampler/pkg/types"
)

//go:embed sources.yaml
var builtinYAML []byte

// namePattern keeps source names usable as directory names.
var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Builtin returns the compiled-in sources in visiting order.
func Builtin() ([]types.Source, error) {
	return Parse(builtinYAML)
}

// Parse decodes a YAML list of sources and validates it.
func Parse(data []byte) ([]types.Source, error) {
	var list []types.Source
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing sources: %w", err)
	}
	for i := range list {
		for j, d := range list[i].AllowedDomains {
			list[i].AllowedDomains[j] = strings.ToLower(strings.TrimSpace(d))
		}
	}
	if err := Validate(list); err != nil {
		return nil, err
	}
	return list, nil
}

// Validate checks that names are unique slugs and that every source has at
// least one absolute http(s) start URL.
func Validate(list []types.Source) error {
	if len(list) == 0 {
		return errors.New("no sources configured")
	}
	seen := make(map[string]bool, len(list))
	for _, s := range list {
		if !namePattern.MatchString(s.Name) {
			return fmt.Errorf("source name %q is not a lowercase slug", s.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate source name %q", s.Name)
		}
		seen[s.Name] = true

		if len(s.StartURLs) == 0 {
			return fmt.Errorf("source %s has no start URLs", s.Name)
		}
		for _, raw := range s.StartURLs {
			u, err := url.Parse(raw)
			if err != nil {
				return fmt.Errorf("source %s: invalid start URL %q: %w", s.Name, raw, err)
			}
			if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("source %s: start URL %q is not an absolute http(s) URL", s.Name, raw)
			}
		}
		for _, d := range s.AllowedDomains {
			if d == "" || strings.ContainsAny(d, "/: ") {
				return fmt.Errorf("source %s: invalid allowed domain %q", s.Name, d)
			}
		}
	}
	return nil
}
