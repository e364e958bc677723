// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/grant-sampler/pkg/types"
)

func TestBuiltin(t *testing.T) {
	list, err := Builtin()
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "neh", list[0].Name)
	assert.Equal(t, []string{"neh.gov"}, list[0].AllowedDomains)

	assert.Equal(t, "wellcome", list[1].Name)
	assert.Len(t, list[1].StartURLs, 3)
	assert.Equal(t, []string{"wellcome.org", "cms.wellcome.org"}, list[1].AllowedDomains)

	assert.Equal(t, "erc", list[2].Name)
	assert.Empty(t, list[2].AllowedDomains, "erc allows any host")
}

func TestParse_NormalizesDomains(t *testing.T) {
	list, err := Parse([]byte(`
- name: x
  start_urls: [https://x.test/list]
  allowed_domains: [" X.Test "]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"x.test"}, list[0].AllowedDomains)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("name: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	ok := types.Source{Name: "ok", StartURLs: []string{"https://ok.test/"}}
	tests := []struct {
		name    string
		list    []types.Source
		wantErr string
	}{
		{"valid", []types.Source{ok}, ""},
		{"empty list", nil, "no sources"},
		{"bad name", []types.Source{{Name: "Bad Name", StartURLs: ok.StartURLs}}, "not a lowercase slug"},
		{"path in name", []types.Source{{Name: "../up", StartURLs: ok.StartURLs}}, "not a lowercase slug"},
		{"duplicate", []types.Source{ok, ok}, "duplicate"},
		{"no start urls", []types.Source{{Name: "x"}}, "no start URLs"},
		{"relative url", []types.Source{{Name: "x", StartURLs: []string{"/list"}}}, "not an absolute"},
		{"ftp url", []types.Source{{Name: "x", StartURLs: []string{"ftp://x.test/a.pdf"}}}, "not an absolute"},
		{"bad domain", []types.Source{{Name: "x", StartURLs: ok.StartURLs, AllowedDomains: []string{"https://x.test"}}}, "invalid allowed domain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.list)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
