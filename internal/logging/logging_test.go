// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/grant-sampler/pkg/types"
)

func TestNew_ConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := New(types.LogConfig{}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	log.Debug().Msg("hidden at info")
	log.Warn().Str("url", "https://x.test/a.pdf").Msg("failed to download")

	out := buf.String()
	assert.NotContains(t, out, "hidden at info")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "failed to download")
	assert.Contains(t, out, "url=https://x.test/a.pdf")
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	log, _, err := New(types.LogConfig{Level: "debug"}, &buf)
	require.NoError(t, err)

	log.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")

	_, _, err = New(types.LogConfig{Level: "loud"}, &buf)
	assert.Error(t, err)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "grant-sampler.log")
	var buf bytes.Buffer
	log, closer, err := New(types.LogConfig{File: path}, &buf)
	require.NoError(t, err)

	log.Info().Str("source", "neh").Msg("collecting")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"source":"neh"`)
	assert.Contains(t, string(data), `"message":"collecting"`)
	assert.Contains(t, buf.String(), "collecting")
}
