// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest records which documents were retrieved, per source and
// across all sources.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// SourceFile is the per-source manifest name inside a source directory.
	SourceFile = "manifest.json"
	// IndexFile is the aggregate manifest name in the output root.
	IndexFile = "manifest.index.json"
)

// Entry describes one retrieved document.
type Entry struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Source   string `json:"source"`
}

// Index maps a source name to its entries in download order.
type Index map[string][]Entry

// Writer accumulates entries and serializes them under OutDir. Sources are
// remembered in the order they first received an entry.
type Writer struct {
	OutDir  string
	entries Index
	order   []string
}

// NewWriter returns a Writer rooted at outDir.
func NewWriter(outDir string) *Writer {
	return &Writer{OutDir: outDir, entries: make(Index)}
}

// Add records e under e.Source. An empty title falls back to the filename.
func (w *Writer) Add(e Entry) {
	if e.Title == "" {
		e.Title = e.Filename
	}
	if _, ok := w.entries[e.Source]; !ok {
		w.order = append(w.order, e.Source)
	}
	w.entries[e.Source] = append(w.entries[e.Source], e)
}

// Len returns the number of entries recorded for source.
func (w *Writer) Len(source string) int {
	return len(w.entries[source])
}

// Index returns the sources that have at least one entry.
func (w *Writer) Index() Index {
	out := make(Index, len(w.entries))
	for name, list := range w.entries {
		if len(list) > 0 {
			out[name] = list
		}
	}
	return out
}

// WriteSource writes <OutDir>/<source>/manifest.json, replacing any existing
// file. It writes nothing and returns "" when source has no entries.
func (w *Writer) WriteSource(source string) (string, error) {
	list := w.entries[source]
	if len(list) == 0 {
		return "", nil
	}
	path := filepath.Join(w.OutDir, source, SourceFile)
	if err := writeJSON(path, list); err != nil {
		return "", fmt.Errorf("writing manifest for %s: %w", source, err)
	}
	return path, nil
}

// WriteIndex writes <OutDir>/manifest.index.json covering every source with
// entries, keyed in the order the sources were visited. It writes nothing
// and returns "" when there are none.
func (w *Writer) WriteIndex() (string, error) {
	idx := w.Index()
	if len(idx) == 0 {
		return "", nil
	}
	path := filepath.Join(w.OutDir, IndexFile)
	if err := writeJSON(path, orderedIndex{keys: w.order, idx: idx}); err != nil {
		return "", fmt.Errorf("writing manifest index: %w", err)
	}
	return path, nil
}

// orderedIndex encodes an Index with its keys in the given order rather
// than encoding/json's sorted map order.
type orderedIndex struct {
	keys []string
	idx  Index
}

func (o orderedIndex) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encode(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encode(&buf, o.idx[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// writeJSON encodes v with two-space indentation and no HTML escaping.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
