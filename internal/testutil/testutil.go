// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ManifestFile mirrors book.ManifestFile without importing it, so the
// book package can use these helpers in its own tests.
const ManifestFile = "htmls-to-epub.json"

// SampleManifest describes a two-chapter book with one nested section and a
// stylesheet outside the reading order.
const SampleManifest = `{
  "title": "Sample",
  "files": [
    {"filename": "ch1.html", "id": "ch1", "mediaType": "application/xhtml+xml",
     "order": 0, "navLevel": 0, "navLabel": "Chapter 1"},
    {"filename": "ch1a.html", "id": "ch1a", "mediaType": "application/xhtml+xml",
     "order": 1, "navLevel": 1, "navLabel": "Section 1.1"},
    {"filename": "ch2.html", "id": "ch2", "mediaType": "application/xhtml+xml",
     "order": 2, "navLevel": 0, "navLabel": "Chapter 2"},
    {"filename": "style.css", "id": "css", "mediaType": "text/css"}
  ]
}`

// SampleDocuments are the content files referenced by SampleManifest.
var SampleDocuments = map[string]string{
	"ch1.html":  "<html><body><h1>Chapter 1</h1></body></html>",
	"ch1a.html": "<html><body><h2>Section 1.1</h2></body></html>",
	"ch2.html":  "<html><body><h1>Chapter 2</h1></body></html>",
	"style.css": "body {}",
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteBook creates a book directory holding SampleDocuments and, when
// manifest is not empty, a manifest with that content.
func WriteBook(t *testing.T, manifest string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range SampleDocuments {
		WriteFile(t, dir, name, content)
	}
	if manifest != "" {
		WriteFile(t, dir, ManifestFile, manifest)
	}
	return dir
}
