package book

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/afero"
	"golang.org/x/net/html"

	herrors "github.com/htmls2epub/cli/internal/errors"
)

var mediaTypes = map[string]string{
	".html":  "application/xhtml+xml",
	".htm":   "application/xhtml+xml",
	".xhtml": "application/xhtml+xml",
	".css":   "text/css",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".woff":  "font/woff",
	".woff2": "font/woff2",
}

// MediaType returns the EPUB media type for a filename.
func MediaType(name string) string {
	if mt, ok := mediaTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return mt
	}
	return "application/octet-stream"
}

// IsDocument reports whether the filename is an HTML content document.
func IsDocument(name string) bool {
	return MediaType(name) == "application/xhtml+xml"
}

// Scan builds a starter manifest for the files under dir. Documents are
// ordered by path and labelled from their <title> or first heading; a first
// heading of h2 places the document one level below the previous h1.
func Scan(fsys afero.Fs, dir string) (*Manifest, error) {
	var names []string
	err := afero.Walk(fsys, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		if rel == ManifestFile {
			return nil
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, herrors.WrapCause(herrors.ErrIO, err, "scanning "+dir)
	}
	sort.Strings(names)

	m := &Manifest{Files: make([]FileEntry, 0, len(names))}
	ids := make(map[string]int)
	order := 0
	prevLevel := -1

	for _, name := range names {
		entry := FileEntry{
			Filename:  name,
			ID:        uniqueID(ids, name),
			MediaType: MediaType(name),
		}

		if IsDocument(name) {
			data, err := afero.ReadFile(fsys, filepath.Join(dir, filepath.FromSlash(name)))
			if err != nil {
				return nil, herrors.WrapCause(herrors.ErrIO, err, "reading "+name)
			}
			label, level := documentHeading(data)
			if label == "" {
				label = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
			}
			// Never skip a level: the outline builder rejects gaps.
			if level > prevLevel+1 {
				level = prevLevel + 1
			}
			prevLevel = level

			entry.Order = Int(order)
			entry.NavLevel = Int(level)
			entry.NavLabel = String(label)
			order++

			if m.Title == "" && order == 1 {
				m.Title = label
			}
		}

		m.Files = append(m.Files, entry)
	}

	return m, nil
}

// documentHeading returns the label and outline level suggested by an HTML
// document: the first heading wins, otherwise <title> at level 0.
func documentHeading(data []byte) (string, int) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", 0
	}

	var title, heading string
	level := 0

	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if title == "" {
					title = nodeText(n)
				}
			case "h1", "h2", "h3", "h4", "h5", "h6":
				if text := nodeText(n); text != "" {
					heading = text
					level = int(n.Data[1] - '1')
					return true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc)

	if heading != "" {
		return heading, level
	}
	return title, 0
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// uniqueID derives an XML-safe id from a file path and de-duplicates it.
func uniqueID(seen map[string]int, name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	var b strings.Builder
	for _, r := range stem {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	id := b.String()
	if id == "" || !unicode.IsLetter([]rune(id)[0]) {
		id = "f_" + id
	}
	// "ncx" belongs to the generated navigation document.
	if id == "ncx" {
		id = "ncx_"
	}

	n := seen[id]
	seen[id] = n + 1
	if n == 0 {
		return id
	}
	return fmt.Sprintf("%s_%d", id, n+1)
}
