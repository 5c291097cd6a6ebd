// Package epub fills the OPF package and NCX navigation templates.
//
// Every writer takes ownership of a loaded document, edits the fields it is
// responsible for and returns the same document for the next stage.
package epub

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/htmls2epub/cli/internal/xmldoc"
)

// DateFormat is the ISO-8601 layout of dc:date, always in UTC.
const DateFormat = "2006-01-02T15:04:05.000Z"

// Metadata is the descriptive information written to the package document.
type Metadata struct {
	Title      string
	Creator    string
	Language   string
	Identifier string
	Date       time.Time
}

// DefaultMetadata returns the values used when neither the command line,
// the manifest nor the config file provide one.
func DefaultMetadata() Metadata {
	return Metadata{
		Title:    "My Great Book",
		Creator:  "Me",
		Language: "en",
	}
}

// Merge returns m with its empty fields filled from fallback.
func (m Metadata) Merge(fallback Metadata) Metadata {
	if m.Title == "" {
		m.Title = fallback.Title
	}
	if m.Creator == "" {
		m.Creator = fallback.Creator
	}
	if m.Language == "" {
		m.Language = fallback.Language
	}
	if m.Identifier == "" {
		m.Identifier = fallback.Identifier
	}
	if m.Date.IsZero() {
		m.Date = fallback.Date
	}
	return m
}

// WriteMetadata fills title, creator, date, language and identifier into the
// package document's <metadata>, plus the author link map in its first <meta>.
func WriteMetadata(doc *xmldoc.Document, meta Metadata) (*xmldoc.Document, error) {
	fields := []struct {
		path string
		text string
	}{
		{"package/metadata/dc:title", meta.Title},
		{"package/metadata/dc:creator", meta.Creator},
		{"package/metadata/dc:date", meta.Date.UTC().Format(DateFormat)},
		{"package/metadata/dc:language", meta.Language},
		{"package/metadata/dc:identifier", meta.Identifier},
	}

	for _, f := range fields {
		el, err := doc.Find(f.path)
		if err != nil {
			return nil, err
		}
		el.SetText(f.text)
	}

	creator, err := doc.Find("package/metadata/dc:creator")
	if err != nil {
		return nil, err
	}
	creator.CreateAttr("opf:file-as", meta.Creator)

	linkMap, err := doc.Find("package/metadata/meta")
	if err != nil {
		return nil, err
	}
	linkMap.CreateAttr("content", authorLinkMap(meta.Creator))

	doc.SetDeclaration(xmldoc.PackageDeclaration)
	return doc, nil
}

// authorLinkMap renders {"<creator>": ""} with the creator as a JSON string.
func authorLinkMap(creator string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(creator); err != nil {
		return "{}"
	}
	return "{" + strings.TrimSuffix(buf.String(), "\n") + `: ""}`
}
