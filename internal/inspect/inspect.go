// Package inspect reads a built EPUB back and summarizes its package
// metadata, spine and table of contents.
package inspect

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	goreader "github.com/taylorskalyo/goreader/epub"

	"github.com/htmls2epub/cli/internal/epub"
	herrors "github.com/htmls2epub/cli/internal/errors"
	"github.com/htmls2epub/cli/internal/nav"
	"github.com/htmls2epub/cli/internal/output"
)

// Report is what inspect found in an archive.
type Report struct {
	Path     string
	Title    string
	Creator  string
	Language string

	// Spine lists content hrefs in reading order.
	Spine []string

	// Items is the package manifest.
	Items []output.ManifestRow

	// Outline is the NCX table of contents.
	Outline []nav.Outline
}

type ncxDoc struct {
	NavMap struct {
		NavPoints []ncxPoint `xml:"navPoint"`
	} `xml:"navMap"`
}

type ncxPoint struct {
	ID        string     `xml:"id,attr"`
	PlayOrder int        `xml:"playOrder,attr"`
	Label     string     `xml:"navLabel>text"`
	Content   ncxContent `xml:"content"`
	Children  []ncxPoint `xml:"navPoint"`
}

type ncxContent struct {
	Src string `xml:"src,attr"`
}

// Open reads the archive at path.
func Open(path string) (*Report, error) {
	rc, err := goreader.OpenReader(path)
	if err != nil {
		return nil, herrors.WrapCause(herrors.ErrArchive, err, "opening "+path)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, herrors.NewParseError("archive has no package document", path, nil)
	}
	pkg := rc.Rootfiles[0]

	r := &Report{
		Path:     path,
		Title:    pkg.Metadata.Title,
		Creator:  pkg.Metadata.Creator,
		Language: pkg.Metadata.Language,
	}

	inSpine := make(map[string]bool)
	for _, ref := range pkg.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r.Spine = append(r.Spine, ref.Item.HREF)
		inSpine[ref.Item.ID] = true
	}

	var ncxItem *goreader.Item
	for i := range pkg.Manifest.Items {
		item := &pkg.Manifest.Items[i]
		r.Items = append(r.Items, output.ManifestRow{
			ID:        item.ID,
			Href:      item.HREF,
			MediaType: item.MediaType,
			Spine:     inSpine[item.ID],
		})
		if item.MediaType == epub.NCXMediaType && ncxItem == nil {
			ncxItem = item
		}
	}

	if ncxItem != nil {
		outline, err := readOutline(ncxItem)
		if err != nil {
			return nil, herrors.NewParseError(err.Error(), path+"!"+ncxItem.HREF, err)
		}
		r.Outline = outline
	}

	return r, nil
}

func readOutline(item *goreader.Item) ([]nav.Outline, error) {
	f, err := item.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var doc ncxDoc
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding navigation document: %w", err)
	}
	return toOutline(doc.NavMap.NavPoints), nil
}

func toOutline(points []ncxPoint) []nav.Outline {
	if len(points) == 0 {
		return nil
	}
	out := make([]nav.Outline, 0, len(points))
	for _, p := range points {
		out = append(out, nav.Outline{
			ID:        p.ID,
			Label:     strings.TrimSpace(p.Label),
			Src:       p.Content.Src,
			PlayOrder: p.PlayOrder,
			Children:  toOutline(p.Children),
		})
	}
	return out
}

// Render writes the report in human form.
func (r *Report) Render(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", output.StyleDim.Render("title:   "), output.StyleNoun.Render(r.Title))
	fmt.Fprintf(&b, "%s %s\n", output.StyleDim.Render("creator: "), r.Creator)
	fmt.Fprintf(&b, "%s %s\n", output.StyleDim.Render("language:"), r.Language)
	fmt.Fprintf(&b, "%s %d documents\n\n", output.StyleDim.Render("spine:   "), len(r.Spine))

	b.WriteString(output.RenderManifestTable(r.Items))
	b.WriteString("\n\n")

	if len(r.Outline) == 0 {
		b.WriteString(output.StyleDim.Render("(no table of contents)"))
		b.WriteString("\n")
	} else {
		b.WriteString(output.RenderOutline("Contents", r.Outline))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
