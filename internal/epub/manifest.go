package epub

import (
	"github.com/beevik/etree"

	"github.com/htmls2epub/cli/internal/book"
	"github.com/htmls2epub/cli/internal/xmldoc"
)

// WriteManifest replaces the package manifest with one item per entry and
// the spine with one itemref per ordered entry. Both follow list order; the
// spine is not re-sorted by order.
func WriteManifest(doc *xmldoc.Document, entries []book.FileEntry) (*xmldoc.Document, error) {
	manifest, err := doc.Find("package/manifest")
	if err != nil {
		return nil, err
	}
	spine, err := doc.Find("package/spine")
	if err != nil {
		return nil, err
	}

	items := make([]*etree.Element, 0, len(entries))
	var refs []*etree.Element

	for _, e := range entries {
		item := etree.NewElement("item")
		item.CreateAttr("href", e.Filename)
		item.CreateAttr("id", e.ID)
		item.CreateAttr("media-type", e.MediaType)
		if e.Properties != nil {
			item.CreateAttr("properties", *e.Properties)
		}
		items = append(items, item)

		if e.HasOrder() {
			ref := etree.NewElement("itemref")
			ref.CreateAttr("idref", e.ID)
			refs = append(refs, ref)
		}
	}

	xmldoc.ReplaceChildren(manifest, "item", items)
	xmldoc.ReplaceChildren(spine, "itemref", refs)

	doc.SetDeclaration(xmldoc.PackageDeclaration)
	return doc, nil
}
