package epub

import (
	"path/filepath"
	"strconv"

	"github.com/htmls2epub/cli/internal/book"
	"github.com/htmls2epub/cli/internal/nav"
	"github.com/htmls2epub/cli/internal/xmldoc"
)

const (
	// NCXID is the manifest id of the generated navigation document.
	NCXID = "ncx"

	// NCXMediaType is the media type of the navigation document.
	NCXMediaType = "application/x-dtbncx+xml"
)

// NavigationEntry describes the navigation document stored at navFile.
func NavigationEntry(navFile string) book.FileEntry {
	return book.FileEntry{
		Filename:  filepath.Base(navFile),
		ID:        NCXID,
		MediaType: NCXMediaType,
	}
}

// WriteNavigation writes uid into the document head, replaces the navMap
// with the serialized outline and returns the manifest entry describing the
// navigation document at navFile.
func WriteNavigation(doc *xmldoc.Document, tree *nav.Tree, uid, navFile string) (*xmldoc.Document, book.FileEntry, error) {
	uidMeta, err := doc.Find("ncx/head/meta")
	if err != nil {
		return nil, book.FileEntry{}, err
	}
	navMap, err := doc.Find("ncx/navMap")
	if err != nil {
		return nil, book.FileEntry{}, err
	}

	uidMeta.CreateAttr("content", uid)
	if depth := doc.Root().FindElement("head/meta[@name='dtb:depth']"); depth != nil {
		depth.CreateAttr("content", strconv.Itoa(Depth(tree)))
	}

	xmldoc.ReplaceChildren(navMap, "navPoint", tree.NavPoints())

	doc.SetDeclaration(xmldoc.NavigationDeclaration)
	return doc, NavigationEntry(navFile), nil
}

// Depth returns the number of levels in the outline, at least 1.
func Depth(tree *nav.Tree) int {
	depth := 1
	tree.Walk(func(_ int, d int) bool {
		if d+1 > depth {
			depth = d + 1
		}
		return true
	})
	return depth
}
