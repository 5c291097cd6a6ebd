// Package xmldoc loads template XML documents into an editable tree and
// writes them back, leaving every part the caller did not touch as it was.
package xmldoc

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/spf13/afero"

	herrors "github.com/htmls2epub/cli/internal/errors"
)

// Declaration describes the <?xml?> header written on save.
type Declaration struct {
	Encoding   string
	Standalone bool
}

// String renders the processing instruction body.
func (d Declaration) String() string {
	s := `version="1.0" encoding="` + d.Encoding + `"`
	if d.Standalone {
		s += ` standalone="yes"`
	}
	return s
}

var (
	// PackageDeclaration is used for the OPF package document.
	PackageDeclaration = Declaration{Encoding: "UTF-8", Standalone: true}

	// NavigationDeclaration is used for the NCX navigation document.
	NavigationDeclaration = Declaration{Encoding: "utf-8"}
)

// indentSpaces is the indentation used when re-serializing documents.
const indentSpaces = 2

// Document is a parsed XML document together with the header it will be
// written with.
type Document struct {
	tree *etree.Document
	name string
	decl Declaration
}

// Parse parses data. name identifies the document in errors.
func Parse(name string, data []byte) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, herrors.NewParseError("malformed XML: "+err.Error(), name, err)
	}
	if tree.Root() == nil {
		return nil, herrors.NewParseError("document has no root element", name, nil)
	}
	return &Document{tree: tree, name: name, decl: PackageDeclaration}, nil
}

// Load reads and parses the document at path.
func Load(fsys afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, herrors.WrapCause(herrors.ErrIO, err, "reading "+path)
	}
	return Parse(path, data)
}

// Name returns the name the document was parsed under.
func (d *Document) Name() string {
	return d.name
}

// Root returns the root element.
func (d *Document) Root() *etree.Element {
	return d.tree.Root()
}

// SetDeclaration selects the XML header written on save.
func (d *Document) SetDeclaration(decl Declaration) {
	d.decl = decl
}

// Declaration returns the XML header the document will be written with.
func (d *Document) Declaration() Declaration {
	return d.decl
}

// Find returns the element at an etree path relative to the document, e.g.
// "package/metadata/dc:title". A missing element is a parse error: the
// template does not have the expected shape.
func (d *Document) Find(path string) (*etree.Element, error) {
	el := d.tree.FindElement(path)
	if el == nil {
		return nil, herrors.NewParseError(
			fmt.Sprintf("template has no <%s> element", lastStep(path)),
			d.name, nil)
	}
	return el, nil
}

// Bytes serializes the document with its declaration and consistent
// indentation.
func (d *Document) Bytes() ([]byte, error) {
	d.applyDeclaration()
	d.tree.Indent(indentSpaces)

	data, err := d.tree.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", d.name, err)
	}
	return data, nil
}

// Save writes the document to path.
func (d *Document) Save(fsys afero.Fs, path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return herrors.WrapCause(herrors.ErrIO, err, "writing "+path)
	}
	return nil
}

// applyDeclaration replaces any existing <?xml?> header with d.decl as the
// first token.
func (d *Document) applyDeclaration() {
	for _, tok := range append([]etree.Token(nil), d.tree.Child...) {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			d.tree.RemoveChild(pi)
		}
	}
	pi := d.tree.CreateProcInst("xml", d.decl.String())
	d.tree.RemoveChild(pi)
	d.tree.InsertChildAt(0, pi)
}

// ReplaceChildren removes all child elements of parent named tag and
// appends children in order. Other children are kept.
func ReplaceChildren(parent *etree.Element, tag string, children []*etree.Element) {
	for _, old := range parent.SelectElements(tag) {
		parent.RemoveChild(old)
	}
	for _, c := range children {
		parent.AddChild(c)
	}
}

func lastStep(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
