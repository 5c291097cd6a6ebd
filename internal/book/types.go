// Package book models the htmls-to-epub.json manifest that describes a book.
package book

// ManifestFile is the name of the book manifest inside an input directory.
const ManifestFile = "htmls-to-epub.json"

// FileEntry is one content file or generated artifact of the book.
// Optional fields are pointers so an absent value differs from a zero one.
type FileEntry struct {
	// Filename is the path relative to the input directory.
	Filename string `json:"filename"`

	// ID is the manifest and spine reference.
	ID string `json:"id"`

	// MediaType is the MIME type written to the OPF manifest.
	MediaType string `json:"mediaType"`

	// Properties is an optional OPF item properties attribute.
	Properties *string `json:"properties,omitempty"`

	// Order places the entry in the spine and the navigation outline.
	Order *int `json:"order,omitempty"`

	// NavLevel is the outline depth, 0 for top-level entries.
	NavLevel *int `json:"navLevel,omitempty"`

	// NavLabel is the outline label.
	NavLabel *string `json:"navLabel,omitempty"`
}

// HasOrder reports whether the entry belongs in the spine.
func (e FileEntry) HasOrder() bool {
	return e.Order != nil
}

// InNavigation reports whether the entry carries everything the navigation
// outline needs.
func (e FileEntry) InNavigation() bool {
	return e.NavLevel != nil &&
		e.NavLabel != nil &&
		e.Order != nil &&
		e.Filename != "" &&
		e.ID != ""
}

// Label returns the navigation label or an empty string.
func (e FileEntry) Label() string {
	if e.NavLabel == nil {
		return ""
	}
	return *e.NavLabel
}

// Manifest is the parsed htmls-to-epub.json document.
type Manifest struct {
	Title    string      `json:"title,omitempty"`
	Creator  string      `json:"creator,omitempty"`
	Language string      `json:"language,omitempty"`
	Files    []FileEntry `json:"files"`
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

// String returns a pointer to v.
func String(v string) *string {
	return &v
}
