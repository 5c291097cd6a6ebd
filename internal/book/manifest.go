package book

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	herrors "github.com/htmls2epub/cli/internal/errors"
)

// LoadManifest reads and parses htmls-to-epub.json from dir.
func LoadManifest(fsys afero.Fs, dir string) (*Manifest, error) {
	manifestPath := filepath.Join(dir, ManifestFile)

	data, err := afero.ReadFile(fsys, manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &herrors.DetailError{
				Type:     "manifest not found",
				Message:  fmt.Sprintf("no %s in input directory", ManifestFile),
				Location: manifestPath,
				Hint:     "Run 'htmls2epub init " + dir + "' to scaffold one.",
				Cause:    herrors.Join(herrors.ErrIO, err),
			}
		}
		return nil, herrors.WrapCause(herrors.ErrIO, err, "reading "+manifestPath)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, herrors.NewParseError(err.Error(), manifestPath, err)
	}
	return m, nil
}

// ParseManifest decodes a manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	var raw struct {
		Manifest
		Files *[]FileEntry `json:"files"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if raw.Files == nil {
		return nil, fmt.Errorf("manifest has no \"files\" array")
	}

	m := raw.Manifest
	m.Files = *raw.Files
	return &m, nil
}

// Validate checks that every entry can be packaged: filename and id are set,
// filenames stay inside the book, and ids and filenames are unique across the
// files plus any reserved entries generated later. The media type is written
// as given.
func (m *Manifest) Validate(reserved ...FileEntry) error {
	ids := make(map[string]int)
	names := make(map[string]int)

	for _, r := range reserved {
		ids[r.ID] = -1
		names[r.Filename] = -1
	}

	for i, f := range m.Files {
		switch {
		case f.Filename == "":
			return invalidEntry(i, f, "missing filename")
		case f.ID == "":
			return invalidEntry(i, f, "missing id")
		case !isLocalPath(f.Filename):
			return invalidEntry(i, f, fmt.Sprintf("filename %q escapes the book directory", f.Filename))
		case f.NavLevel != nil && *f.NavLevel < 0:
			return invalidEntry(i, f, fmt.Sprintf("negative navLevel %d", *f.NavLevel))
		}

		if prev, dup := ids[f.ID]; dup {
			return invalidEntry(i, f, duplicateMessage("id", f.ID, prev))
		}
		if prev, dup := names[f.Filename]; dup {
			return invalidEntry(i, f, duplicateMessage("filename", f.Filename, prev))
		}
		ids[f.ID] = i
		names[f.Filename] = i
	}
	return nil
}

// SpineEntries returns the entries that carry an order, in list order.
func (m *Manifest) SpineEntries() []FileEntry {
	var out []FileEntry
	for _, f := range m.Files {
		if f.HasOrder() {
			out = append(out, f)
		}
	}
	return out
}

func duplicateMessage(field, value string, prev int) string {
	if prev < 0 {
		return fmt.Sprintf("%s %q is reserved for a generated file", field, value)
	}
	return fmt.Sprintf("duplicate %s %q (first used by files[%d])", field, value, prev)
}

func invalidEntry(i int, f FileEntry, msg string) error {
	loc := fmt.Sprintf("files[%d]", i)
	if f.ID != "" {
		loc += " (" + f.ID + ")"
	}
	return &herrors.DetailError{
		Type:     "invalid manifest",
		Message:  msg,
		Location: loc,
		Cause:    herrors.ErrConfiguration,
	}
}

func isLocalPath(name string) bool {
	if strings.HasPrefix(name, "/") || filepath.IsAbs(name) {
		return false
	}
	clean := path.Clean(filepath.ToSlash(name))
	return clean != ".." && !strings.HasPrefix(clean, "../")
}
