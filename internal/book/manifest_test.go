package book

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/htmls2epub/cli/internal/errors"
)

const sampleManifest = `{
  "title": "Field Notes",
  "creator": "A. Writer",
  "language": "de",
  "files": [
    {"filename": "style.css", "id": "css", "mediaType": "text/css"},
    {"filename": "c1.html", "id": "c1", "mediaType": "application/xhtml+xml",
     "order": 0, "navLevel": 0, "navLabel": "Ch1"},
    {"filename": "c1a.html", "id": "c1a", "mediaType": "application/xhtml+xml",
     "order": 1, "navLevel": 1, "navLabel": "Ch1.1", "properties": "svg"}
  ]
}`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "Field Notes", m.Title)
	assert.Equal(t, "A. Writer", m.Creator)
	assert.Equal(t, "de", m.Language)
	require.Len(t, m.Files, 3)

	css := m.Files[0]
	assert.False(t, css.HasOrder())
	assert.False(t, css.InNavigation())
	assert.Nil(t, css.Properties)

	sub := m.Files[2]
	require.NotNil(t, sub.Order)
	assert.Equal(t, 1, *sub.Order)
	assert.Equal(t, 1, *sub.NavLevel)
	assert.Equal(t, "Ch1.1", sub.Label())
	assert.Equal(t, "svg", *sub.Properties)
	assert.True(t, sub.InNavigation())
}

func TestParseManifest_ZeroValuesArePresent(t *testing.T) {
	m, err := ParseManifest([]byte(`{"files":[{"filename":"a.html","id":"a","mediaType":"x","order":0,"navLevel":0,"navLabel":""}]}`))
	require.NoError(t, err)

	entry := m.Files[0]
	assert.True(t, entry.HasOrder())
	assert.True(t, entry.InNavigation(), "an empty label is still a label")
}

func TestParseManifest_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{files:`},
		{"missing files", `{"title":"x"}`},
		{"order not integer", `{"files":[{"filename":"a","id":"a","mediaType":"x","order":"one"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadManifest(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, filepath.Join("in", ManifestFile), []byte(sampleManifest), 0o644))

	m, err := LoadManifest(fsys, "in")
	require.NoError(t, err)
	assert.Len(t, m.Files, 3)
}

func TestLoadManifest_Missing(t *testing.T) {
	_, err := LoadManifest(afero.NewMemMapFs(), "in")
	require.Error(t, err)
	assert.True(t, errors.Is(err, herrors.ErrIO))

	var detail *herrors.DetailError
	require.True(t, errors.As(err, &detail))
	assert.Contains(t, detail.Hint, "htmls2epub init")
}

func TestLoadManifest_Malformed(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, filepath.Join("in", ManifestFile), []byte(`[`), 0o644))

	_, err := LoadManifest(fsys, "in")
	require.Error(t, err)
	assert.True(t, errors.Is(err, herrors.ErrParse))
}

func TestManifestValidate(t *testing.T) {
	ncx := FileEntry{Filename: "toc.ncx", ID: "ncx", MediaType: "application/x-dtbncx+xml"}
	entry := func(name, id string) FileEntry {
		return FileEntry{Filename: name, ID: id, MediaType: "application/xhtml+xml"}
	}

	tests := []struct {
		name    string
		files   []FileEntry
		wantErr string
	}{
		{"valid", []FileEntry{entry("a.html", "a"), entry("b.html", "b")}, ""},
		{"duplicate id", []FileEntry{entry("a.html", "a"), entry("b.html", "a")}, "duplicate id"},
		{"duplicate filename", []FileEntry{entry("a.html", "a"), entry("a.html", "b")}, "duplicate filename"},
		{"reserved id", []FileEntry{entry("a.html", "ncx")}, "reserved"},
		{"reserved filename", []FileEntry{entry("toc.ncx", "t")}, "reserved"},
		{"missing id", []FileEntry{entry("a.html", "")}, "missing id"},
		{"missing filename", []FileEntry{entry("", "a")}, "missing filename"},
		{"empty media type", []FileEntry{{Filename: "a.html", ID: "a"}}, ""},
		{"parent path", []FileEntry{entry("../secret.html", "a")}, "escapes"},
		{"absolute path", []FileEntry{entry("/etc/passwd", "a")}, "escapes"},
		{"negative level", []FileEntry{{Filename: "a.html", ID: "a", MediaType: "x", NavLevel: Int(-1)}}, "negative navLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Manifest{Files: tt.files}
			err := m.Validate(ncx)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, herrors.ErrConfiguration))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSpineEntries_KeepsListOrder(t *testing.T) {
	m := &Manifest{Files: []FileEntry{
		{Filename: "b.html", ID: "b", Order: Int(2)},
		{Filename: "s.css", ID: "s"},
		{Filename: "a.html", ID: "a", Order: Int(1)},
	}}

	spine := m.SpineEntries()
	require.Len(t, spine, 2)
	assert.Equal(t, "b", spine[0].ID)
	assert.Equal(t, "a", spine[1].ID)
}
