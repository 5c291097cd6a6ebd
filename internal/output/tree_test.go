package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOutline(t *testing.T) {
	out := RenderOutline("Book", sampleOutline)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "Book")
	assert.True(t, strings.HasPrefix(lines[1], "├── Ch1"))
	assert.True(t, strings.HasPrefix(lines[2], "│   └── Ch1.1"))
	assert.True(t, strings.HasPrefix(lines[3], "└── Ch2"))
	assert.Contains(t, lines[2], "c1a.html")
}

func TestRenderFileTree(t *testing.T) {
	out := RenderFileTree("book.epub", map[string]string{
		"mimetype":               "",
		"META-INF/container.xml": "container",
		"ch1.html":               "",
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Contains(t, lines[0], "book.epub/")
	assert.Equal(t, "├── META-INF/", lines[1], "directories sort first")
	assert.True(t, strings.HasPrefix(lines[2], "│   └── container.xml"))
	assert.Equal(t, "├── ch1.html", lines[3])
	assert.Equal(t, "└── mimetype", lines[4])
}

func TestRenderFileTree_Empty(t *testing.T) {
	assert.Empty(t, RenderFileTree("x", nil))
}

func TestRenderFileTree_NotesAligned(t *testing.T) {
	out := RenderFileTree("book", map[string]string{
		"a.html":             "#0 Intro",
		"text/chapter.xhtml": "#1 Chapter",
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "├── text/", lines[1])
	note := strings.Index(lines[2], "#1 Chapter")
	require.Positive(t, note)
	assert.Equal(t, 30, len([]rune(lines[2][:note])), "notes start at the note column")
	assert.True(t, strings.HasPrefix(lines[3], "└── a.html"))
	assert.Contains(t, lines[3], "#0 Intro")
}
