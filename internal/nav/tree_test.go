package nav

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htmls2epub/cli/internal/book"
	herrors "github.com/htmls2epub/cli/internal/errors"
)

func entry(id string, order, level int, label string) book.FileEntry {
	return book.FileEntry{
		Filename:  id + ".html",
		ID:        id,
		MediaType: "application/xhtml+xml",
		Order:     book.Int(order),
		NavLevel:  book.Int(level),
		NavLabel:  book.String(label),
	}
}

func ids(entries []book.FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestBuildTree_ScenarioA(t *testing.T) {
	tree, err := BuildTree([]book.FileEntry{
		entry("c1", 0, 0, "Ch1"),
		entry("c1a", 1, 1, "Ch1.1"),
	})
	require.NoError(t, err)

	require.Len(t, tree.Roots(), 1)
	root := tree.Node(tree.Roots()[0])
	assert.Equal(t, "c1", root.Entry.ID)
	assert.Equal(t, NoParent, root.Parent)
	require.Len(t, root.Children, 1)

	child := tree.Node(root.Children[0])
	assert.Equal(t, "c1a", child.Entry.ID)

	parent, ok := tree.ParentID("c1a")
	assert.True(t, ok)
	assert.Equal(t, "c1", parent)

	_, ok = tree.ParentID("c1")
	assert.False(t, ok, "roots have no parent")
}

func TestBuildTree_ScenarioB_StableTies(t *testing.T) {
	tree, err := BuildTree([]book.FileEntry{
		entry("first", 5, 0, "First"),
		entry("second", 5, 0, "Second"),
	})
	require.NoError(t, err)

	assert.Len(t, tree.Roots(), 2)
	assert.Equal(t, []string{"first", "second"}, ids(tree.Flatten()))
}

func TestBuildTree_ScenarioC_IncompleteEntriesExcluded(t *testing.T) {
	noLabel := entry("nolabel", 1, 0, "")
	noLabel.NavLabel = nil
	noLevel := entry("nolevel", 2, 0, "x")
	noLevel.NavLevel = nil
	noOrder := entry("noorder", 0, 0, "x")
	noOrder.Order = nil
	noID := entry("", 3, 0, "x")

	tree, err := BuildTree([]book.FileEntry{
		entry("c1", 0, 0, "Ch1"),
		noLabel, noLevel, noOrder, noID,
		{Filename: "style.css", ID: "css", MediaType: "text/css"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, ids(tree.Flatten()))
}

func TestBuildTree_SortsByOrder(t *testing.T) {
	tree, err := BuildTree([]book.FileEntry{
		entry("s2", 4, 1, "2.1"),
		entry("c2", 3, 0, "2"),
		entry("s1", 1, 1, "1.1"),
		entry("c1", 0, 0, "1"),
		entry("ss1", 2, 2, "1.1.1"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"c1", "s1", "ss1", "c2", "s2"}, ids(tree.Flatten()))

	p, _ := tree.ParentID("ss1")
	assert.Equal(t, "s1", p)
	p, _ = tree.ParentID("s2")
	assert.Equal(t, "c2", p)
}

func TestBuildTree_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		entries []book.FileEntry
		wantID  string
	}{
		{
			name:    "level 2 without level 1",
			entries: []book.FileEntry{entry("c1", 0, 0, "1"), entry("x", 1, 2, "x")},
			wantID:  "x",
		},
		{
			name:    "first entry not at level 0",
			entries: []book.FileEntry{entry("x", 0, 1, "x")},
			wantID:  "x",
		},
		{
			name:    "level 1 before any level 0",
			entries: []book.FileEntry{entry("x", 0, 1, "x"), entry("c1", 1, 0, "1")},
			wantID:  "x",
		},
		{
			name: "level 3 when only level 1 was seen",
			entries: []book.FileEntry{
				entry("c1", 0, 0, "1"),
				entry("s1", 1, 1, "1.1"),
				entry("c2", 2, 0, "2"),
				entry("x", 3, 3, "x"),
			},
			wantID: "x",
		},
		{
			name:    "negative level",
			entries: []book.FileEntry{entry("c1", 0, 0, "1"), entry("x", 1, -1, "x")},
			wantID:  "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTree(tt.entries)
			require.Error(t, err)
			assert.True(t, errors.Is(err, herrors.ErrStructural))

			var serr *StructuralError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tt.wantID, serr.ID)
		})
	}
}

func TestBuildTree_ParentFromEarlierChapter(t *testing.T) {
	tree, err := BuildTree([]book.FileEntry{
		entry("a", 0, 0, "A"),
		entry("b", 1, 1, "A.1"),
		entry("c", 2, 0, "C"),
		entry("d", 3, 2, "A.1.1"),
	})
	require.NoError(t, err)

	p, ok := tree.ParentID("d")
	require.True(t, ok)
	assert.Equal(t, "b", p, "the latest level 1 entry stays a valid parent after a new root")

	assert.Len(t, tree.Roots(), 2)
	assert.Empty(t, tree.Node(tree.Roots()[1]).Children)
	assert.Equal(t, []string{"a", "b", "d", "c"}, ids(tree.Flatten()))
}

func TestBuildTree_DoesNotMutateInput(t *testing.T) {
	input := []book.FileEntry{entry("b", 1, 1, "b"), entry("a", 0, 0, "a")}
	_, err := BuildTree(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(input))
}

func TestBuildTree_Empty(t *testing.T) {
	tree, err := BuildTree(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tree.Len())
	assert.Empty(t, tree.NavPoints())
}

// randomOutline produces a valid flat list in shuffled list order.
func randomOutline(r *rand.Rand, n int) []book.FileEntry {
	out := make([]book.FileEntry, 0, n)
	level := 0
	for i := 0; i < n; i++ {
		if i > 0 {
			level = r.Intn(level + 2)
		}
		out = append(out, entry(string(rune('a'+i%26))+string(rune('0'+i/26)), i, level, "x"))
	}
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func TestBuildTree_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for run := 0; run < 50; run++ {
		input := randomOutline(r, 1+r.Intn(40))

		tree, err := BuildTree(input)
		require.NoError(t, err)

		flat := tree.Flatten()
		require.Len(t, flat, len(input), "no entry dropped or duplicated")
		for i, e := range flat {
			assert.Equal(t, i, *e.Order, "pre-order reproduces order-sorted sequence")
		}

		for i := 0; i < tree.Len(); i++ {
			n := tree.Node(i)
			if n.Level() == 0 {
				assert.Equal(t, NoParent, n.Parent)
				continue
			}
			p := tree.Node(n.Parent)
			assert.Equal(t, n.Level()-1, p.Level())
			assert.Less(t, p.Order(), n.Order())
		}
	}
}

func TestNavPoints(t *testing.T) {
	tree, err := BuildTree([]book.FileEntry{
		entry("c1", 0, 0, "Ch1"),
		entry("c1a", 1, 1, "Ch1.1"),
	})
	require.NoError(t, err)

	points := tree.NavPoints()
	require.Len(t, points, 1)

	doc := etree.NewDocument()
	doc.AddChild(points[0])
	got, err := doc.WriteToString()
	require.NoError(t, err)

	want := `<navPoint id="num_0" playOrder="0">` +
		`<navLabel><text>Ch1</text></navLabel>` +
		`<content src="c1.html"/>` +
		`<navPoint id="num_1" playOrder="1">` +
		`<navLabel><text>Ch1.1</text></navLabel>` +
		`<content src="c1a.html"/>` +
		`</navPoint>` +
		`</navPoint>`
	assert.Equal(t, want, got)
}

func TestNavPoints_LeafHasNoNestedPoints(t *testing.T) {
	tree, err := BuildTree([]book.FileEntry{entry("c1", 3, 0, "Ch1")})
	require.NoError(t, err)

	el := tree.NavPoints()[0]
	assert.Nil(t, el.SelectElement("navPoint"))
	assert.Equal(t, "num_3", el.SelectAttrValue("id", ""))
	assert.Equal(t, "3", el.SelectAttrValue("playOrder", ""))
}

func TestOutline(t *testing.T) {
	tree, err := BuildTree([]book.FileEntry{
		entry("c1", 0, 0, "Ch1"),
		entry("c1a", 1, 1, "Ch1.1"),
		entry("c2", 2, 0, "Ch2"),
	})
	require.NoError(t, err)

	outline := tree.Outline()
	require.Len(t, outline, 2)
	assert.Equal(t, "Ch1", outline[0].Label)
	require.Len(t, outline[0].Children, 1)
	assert.Equal(t, "c1a.html", outline[0].Children[0].Src)
	assert.Equal(t, 1, outline[0].Children[0].PlayOrder)
	assert.Empty(t, outline[1].Children)
}
