package output

import (
	"cmp"
	"path"
	"slices"
	"strings"

	"github.com/htmls2epub/cli/internal/nav"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// noteColumn is where notes start when the line is short enough.
	noteColumn = 30
)

// branch is one rendered tree line with an optional muted note.
type branch struct {
	label    string
	note     string
	dir      bool
	children []*branch
}

func (b *branch) child(name string) *branch {
	for _, c := range b.children {
		if c.label == name {
			return c
		}
	}
	c := &branch{label: name}
	b.children = append(b.children, c)
	return c
}

// RenderFileTree renders slash-separated paths under rootName, directories
// first, each followed by its note from files.
func RenderFileTree(rootName string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	root := &branch{label: rootName, dir: true}
	for p, note := range files {
		node := root
		parts := strings.Split(path.Clean(p), "/")
		for i, part := range parts {
			node = node.child(part)
			if i < len(parts)-1 {
				node.dir = true
			}
		}
		node.note = note
	}
	sortBranches(root.children)

	styles := GetStyles()
	var sb strings.Builder
	sb.WriteString(styles.Bold.Render(rootName + "/"))
	sb.WriteString("\n")
	writeBranches(&sb, root.children, "", styles)
	return sb.String()
}

func sortBranches(bs []*branch) {
	slices.SortFunc(bs, func(a, b *branch) int {
		if a.dir != b.dir {
			if a.dir {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.label, b.label)
	})
	for _, b := range bs {
		sortBranches(b.children)
	}
}

// RenderOutline renders a table of contents as a tree under title. Each line
// shows the label and, as its note, the source file.
func RenderOutline(title string, outline []nav.Outline) string {
	styles := GetStyles()

	var sb strings.Builder
	sb.WriteString(styles.Bold.Render(title))
	sb.WriteString("\n")
	writeBranches(&sb, outlineBranches(outline), "", styles)
	return sb.String()
}

func outlineBranches(points []nav.Outline) []*branch {
	out := make([]*branch, 0, len(points))
	for _, p := range points {
		out = append(out, &branch{
			label:    p.Label,
			note:     p.Src,
			children: outlineBranches(p.Children),
		})
	}
	return out
}

func writeBranches(sb *strings.Builder, bs []*branch, prefix string, styles Styles) {
	for i, b := range bs {
		connector, childPrefix := treeEdge, prefix+treeVert
		if i == len(bs)-1 {
			connector, childPrefix = treeLast, prefix+treeSpace
		}

		line := prefix + connector + b.label
		if b.dir {
			line += "/"
		}
		sb.WriteString(line)
		if b.note != "" {
			pad := max(noteColumn-len([]rune(line)), 2)
			sb.WriteString(strings.Repeat(" ", pad))
			sb.WriteString(styles.Muted.Render(b.note))
		}
		sb.WriteString("\n")

		writeBranches(sb, b.children, childPrefix, styles)
	}
}
