package nav

import (
	"strconv"

	"github.com/beevik/etree"
)

// NavPoints serializes the forest into NCX navPoint elements, one per root,
// children nested recursively.
func (t *Tree) NavPoints() []*etree.Element {
	out := make([]*etree.Element, 0, len(t.roots))
	for _, r := range t.roots {
		out = append(out, t.navPoint(r))
	}
	return out
}

func (t *Tree) navPoint(i int) *etree.Element {
	n := &t.nodes[i]
	order := strconv.Itoa(n.Order())

	el := etree.NewElement("navPoint")
	el.CreateAttr("id", "num_"+order)
	el.CreateAttr("playOrder", order)
	el.CreateElement("navLabel").CreateElement("text").SetText(n.Entry.Label())
	el.CreateElement("content").CreateAttr("src", n.Entry.Filename)

	for _, c := range n.Children {
		el.AddChild(t.navPoint(c))
	}
	return el
}

// Outline is a plain view of one outline entry, for display and export.
type Outline struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Src       string    `json:"src"`
	PlayOrder int       `json:"playOrder"`
	Children  []Outline `json:"children,omitempty"`
}

// Outline returns the forest as nested values.
func (t *Tree) Outline() []Outline {
	out := make([]Outline, 0, len(t.roots))
	for _, r := range t.roots {
		out = append(out, t.outline(r))
	}
	return out
}

func (t *Tree) outline(i int) Outline {
	n := &t.nodes[i]
	o := Outline{
		ID:        n.Entry.ID,
		Label:     n.Entry.Label(),
		Src:       n.Entry.Filename,
		PlayOrder: n.Order(),
	}
	for _, c := range n.Children {
		o.Children = append(o.Children, t.outline(c))
	}
	return o
}
