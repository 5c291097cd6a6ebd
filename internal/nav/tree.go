// Package nav builds the table-of-contents outline of a book from its flat,
// ordered file list.
//
// Nodes live in an arena indexed by position in order-sorted sequence. Each
// node records its parent index (NoParent for roots) and the indices of its
// children, so traversal order is explicit and the input entries are never
// mutated.
package nav

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/htmls2epub/cli/internal/book"
	herrors "github.com/htmls2epub/cli/internal/errors"
)

// NoParent is the parent index of a root node.
const NoParent = -1

// unset marks an ancestor level with no entry recorded yet.
const unset = -1

// Node is one outline entry.
type Node struct {
	Entry    book.FileEntry
	Parent   int
	Children []int
}

// Level returns the entry's navLevel.
func (n *Node) Level() int {
	return *n.Entry.NavLevel
}

// Order returns the entry's order.
func (n *Node) Order() int {
	return *n.Entry.Order
}

// Tree is the outline forest.
type Tree struct {
	nodes []Node
	roots []int
}

// StructuralError reports an entry whose navLevel has no ancestor one level
// up anywhere earlier in navigation order.
type StructuralError struct {
	ID    string
	Order int
	Level int
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	return fmt.Sprintf("navigation entry %q (order %d) is at navLevel %d but no entry at navLevel %d precedes it",
		e.ID, e.Order, e.Level, e.Level-1)
}

// Unwrap ties the error to the structural sentinel.
func (e *StructuralError) Unwrap() error {
	return herrors.ErrStructural
}

// compareOrder orders any totally-ordered key.
func compareOrder[T cmp.Ordered](a, b T) int {
	return cmp.Compare(a, b)
}

// BuildTree filters entries to those with a complete navigation annotation,
// stable-sorts them by order and nests each entry under the most recent
// preceding entry one level up, even when a shallower entry came in between.
func BuildTree(entries []book.FileEntry) (*Tree, error) {
	var sorted []book.FileEntry
	for _, e := range entries {
		if e.InNavigation() {
			sorted = append(sorted, e)
		}
	}
	slices.SortStableFunc(sorted, func(a, b book.FileEntry) int {
		return compareOrder(*a.Order, *b.Order)
	})

	t := &Tree{nodes: make([]Node, len(sorted))}

	// ancestors[l] is the arena index of the most recent entry at level l,
	// or unset. A slot is only ever overwritten by a later entry at the
	// same level.
	ancestors := make([]int, 0, 8)

	for i, e := range sorted {
		level := *e.NavLevel
		node := Node{Entry: e, Parent: NoParent}

		switch {
		case level == 0:
			t.roots = append(t.roots, i)
		case level < 0 || level > len(ancestors) || ancestors[level-1] == unset:
			return nil, &StructuralError{ID: e.ID, Order: *e.Order, Level: level}
		default:
			node.Parent = ancestors[level-1]
			t.nodes[node.Parent].Children = append(t.nodes[node.Parent].Children, i)
		}

		t.nodes[i] = node
		for len(ancestors) <= level {
			ancestors = append(ancestors, unset)
		}
		ancestors[level] = i
	}

	return t, nil
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Roots returns the arena indices of the root nodes in order.
func (t *Tree) Roots() []int {
	return t.roots
}

// Node returns the node at arena index i.
func (t *Tree) Node(i int) *Node {
	return &t.nodes[i]
}

// ParentID returns the id of the parent of the entry with the given id.
// ok is false for roots and unknown ids.
func (t *Tree) ParentID(id string) (parent string, ok bool) {
	for i := range t.nodes {
		if t.nodes[i].Entry.ID != id {
			continue
		}
		if p := t.nodes[i].Parent; p != NoParent {
			return t.nodes[p].Entry.ID, true
		}
		return "", false
	}
	return "", false
}

// Walk visits every node in pre-order with its depth. Returning false from
// fn skips the node's children.
func (t *Tree) Walk(fn func(i int, depth int) bool) {
	var visit func(i, depth int)
	visit = func(i, depth int) {
		if !fn(i, depth) {
			return
		}
		for _, c := range t.nodes[i].Children {
			visit(c, depth+1)
		}
	}
	for _, r := range t.roots {
		visit(r, 0)
	}
}

// Flatten returns the entries in pre-order.
func (t *Tree) Flatten() []book.FileEntry {
	out := make([]book.FileEntry, 0, len(t.nodes))
	t.Walk(func(i, _ int) bool {
		out = append(out, t.nodes[i].Entry)
		return true
	})
	return out
}
