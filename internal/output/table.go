package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tableHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue).Padding(0, 1)
	tableCell   = lipgloss.NewStyle().Padding(0, 1)
	tableBorder = lipgloss.NewStyle().Foreground(ColorDimGray)
)

// Table collects rows and renders them with a dim rounded border.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// Row appends a row.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table.
func (t *Table) String() string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeader
			}
			return tableCell
		}).
		String()
}

// ManifestRow is one item of a package manifest as shown by inspect.
type ManifestRow struct {
	ID        string
	Href      string
	MediaType string
	Spine     bool
}

// RenderManifestTable renders package manifest items with their spine
// membership.
func RenderManifestTable(rows []ManifestRow) string {
	t := NewTable("ID", "HREF", "MEDIA TYPE", "SPINE")
	for _, r := range rows {
		spine := ""
		if r.Spine {
			spine = "yes"
		}
		t.Row(r.ID, r.Href, r.MediaType, spine)
	}
	return t.String()
}
