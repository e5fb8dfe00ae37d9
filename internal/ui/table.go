package ui

import "strings"

// Table renders rows aligned by column width, without borders.
type Table struct {
	rows       [][]string
	colWidths  []int
	colPadding int
}

// NewTable creates a table with the given number of columns.
func NewTable(cols int) *Table {
	return &Table{
		colWidths:  make([]int, cols),
		colPadding: 2,
	}
}

// AddRow appends a row; extra cells beyond the column count are
// dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.colWidths))
	for i := 0; i < len(t.colWidths) && i < len(cells); i++ {
		row[i] = cells[i]
		if len(cells[i]) > t.colWidths[i] {
			t.colWidths[i] = len(cells[i])
		}
	}
	t.rows = append(t.rows, row)
}

// SetPadding sets the spacing between columns.
func (t *Table) SetPadding(padding int) {
	t.colPadding = padding
}

// String renders the table, left-aligning every column and leaving
// the last one unpadded.
func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}

	var sb strings.Builder
	padding := strings.Repeat(" ", t.colPadding)

	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(padding)
			}
			sb.WriteString(cell)
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", t.colWidths[i]-len(cell)))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// List renders a simple indented bullet list.
type List struct {
	items  []string
	indent string
	bullet string
}

// NewList creates a list with two-space indent and a bullet marker.
func NewList() *List {
	return &List{
		indent: "  ",
		bullet: "•",
	}
}

// SetIndent sets the indentation string.
func (l *List) SetIndent(indent string) {
	l.indent = indent
}

// SetBullet sets the bullet character.
func (l *List) SetBullet(bullet string) {
	l.bullet = bullet
}

// Add appends an item.
func (l *List) Add(item string) {
	l.items = append(l.items, item)
}

// String renders the list.
func (l *List) String() string {
	var sb strings.Builder
	for _, item := range l.items {
		sb.WriteString(l.indent)
		sb.WriteString(l.bullet)
		sb.WriteString(" ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return sb.String()
}
