package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Table renders aligned columns of text
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	noColor bool
}

// TableOptions configures table behavior
type TableOptions struct {
	NoColor bool
}

// NewTable creates a new table with the given headers
func NewTable(w io.Writer, headers []string, opts *TableOptions) *Table {
	t := &Table{
		writer:  w,
		headers: headers,
	}
	if opts != nil {
		t.noColor = opts.NoColor
	}
	return t
}

// AddRow adds a row to the table. Cells beyond the header count are dropped.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render renders the table to the writer
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && width(cell) > widths[i] {
				widths[i] = width(cell)
			}
		}
	}

	head := newColor(t.noColor, color.Bold, color.FgCyan)
	rule := newColor(t.noColor, color.FgHiBlack)

	last := len(widths) - 1
	for i, h := range t.headers {
		head.Fprint(t.writer, pad(h, widths[i], i == last))
		if i < last {
			fmt.Fprint(t.writer, "  ")
		}
	}
	fmt.Fprintln(t.writer)

	for i, w := range widths {
		rule.Fprint(t.writer, strings.Repeat("─", w))
		if i < last {
			fmt.Fprint(t.writer, "  ")
		}
	}
	fmt.Fprintln(t.writer)

	for _, row := range t.rows {
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			fmt.Fprint(t.writer, pad(cell, widths[i], i == last))
			if i < last {
				fmt.Fprint(t.writer, "  ")
			}
		}
		fmt.Fprintln(t.writer)
	}
}

// KeyValueTable renders aligned key: value lines
type KeyValueTable struct {
	writer  io.Writer
	keys    []string
	values  []string
	noColor bool
}

// NewKeyValueTable creates a new key-value table
func NewKeyValueTable(w io.Writer, noColor bool) *KeyValueTable {
	return &KeyValueTable{writer: w, noColor: noColor}
}

// AddRow adds a key-value pair to the table
func (t *KeyValueTable) AddRow(key, value string) {
	t.keys = append(t.keys, key)
	t.values = append(t.values, value)
}

// Render renders the key-value table
func (t *KeyValueTable) Render() {
	keyWidth := 0
	for _, k := range t.keys {
		if width(k) > keyWidth {
			keyWidth = width(k)
		}
	}

	key := newColor(t.noColor, color.FgCyan)
	for i, k := range t.keys {
		key.Fprint(t.writer, pad(k+":", keyWidth+1, false))
		fmt.Fprintf(t.writer, " %s\n", t.values[i])
	}
}

// Header renders a styled title underlined to its width
func Header(w io.Writer, title string, noColor bool) {
	newColor(noColor, color.Bold, color.FgCyan).Fprintln(w, title)
	Divider(w, width(title), noColor)
}

// Divider renders a horizontal rule; zero width means 80 columns
func Divider(w io.Writer, n int, noColor bool) {
	if n == 0 {
		n = 80
	}
	newColor(noColor, color.FgHiBlack).Fprintln(w, strings.Repeat("─", n))
}

func newColor(noColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if noColor {
		c.DisableColor()
	}
	return c
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

// pad right-pads s to n runes; the last column is left unpadded
func pad(s string, n int, last bool) string {
	if last || width(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-width(s))
}
