package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableOption adjusts RenderTable output.
type TableOption func(*tableConfig)

type tableConfig struct {
	rightAlign map[int]bool
	footer     []string
}

// AlignRight right-aligns the given column indexes (numeric columns).
func AlignRight(cols ...int) TableOption {
	return func(c *tableConfig) {
		for _, col := range cols {
			c.rightAlign[col] = true
		}
	}
}

// WithFooter adds a row below a second separator line, used for totals.
func WithFooter(cells ...string) TableOption {
	return func(c *tableConfig) {
		c.footer = cells
	}
}

// RenderTable renders an aligned table with a header separator line.
// Columns are padded to the widest visible cell, so styled cells line up.
func RenderTable(headers []string, rows [][]string, opts ...TableOption) string {
	if len(headers) == 0 {
		return ""
	}
	cfg := &tableConfig{rightAlign: make(map[int]bool)}
	for _, opt := range opts {
		opt(cfg)
	}

	cols := len(headers)
	widths := make([]int, cols)
	measure := func(row []string) {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}
	measure(cfg.footer)

	const colGap = 2
	var b strings.Builder

	writeRow := func(row []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(cell)))
			if style != nil {
				cell = style(cell)
			}
			if cfg.rightAlign[i] {
				b.WriteString(pad + cell)
			} else if i < cols-1 {
				b.WriteString(cell + pad)
			} else {
				b.WriteString(cell)
			}
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}
	writeSeparator := func() {
		for i, w := range widths {
			b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	writeSeparator()
	for _, row := range rows {
		writeRow(row, nil)
	}
	if cfg.footer != nil {
		writeSeparator()
		writeRow(cfg.footer, func(s string) string { return StyleBold.Render(s) })
	}
	return b.String()
}
