package console

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/scrutinytools/devtools/pkg/styles"
)

// TableConfig describes a table to render.
type TableConfig struct {
	Title     string
	Headers   []string
	Rows      [][]string
	ShowTotal bool
	TotalRow  []string
}

// RenderTable renders a fixed-width text table. Columns holding only numeric
// values are right-aligned. An empty config renders as an empty string.
func RenderTable(config TableConfig) string {
	if len(config.Headers) == 0 {
		return ""
	}

	widths := make([]int, len(config.Headers))
	numeric := make([]bool, len(config.Headers))
	for i, h := range config.Headers {
		widths[i] = len(h)
		numeric[i] = true
	}

	measure := func(row []string) {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
			if _, err := strconv.Atoi(cell); err != nil {
				numeric[i] = false
			}
		}
	}
	for _, row := range config.Rows {
		measure(row)
	}
	if config.ShowTotal {
		// The total label cell is text; only measure widths from it.
		for i, cell := range config.TotalRow {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	formatRow := func(row []string) string {
		cells := make([]string, len(config.Headers))
		for i := range config.Headers {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			if numeric[i] {
				cells[i] = strings.Repeat(" ", widths[i]-len(cell)) + cell
			} else {
				cells[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
			}
		}
		return strings.TrimRight(strings.Join(cells, "  "), " ")
	}

	var b strings.Builder
	if config.Title != "" {
		b.WriteString(styles.Bold.Render(config.Title))
		b.WriteString("\n\n")
	}

	b.WriteString(formatRow(config.Headers))
	b.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w
	}
	total += 2 * (len(widths) - 1)
	b.WriteString(strings.Repeat("-", total))
	b.WriteString("\n")

	for _, row := range config.Rows {
		b.WriteString(formatRow(row))
		b.WriteString("\n")
	}

	if config.ShowTotal && len(config.TotalRow) > 0 {
		b.WriteString(strings.Repeat("-", total))
		b.WriteString("\n")
		b.WriteString(formatRow(config.TotalRow))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderTableAsJSON renders the table rows as a JSON array of objects keyed
// by header name, for machine-readable output on stdout.
func RenderTableAsJSON(config TableConfig) (string, error) {
	if len(config.Headers) == 0 {
		return "[]", nil
	}

	rows := make([]map[string]string, 0, len(config.Rows))
	for _, row := range config.Rows {
		obj := make(map[string]string, len(config.Headers))
		for i, h := range config.Headers {
			if i < len(row) {
				obj[h] = row[i]
			} else {
				obj[h] = ""
			}
		}
		rows = append(rows, obj)
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
