package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one table column. Numeric columns are right aligned.
type column struct {
	title   string
	numeric bool
}

var (
	recommendationColumns = []column{{"#", true}, {"Track", false}, {"Artist", false}, {"Genre", false}}
	auditColumns          = []column{{"Time", false}, {"Variant", false}, {"Outcome", false}, {"Items", true}, {"Duration", true}, {"Error", false}}
)

// renderTable draws rows under cols. Short rows are padded with blanks and
// extra cells are dropped. A non-empty footer is shown under the last row.
func renderTable(cols []column, rows [][]string, footer string) string {
	if len(cols) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(cols))
	configs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		header[i] = c.title
		cfg := table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft}
		if c.numeric {
			cfg.Align = text.AlignRight
		}
		configs[i] = cfg
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(cols))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	if footer != "" {
		f := make(table.Row, len(cols))
		f[0] = footer
		tw.AppendFooter(f, table.RowConfig{AutoMerge: true})
	}

	return tw.Render()
}
