package cmd

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// renderTable prints rows under header as a borderless, left-aligned table.
func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetColumnSeparator("")
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
