package client

import (
	"fmt"
	"github.com/aleph-zero/flutterstack/service/command"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Format renders a command result for the terminal. Stack listings become a
// table; everything else prints its output line as is.
func Format(result *command.CommandResult) string {
	if len(result.Stacks) == 0 {
		return result.Output
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false

	tbl.AppendHeader(table.Row{"name", "size", "capacity", "contents"})
	for _, d := range result.Stacks {
		tbl.AppendRow(table.Row{
			d.Name,
			humanize.Comma(int64(d.Size)),
			humanize.Comma(int64(d.Capacity)),
			d.Display})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d stacks", len(result.Stacks))})

	return tbl.Render()
}
