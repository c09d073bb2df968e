package main

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/jakopako/sessionscraper/internal/selector"
	"github.com/jakopako/sessionscraper/internal/types"
	"github.com/olekukonko/tablewriter"
)

// printSummary writes a table with the number of matches per selector to w.
// Selectors without any match are highlighted.
func printSummary(w io.Writer, selectors []selector.Selector, result *types.Result) {
	if !result.Success {
		return
	}
	slog.Debug("printing selector summary")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Selector", "Kind", "Matches"})

	total := 0
	for _, s := range selectors {
		texts, _ := result.Values.Get(s.Raw)
		row := []string{s.Raw, s.Kind.String(), strconv.Itoa(len(texts))}
		if len(texts) == 0 {
			table.Rich(row, []tablewriter.Colors{{tablewriter.Normal, tablewriter.FgYellowColor}, {tablewriter.Normal, tablewriter.FgYellowColor}, {tablewriter.Normal, tablewriter.FgYellowColor}})
		} else {
			table.Append(row)
		}
		total += len(texts)
	}
	table.SetFooter([]string{"total", "", strconv.Itoa(total)})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.SetBorder(false)
	table.Render()
}
