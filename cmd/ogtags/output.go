package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/eringen/opengraph/content"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTags writes a table on terminals and slug<TAB>property<TAB>content
// lines otherwise.
func printTags(cmd *cobra.Command, a *content.Article) {
	out := cmd.OutOrStdout()
	if isTerminal(out) {
		fmt.Fprintln(out, renderTagTable(a))
		return
	}
	for _, t := range a.OGTags {
		fmt.Fprintf(out, "%s\t%s\t%s\n", a.Slug, t.Property, t.Content)
	}
}

func renderTagTable(a *content.Article) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(fmt.Sprintf("%s (%s)", a.Slug, a.Status))
	tw.AppendHeader(table.Row{"Property", "Content"})
	for _, t := range a.OGTags {
		tw.AppendRow(table.Row{t.Property, t.Content})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 80},
	})
	return tw.Render()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
