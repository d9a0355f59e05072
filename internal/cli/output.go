package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// render writes rows in the selected format. The table form uses
// header+rows; json and yaml marshal v instead so structured output
// keeps the full field set.
func (a *App) render(header []string, rows [][]string, v any) error {
	switch a.format {
	case "", "table":
		printTable(a.Out, header, rows)
		return nil
	case "json":
		return printJSON(a.Out, v)
	case "yaml":
		return printYAML(a.Out, v)
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", a.format)
	}
}

func printTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetColumnSeparator(" ")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
