package main

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// renderFields prints label/value pairs as a two column table.
func renderFields(w io.Writer, fields [][2]string) error {
	rows := make([][]string, 0, len(fields))
	for _, field := range fields {
		rows = append(rows, []string{field[0], field[1]})
	}
	return renderTable(w, []string{"Field", "Value"}, rows)
}
