package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/nguyentantai21042004/srt-combiner/internal/combiner"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// renderTable draws rows with the rounded style on a terminal and plain
// ASCII otherwise.
func renderTable(headers []string, rows [][]string, aligns []columnAlignment, rounded bool) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if rounded {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderResultTable lists every input file of a combine run.
func renderResultTable(result *combiner.Result, rounded bool) string {
	rows := make([][]string, 0, len(result.Files)+1)
	for i, f := range result.Files {
		status := string(f.Status)
		if f.Err != nil {
			status += ": " + f.Err.Error()
		}
		cues := "-"
		if f.Cues > 0 {
			cues = strconv.Itoa(f.Cues)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), f.RelPath, humanize.IBytes(uint64(f.Bytes)), cues, status})
	}

	return renderTable(
		[]string{"#", "File", "Size", "Cues", "Status"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft},
		rounded,
	) + fmt.Sprintf("\n%d of %d files combined into %s", result.Combined(), len(result.Files), result.OutputPath)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
