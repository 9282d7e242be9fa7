package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nguyentantai21042004/srt-combiner/internal/subtitle"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

func newParseCommand() *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the cues of one SRT or VTT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			inputFormat, ok := subtitle.FormatFromPath(path)
			if !ok {
				return fmt.Errorf("%s: unsupported subtitle extension", path)
			}
			outputFormat := inputFormat
			if formatFlag != "" {
				f, err := subtitle.ParseFormat(formatFlag)
				if err != nil {
					return err
				}
				outputFormat = f
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			text, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
			if err != nil {
				return fmt.Errorf("decode %s: %w", path, err)
			}

			cues, err := subtitle.ParseSource(path, string(text), inputFormat)
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}

			rows := make([][]string, 0, len(cues))
			for i, cue := range cues {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					subtitle.FormatTimestamp(cue.Start, outputFormat),
					subtitle.FormatTimestamp(cue.End, outputFormat),
					cue.Text,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Start", "End", "Text"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
				shouldColorize(out),
			))
			fmt.Fprintf(out, "%d cues\n", len(cues))
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "", "Timestamp style for output: srt or vtt (default: input format)")
	return cmd
}
