package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"filesort/internal/console"
	"filesort/internal/movelog"
)

func newLogCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the moves recorded in the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			output, err := ctx.outputDir(cfg)
			if err != nil {
				return err
			}

			records, err := ctx.store(logger).Load(output)
			if err != nil {
				return err
			}
			if records == nil {
				records = []movelog.Record{}
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(strings.TrimSpace(format)) {
			case "json":
				data, err := json.MarshalIndent(records, "", "  ")
				if err != nil {
					return fmt.Errorf("encode log: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(records)
				if err != nil {
					return fmt.Errorf("encode log: %w", err)
				}
				fmt.Fprint(out, string(data))
			case "table", "":
				if len(records) == 0 {
					fmt.Fprintf(out, "No log entries in %s\n", movelog.Path(output))
					return nil
				}
				fmt.Fprintln(out, renderLogTable(records))
				fmt.Fprintf(out, "%d move(s) recorded in %s\n", len(records), movelog.Path(output))
			default:
				return fmt.Errorf("unsupported format %q (use table, json or yaml)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json or yaml")
	return cmd
}

// displayTime shows a record's time to the second, falling back to the raw
// timestamp when it does not parse.
func displayTime(record movelog.Record) string {
	if at, ok := record.Time(); ok {
		return at.Format(time.DateTime)
	}
	return record.Timestamp
}

func renderLogTable(records []movelog.Record) string {
	rows := make([][]string, 0, len(records))
	for i, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			displayTime(record),
			filepath.Base(filepath.Dir(record.Dest)),
			record.Src,
			record.Dest,
		})
	}
	return console.RenderTable(
		[]string{"#", "Timestamp", "Category", "Source", "Destination"},
		rows,
		[]console.Alignment{console.AlignRight, console.AlignLeft, console.AlignLeft, console.AlignLeft, console.AlignLeft},
	)
}
