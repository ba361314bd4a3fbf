package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"filesort/internal/console"
	"filesort/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [source]",
		Short: "Check directory permissions and the move log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			source, err := sourceDir(cfg, args)
			if err != nil {
				return err
			}
			output, err := ctx.outputDir(cfg)
			if err != nil {
				return err
			}

			results := preflight.RunAll(source, output, ctx.store(logger))
			rows := make([][]string, 0, len(results))
			for _, result := range results {
				status := "ok"
				if !result.Passed {
					status = "FAIL"
				}
				rows = append(rows, []string{result.Name, status, result.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), console.RenderTable([]string{"Check", "Status", "Detail"}, rows, nil))
			if !preflight.AllPassed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}
