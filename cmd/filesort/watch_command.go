package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"filesort/internal/console"
	"filesort/internal/failures"
	"filesort/internal/metrics"
	"filesort/internal/movelog"
	"filesort/internal/organizer"
	"filesort/internal/outputlock"
	"filesort/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [source]",
		Short: "Organize now and again whenever files arrive",
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
			if !cmd.Flags().Changed("debounce") {
				debounce = time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
			}

			org := organizer.New(ctx.classifier(cfg), ctx.store(logger), console.New(cmd.OutOrStdout()), logger)
			opts := organizer.Options{Source: source, Output: output, AbsolutePaths: cfg.AbsolutePaths}
			pass := func(runCtx context.Context) error {
				runCtx = failures.WithRunID(runCtx, uuid.NewString())
				return ctx.withOutputLock(runCtx, cfg, output, logger, func(runCtx context.Context) error {
					result, err := org.Organize(runCtx, opts)
					if err == nil {
						ctx.recordMetrics(cfg, logger, func(rec *metrics.Recorder) { rec.ObserveOrganize(result, false) })
					}
					return err
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for new files (Ctrl+C to stop)...\n", source)
			w := watch.New(source, debounce, pass, logger, movelog.FileName, movelog.TempPattern, outputlock.FileName)
			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Debounce window for batching file events")
	return cmd
}
