package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"filesort/internal/console"
	"filesort/internal/failures"
	"filesort/internal/metrics"
	"filesort/internal/organizer"
	"filesort/internal/undo"
)

func runOrganize(cmd *cobra.Command, ctx *commandContext, args []string, dryRun bool) error {
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

	org := organizer.New(ctx.classifier(cfg), ctx.store(logger), console.New(cmd.OutOrStdout()), logger)
	opts := organizer.Options{
		Source:        source,
		Output:        output,
		DryRun:        dryRun,
		AbsolutePaths: cfg.AbsolutePaths,
	}
	runCtx := failures.WithRunID(cmd.Context(), uuid.NewString())

	organize := func(runCtx context.Context) error {
		result, err := org.Organize(runCtx, opts)
		if err == nil {
			ctx.recordMetrics(cfg, logger, func(rec *metrics.Recorder) { rec.ObserveOrganize(result, dryRun) })
		}
		if failures.NonFatal(err) {
			return nil
		}
		return err
	}
	if dryRun {
		// Dry runs never write, so they do not contend for the lock.
		return organize(runCtx)
	}
	return ctx.withOutputLock(runCtx, cfg, output, logger, organize)
}

func runUndo(cmd *cobra.Command, ctx *commandContext) error {
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

	engine := undo.New(ctx.store(logger), console.New(cmd.OutOrStdout()), logger)
	runCtx := failures.WithRunID(cmd.Context(), uuid.NewString())
	return ctx.withOutputLock(runCtx, cfg, output, logger, func(runCtx context.Context) error {
		result, err := engine.Undo(runCtx, output)
		if err == nil {
			ctx.recordMetrics(cfg, logger, func(rec *metrics.Recorder) { rec.ObserveUndo(result) })
		}
		return err
	})
}
