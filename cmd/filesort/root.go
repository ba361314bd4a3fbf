package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var outputFlag string
	var dryRun bool
	var undoFlag bool

	ctx := newCommandContext(&configFlag, &outputFlag)

	rootCmd := &cobra.Command{
		Use:   "filesort [source]",
		Short: "Organize files into folders by type",
		Long: `Move the files of a source directory into category folders (Images,
Documents, Music, ...) inside an output directory. Every move is recorded in
organize_log.json in the output directory so it can be undone with --undo.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if undoFlag {
				return runUndo(cmd, ctx)
			}
			return runOrganize(cmd, ctx, args, dryRun)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "Output directory (default from config: organized_output)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be moved without moving anything")
	rootCmd.Flags().BoolVar(&undoFlag, "undo", false, "Undo previous organize runs recorded in the output directory")

	rootCmd.AddCommand(newLogCommand(ctx))
	rootCmd.AddCommand(newCategoriesCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
