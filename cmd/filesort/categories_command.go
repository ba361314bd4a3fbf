package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"filesort/internal/classify"
	"filesort/internal/console"
)

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories and the extensions routed into each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			classifier := ctx.classifier(cfg)
			rows := make([][]string, 0, len(classifier.Categories())+1)
			for _, category := range classifier.Categories() {
				rows = append(rows, []string{category, strings.Join(classifier.Extensions(category), " ")})
			}
			rows = append(rows, []string{classify.Others, "(anything else)"})
			fmt.Fprintln(cmd.OutOrStdout(), console.RenderTable([]string{"Category", "Extensions"}, rows, nil))
			return nil
		},
	}
}
