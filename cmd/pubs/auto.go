package main

import (
	"github.com/matsen/pubs/internal/render"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(autoCmd)
}

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Render every bibliography next to the current page",
	Long: `Render every bibliography next to the current page.

The title of the first *.qmd file (by name) is used as the highlight token.
Each *.bib file is then rendered in name order. If no bibliography is found
a single informational line is printed.

Examples:
  pubs auto
  pubs auto --dir publications/`,
	Args: cobra.NoArgs,
	RunE: runAuto,
}

func runAuto(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	render.RenderAuto(cmd.OutOrStdout(), pageDir,
		render.WithLogger(newLogger()),
		render.WithPatterns(cfg.MarkupPattern, cfg.BibPattern),
		render.WithFallbackHighlight(cfg.Highlight))
	return nil
}
