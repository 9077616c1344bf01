package main

import (
	"github.com/matsen/pubs/internal/bibtex"
	"github.com/matsen/pubs/internal/render"
	"github.com/spf13/cobra"
)

var (
	renderHighlight string
	renderJSON      bool
)

func init() {
	renderCmd.Flags().StringVar(&renderHighlight, "highlight", "", "Bold authors whose name contains this text")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "Output grouped publications as JSON instead of Markdown")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <file.bib>",
	Short: "Render one bibliography file as Markdown",
	Long: `Render one bibliography file as Markdown.

A missing or unparsable file prints a one-line Markdown error instead of
failing, so a document build keeps going. With --json, failures are
reported on stderr with a non-zero exit code.

Examples:
  pubs render pubs.bib
  pubs render pubs.bib --highlight "Jane Doe"
  pubs render pubs.bib --json`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	bibFile := args[0]

	if !renderJSON {
		render.RenderPubs(cmd.OutOrStdout(), bibFile, renderHighlight)
		return nil
	}

	db, err := bibtex.LoadFile(bibFile)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := render.JSON(cmd.OutOrStdout(), db); err != nil {
		exitWithError(ExitError, "writing output: %v", err)
	}
	return nil
}
