package main

import (
	"fmt"
	"os"

	"github.com/matsen/pubs/internal/bibtex"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean <file.bib>",
	Short: "Print a bibliography with repeated doi fields removed",
	Long: `Print a bibliography with repeated doi fields removed.

Some exporters write the doi field twice in one entry, which strict BibTeX
parsers reject. This prints the text that 'render' actually parses: only the
first doi line of each entry is kept and everything else is unchanged.

Examples:
  pubs clean pubs.bib > pubs.clean.bib`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		exitWithError(ExitError, "opening %s: %v", args[0], err)
	}
	defer file.Close()

	cleaned, err := bibtex.Sanitize(file)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), cleaned)
	return nil
}
