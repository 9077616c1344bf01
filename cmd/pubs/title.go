package main

import (
	"fmt"

	"github.com/matsen/pubs/internal/page"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(titleCmd)
}

var titleCmd = &cobra.Command{
	Use:   "title",
	Short: "Print the page title used as the highlight token",
	Args:  cobra.NoArgs,
	RunE:  runTitle,
}

func runTitle(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	pattern := cfg.MarkupPattern
	if pattern == "" {
		pattern = page.MarkupPattern
	}

	title, ok, err := page.FindTitle(pageDir, pattern)
	if err != nil {
		exitWithError(ExitError, "finding page title: %v", err)
	}
	if !ok {
		exitWithError(ExitError, "no page title found in %s (%s)", pageDir, pattern)
	}
	fmt.Fprintln(cmd.OutOrStdout(), title)
	return nil
}
