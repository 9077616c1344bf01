// Package main provides the pubs CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/matsen/pubs/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// verbose enables debug logging on stderr
var verbose bool

// pageDir is the directory holding the page and its bibliographies
var pageDir string

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pubs",
	Short: "Render BibTeX bibliographies as Markdown publication lists",
	Long: `pubs renders BibTeX bibliographies as categorized Markdown listings
for a personal or academic website.

Entries are grouped into Journal Articles, Conference Papers, Books and
Chapters, and Theses, sorted newest first, and linked to their DOI.

Run without a subcommand (or with 'auto') inside a page directory to render
every *.bib file there, bolding the author named by the page's title.
Markdown goes to stdout so a document build can capture it.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAuto,
}

func init() {
	// Load .env file if present (for PUBS_* overrides)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log discovery and parsing details to stderr")
	rootCmd.PersistentFlags().StringVar(&pageDir, "dir", ".", "Directory containing the page and its bibliographies")
	rootCmd.Version = Version
}

// newLogger returns a stderr debug logger when --verbose is set.
func newLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading config: %v\n\n%s\n", err, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return cfg
}
