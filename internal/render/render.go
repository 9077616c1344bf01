package render

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/matsen/pubs/internal/bibtex"
	"github.com/matsen/pubs/internal/page"
)

// NoBibliographyMessage is printed by RenderAuto when no .bib file is found.
const NoBibliographyMessage = "*No bibliography found in this folder.*"

// RenderPubs prints the Markdown listing for one bibliography file.
// Failures are printed as a Markdown line instead of being returned, so a
// document build keeps going past a broken bibliography.
func RenderPubs(w io.Writer, bibFile, highlight string) {
	renderPubs(w, bibFile, highlight, slog.New(slog.DiscardHandler))
}

func renderPubs(w io.Writer, bibFile, highlight string, logger *slog.Logger) {
	db, err := bibtex.LoadFile(bibFile)
	if err != nil {
		if errors.Is(err, bibtex.ErrFileNotFound) {
			logger.Warn("bibliography not found", slog.String("path", bibFile))
			fmt.Fprintf(w, "**Error:** Could not find bibliography file: `%s`\n", bibFile)
			return
		}
		logger.Warn("bibliography parse failed", slog.String("path", bibFile), slog.String("error", err.Error()))
		fmt.Fprintf(w, "**Error parsing bib file:** %v\n", err)
		return
	}

	logger.Debug("rendering bibliography",
		slog.String("path", bibFile),
		slog.Int("entries", db.Len()),
		slog.String("highlight", highlight))

	if err := Markdown(w, db, highlight); err != nil {
		logger.Warn("writing output failed", slog.String("error", err.Error()))
	}
}

// Option configures RenderAuto.
type Option func(*autoOptions)

type autoOptions struct {
	logger            *slog.Logger
	markupPattern     string
	bibPattern        string
	fallbackHighlight string
}

// WithLogger sets the logger used for discovery diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *autoOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPatterns overrides the markup and bibliography glob patterns.
// Empty values keep the defaults.
func WithPatterns(markup, bib string) Option {
	return func(o *autoOptions) {
		if markup != "" {
			o.markupPattern = markup
		}
		if bib != "" {
			o.bibPattern = bib
		}
	}
}

// WithFallbackHighlight sets the highlight used when the page has no title.
func WithFallbackHighlight(highlight string) Option {
	return func(o *autoOptions) {
		o.fallbackHighlight = highlight
	}
}

// RenderAuto renders every bibliography in dir, highlighting the title
// declared by the first markup file in dir.
func RenderAuto(w io.Writer, dir string, opts ...Option) {
	o := autoOptions{
		logger:        slog.New(slog.DiscardHandler),
		markupPattern: page.MarkupPattern,
		bibPattern:    page.BibPattern,
	}
	for _, opt := range opts {
		opt(&o)
	}

	highlight, ok, err := page.FindTitle(dir, o.markupPattern)
	if err != nil {
		o.logger.Warn("page title lookup failed", slog.String("dir", dir), slog.String("error", err.Error()))
	}
	if !ok {
		highlight = o.fallbackHighlight
	}
	o.logger.Debug("page context", slog.String("dir", dir), slog.String("highlight", highlight))

	bibFiles, err := page.FindFiles(dir, o.bibPattern)
	if err != nil {
		fmt.Fprintf(w, "**Error:** %v\n", err)
		return
	}
	if len(bibFiles) == 0 {
		fmt.Fprintln(w, NoBibliographyMessage)
		return
	}

	for _, bib := range bibFiles {
		renderPubs(w, bib, highlight, o.logger)
	}
}
