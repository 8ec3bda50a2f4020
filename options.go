package pagelayout

import (
	"log/slog"

	"github.com/tsawler/pagelayout/layout"
)

// ExtractOptions holds configuration for layout extraction.
type ExtractOptions struct {
	// Page selection (1-indexed)
	pages []int

	// Analysis
	analyzer layout.AnalyzerConfig
	logger   *slog.Logger

	// Output
	joinParagraphs bool // Join lines within paragraphs with spaces instead of newlines
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:    nil, // nil means all pages
		analyzer: layout.DefaultAnalyzerConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		analyzer:       o.analyzer,
		logger:         o.logger,
		joinParagraphs: o.joinParagraphs,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}

// analyzerConfig returns the analyzer configuration with the logger applied.
func (o ExtractOptions) analyzerConfig() layout.AnalyzerConfig {
	cfg := o.analyzer
	if o.logger != nil {
		cfg.Logger = o.logger
	}
	return cfg
}
