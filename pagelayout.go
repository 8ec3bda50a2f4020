// Package pagelayout provides a fluent API for recovering the geometric
// layout of PDF pages: regions, column boundaries, paragraphs, lines and
// words, in reading order.
//
// Basic usage:
//
//	text, warnings, err := pagelayout.Open("document.pdf").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pagelayout.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := pagelayout.Open("report.pdf").
//	    Pages(1, 2, 3).
//	    MergeRuns().
//	    Document()
//
// For advanced use cases, the lower-level reader and layout packages are
// also available.
package pagelayout

import (
	"github.com/tsawler/pagelayout/model"
	"github.com/tsawler/pagelayout/reader"
)

// Open opens a PDF file and returns an Extractor for fluent configuration.
// The file is opened lazily and closed by terminal operations such as
// Text() or Document(), or explicitly via Close().
//
// Example:
//
//	text, warnings, err := pagelayout.Open("document.pdf").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened reader.Reader.
// The caller is responsible for closing the reader.
//
// Example:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	doc, warnings, err := pagelayout.FromReader(r).Document()
func FromReader(r *reader.Reader) *Extractor {
	return &Extractor{
		source:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// FromInputs creates an Extractor over pages that were produced by some
// other extractor. Page selection applies to the Number of each input.
func FromInputs(inputs ...model.PageInput) *Extractor {
	return &Extractor{
		source:       inputSource(inputs),
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pagelayout.Must(pagelayout.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text() or Document() and
// panics if the error is non-nil. It discards warnings and returns just
// the value.
//
// Example:
//
//	text := pagelayout.MustText(pagelayout.Open("document.pdf").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
