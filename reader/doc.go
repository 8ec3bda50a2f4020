// Package reader turns PDF files into page inputs for layout analysis.
//
// Decoding of the file structure and content streams is delegated to
// github.com/ledongthuc/pdf. This package converts what that library
// reports into [model.PageInput] values: positioned glyph runs and
// rectangle primitives in a top-left coordinate system.
//
// # Opening PDF Files
//
// Use [Open] to open a PDF file for reading:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
// Or use [OpenWithConfig] to change the glyph ascent or the fallback page
// size used when a page has no MediaBox.
//
// # Page Access
//
// Pages are 1-indexed:
//
//	in, err := r.Page(1)
//
// [Reader.Pages] loads several pages at once and reports failures per page
// instead of aborting.
//
// # Coordinates
//
// PDF user space grows upward from the bottom of the MediaBox. Glyph runs
// are flipped so that Y is the top edge of the glyph box, which spans
// Config.Ascent font sizes above the baseline and the remainder below it.
// Font subset tags such as "ABCDEF+" are removed and text is normalized
// to NFC.
package reader
