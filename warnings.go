package pagelayout

import (
	"fmt"
	"strings"

	"github.com/tsawler/pagelayout/layout"
)

// WarningKind classifies a non-fatal problem found during extraction.
type WarningKind int

const (
	// WarningPageFailed means the page could not be read or analysed and
	// is missing from the document.
	WarningPageFailed WarningKind = iota

	// WarningTruncated means a whitespace search hit its iteration limit,
	// so some regions may be coarser than the page warrants.
	WarningTruncated

	// WarningSkippedSplits means one or more region splits were rejected
	// because they would have cut through text.
	WarningSkippedSplits
)

// String returns a human-readable name for the warning kind.
func (k WarningKind) String() string {
	switch k {
	case WarningPageFailed:
		return "page failed"
	case WarningTruncated:
		return "truncated"
	case WarningSkippedSplits:
		return "skipped splits"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal issue tied to one page.
type Warning struct {
	Page    int
	Kind    WarningKind
	Message string
}

// String formats the warning for display.
func (w Warning) String() string {
	return fmt.Sprintf("page %d: %s: %s", w.Page, w.Kind, w.Message)
}

// FormatWarnings joins warnings into a single line for logging.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// pageWarnings reports the degraded results recorded on an analysed page.
func pageWarnings(p *layout.Page) []Warning {
	var out []Warning
	if p.Truncated {
		out = append(out, Warning{
			Page:    p.Number,
			Kind:    WarningTruncated,
			Message: "whitespace search stopped at its iteration limit",
		})
	}
	if p.SkippedSplits > 0 {
		out = append(out, Warning{
			Page:    p.Number,
			Kind:    WarningSkippedSplits,
			Message: fmt.Sprintf("%d region splits would have cut through text", p.SkippedSplits),
		})
	}
	return out
}
