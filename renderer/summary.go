package renderer

import "github.com/rvail/folio"

// SummaryMarkdown renders the headline figures, the performance windows and
// the capital breakdown of a report.
func SummaryMarkdown(r *folio.Report) string {
	partials := map[string]string{
		"summary_performance": "summary_performance.md",
		"summary_breakdown":   "summary_breakdown.md",
	}
	return renderTemplate("summary", "summary.md", partials, r)
}
