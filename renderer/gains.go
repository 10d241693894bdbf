package renderer

import "github.com/rvail/folio"

// GainsMarkdown renders the realized sale records of a report. Sales whose
// quantity exceeded the known acquisition history are marked.
func GainsMarkdown(r *folio.Report) string {
	return renderTemplate("gains", "gains.md", nil, r)
}
