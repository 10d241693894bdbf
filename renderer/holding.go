package renderer

import "github.com/rvail/folio"

// HoldingsMarkdown renders the open positions of a report with their market
// value and unrealized profit.
func HoldingsMarkdown(r *folio.Report) string {
	return renderTemplate("holdings", "holdings.md", nil, r)
}
