package renderer

import "github.com/rvail/folio"

// Series is a titled list of dated values for tabular rendering.
type Series struct {
	Title  string
	Points []folio.Point
}

// HistoryMarkdown renders a daily series as a two column table.
func HistoryMarkdown(s Series) string {
	return renderTemplate("history", "history.md", nil, s)
}
