package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/aretw0/cursorkeep/pkg/domain"
)

// Row is one table entry prepared for display.
type Row struct {
	Path    string
	X, Y    int
	Updated string
	AgeDays int
}

// Rows sorts the table by path and computes entry ages.
func Rows(table domain.Table, now time.Time) []Row {
	rows := make([]Row, 0, len(table))
	for path, e := range table {
		rows = append(rows, Row{
			Path:    path,
			X:       e.X,
			Y:       e.Y,
			Updated: e.LastUpdate.String(),
			AgeDays: e.Age(now),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Path < rows[j].Path })
	return rows
}

// FormatEntries renders rows as aligned text lines.
// With color enabled, entries in the last quarter of the retention horizon are
// highlighted, since they are the next ones to be pruned.
func FormatEntries(rows []Row, retentionDays int, color bool) string {
	profile := termenv.Ascii
	if color {
		profile = termenv.ColorProfile()
	}
	warn := profile.Color("#fbbf24")
	dim := profile.Color("#9ca3af")

	var b strings.Builder
	for _, r := range rows {
		age := termenv.String(fmt.Sprintf("%4dd", r.AgeDays)).Foreground(dim)
		if retentionDays > 0 && r.AgeDays*4 >= retentionDays*3 {
			age = termenv.String(fmt.Sprintf("%4dd", r.AgeDays)).Foreground(warn).Bold()
		}
		fmt.Fprintf(&b, "%s  %6d:%-6d %s\n", age, r.X, r.Y, r.Path)
	}
	return b.String()
}

// MarkdownTable renders rows as a Markdown table, for glamour.
func MarkdownTable(rows []Row) string {
	var b strings.Builder
	b.WriteString("| Path | X | Y | Last update | Age (days) |\n")
	b.WriteString("|---|---:|---:|---|---:|\n")
	for _, r := range rows {
		path := strings.ReplaceAll(r.Path, "|", `\|`)
		fmt.Fprintf(&b, "| `%s` | %d | %d | %s | %d |\n", path, r.X, r.Y, r.Updated, r.AgeDays)
	}
	return b.String()
}
