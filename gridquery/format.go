package gridquery

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatCompact renders a grid as a paging line followed by a CSV-style table:
//
//	page:1 total:3 records:12
//	id,number,customer.name
//	7,SO-1007,Acme
//
// The first column is always the row id.
func FormatCompact(g *GridModel) []byte {
	var b strings.Builder

	b.WriteString("page:" + strconv.Itoa(g.Page))
	b.WriteString(" total:" + strconv.Itoa(g.Total))
	b.WriteString(" records:" + strconv.Itoa(g.Records))
	b.WriteByte('\n')

	// Header row
	b.WriteString("id")
	for _, col := range g.Columns {
		b.WriteByte(',')
		b.WriteString(escapeCSV(col))
	}
	b.WriteByte('\n')

	// Data rows
	for _, row := range g.Rows {
		b.WriteString(escapeCSV(row.ID))
		for _, cell := range row.Cell {
			b.WriteByte(',')
			b.WriteString(escapeCSV(cell))
		}
		b.WriteByte('\n')
	}

	return []byte(b.String())
}

// escapeCSV converts a value to a string suitable for a CSV cell.
// Nil values become empty string. Values containing commas, quotes,
// or newlines are wrapped in double quotes with internal quotes doubled.
func escapeCSV(val any) string {
	if val == nil {
		return ""
	}
	s := formatValue(val)
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// formatValue converts any cell value to its string representation.
func formatValue(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		if isComplex(val) {
			b, err := json.Marshal(v)
			if err == nil {
				return string(b)
			}
		}
		return fmt.Sprintf("%v", val)
	}
}

// isComplex returns true for types that benefit from JSON encoding
// rather than fmt.Sprintf (slices, arrays, maps).
func isComplex(val any) bool {
	s := fmt.Sprintf("%T", val)
	return strings.HasPrefix(s, "[]") || strings.HasPrefix(s, "map[")
}
