// Package export renders scan records as CSV text for download.
package export

import (
	"strings"
	"time"

	"github.com/rollcall/attendance-system/internal/core/domain"
)

var scanHeader = []string{"Student Number", "Scanned At", "Scanned By"}

// ScansCSV renders the scans of a session as CSV. Every cell is quoted with
// internal quotes doubled, rows are joined by "\n" with the header first,
// and there is no trailing newline.
func ScansCSV(scans []domain.Scan) string {
	rows := make([][]string, 0, len(scans)+1)
	rows = append(rows, scanHeader)
	for _, s := range scans {
		rows = append(rows, []string{
			s.ScannedStudentNumber,
			s.ScannedAt.UTC().Format(time.RFC3339),
			s.ScannedByUsername,
		})
	}
	return render(rows)
}

func render(rows [][]string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.String()
}
