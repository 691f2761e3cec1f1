package parser

import (
	"math"
	"strconv"
	"strings"
)

// cellAt returns the cell at a 0-based position, or "" when the row or
// column does not exist.
func cellAt(rows [][]string, row, col int) string {
	if row < 0 || row >= len(rows) {
		return ""
	}
	return cellIn(rows[row], col)
}

func cellIn(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// parseCount parses a count cell. Blank, non-numeric, non-finite and
// negative values yield 0; fractional values are rounded.
func parseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if i < 0 || i > math.MaxInt32 {
			return 0
		}
		return int(i)
	}
	// Try float
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(math.Round(f))
}
