package parser

import (
	"testing"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"17", 17},
		{" 3 ", 3},
		{"4.0", 4},
		{"2.6", 3},
		{"", 0},
		{"n/a", 0},
		{"-5", 0},
		{"NaN", 0},
		{"Inf", 0},
	}

	for _, tt := range tests {
		result := parseCount(tt.input)
		if result != tt.expected {
			t.Errorf("parseCount(%q) = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func TestCellAt(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		nil,
		{"", "", "c"},
	}

	tests := []struct {
		row, col int
		expected string
	}{
		{0, 1, "b"},
		{1, 0, ""},
		{2, 2, "c"},
		{2, 5, ""},
		{9, 0, ""},
		{-1, 0, ""},
	}

	for _, tt := range tests {
		result := cellAt(rows, tt.row, tt.col)
		if result != tt.expected {
			t.Errorf("cellAt(%d, %d) = %q, expected %q", tt.row, tt.col, result, tt.expected)
		}
	}
}
