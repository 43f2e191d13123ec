package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSplitYear(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		input string
		title string
		year  *int
	}{
		{"Dune (2021)", "Dune", intPtr(2021)},
		{"Nosferatu(1922)  ", "Nosferatu", intPtr(1922)},
		{"Roundhay Garden Scene (1888)", "Roundhay Garden Scene", intPtr(1888)},
		{"Upcoming (2029)", "Upcoming", intPtr(2029)},
		{"Too Far (2030)", "Too Far (2030)", nil},
		{"Too Early (1869)", "Too Early (1869)", nil},
		{"1917", "1917", nil},
		{"(2001)", "(2001)", nil},
		{"Heat (1995) remake", "Heat (1995) remake", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			title, year := SplitYear(tt.input, now)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.year, year)
		})
	}
}
