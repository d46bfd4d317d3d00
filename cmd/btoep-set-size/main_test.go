package main

import "testing"

func Test_Help_FitsWithin80Columns(t *testing.T) {
	t.Parallel()

	for _, line := range splitLines(help) {
		if len(line) > 80 {
			t.Fatalf("help line exceeds 80 columns (%d): %q", len(line), line)
		}
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0

	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}

	lines = append(lines, s[start:])

	return lines
}
