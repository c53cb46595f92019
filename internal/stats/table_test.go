package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Alternate", "Key", "Count"}
	rows := [][]string{
		{"é", "e", "12"},
		{"<backspace>", "ß", "3"},
	}
	rightAlign := map[int]bool{2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Alternate   Key Count" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "é           e      12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "<backspace> ß       3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"A", "B"}, [][]string{{"😀", "x"}}, nil)
	if lines[0] != "A  B" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "😀 x" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncate("abc", 0); got != "abc" {
		t.Fatalf("expected no truncation, got %q", got)
	}
}
