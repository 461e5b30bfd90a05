package parser

import "testing"

func TestNumberedLines(t *testing.T) {
	raw := "first\n\nsecond\n   \nthird\n"
	lines := numberedLines(raw)

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	// Blank lines are skipped but still counted, so errors point at the
	// line the user actually sees.
	wantNums := []int{1, 3, 5}
	wantText := []string{"first", "second", "third"}
	for i, l := range lines {
		if l.num != wantNums[i] || l.text != wantText[i] {
			t.Errorf("lines[%d] = (%d, %q), want (%d, %q)", i, l.num, l.text, wantNums[i], wantText[i])
		}
	}
}

func TestSanitizeUTF8(t *testing.T) {
	valid := []byte("JohnDoe\t12345\tXP")
	if got := SanitizeUTF8(valid); string(got) != string(valid) {
		t.Errorf("SanitizeUTF8 changed valid input: %q", got)
	}

	invalid := []byte{'a', 0xff, 'b'}
	got := string(SanitizeUTF8(invalid))
	if got != "a�b" {
		t.Errorf("SanitizeUTF8(%v) = %q, want %q", invalid, got, "a�b")
	}
}
