package docextract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractTextPlainFormats(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("# Title\nsome notes"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ExtractText(path, "notes.md")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if got != "# Title\nsome notes" {
		t.Errorf("got %q", got)
	}
}

func TestExtractTextUnsupported(t *testing.T) {
	if _, err := ExtractText("whatever", "archive.rar"); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		limit    int
		wantCut  bool
		wantText string
	}{
		{
			name:     "under limit untouched",
			text:     "short",
			limit:    10,
			wantCut:  false,
			wantText: "short",
		},
		{
			name:     "over limit gets marker",
			text:     "abcdefghij",
			limit:    4,
			wantCut:  true,
			wantText: "abcd\n...(content truncated)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cut := Truncate(tt.text, tt.limit)
			if cut != tt.wantCut {
				t.Fatalf("cut = %v, want %v", cut, tt.wantCut)
			}
			if got != tt.wantText {
				t.Errorf("got %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestTruncateNeverSplitsRunes(t *testing.T) {
	// Three-byte runes; a byte limit of 4 lands mid-rune.
	text := "一二三"
	got, cut := Truncate(text, 4)
	if !cut {
		t.Fatal("expected truncation")
	}
	body := strings.TrimSuffix(got, "\n...(content truncated)")
	if body != "一" {
		t.Errorf("body = %q, want a whole rune", body)
	}
}

func TestExtractTableCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	content := "region,revenue\nnorth,100\n\nsouth,200\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ExtractTable(path, "data.csv", 1000)
	if err != nil {
		t.Fatalf("ExtractTable: %v", err)
	}
	if !strings.Contains(got, "region | revenue") {
		t.Errorf("missing header row in %q", got)
	}
	if !strings.Contains(got, "south | 200") {
		t.Errorf("empty rows must be skipped but data kept, got %q", got)
	}
}

func TestExtractTableUnsupported(t *testing.T) {
	if _, err := ExtractTable("x", "doc.pdf", 100); err == nil {
		t.Fatal("expected an error for a non-table format")
	}
}
