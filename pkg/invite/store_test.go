package invite

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCodes(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invite_codes.json")
	writeCodes(t, path, `{"codes": ["ALPHA1", "beta2", "  gamma3  "]}`)

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	tests := []struct {
		code string
		want bool
	}{
		{"ALPHA1", true},
		{"alpha1", true},     // case-insensitive
		{" Beta2 ", true},    // trimmed
		{"GAMMA3", true},     // stored codes are trimmed too
		{"delta4", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := s.Verify(tt.code); got != tt.want {
			t.Errorf("Verify(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}

	if s.Count() != 3 {
		t.Errorf("Count() = %d, want 3", s.Count())
	}
}

func TestMissingFileIsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("a missing code file must not be fatal: %v", err)
	}
	if s.Count() != 0 {
		t.Errorf("Count() = %d, want 0", s.Count())
	}
	if s.Verify("anything") {
		t.Error("empty store must verify nothing")
	}
}

func TestMalformedFileFailsConstruction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invite_codes.json")
	writeCodes(t, path, "not json")

	if _, err := NewStore(path); err == nil {
		t.Fatal("expected an error for a malformed code file")
	}
}

func TestReloadPicksUpChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invite_codes.json")
	writeCodes(t, path, `{"codes": ["OLD"]}`)

	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}

	writeCodes(t, path, `{"codes": ["NEW1", "NEW2"]}`)
	if err := s.reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if s.Verify("OLD") {
		t.Error("removed code must stop verifying after reload")
	}
	if !s.Verify("NEW1") || s.Count() != 2 {
		t.Errorf("reload did not apply, count = %d", s.Count())
	}
}
