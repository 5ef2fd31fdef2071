package stage

import "testing"

func TestIsOutlineConfirm(t *testing.T) {
	c := NewKeywordClassifier()

	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{
			name:    "plain confirm",
			message: "confirm",
			want:    true,
		},
		{
			name:    "keyword inside sentence",
			message: "Yes, that looks good to me",
			want:    true,
		},
		{
			name:    "uppercase",
			message: "OK!",
			want:    true,
		},
		{
			name:    "approved",
			message: "Approved, go on",
			want:    true,
		},
		{
			name:    "plain feedback",
			message: "please merge pages 2 and 3",
			want:    false,
		},
		{
			name:    "style-only keyword does not confirm outline",
			message: "go ahead",
			want:    false,
		},
		{
			// Substring containment is intentional: negations still confirm.
			name:    "negated phrase still matches",
			message: "not sure this is ok",
			want:    true,
		},
		{
			name:    "empty message",
			message: "",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsOutlineConfirm(tt.message); got != tt.want {
				t.Errorf("IsOutlineConfirm(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestIsStyleConfirm(t *testing.T) {
	c := NewKeywordClassifier()

	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{
			name:    "generate",
			message: "generate the deck",
			want:    true,
		},
		{
			name:    "start",
			message: "Start please",
			want:    true,
		},
		{
			name:    "go ahead",
			message: "go ahead",
			want:    true,
		},
		{
			// "looks" carries an embedded "ok"; substring matching fires.
			name:    "embedded keyword still matches",
			message: "looks good",
			want:    true,
		},
		{
			name:    "plain feedback",
			message: "make page 1 darker",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsStyleConfirm(tt.message); got != tt.want {
				t.Errorf("IsStyleConfirm(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}
