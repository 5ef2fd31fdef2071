package genai

import "testing"

type pagesDoc struct {
	Pages []struct {
		Page  int    `json:"page"`
		Theme string `json:"theme"`
	} `json:"pages"`
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantOK    bool
		wantPages int
	}{
		{
			name:      "fenced json block",
			text:      "Here is the outline.\n```json\n{\"pages\": [{\"page\": 1, \"theme\": \"Intro\"}]}\n```\nDone.",
			wantOK:    true,
			wantPages: 1,
		},
		{
			name:      "bare braces without fence",
			text:      "Result: {\"pages\": [{\"page\": 1, \"theme\": \"A\"}, {\"page\": 2, \"theme\": \"B\"}]} end",
			wantOK:    true,
			wantPages: 2,
		},
		{
			// A labeled fence that fails to parse must not fall through to
			// the brace span.
			name:   "broken fenced block does not fall through",
			text:   "```json\n{\"pages\": [}\n```\nbut also {\"pages\": [{\"page\": 1, \"theme\": \"X\"}]}",
			wantOK: false,
		},
		{
			name:      "fence wins over surrounding braces",
			text:      "{\"pages\": []} noise\n```json\n{\"pages\": [{\"page\": 7, \"theme\": \"Fenced\"}]}\n```",
			wantOK:    true,
			wantPages: 1,
		},
		{
			name:   "no json at all",
			text:   "Sorry, I could not produce an outline.",
			wantOK: false,
		},
		{
			name:   "unbalanced braces",
			text:   "prefix } then {",
			wantOK: false,
		},
		{
			name:   "empty input",
			text:   "",
			wantOK: false,
		},
		{
			name:      "unlabeled fence falls back to brace span",
			text:      "```\n{\"pages\": [{\"page\": 1, \"theme\": \"Plain\"}]}\n```",
			wantOK:    true,
			wantPages: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc pagesDoc
			ok := ExtractJSON(tt.text, &doc)

			if ok != tt.wantOK {
				t.Fatalf("ExtractJSON() = %v, want %v", ok, tt.wantOK)
			}
			if tt.wantOK && len(doc.Pages) != tt.wantPages {
				t.Errorf("pages = %d, want %d", len(doc.Pages), tt.wantPages)
			}
		})
	}
}

func TestExtractJSONSingleObject(t *testing.T) {
	var page struct {
		Page   int    `json:"page"`
		Prompt string `json:"prompt"`
	}

	text := "Adjusted page:\n```json\n{\"page\": 3, \"prompt\": \"darker header\"}\n```"
	if !ExtractJSON(text, &page) {
		t.Fatal("expected single-object extraction to succeed")
	}
	if page.Page != 3 || page.Prompt != "darker header" {
		t.Errorf("got %+v", page)
	}
}
