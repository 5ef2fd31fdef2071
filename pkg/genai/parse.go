package genai

import (
	"encoding/json"
	"strings"
)

// ExtractJSON pulls a structured payload out of a free-text model response
// and unmarshals it into v. A fenced block explicitly labeled as JSON wins;
// when none exists, the span between the first '{' and the last '}' is
// tried. A fenced block that fails to parse does not fall through to the
// brace span. Returns false when no branch yields valid JSON; callers treat
// that the same as an empty response.
func ExtractJSON(text string, v any) bool {
	if block, ok := fencedJSONBlock(text); ok {
		return json.Unmarshal([]byte(block), v) == nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return false
	}
	return json.Unmarshal([]byte(text[start:end+1]), v) == nil
}

func fencedJSONBlock(text string) (string, bool) {
	fenceStart := strings.Index(text, "```json")
	if fenceStart == -1 {
		return "", false
	}
	rest := text[fenceStart:]
	newline := strings.Index(rest, "\n")
	if newline == -1 {
		return "", false
	}
	body := rest[newline+1:]
	fenceEnd := strings.Index(body, "```")
	if fenceEnd == -1 {
		return "", false
	}
	return strings.TrimSpace(body[:fenceEnd]), true
}
