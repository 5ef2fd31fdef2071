package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"

	"ai-deckgen-be/pkg/store"
)

const analysisPrompt = `You are a professional presentation design analyst.
Output JSON data directly, with no preamble, reasoning, Markdown tags or summary.

The JSON structure you must return:
{
    "colors": {
        "background": "#FFFFFF",
        "primary": "#000000",
        "secondary": "#000000",
        "accent": "#000000",
        "text_primary": "#000000",
        "text_secondary": "#000000"
    },
    "fonts": {
        "title_style": "font style description",
        "title_size": "size estimate",
        "body_style": "body font style description",
        "body_size": "body size estimate"
    },
    "layout": {
        "title_position": "title placement description",
        "content_area": "content area description",
        "has_header": true,
        "has_footer": true,
        "has_sidebar": false
    },
    "background": {
        "type": "solid/gradient/image/pattern",
        "description": "detailed description",
        "has_decorations": true,
        "decoration_description": "decoration description"
    },
    "style_summary": "overall style summary"
}

Requirements:
1. Colors must be valid 6-digit hex values (#RRGGBB).
2. Follow the JSON structure strictly.`

var braceSpanRe = regexp.MustCompile(`\{[\s\S]*\}`)
var lineCommentRe = regexp.MustCompile(`//.*`)

// AnalyzeTemplate derives a structured design spec from a template image.
// Single shot, no retry; a response that cannot be parsed even after the
// brace-span recovery is an error and the caller proceeds without a spec.
func (p *Provider) AnalyzeTemplate(ctx context.Context, imagePath string) (*store.TemplateAnalysis, error) {
	log.Printf("[template-analysis] analyzing %s", imagePath)

	encoded, mime, err := encodeImageFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read template image: %w", err)
	}

	payload := geminiRequest{
		Model: p.textModel,
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: analysisPrompt},
				{InlineData: &geminiInlineData{MimeType: mime, Data: encoded}},
			},
		}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
		},
	}

	body, err := p.post(ctx, p.textClient, p.textModel, payload)
	if err != nil {
		return nil, fmt.Errorf("template analysis call: %w", err)
	}

	var res geminiResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("template analysis envelope: %w", err)
	}

	// The first part can be thinking output; take the last text part.
	rawText := ""
	for _, candidate := range res.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				rawText = part.Text
			}
		}
	}
	if rawText == "" {
		return nil, fmt.Errorf("template analysis returned no text")
	}

	analysis, err := parseAnalysis(rawText)
	if err != nil {
		return nil, err
	}

	log.Printf("[template-analysis] done: %s", analysis.StyleSummary)
	return analysis, nil
}

// parseAnalysis tries a direct unmarshal first, then recovers the first
// brace span (with line comments stripped, a common model slip) before
// giving up.
func parseAnalysis(rawText string) (*store.TemplateAnalysis, error) {
	var analysis store.TemplateAnalysis
	if err := json.Unmarshal([]byte(rawText), &analysis); err == nil {
		return &analysis, nil
	}

	span := braceSpanRe.FindString(rawText)
	if span == "" {
		return nil, fmt.Errorf("no JSON structure in analysis response")
	}
	cleaned := lineCommentRe.ReplaceAllString(span, "")
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}
	return &analysis, nil
}
