package prompt

import (
	"strings"
	"testing"

	"ai-deckgen-be/internal/constant"
	"ai-deckgen-be/pkg/store"
)

func TestBuildOutlinePrompt(t *testing.T) {
	tests := []struct {
		name        string
		in          OutlineInput
		wantParts   []string
		absentParts []string
	}{
		{
			name: "idea only",
			in:   OutlineInput{UserIdea: "Quarterly investor update"},
			wantParts: []string{
				"[The user's idea]\nQuarterly investor update",
				"[Example result format]",
			},
			absentParts: []string{
				"[Page count requirement]",
				"[Per-page instructions]",
				"[Meeting recording transcript]",
				"[Supporting documents",
			},
		},
		{
			name: "page count and instructions",
			in: OutlineInput{
				UserIdea:         "Product launch",
				PageCount:        8,
				PageInstructions: "Page 1 is a cover",
			},
			wantParts: []string{
				"Produce exactly 8 pages",
				"[Per-page instructions]\nPage 1 is a cover",
			},
		},
		{
			name: "transcript and support docs included",
			in: OutlineInput{
				UserIdea:        "Board review",
				AudioTranscript: "Speaker 1: revenue is up",
				SupportDocsText: "--- q3.pdf ---\nrevenue table",
			},
			wantParts: []string{
				"[Meeting recording transcript]\nSpeaker 1: revenue is up",
				"[Supporting documents",
				"--- q3.pdf ---",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildOutlinePrompt(tt.in)
			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("prompt missing %q", part)
				}
			}
			for _, part := range tt.absentParts {
				if strings.Contains(got, part) {
					t.Errorf("prompt unexpectedly contains %q", part)
				}
			}
		})
	}
}

func TestBuildStylePromptDefaults(t *testing.T) {
	outline := []store.OutlinePage{
		{Page: 1, Theme: "Cover", Title: "Launch", Content: "- brand"},
	}

	got := BuildStylePrompt(StyleInput{Outline: outline})

	for _, part := range []string{
		constant.DefaultColorPrimary,
		"[Design principles]",
		"[Deck outline]",
		"Page 1: Cover",
		"Show the page number centered at the bottom.",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("style prompt missing %q", part)
		}
	}
}

func TestBuildStylePromptCustomSchemes(t *testing.T) {
	in := StyleInput{
		Outline: []store.OutlinePage{{Page: 1, Theme: "Cover", Title: "T", Content: "c"}},
		ColorScheme: &store.ColorScheme{
			Name:      "ocean",
			Primary:   "#001122",
			Secondary: "#334455",
			Accent:    "#667788",
			Gray:      "#99aabb",
		},
		FontScheme: &store.FontScheme{
			Name:  "serif set",
			Title: "Songti",
			Sizes: store.FontSizes{MainTitle: 40},
		},
		ContentRichness:    "Keep each page dense",
		PageNumberPosition: constant.PageNumberNone,
	}

	got := BuildStylePrompt(in)

	for _, part := range []string{
		"ocean",
		"#001122",
		"serif set",
		"Songti",
		"main title 40pt",
		"[Content density requirement]\nKeep each page dense",
		"Pages must not show a page number.",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("style prompt missing %q", part)
		}
	}
	if strings.Contains(got, constant.DefaultColorPrimary) {
		t.Error("custom palette should replace the built-in colors")
	}
}

func TestBuildImagePrompt(t *testing.T) {
	base := "Render the cover page"

	tests := []struct {
		name        string
		opts        ImageOptions
		wantParts   []string
		absentParts []string
	}{
		{
			name:        "no options",
			opts:        ImageOptions{},
			wantParts:   []string{base},
			absentParts: []string{"logo", "reference image", "template"},
		},
		{
			name:      "logo",
			opts:      ImageOptions{LogoPresent: true},
			wantParts: []string{"company logo", "top-right corner"},
		},
		{
			name:      "loose reference",
			opts:      ImageOptions{ReferencePresent: true, ReferenceType: store.ReferenceTypeReference},
			wantParts: []string{"reference image uploaded by the user"},
		},
		{
			name:      "template without analysis",
			opts:      ImageOptions{ReferencePresent: true, ReferenceType: store.ReferenceTypeTemplate},
			wantParts: []string{"binding design template", "Study the template image carefully"},
		},
		{
			name: "template with analysis",
			opts: ImageOptions{
				ReferencePresent: true,
				ReferenceType:    store.ReferenceTypeTemplate,
				TemplateAnalysis: &store.TemplateAnalysis{
					Colors:       store.TemplateColors{Background: "#FFFFFF", Primary: "#112233"},
					StyleSummary: "flat corporate",
				},
			},
			wantParts:   []string{"#112233", "flat corporate"},
			absentParts: []string{"Study the template image carefully"},
		},
		{
			name:      "refine mode",
			opts:      ImageOptions{ReferencePresent: true, ReferenceType: store.ReferenceTypeRefine},
			wantParts: []string{"Refine mode", "only the requested adjustments"},
		},
		{
			name: "image material",
			opts: ImageOptions{
				Materials: []store.PageMaterial{
					{Filename: "chart.png", Path: "/data/materials/chart.png", Type: store.MaterialTypeImage, Description: "Q3 chart"},
				},
			},
			wantParts: []string{"user-supplied image(s)", "Q3 chart"},
		},
		{
			name: "table material",
			opts: ImageOptions{
				Materials: []store.PageMaterial{
					{Filename: "data.csv", Type: store.MaterialTypeTable, TableText: "a | b\n1 | 2"},
				},
			},
			wantParts: []string{"a | b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildImagePrompt(base, tt.opts)
			if !strings.HasPrefix(got, base) {
				t.Fatalf("prompt must start with the base prompt, got %q", got[:40])
			}
			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("prompt missing %q", part)
				}
			}
			for _, part := range tt.absentParts {
				if strings.Contains(got, part) {
					t.Errorf("prompt unexpectedly contains %q", part)
				}
			}
		})
	}
}

func TestRenderOutlineText(t *testing.T) {
	outline := []store.OutlinePage{
		{Page: 1, Theme: "Opening", Title: "Welcome", Content: "- greet"},
		{Page: 2, Title: "Agenda", Content: "- items"}, // no theme: falls back to title
	}

	got := RenderOutlineText(outline)

	if !strings.Contains(got, "Page 1: Opening") {
		t.Errorf("missing page 1 header in %q", got)
	}
	if !strings.Contains(got, "Page 2: Agenda") {
		t.Errorf("theme fallback to title failed in %q", got)
	}
	if !strings.Contains(got, "Core points:\n- greet") {
		t.Errorf("missing content in %q", got)
	}
}

func TestPageNumberInstruction(t *testing.T) {
	tests := []struct {
		position string
		want     string
	}{
		{constant.PageNumberNone, "must not show"},
		{constant.PageNumberBottomLeft, "bottom-left"},
		{constant.PageNumberBottomRight, "bottom-right"},
		{constant.PageNumberBottomCenter, "centered at the bottom"},
		{"", "centered at the bottom"},
		{"garbage", "centered at the bottom"},
	}

	for _, tt := range tests {
		got := PageNumberInstruction(tt.position)
		if !strings.Contains(got, tt.want) {
			t.Errorf("PageNumberInstruction(%q) = %q, want substring %q", tt.position, got, tt.want)
		}
	}
}
