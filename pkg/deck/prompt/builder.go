package prompt

import (
	"fmt"
	"strings"

	"ai-deckgen-be/internal/constant"
	"ai-deckgen-be/pkg/store"
)

// OutlineInput carries everything the outline prompt may reference. Empty
// optional fields produce no section at all.
type OutlineInput struct {
	UserIdea         string
	PageCount        int
	PageInstructions string
	AudioTranscript  string
	SupportDocsText  string
}

// BuildOutlinePrompt renders the outline-generation instruction. The idea,
// transcript and document extracts are combined as clearly delimited
// sections, and the model is told to emit both a readable outline and the
// pages JSON block.
func BuildOutlinePrompt(in OutlineInput) string {
	var b strings.Builder

	b.WriteString("Given the user's overall idea for a slide deck, work out the core points of every page. These points will drive the deck production downstream.\n\n")

	if in.PageCount > 0 {
		fmt.Fprintf(&b, "[Page count requirement] Produce exactly %d pages.\n\n", in.PageCount)
	}
	if in.PageInstructions != "" {
		fmt.Fprintf(&b, "[Per-page instructions]\n%s\n\n", in.PageInstructions)
	}

	fmt.Fprintf(&b, "[The user's idea]\n%s\n", in.UserIdea)
	if in.AudioTranscript != "" {
		fmt.Fprintf(&b, "\n[Meeting recording transcript]\n%s\n", in.AudioTranscript)
	}
	if in.SupportDocsText != "" {
		fmt.Fprintf(&b, "\n[Supporting documents (use these as source material for the outline)]\n%s\n", in.SupportDocsText)
	}

	b.WriteString("\n[Example result format]\n\n")
	b.WriteString(outlineExample)
	b.WriteString("\n\nWrite the outline for every page in the format above. Also output JSON so the result can be parsed programmatically:\n\n")
	b.WriteString(outlineJSONShape)
	b.WriteString("\n")

	return b.String()
}

// BuildOutlineRefinePrompt asks the model to rework the current outline
// according to user feedback, keeping the same output contract.
func BuildOutlineRefinePrompt(currentOutline, feedback string) string {
	var b strings.Builder
	b.WriteString("The user wants changes to the current deck outline. Apply their feedback.\n\n")
	fmt.Fprintf(&b, "[Current outline]\n%s\n\n", currentOutline)
	fmt.Fprintf(&b, "[User feedback]\n%s\n\n", feedback)
	b.WriteString("Output the full revised outline in the same format as before, followed by the JSON block:\n\n")
	b.WriteString(outlineJSONShape)
	b.WriteString("\n")
	return b.String()
}

// StyleInput carries the confirmed outline plus the resolved design settings.
type StyleInput struct {
	Outline            []store.OutlinePage
	DesignPrinciples   string
	ColorScheme        *store.ColorScheme
	FontScheme         *store.FontScheme
	ContentRichness    string
	PageNumberPosition string
}

// BuildStylePrompt renders the per-page design instruction: a design
// rationale plus an image-generation prompt per outline page.
func BuildStylePrompt(in StyleInput) string {
	principles := in.DesignPrinciples
	if principles == "" {
		principles = constant.DefaultDesignPrinciples
	}
	if in.ContentRichness != "" {
		principles = fmt.Sprintf("%s\n\n[Content density requirement]\n%s", principles, in.ContentRichness)
	}

	var b strings.Builder
	b.WriteString("Based on the deck outline below, produce a detailed design plan and an image-generation prompt for every page.\n\n")
	fmt.Fprintf(&b, "[Color scheme]\n%s\n\n", ColorSchemeSpec(in.ColorScheme))
	fmt.Fprintf(&b, "[Typography]\n%s\n\n", FontSchemeSpec(in.FontScheme))
	fmt.Fprintf(&b, "[Design principles]\n%s\n\n", principles)
	fmt.Fprintf(&b, "[Deck outline]\n%s\n\n", RenderOutlineText(in.Outline))
	b.WriteString("For every page produce:\n1. A design rationale\n2. A detailed image-generation prompt for the image model\n\n")
	fmt.Fprintf(&b, "[Note] The page title goes in the top-left corner of every page. %s\n\n", PageNumberInstruction(in.PageNumberPosition))
	b.WriteString("Output JSON:\n")
	b.WriteString(styleJSONShape)
	b.WriteString("\n\n[Example prompts for reference]\n\n")

	primary, secondary, accent, gray := resolveExampleColors(in.ColorScheme)
	fmt.Fprintf(&b, stylePromptExamples, primary, secondary, accent, gray)
	b.WriteString("\n")

	return b.String()
}

// BuildStyleRefinePrompt is the style analogue of the outline refinement.
func BuildStyleRefinePrompt(currentStyle, feedback string) string {
	var b strings.Builder
	b.WriteString("The user wants changes to the current design plan. Apply their feedback.\n\n")
	fmt.Fprintf(&b, "[Current design plan]\n%s\n\n", currentStyle)
	fmt.Fprintf(&b, "[User feedback]\n%s\n\n", feedback)
	b.WriteString("Output the full revised design plan, keeping the JSON format:\n")
	b.WriteString(styleJSONShape)
	b.WriteString("\n")
	return b.String()
}

// BuildPageRefinePrompt constrains the model to a delta edit of a single
// page: only what the feedback names may change, and the response is one
// JSON object rather than an array.
func BuildPageRefinePrompt(pageNum int, theme, designConcept, currentPrompt, feedback string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The user wants a small adjustment to page %d of the deck. Apply their feedback as a minimal edit.\n\n", pageNum)
	b.WriteString("[Ground rules]\nThis is a touch-up, not a redesign. You must:\n")
	b.WriteString("1. Keep the page's overall layout, colors and typography unchanged\n")
	b.WriteString("2. Modify only what the user's feedback explicitly mentions\n")
	b.WriteString("3. Leave everything the user did not mention exactly as it is\n")
	b.WriteString("4. Preserve visual consistency with the original design\n\n")
	fmt.Fprintf(&b, "[Current page]\nPage: %d\nTheme: %s\nCurrent design rationale: %s\nCurrent image prompt: %s\n\n", pageNum, theme, designConcept, currentPrompt)
	fmt.Fprintf(&b, "[User feedback]\n%s\n\n", feedback)
	b.WriteString("Output the adjusted design for this page only, changing nothing the user did not ask for. Format:\n\n")
	b.WriteString("```json\n")
	fmt.Fprintf(&b, `{
    "page": %d,
    "theme": "page theme (unchanged unless the user asked)",
    "design_concept": "adjusted rationale, noting what changed",
    "prompt": "adjusted image-generation prompt, original style preserved"
}`, pageNum)
	b.WriteString("\n```\n")
	return b.String()
}

// ImageOptions selects the conditional instruction blocks appended to a
// page's base image prompt. The three reference modes are mutually
// exclusive; Materials adds embed-verbatim and render-table directives.
type ImageOptions struct {
	LogoPresent      bool
	ReferencePresent bool
	ReferenceType    string
	TemplateAnalysis *store.TemplateAnalysis
	Materials        []store.PageMaterial
}

// BuildImagePrompt augments a page's style prompt with logo, reference and
// material directives. Attachment ordering (logo, reference, material
// images) is the provider's concern; this only produces text.
func BuildImagePrompt(basePrompt string, opts ImageOptions) string {
	var b strings.Builder
	b.WriteString(basePrompt)

	if opts.LogoPresent {
		b.WriteString("\n\n[Note] The attachments include the user's company logo. Place it in the top-right corner of the generated image, keeping it crisp and intact.")
	}

	if opts.ReferencePresent {
		switch opts.ReferenceType {
		case store.ReferenceTypeTemplate:
			writeTemplateDirective(&b, opts.TemplateAnalysis)
		case store.ReferenceTypeRefine:
			b.WriteString(`

[Refine mode - highest priority]
The attachments include the currently generated version of this page. It is the baseline for a touch-up.
You must:
1. Keep the current layout structure unchanged
2. Keep the current color scheme unchanged
3. Keep the current typography unchanged
4. Apply only the user's specific requested changes
5. Leave everything the user did not explicitly ask to change exactly as it is

Work from the reference image and make only the requested adjustments, so the result stays visually consistent with the original.`)
		default:
			b.WriteString("\n\n[Also] The attachments include a reference image uploaded by the user. When generating the result, follow its palette, typography and general style as closely as reasonable.")
		}
	}

	writeMaterialDirectives(&b, opts.Materials)

	return b.String()
}

func writeTemplateDirective(b *strings.Builder, analysis *store.TemplateAnalysis) {
	b.WriteString(`

[Highest priority - deck template spec]
The attachments include the user's deck template image. It is the binding design template.
The generated page must follow the template's visual style exactly, overriding any other color or font settings.`)

	if analysis == nil {
		b.WriteString(`

Study the template image carefully for:
1. The exact palette (specific values for background, title, body and accent colors)
2. Font style and size proportions
3. Title and content placement
4. Background design (solid / gradient / image / decorative elements)
5. Overall visual style and polish

The generated image must look like another page of the same template.

[Emphasis] If the template contains a background image, pattern or decorative elements, reproduce that background on every generated page.`)
		return
	}

	orTemplate := func(v string) string {
		if v == "" {
			return "per template"
		}
		return v
	}
	yesNo := func(v bool) string {
		if v {
			return "yes"
		}
		return "no"
	}
	decoration := "none"
	if analysis.Background.HasDecorations {
		decoration = orTemplate(analysis.Background.DecorationDescription)
	}

	fmt.Fprintf(b, `

[Template analysis - follow exactly]

Palette (use these exact values):
  - Background: %s
  - Primary (headlines): %s
  - Secondary (sub-headings): %s
  - Accent (highlights): %s
  - Primary text: %s
  - Secondary text: %s

Typography:
  - Titles: %s, about %s
  - Body: %s, about %s

Layout:
  - Title position: %s
  - Content area: %s
  - Header bar: %s
  - Footer bar: %s

Background:
  - Type: %s
  - Description: %s
  - Decorations: %s

Overall style: %s

Follow this spec exactly so the generated image looks like another page of the same template.

[Emphasis] If the template contains a background image, pattern or decorative elements, reproduce that background on every generated page.`,
		orTemplate(analysis.Colors.Background),
		orTemplate(analysis.Colors.Primary),
		orTemplate(analysis.Colors.Secondary),
		orTemplate(analysis.Colors.Accent),
		orTemplate(analysis.Colors.TextPrimary),
		orTemplate(analysis.Colors.TextSecondary),
		orTemplate(analysis.Fonts.TitleStyle), orTemplate(analysis.Fonts.TitleSize),
		orTemplate(analysis.Fonts.BodyStyle), orTemplate(analysis.Fonts.BodySize),
		orTemplate(analysis.Layout.TitlePosition),
		orTemplate(analysis.Layout.ContentArea),
		yesNo(analysis.Layout.HasHeader),
		yesNo(analysis.Layout.HasFooter),
		orTemplate(analysis.Background.Type),
		orTemplate(analysis.Background.Description),
		decoration,
		orTemplate(analysis.StyleSummary),
	)
}

func writeMaterialDirectives(b *strings.Builder, materials []store.PageMaterial) {
	imageCount := 0
	var imageDescriptions []string
	var tableTexts []string

	for _, m := range materials {
		switch m.Type {
		case store.MaterialTypeImage:
			if m.Path == "" {
				continue
			}
			imageCount++
			if m.Description != "" {
				imageDescriptions = append(imageDescriptions, fmt.Sprintf("Image %d: %s", imageCount, m.Description))
			}
		case store.MaterialTypeTable, store.MaterialTypeTableText:
			if m.TableText == "" {
				continue
			}
			header := fmt.Sprintf("[Table: %s]", m.Filename)
			if m.Description != "" {
				header += "\nNote: " + m.Description
			}
			tableTexts = append(tableTexts, header+"\n"+m.TableText)
		}
	}

	if imageCount > 0 {
		descText := ""
		if len(imageDescriptions) > 0 {
			descText = "\nThe user's notes on the images:\n" + strings.Join(imageDescriptions, "\n")
		}
		fmt.Fprintf(b, `

[User-supplied image materials - highest priority]
The attachments include %d user-supplied image(s) (charts, screenshots, etc).%s
You must:
1. Embed these images directly into the generated page
2. Preserve their original content, aspect ratio and clarity
3. Never summarize, redraw or simplify them
4. Treat them as core content of this page and lay them out accordingly
5. Use the user's notes to understand what each image means`, imageCount, descText)
	}

	if len(tableTexts) > 0 {
		combined := strings.Join(tableTexts, "\n")
		if len(combined) > constant.TableTextLimit {
			combined = combined[:constant.TableTextLimit] + "\n...(table data truncated)"
		}
		fmt.Fprintf(b, `

[User-supplied table data - highest priority]
The table data below must appear on this page. You must:
1. Render the data completely and accurately
2. You may present it as a polished table, chart or other visualization
3. Never alter or omit values
4. Pick a visualization (table, bar, pie, line) that suits the data and the user's notes

%s`, combined)
	}
}

// RenderOutlineText produces the human-readable outline used as refinement
// context and inside the style prompt.
func RenderOutlineText(outline []store.OutlinePage) string {
	parts := make([]string, 0, len(outline))
	for _, p := range outline {
		theme := p.Theme
		if theme == "" {
			theme = p.Title
		}
		parts = append(parts, fmt.Sprintf("Page %d: %s\nPage title: %s\nCore points:\n%s", p.Page, theme, p.Title, p.Content))
	}
	return strings.Join(parts, "\n\n")
}

// RenderOutlineTextFromEdit rebuilds outline text after a direct client-side
// edit, deterministically from the structured form.
func RenderOutlineTextFromEdit(outline []store.OutlinePage) string {
	parts := make([]string, 0, len(outline))
	for i, p := range outline {
		title := p.Title
		if title == "" {
			title = p.Theme
		}
		parts = append(parts, fmt.Sprintf("[Page %d] %s\n%s", i+1, title, p.Content))
	}
	return strings.Join(parts, "\n\n")
}

// ColorSchemeSpec renders the palette section, falling back to the built-in
// palette when the user customized nothing.
func ColorSchemeSpec(scheme *store.ColorScheme) string {
	if scheme == nil {
		return constant.DefaultColorSchemeSpec
	}

	name := scheme.Name
	if name == "" {
		name = "custom palette"
	}
	primary, secondary, accent, gray := resolveExampleColors(scheme)

	return fmt.Sprintf(`- Palette name: %s
- Primary: %s - headlines, background blocks, emphasis borders
- Secondary: %s - key figures, secondary headings, chart highlights
- Accent: %s - warnings, special emphasis
- Text gray: %s - body text, chart axes

[Important] Use this palette strictly; no other colors.`, name, primary, secondary, accent, gray)
}

// FontSchemeSpec renders the typography section with built-in fallback.
func FontSchemeSpec(scheme *store.FontScheme) string {
	if scheme == nil {
		return constant.DefaultFontSchemeSpec
	}

	name := scheme.Name
	if name == "" {
		name = "custom fonts"
	}
	title := valueOr(scheme.Title, "Microsoft YaHei")
	body := valueOr(scheme.Body, "Microsoft YaHei")
	eng := valueOr(scheme.Eng, "Arial")
	mainTitle := sizeOr(scheme.Sizes.MainTitle, 48)
	pageTitle := sizeOr(scheme.Sizes.PageTitle, 18)
	bodySize := sizeOr(scheme.Sizes.Body, 14)

	return fmt.Sprintf(`- Font scheme name: %s
- CJK title font: %s
- CJK body font: %s
- Latin/digit font: %s
- Sizes: main title %dpt, page title %dpt, body %dpt

[Important] Use these font settings strictly.`, name, title, body, eng, mainTitle, pageTitle, bodySize)
}

// PageNumberInstruction resolves the placement enum into prompt wording;
// unknown values fall back to the bottom-center default.
func PageNumberInstruction(position string) string {
	switch position {
	case constant.PageNumberNone:
		return "Pages must not show a page number."
	case constant.PageNumberBottomLeft:
		return "Show the page number in the bottom-left corner."
	case constant.PageNumberBottomRight:
		return "Show the page number in the bottom-right corner."
	default:
		return "Show the page number centered at the bottom."
	}
}

func resolveExampleColors(scheme *store.ColorScheme) (primary, secondary, accent, gray string) {
	primary = constant.DefaultColorPrimary
	secondary = constant.DefaultColorSecondary
	accent = constant.DefaultColorAccent
	gray = constant.DefaultColorGray
	if scheme == nil {
		return
	}
	if scheme.Primary != "" {
		primary = scheme.Primary
	}
	if scheme.Secondary != "" {
		secondary = scheme.Secondary
	}
	if scheme.Accent != "" {
		accent = scheme.Accent
	}
	if scheme.Gray != "" {
		gray = scheme.Gray
	}
	return
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func sizeOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
