package store

import "time"

// Stage values for the deck-building conversation. A session only ever moves
// forward through this order; the two refine stages may loop on themselves.
const (
	StageInput         = "input"
	StageOutline       = "outline"
	StageOutlineRefine = "outline_refine"
	StageStyle         = "style"
	StageStyleRefine   = "style_refine"
	StageGenerate      = "generate"
	StageComplete      = "complete"
)

// Reference image modes
const (
	ReferenceTypeReference = "reference" // loose stylistic inspiration
	ReferenceTypeTemplate  = "template"  // strict design spec to replicate
	ReferenceTypeRefine    = "refine"    // delta-edit against a prior output
)

// Material types attached to a single deck page
const (
	MaterialTypeImage     = "image"
	MaterialTypeTable     = "table"
	MaterialTypeTableText = "table_text"
)

// OutlinePage is one entry of the deck outline as parsed from the model's
// JSON block.
type OutlinePage struct {
	Page    int    `json:"page"`
	Theme   string `json:"theme"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// StylePage is the per-page design record, index-aligned with the outline.
// Prompt holds the raw image-generation instruction and is never sent back
// to clients.
type StylePage struct {
	Page          int    `json:"page"`
	Theme         string `json:"theme"`
	DesignConcept string `json:"design_concept"`
	Prompt        string `json:"prompt"`
}

// GeneratedImage records one successfully rendered page. Entries in
// Session.Images stay nil until the page's image exists.
type GeneratedImage struct {
	Page      int    `json:"page"`
	Theme     string `json:"theme"`
	ImagePath string `json:"image_path"`
	Filename  string `json:"filename"`
}

// PageMaterial is a user-supplied asset (image or tabular data) bound to a
// specific page and consumed directly by image generation.
type PageMaterial struct {
	Filename    string `json:"filename"`
	Path        string `json:"path,omitempty"` // empty for pasted table text
	Type        string `json:"type"`
	Description string `json:"description"`
	TableText   string `json:"table_text,omitempty"`
}

// SupportDocFile is metadata for an uploaded support document whose extracted
// text was folded into Session.SupportDocsText.
type SupportDocFile struct {
	Filename   string `json:"filename"`
	Path       string `json:"path"`
	TextLength int    `json:"text_length"`
}

// Message is one entry of the append-only conversation log. The log is a
// derived view for chat replay, never a control-flow input.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// TemplateAnalysis is the structured design spec derived from an uploaded
// template image by the single-shot analysis call.
type TemplateAnalysis struct {
	Colors       TemplateColors     `json:"colors"`
	Fonts        TemplateFonts      `json:"fonts"`
	Layout       TemplateLayout     `json:"layout"`
	Background   TemplateBackground `json:"background"`
	StyleSummary string             `json:"style_summary"`
}

type TemplateColors struct {
	Background    string `json:"background"`
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Accent        string `json:"accent"`
	TextPrimary   string `json:"text_primary"`
	TextSecondary string `json:"text_secondary"`
}

type TemplateFonts struct {
	TitleStyle string `json:"title_style"`
	TitleSize  string `json:"title_size"`
	BodyStyle  string `json:"body_style"`
	BodySize   string `json:"body_size"`
}

type TemplateLayout struct {
	TitlePosition string `json:"title_position"`
	ContentArea   string `json:"content_area"`
	HasHeader     bool   `json:"has_header"`
	HasFooter     bool   `json:"has_footer"`
	HasSidebar    bool   `json:"has_sidebar"`
}

type TemplateBackground struct {
	Type                  string `json:"type"`
	Description           string `json:"description"`
	HasDecorations        bool   `json:"has_decorations"`
	DecorationDescription string `json:"decoration_description"`
}

// ColorScheme / FontScheme are user overrides for the built-in palette.
type ColorScheme struct {
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	Gray      string `json:"gray"`
}

type FontScheme struct {
	Name  string    `json:"name"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
	Eng   string    `json:"eng"`
	Sizes FontSizes `json:"sizes"`
}

type FontSizes struct {
	MainTitle int `json:"mainTitle"`
	PageTitle int `json:"pageTitle"`
	Body      int `json:"body"`
}

// ContentRichness carries an optional content-density directive.
type ContentRichness struct {
	Level  string `json:"level"`
	Prompt string `json:"prompt"`
}

// TemplateSettings groups the user-controlled generation settings.
type TemplateSettings struct {
	ColorScheme        *ColorScheme     `json:"color_scheme,omitempty"`
	FontScheme         *FontScheme      `json:"font_scheme,omitempty"`
	ContentRichness    *ContentRichness `json:"content_richness,omitempty"`
	PageNumberPosition string           `json:"page_number_position,omitempty"`
}

// Session is the full in-memory state of one deck-building conversation.
// The identifier is supplied by the client; first use creates the record.
type Session struct {
	ID    string `json:"id"`
	Stage string `json:"stage"`

	UserInput   string            `json:"user_input"`
	Outline     []OutlinePage     `json:"outline"`
	OutlineText string            `json:"outline_text"`
	Style       []StylePage       `json:"style"`
	StyleText   string            `json:"style_text"`
	Images      []*GeneratedImage `json:"generated_images"`

	// Side-inputs accumulated independently of stage
	AudioTranscript  string                    `json:"audio_transcript"`
	SupportDocsText  string                    `json:"support_docs_text"`
	SupportDocsFiles []SupportDocFile          `json:"support_docs_files"`
	PageMaterials    map[string][]PageMaterial `json:"page_materials"`

	// Template / reference state
	ReferenceImagePath string            `json:"reference_image_path,omitempty"`
	ReferenceType      string            `json:"reference_type,omitempty"`
	TemplateAnalysis   *TemplateAnalysis `json:"template_analysis,omitempty"`
	CustomLogoPath     string            `json:"custom_logo_path,omitempty"`

	// Generation settings
	PageCount        int               `json:"page_count,omitempty"`
	PageInstructions string            `json:"page_instructions,omitempty"`
	DesignPrinciples string            `json:"design_principles"`
	TemplateSettings *TemplateSettings `json:"template_settings,omitempty"`

	Messages []Message `json:"messages"`
}

// EnsureImageSlot grows the image list so index i is addressable.
func (s *Session) EnsureImageSlot(i int) {
	for len(s.Images) <= i {
		s.Images = append(s.Images, nil)
	}
}
