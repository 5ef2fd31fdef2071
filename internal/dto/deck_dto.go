package dto

import "ai-deckgen-be/pkg/store"

type SubmitIdeaRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Content   string `json:"content" validate:"required"`
}

type GenerateOutlineRequest struct {
	SessionID        string                 `json:"session_id" validate:"required"`
	Content          string                 `json:"content" validate:"required"`
	PageCount        int                    `json:"page_count,omitempty"`
	PageInstructions string                 `json:"page_instructions,omitempty"`
	DesignPrinciples string                 `json:"design_principles,omitempty"`
	TemplateSettings *store.TemplateSettings `json:"template_settings,omitempty"`
}

type RefineRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Feedback  string `json:"feedback" validate:"required"`
}

type SessionRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type OutlineUpdateRequest struct {
	SessionID string              `json:"session_id" validate:"required"`
	Outline   []store.OutlinePage `json:"outline" validate:"required,min=1"`
}

type PageImageRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	PageIndex int    `json:"page_index"`
}

type RefinePageRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	PageIndex int    `json:"page_index"`
	Feedback  string `json:"feedback" validate:"required"`
}

type ChatRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Content   string `json:"content" validate:"required"`
}

// StylePageView is the style entry exposed to clients. The underlying
// image prompt stays server side.
type StylePageView struct {
	Page          int    `json:"page"`
	Theme         string `json:"theme"`
	DesignConcept string `json:"design_concept"`
}

func NewStylePageViews(pages []store.StylePage) []StylePageView {
	views := make([]StylePageView, 0, len(pages))
	for _, p := range pages {
		views = append(views, StylePageView{Page: p.Page, Theme: p.Theme, DesignConcept: p.DesignConcept})
	}
	return views
}

type OutlineResponse struct {
	Success     bool                `json:"success"`
	OutlineText string              `json:"outline_text,omitempty"`
	Outline     []store.OutlinePage `json:"outline,omitempty"`
	Message     string              `json:"message,omitempty"`
	RetryInfo   string              `json:"retry_info,omitempty"`
	RawResponse string              `json:"raw_response,omitempty"`
}

type RefineOutlineResponse struct {
	Success     bool                `json:"success"`
	Confirmed   bool                `json:"confirmed"`
	OutlineText string              `json:"outline_text,omitempty"`
	Outline     []store.OutlinePage `json:"outline,omitempty"`
	Message     string              `json:"message,omitempty"`
	RetryInfo   string              `json:"retry_info,omitempty"`
}

type StyleResponse struct {
	Success     bool            `json:"success"`
	Style       []StylePageView `json:"style,omitempty"`
	Message     string          `json:"message,omitempty"`
	RetryInfo   string          `json:"retry_info,omitempty"`
	RawResponse string          `json:"raw_response,omitempty"`
}

type RefineStyleResponse struct {
	Success   bool            `json:"success"`
	Confirmed bool            `json:"confirmed"`
	Style     []StylePageView `json:"style,omitempty"`
	Message   string          `json:"message,omitempty"`
	RetryInfo string          `json:"retry_info,omitempty"`
}

type PageImageResponse struct {
	Success   bool   `json:"success"`
	PageIndex int    `json:"page_index"`
	Page      int    `json:"page,omitempty"`
	Theme     string `json:"theme,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
	Filename  string `json:"filename,omitempty"`
	Message   string `json:"message,omitempty"`
	RetryInfo string `json:"retry_info,omitempty"`
}

type BatchPageResult struct {
	Page      int    `json:"page"`
	Theme     string `json:"theme"`
	Success   bool   `json:"success"`
	ImagePath string `json:"image_path,omitempty"`
	Filename  string `json:"filename,omitempty"`
	Error     string `json:"error,omitempty"`
	RetryInfo string `json:"retry_info,omitempty"`
}

type GenerateAllResponse struct {
	Success   bool              `json:"success"`
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Results   []BatchPageResult `json:"results"`
	Message   string            `json:"message,omitempty"`
}

type RefinePageResponse struct {
	Success       bool           `json:"success"`
	PageIndex     int            `json:"page_index"`
	UpdatedStyle  *StylePageView `json:"updated_style,omitempty"`
	ImagePath     string         `json:"image_path,omitempty"`
	ImageFilename string         `json:"image_filename,omitempty"`
	Message       string         `json:"message,omitempty"`
	RetryInfo     string         `json:"retry_info,omitempty"`
}

type SessionInfoResponse struct {
	SessionID       string                 `json:"session_id"`
	Stage           string                 `json:"stage"`
	Outline         []store.OutlinePage    `json:"outline,omitempty"`
	OutlineText     string                 `json:"outline_text,omitempty"`
	Style           []StylePageView        `json:"style,omitempty"`
	Images          []*store.GeneratedImage `json:"images,omitempty"`
	Messages        []store.Message        `json:"messages,omitempty"`
	AudioTranscript string                 `json:"audio_transcript,omitempty"`
	HasReference    bool                   `json:"has_reference"`
	ReferenceType   string                 `json:"reference_type,omitempty"`
	HasLogo         bool                   `json:"has_logo"`
}

type AckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// EditPagePromptResponse asks the user to spell out the change after they
// named a page of the completed deck without any instruction.
type EditPagePromptResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	EditingPage int    `json:"editing_page"`
}
