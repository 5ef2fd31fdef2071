package genai

import (
	"context"

	"ai-deckgen-be/pkg/store"
)

// TextResult is the normalized outcome of one logical text generation.
// Text is empty when every attempt failed. Advisory is empty on first-try
// success, a retry notice on delayed success, and a terminal notice carrying
// the last error when all attempts were exhausted. Provider failures are
// data, never Go errors, so the state machine can treat them uniformly.
type TextResult struct {
	Text     string
	Advisory string
}

// OK reports whether the call produced any text.
func (r TextResult) OK() bool {
	return r.Text != ""
}

// ImageRequest is one logical page-image generation. Prompt must already
// carry every conditional directive (logo, reference, materials); the
// provider only attaches the referenced files alongside it.
type ImageRequest struct {
	Prompt             string
	OutputPath         string
	ReferenceImagePath string
	LogoPath           string
	MaterialImagePaths []string
}

// ImageResult mirrors TextResult for image generation. SavedPath is the
// file actually written, which may differ from the requested path when the
// raw-save fallback kicked in.
type ImageResult struct {
	OK        bool
	SavedPath string
	Advisory  string
}

// TextGenerator produces free text (with an embedded JSON block) for the
// outline and style stages.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) TextResult
}

// ImageGenerator renders one deck page to an image file.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) ImageResult
}

// TemplateAnalyzer derives a structured design spec from a reference image.
// Single shot, no retry; absence of a usable spec is an error.
type TemplateAnalyzer interface {
	AnalyzeTemplate(ctx context.Context, imagePath string) (*store.TemplateAnalysis, error)
}
