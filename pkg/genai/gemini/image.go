package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"ai-deckgen-be/pkg/genai"
	"ai-deckgen-be/pkg/imgutil"
)

// GenerateImage renders one deck page. Attachments are sent in a fixed
// order (logo, reference, page materials) so the prompt's directives line up
// with the inline images. A response image that survives decoding is
// normalized to JPEG; when normalization fails the raw payload is still
// saved, which counts as success.
func (p *Provider) GenerateImage(ctx context.Context, req genai.ImageRequest) genai.ImageResult {
	parts := []geminiPart{{Text: req.Prompt}}
	parts = p.appendAttachment(parts, req.LogoPath, "logo")
	parts = p.appendAttachment(parts, req.ReferenceImagePath, "reference")
	for _, materialPath := range req.MaterialImagePaths {
		parts = p.appendAttachment(parts, materialPath, "material")
	}

	payload := geminiRequest{
		Model:    p.imageModel,
		Contents: []geminiContent{{Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
			ImageConfig: &geminiImageConfig{
				AspectRatio: "16:9",
				ImageSize:   "4K",
			},
		},
	}

	log.Printf("[image-gen] prompt length %d, attachments %d", len(req.Prompt), len(parts)-1)

	var lastError string

	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		log.Printf("[image-gen] attempt %d/%d", attempt, p.maxRetries)

		body, err := p.post(ctx, p.imageClient, p.imageModel, payload)
		if err != nil {
			lastError = classifyError(err)
			log.Printf("[image-gen] attempt %d failed: %s", attempt, lastError)
		} else {
			imageData, found := extractInlineImage(body)
			if !found {
				lastError = "response carried no image"
				log.Printf("[image-gen] %s", lastError)
			} else {
				savedPath, saveErr := p.saveImage(imageData, req.OutputPath)
				if saveErr != nil {
					lastError = saveErr.Error()
				} else {
					advisory := ""
					if attempt > 1 {
						advisory = fmt.Sprintf("Unstable endpoint: succeeded on attempt %d", attempt)
					}
					return genai.ImageResult{OK: true, SavedPath: savedPath, Advisory: advisory}
				}
			}
		}

		if attempt < p.maxRetries {
			log.Printf("[image-gen] waiting %s before retry", p.retryDelay)
			time.Sleep(p.retryDelay)
		}
	}

	return genai.ImageResult{
		Advisory: fmt.Sprintf("Image generation failed after %d attempts: %s", p.maxRetries, lastError),
	}
}

// saveImage normalizes to JPEG at the requested path; if the payload cannot
// be re-encoded it is written verbatim with a .png extension as a last
// resort.
func (p *Provider) saveImage(data []byte, outputPath string) (string, error) {
	if err := imgutil.SaveAsJPEG(data, outputPath); err == nil {
		return outputPath, nil
	} else {
		log.Printf("[image-gen] jpeg normalization failed, saving raw payload: %v", err)
	}

	rawPath := strings.TrimSuffix(outputPath, ".jpg") + ".png"
	if err := os.WriteFile(rawPath, data, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return rawPath, nil
}

func (p *Provider) appendAttachment(parts []geminiPart, path, kind string) []geminiPart {
	if path == "" {
		return parts
	}
	encoded, mime, err := encodeImageFile(path)
	if err != nil {
		log.Printf("[image-gen] skipping %s attachment %s: %v", kind, path, err)
		return parts
	}
	return append(parts, geminiPart{
		InlineData: &geminiInlineData{
			MimeType: mime,
			Data:     encoded,
		},
	})
}

func extractInlineImage(body []byte) ([]byte, bool) {
	var res geminiResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, false
	}
	for _, candidate := range res.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				decoded, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					continue
				}
				return decoded, true
			}
		}
	}
	return nil, false
}
