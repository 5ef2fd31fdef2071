package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"ai-deckgen-be/pkg/genai"
)

const (
	defaultTextModel  = "gemini-3-pro-preview"
	defaultImageModel = "gemini-3-pro-image-preview"
)

// Provider talks to the Gemini generateContent REST API for both text and
// image generation, applying a bounded fixed-delay retry to every logical
// request.
type Provider struct {
	apiBase    string
	apiKey     string
	textModel  string
	imageModel string

	maxRetries int
	retryDelay time.Duration

	textClient  *http.Client
	imageClient *http.Client
}

// Ensure Provider satisfies all three generation contracts
var (
	_ genai.TextGenerator    = &Provider{}
	_ genai.ImageGenerator   = &Provider{}
	_ genai.TemplateAnalyzer = &Provider{}
)

func NewProvider(apiBase, apiKey string, maxRetries int, retryDelay, textTimeout, imageTimeout time.Duration) *Provider {
	return &Provider{
		apiBase:    apiBase,
		apiKey:     apiKey,
		textModel:  defaultTextModel,
		imageModel: defaultImageModel,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		textClient: &http.Client{
			Timeout: textTimeout,
		},
		imageClient: &http.Client{
			Timeout: imageTimeout,
		},
	}
}

// --- Request/Response structs (Gemini wire format, internal to this package) ---

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiThinkingConfig struct {
	ThinkingLevel string `json:"thinkingLevel,omitempty"`
}

type geminiImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

type geminiGenerationConfig struct {
	ThinkingConfig     *geminiThinkingConfig `json:"thinkingConfig,omitempty"`
	ResponseModalities []string              `json:"responseModalities,omitempty"`
	ImageConfig        *geminiImageConfig    `json:"imageConfig,omitempty"`
	ResponseMimeType   string                `json:"response_mime_type,omitempty"`
}

type geminiRequest struct {
	Model            string                  `json:"model"`
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponsePart struct {
	Text       string `json:"text"`
	InlineData *struct {
		MimeType string `json:"mimeType"`
		Data     string `json:"data"`
	} `json:"inlineData"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiResponsePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// --- Text generation ---

// GenerateText performs one logical text generation with bounded retries.
// Only a 200 response whose envelope contains a text part counts as success;
// every other outcome (timeout, connection failure, non-200, unexpected
// shape) records the last error and retries after the fixed delay.
func (p *Provider) GenerateText(ctx context.Context, prompt string) genai.TextResult {
	payload := geminiRequest{
		Model: p.textModel,
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			ThinkingConfig: &geminiThinkingConfig{ThinkingLevel: "high"},
		},
	}

	var lastError string

	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		log.Printf("[text-gen] attempt %d/%d", attempt, p.maxRetries)

		body, err := p.post(ctx, p.textClient, p.textModel, payload)
		if err != nil {
			lastError = classifyError(err)
			log.Printf("[text-gen] attempt %d failed: %s", attempt, lastError)
		} else {
			var res geminiResponse
			if jsonErr := json.Unmarshal(body, &res); jsonErr != nil {
				lastError = "unexpected response shape"
			} else if text := firstText(&res); text != "" {
				advisory := ""
				if attempt > 1 {
					advisory = fmt.Sprintf("Unstable endpoint: succeeded on attempt %d", attempt)
				}
				return genai.TextResult{Text: text, Advisory: advisory}
			} else {
				lastError = "unexpected response shape"
				log.Printf("[text-gen] response carried no text part")
			}
		}

		if attempt < p.maxRetries {
			log.Printf("[text-gen] waiting %s before retry", p.retryDelay)
			time.Sleep(p.retryDelay)
		}
	}

	return genai.TextResult{
		Advisory: fmt.Sprintf("Generation failed after %d attempts: %s", p.maxRetries, lastError),
	}
}

// post issues one generateContent call and returns the raw body on HTTP 200.
func (p *Provider) post(ctx context.Context, client *http.Client, model string, payload geminiRequest) ([]byte, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s:generateContent", p.apiBase, model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJSON))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, &statusError{code: res.StatusCode}
	}
	return body, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("api returned status %d", e.code)
}

// classifyError folds transport failures into the advisory vocabulary.
func classifyError(err error) string {
	var se *statusError
	if errors.As(err, &se) {
		return se.Error()
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "request timed out"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "connection failed"
	}
	return err.Error()
}

func firstText(res *geminiResponse) string {
	for _, candidate := range res.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return part.Text
			}
		}
	}
	return ""
}
