package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ai-deckgen-be/internal/constant"
	"ai-deckgen-be/internal/dto"
	"ai-deckgen-be/internal/entity"
	"ai-deckgen-be/internal/pkg/logger"
	"ai-deckgen-be/internal/repository/contract"
	"ai-deckgen-be/pkg/deck/prompt"
	"ai-deckgen-be/pkg/deck/stage"
	"ai-deckgen-be/pkg/events"
	"ai-deckgen-be/pkg/genai"
	"ai-deckgen-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IDeckService interface {
	SubmitIdea(ctx context.Context, req *dto.SubmitIdeaRequest) (*dto.AckResponse, error)
	GenerateOutline(ctx context.Context, req *dto.GenerateOutlineRequest) (*dto.OutlineResponse, error)
	RefineOutline(ctx context.Context, req *dto.RefineRequest) (*dto.RefineOutlineResponse, error)
	ConfirmOutline(ctx context.Context, sessionID string) (*dto.AckResponse, error)
	UpdateOutline(ctx context.Context, req *dto.OutlineUpdateRequest) (*dto.OutlineResponse, error)
	GenerateStyle(ctx context.Context, sessionID string) (*dto.StyleResponse, error)
	RefineStyle(ctx context.Context, req *dto.RefineRequest) (*dto.RefineStyleResponse, error)
	ConfirmStyle(ctx context.Context, sessionID string) (*dto.AckResponse, error)
	RefinePage(ctx context.Context, req *dto.RefinePageRequest) (*dto.RefinePageResponse, error)
	GenerateImage(ctx context.Context, req *dto.PageImageRequest) (*dto.PageImageResponse, error)
	GenerateAllImages(ctx context.Context, sessionID string) (*dto.GenerateAllResponse, error)
	Chat(ctx context.Context, req *dto.ChatRequest) (interface{}, error)
	GetSession(ctx context.Context, sessionID string) (*dto.SessionInfoResponse, error)
	ResetSession(ctx context.Context, sessionID string) (*dto.AckResponse, error)
}

// modifyPageRe matches "modify page 3", "change page 12", "fix page 2" style
// requests arriving after the deck is complete.
var modifyPageRe = regexp.MustCompile(`(?i)(?:modify|change|adjust|fix|update)\s+page\s+(\d+)`)

type deckService struct {
	sessions   contract.SessionRepository
	textGen    genai.TextGenerator
	imageGen   genai.ImageGenerator
	classifier stage.ConfirmClassifier
	progress   IProgressPublisher
	genRecords contract.GenerationRecordRepository
	logger     logger.ILogger
	outputDir  string
}

func NewDeckService(
	sessions contract.SessionRepository,
	textGen genai.TextGenerator,
	imageGen genai.ImageGenerator,
	classifier stage.ConfirmClassifier,
	progress IProgressPublisher,
	genRecords contract.GenerationRecordRepository,
	log logger.ILogger,
	outputDir string,
) IDeckService {
	return &deckService{
		sessions:   sessions,
		textGen:    textGen,
		imageGen:   imageGen,
		classifier: classifier,
		progress:   progress,
		genRecords: genRecords,
		logger:     log,
		outputDir:  outputDir,
	}
}

// outlinePayload / stylePayload mirror the JSON blocks the prompts demand.
type outlinePayload struct {
	Pages []store.OutlinePage `json:"pages"`
}

type stylePayload struct {
	Pages []store.StylePage `json:"pages"`
}

// SubmitIdea stores the pitch and opens the outline step. Generation itself
// happens on the follow-up outline call.
func (s *deckService) SubmitIdea(ctx context.Context, req *dto.SubmitIdeaRequest) (*dto.AckResponse, error) {
	session := s.sessions.GetOrCreate(req.SessionID)

	session.UserInput = req.Content
	session.Stage = store.StageOutline
	s.sessions.Save(session)
	s.sessions.AppendMessage(session.ID, constant.ChatMessageRoleUser, req.Content)

	return &dto.AckResponse{Success: true, Message: "Idea received. Outline generation can begin."}, nil
}

func (s *deckService) GenerateOutline(ctx context.Context, req *dto.GenerateOutlineRequest) (*dto.OutlineResponse, error) {
	session := s.sessions.GetOrCreate(req.SessionID)

	session.UserInput = req.Content
	session.PageCount = req.PageCount
	session.PageInstructions = req.PageInstructions
	if req.DesignPrinciples != "" {
		session.DesignPrinciples = req.DesignPrinciples
	}
	if req.TemplateSettings != nil {
		session.TemplateSettings = req.TemplateSettings
	}
	session.Stage = store.StageOutline
	s.sessions.Save(session)
	s.sessions.AppendMessage(session.ID, constant.ChatMessageRoleUser, req.Content)

	outlinePrompt := prompt.BuildOutlinePrompt(prompt.OutlineInput{
		UserIdea:         req.Content,
		PageCount:        req.PageCount,
		PageInstructions: req.PageInstructions,
		AudioTranscript:  session.AudioTranscript,
		SupportDocsText:  session.SupportDocsText,
	})

	res := s.textGen.GenerateText(ctx, outlinePrompt)
	if !res.OK() {
		s.logger.Error("DeckService", "Outline generation failed", map[string]interface{}{
			"session_id": session.ID,
			"reason":     res.Advisory,
		})
		return &dto.OutlineResponse{Success: false, Message: res.Advisory}, nil
	}

	var payload outlinePayload
	if !genai.ExtractJSON(res.Text, &payload) || len(payload.Pages) == 0 {
		s.logger.Warn("DeckService", "Outline response not parseable", map[string]interface{}{"session_id": session.ID})
		return &dto.OutlineResponse{
			Success:     false,
			Message:     "The model response contained no usable outline. Please try again.",
			RawResponse: res.Text,
			RetryInfo:   res.Advisory,
		}, nil
	}

	session.Outline = payload.Pages
	session.OutlineText = prompt.RenderOutlineText(payload.Pages)
	session.Stage = store.StageOutlineRefine
	s.sessions.Save(session)
	s.sessions.AppendMessage(session.ID, constant.ChatMessageRoleAssistant, session.OutlineText)

	s.logger.Info("DeckService", "Outline generated", map[string]interface{}{
		"session_id": session.ID,
		"pages":      len(payload.Pages),
	})

	return &dto.OutlineResponse{
		Success:     true,
		Outline:     session.Outline,
		OutlineText: session.OutlineText,
		RetryInfo:   res.Advisory,
	}, nil
}

func (s *deckService) refineOutline(ctx context.Context, session *store.Session, feedback string) (*dto.RefineOutlineResponse, error) {
	refinePrompt := prompt.BuildOutlineRefinePrompt(session.OutlineText, feedback)

	res := s.textGen.GenerateText(ctx, refinePrompt)
	if !res.OK() {
		return &dto.RefineOutlineResponse{Success: false, Message: res.Advisory}, nil
	}

	var payload outlinePayload
	if !genai.ExtractJSON(res.Text, &payload) || len(payload.Pages) == 0 {
		return &dto.RefineOutlineResponse{
			Success:   false,
			Message:   "The model response contained no usable outline. Please rephrase your feedback.",
			RetryInfo: res.Advisory,
		}, nil
	}

	session.Outline = payload.Pages
	session.OutlineText = prompt.RenderOutlineText(payload.Pages)
	s.sessions.Save(session)
	s.sessions.AppendMessage(session.ID, constant.ChatMessageRoleAssistant, session.OutlineText)

	return &dto.RefineOutlineResponse{
		Success:     true,
		Outline:     session.Outline,
		OutlineText: session.OutlineText,
		RetryInfo:   res.Advisory,
	}, nil
}

// RefineOutline applies feedback to the outline under review. Confirmation
// keywords short-circuit: the outline is accepted unchanged and the caller
// is told to move on to design.
func (s *deckService) RefineOutline(ctx context.Context, req *dto.RefineRequest) (*dto.RefineOutlineResponse, error) {
	session, ok := s.sessions.Get(req.SessionID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	if session.Stage != store.StageOutlineRefine {
		return nil, fiber.NewError(fiber.StatusConflict, "No outline is under review")
	}

	s.sessions.AppendMessage(session.ID, constant.ChatMessageRoleUser, req.Feedback)

	if s.classifier.IsOutlineConfirm(req.Feedback) {
		session.Stage = store.StageStyle
		s.sessions.Save(session)
		s.sessions.AppendMessage(session.ID, constant.ChatMessageRoleAssistant, "Outline confirmed. Generating the design plan next.")
		return &dto.RefineOutlineResponse{
			Success:     true,
			Confirmed:   true,
			Outline:     session.Outline,
			OutlineText: session.OutlineText,
		}, nil
	}
	return s.refineOutline(ctx, session, req.Feedback)
}

// ConfirmOutline is the button-press bypass of the keyword heuristic. It
// only moves the stage; no generation happens here.
func (s *deckService) ConfirmOutline(ctx context.Context, sessionID string) (*dto.AckResponse, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	if session.Stage != store.StageOutlineRefine {
		return nil, fiber.NewError(fiber.StatusConflict, "No outline is under review")
	}

	session.Stage = store.StageStyle
	s.sessions.Save(session)
	s.sessions.AppendMessage(session.ID, constant.ChatMessageRoleAssistant, "Outline confirmed. Generating the design plan next.")
	return &dto.AckResponse{Success: true, Message: "Outline confirmed. Design generation can begin."}, nil
}

func (s *deckService) UpdateOutline(ctx context.Context, req *dto.OutlineUpdateRequest) (*dto.OutlineResponse, error) {
	session, ok := s.sessions.Get(req.SessionID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	if session.Stage != store.StageOutlineRefine {
		return nil, fiber.NewError(fiber.StatusConflict, "Outline can only be edited while it is under review")
	}

	session.Outline = req.Outline
	session.OutlineText = prompt.RenderOutlineTextFromEdit(req.Outline)
	s.sessions.Save(session)

	return &dto.OutlineResponse{
		Success:     true,
		Outline:     session.Outline,
		OutlineText: session.OutlineText,
	}, nil
}

func (s *deckService) GenerateStyle(ctx context.Context, sessionID string) (*dto.StyleResponse, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	if len(session.Outline) == 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "No outline to design from")
	}

	session.Stage = store.StageStyle
	s.sessions.Save(session)

	in := prompt.StyleInput{
		Outline:          session.Outline,
		DesignPrinciples: session.DesignPrinciples,
	}
	if ts := session.TemplateSettings; ts != nil {
		in.ColorScheme = ts.ColorScheme
		in.FontScheme = ts.FontScheme
		if ts.ContentRichness != nil {
			in.ContentRichness = ts.ContentRichness.Prompt
		}
		in.PageNumberPosition = ts.PageNumberPosition
	}

	res := s.textGen.GenerateText(ctx, prompt.BuildStylePrompt(in))
	if !res.OK() {
		session.Stage = store.StageOutlineRefine
		s.sessions.Save(session)
		return &dto.StyleResponse{Success: false, Message: res.Advisory}, nil
	}

	var payload stylePayload
	if !genai.ExtractJSON(res.Text, &payload) || len(payload.Pages) == 0 {
		session.Stage = store.StageOutlineRefine
		s.sessions.Save(session)
		return &dto.StyleResponse{
			Success:     false,
			Message:     "The model response contained no usable design plan. Please try again.",
			RawResponse: res.Text,
			RetryInfo:   res.Advisory,
		}, nil
	}

	session.Style = payload.Pages
	session.StyleText = res.Text
	session.Stage = store.StageStyleRefine
	s.sessions.Save(session)
	s.sessions.AppendMessage(session.ID, constant.ChatMessageRoleAssistant, renderStyleSummary(payload.Pages))

	s.logger.Info("DeckService", "Design plan generated", map[string]interface{}{
		"session_id": session.ID,
		"pages":      len(payload.Pages),
	})

	return &dto.StyleResponse{
		Success:   true,
		Style:     dto.NewStylePageViews(payload.Pages),
		RetryInfo: res.Advisory,
	}, nil
}

func (s *deckService) refineStyle(ctx context.Context, session *store.Session, feedback string) (*dto.RefineStyleResponse, error) {
	res := s.textGen.GenerateText(ctx, prompt.BuildStyleRefinePrompt(session.StyleText, feedback))
	if !res.OK() {
		return &dto.RefineStyleResponse{Success: false, Message: res.Advisory}, nil
	}

	var payload stylePayload
	if !genai.ExtractJSON(res.Text, &payload) || len(payload.Pages) == 0 {
		return &dto.RefineStyleResponse{
			Success:   false,
			Message:   "The model response contained no usable design plan. Please rephrase your feedback.",
			RetryInfo: res.Advisory,
		}, nil
	}

	session.Style = payload.Pages
	session.StyleText = res.Text
	s.sessions.Save(session)
	s.sessions.AppendMessage(session.ID, constant.ChatMessageRoleAssistant, renderStyleSummary(payload.Pages))

	return &dto.RefineStyleResponse{
		Success:   true,
		Style:     dto.NewStylePageViews(payload.Pages),
		RetryInfo: res.Advisory,
	}, nil
}

func (s *deckService) RefineStyle(ctx context.Context, req *dto.RefineRequest) (*dto.RefineStyleResponse, error) {
	session, ok := s.sessions.Get(req.SessionID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	if session.Stage != store.StageStyleRefine {
		return nil, fiber.NewError(fiber.StatusConflict, "No design plan is under review")
	}

	s.sessions.AppendMessage(session.ID, constant.ChatMessageRoleUser, req.Feedback)

	if s.classifier.IsStyleConfirm(req.Feedback) {
		session.Stage = store.StageGenerate
		s.sessions.Save(session)
		s.sessions.AppendMessage(session.ID, constant.ChatMessageRoleAssistant, "Design confirmed. Rendering the deck page by page.")
		return &dto.RefineStyleResponse{
			Success:   true,
			Confirmed: true,
			Style:     dto.NewStylePageViews(session.Style),
		}, nil
	}
	return s.refineStyle(ctx, session, req.Feedback)
}

func (s *deckService) ConfirmStyle(ctx context.Context, sessionID string) (*dto.AckResponse, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	if session.Stage != store.StageStyleRefine {
		return nil, fiber.NewError(fiber.StatusConflict, "No design plan is under review")
	}

	session.Stage = store.StageGenerate
	s.sessions.Save(session)
	return &dto.AckResponse{Success: true, Message: "Design confirmed. Deck generation can begin."}, nil
}

// generatePageImage renders one page and stores the result on the session.
// refineReference, when set, is a prior render the model should delta-edit.
func (s *deckService) generatePageImage(ctx context.Context, session *store.Session, pageIndex int, refineReference string) (*store.GeneratedImage, string, error) {
	if pageIndex < 0 || pageIndex >= len(session.Style) {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Page index %d out of range", pageIndex))
	}
	page := session.Style[pageIndex]
	if strings.TrimSpace(page.Prompt) == "" {
		msg := fmt.Sprintf("Page %d has no image prompt", page.Page)
		return nil, msg, fiber.NewError(fiber.StatusBadRequest, msg)
	}

	materials := session.PageMaterials[strconv.Itoa(pageIndex)]

	opts := prompt.ImageOptions{
		LogoPresent:      session.CustomLogoPath != "",
		ReferencePresent: session.ReferenceImagePath != "",
		ReferenceType:    session.ReferenceType,
		TemplateAnalysis: session.TemplateAnalysis,
		Materials:        materials,
	}
	referencePath := session.ReferenceImagePath
	if refineReference != "" {
		opts.ReferencePresent = true
		opts.ReferenceType = store.ReferenceTypeRefine
		referencePath = refineReference
	}

	var materialPaths []string
	for _, m := range materials {
		if m.Type == store.MaterialTypeImage && m.Path != "" {
			materialPaths = append(materialPaths, m.Path)
		}
	}

	sessionDir := filepath.Join(s.outputDir, session.ID)
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("page_%d_%s.jpg", page.Page, sanitizeFilename(page.Theme))
	outputPath := filepath.Join(sessionDir, filename)

	res := s.imageGen.GenerateImage(ctx, genai.ImageRequest{
		Prompt:             prompt.BuildImagePrompt(page.Prompt, opts),
		OutputPath:         outputPath,
		ReferenceImagePath: referencePath,
		LogoPath:           session.CustomLogoPath,
		MaterialImagePaths: materialPaths,
	})
	if !res.OK {
		return nil, res.Advisory, fiber.NewError(fiber.StatusBadGateway, res.Advisory)
	}

	img := &store.GeneratedImage{
		Page:      page.Page,
		Theme:     page.Theme,
		ImagePath: res.SavedPath,
		Filename:  filepath.Base(res.SavedPath),
	}
	session.EnsureImageSlot(pageIndex)
	session.Images[pageIndex] = img
	s.sessions.Save(session)

	return img, res.Advisory, nil
}

func (s *deckService) GenerateImage(ctx context.Context, req *dto.PageImageRequest) (*dto.PageImageResponse, error) {
	session, ok := s.sessions.Get(req.SessionID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	if session.Stage != store.StageGenerate && session.Stage != store.StageComplete && session.Stage != store.StageStyleRefine {
		return nil, fiber.NewError(fiber.StatusConflict, "No confirmed design plan to render")
	}

	img, advisory, err := s.generatePageImage(ctx, session, req.PageIndex, "")
	if err != nil {
		var msg string
		if advisory != "" {
			msg = advisory
		} else {
			msg = err.Error()
		}
		return &dto.PageImageResponse{Success: false, PageIndex: req.PageIndex, Message: msg}, nil
	}

	return &dto.PageImageResponse{
		Success:   true,
		PageIndex: req.PageIndex,
		Page:      img.Page,
		Theme:     img.Theme,
		ImagePath: img.ImagePath,
		Filename:  img.Filename,
		RetryInfo: advisory,
	}, nil
}

func (s *deckService) GenerateAllImages(ctx context.Context, sessionID string) (*dto.GenerateAllResponse, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	if len(session.Style) == 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "No confirmed design plan to render")
	}

	session.Stage = store.StageGenerate
	s.sessions.Save(session)

	total := len(session.Style)
	results := make([]dto.BatchPageResult, 0, total)
	succeeded := 0

	// Pages render sequentially; a failed page never aborts the batch.
	for i, page := range session.Style {
		s.publish(ctx, events.NewPageStarted(session.ID, page.Page, page.Theme, total))

		img, advisory, err := s.generatePageImage(ctx, session, i, "")
		if err != nil {
			s.logger.Error("DeckService", "Page render failed", map[string]interface{}{
				"session_id": session.ID,
				"page":       page.Page,
				"reason":     advisory,
			})
			results = append(results, dto.BatchPageResult{
				Page:    page.Page,
				Theme:   page.Theme,
				Success: false,
				Error:   advisory,
			})
			s.publish(ctx, events.NewPageFailed(session.ID, page.Page, page.Theme, advisory))
			continue
		}

		succeeded++
		results = append(results, dto.BatchPageResult{
			Page:      page.Page,
			Theme:     page.Theme,
			Success:   true,
			ImagePath: img.ImagePath,
			Filename:  img.Filename,
			RetryInfo: advisory,
		})
		s.publish(ctx, events.NewPageCompleted(session.ID, page.Page, page.Theme, img.ImagePath, advisory))
	}

	session.Stage = store.StageComplete
	s.sessions.Save(session)
	s.publish(ctx, events.NewDeckCompleted(session.ID, total, succeeded))
	s.recordGeneration(ctx, session, results)

	s.logger.Info("DeckService", "Deck generation finished", map[string]interface{}{
		"session_id": session.ID,
		"total":      total,
		"succeeded":  succeeded,
	})

	return &dto.GenerateAllResponse{
		Success:   succeeded == total,
		Total:     total,
		Succeeded: succeeded,
		Results:   results,
	}, nil
}

func (s *deckService) RefinePage(ctx context.Context, req *dto.RefinePageRequest) (*dto.RefinePageResponse, error) {
	session, ok := s.sessions.Get(req.SessionID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	if session.Stage != store.StageComplete {
		return nil, fiber.NewError(fiber.StatusConflict, "Pages can only be adjusted after the deck is generated")
	}
	if req.PageIndex < 0 || req.PageIndex >= len(session.Style) {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Page index %d out of range", req.PageIndex))
	}

	page := session.Style[req.PageIndex]
	refinePrompt := prompt.BuildPageRefinePrompt(page.Page, page.Theme, page.DesignConcept, page.Prompt, req.Feedback)

	res := s.textGen.GenerateText(ctx, refinePrompt)
	if !res.OK() {
		return &dto.RefinePageResponse{Success: false, PageIndex: req.PageIndex, Message: res.Advisory}, nil
	}

	var updated store.StylePage
	if !genai.ExtractJSON(res.Text, &updated) || updated.Prompt == "" {
		return &dto.RefinePageResponse{
			Success:   false,
			PageIndex: req.PageIndex,
			Message:   "The model response contained no usable page design. Please rephrase your feedback.",
			RetryInfo: res.Advisory,
		}, nil
	}
	updated.Page = page.Page

	session.Style[req.PageIndex] = updated
	s.sessions.Save(session)

	// Regenerate against the existing render so unchanged regions survive.
	var priorRender string
	if req.PageIndex < len(session.Images) && session.Images[req.PageIndex] != nil {
		priorRender = session.Images[req.PageIndex].ImagePath
	}

	img, advisory, err := s.generatePageImage(ctx, session, req.PageIndex, priorRender)
	if err != nil {
		view := dto.StylePageView{Page: updated.Page, Theme: updated.Theme, DesignConcept: updated.DesignConcept}
		return &dto.RefinePageResponse{
			Success:      false,
			PageIndex:    req.PageIndex,
			UpdatedStyle: &view,
			Message:      advisory,
		}, nil
	}

	view := dto.StylePageView{Page: updated.Page, Theme: updated.Theme, DesignConcept: updated.DesignConcept}
	return &dto.RefinePageResponse{
		Success:       true,
		PageIndex:     req.PageIndex,
		UpdatedStyle:  &view,
		ImagePath:     img.ImagePath,
		ImageFilename: img.Filename,
		RetryInfo:     advisory,
	}, nil
}

// Chat routes a free-text message according to the session's stage.
func (s *deckService) Chat(ctx context.Context, req *dto.ChatRequest) (interface{}, error) {
	session := s.sessions.GetOrCreate(req.SessionID)

	switch session.Stage {
	case store.StageInput:
		return s.GenerateOutline(ctx, &dto.GenerateOutlineRequest{
			SessionID: req.SessionID,
			Content:   req.Content,
		})

	case store.StageOutlineRefine:
		result, err := s.RefineOutline(ctx, &dto.RefineRequest{SessionID: req.SessionID, Feedback: req.Content})
		if err != nil {
			return nil, err
		}
		if result.Confirmed {
			return s.GenerateStyle(ctx, req.SessionID)
		}
		return result, nil

	case store.StageStyleRefine:
		result, err := s.RefineStyle(ctx, &dto.RefineRequest{SessionID: req.SessionID, Feedback: req.Content})
		if err != nil {
			return nil, err
		}
		if result.Confirmed {
			return s.GenerateAllImages(ctx, req.SessionID)
		}
		return result, nil

	case store.StageGenerate:
		return &dto.AckResponse{Success: true, Message: "The deck is being generated. Please wait for it to finish."}, nil

	case store.StageComplete:
		if m := modifyPageRe.FindStringSubmatch(req.Content); m != nil {
			pageNum, _ := strconv.Atoi(m[1])
			msg := fmt.Sprintf("Please describe how page %d should change.", pageNum)
			s.sessions.AppendMessage(session.ID, constant.ChatMessageRoleAssistant, msg)
			return &dto.EditPagePromptResponse{Success: true, Message: msg, EditingPage: pageNum}, nil
		}
		return &dto.AckResponse{
			Success: true,
			Message: "The deck is complete. Say something like \"modify page 2\" to adjust a page, or download the results.",
		}, nil
	}

	// outline / style are transient stages; a message arriving mid-call
	// just gets acknowledged.
	return &dto.AckResponse{Success: true, Message: "Still working on the previous step."}, nil
}

func (s *deckService) GetSession(ctx context.Context, sessionID string) (*dto.SessionInfoResponse, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	return &dto.SessionInfoResponse{
		SessionID:       session.ID,
		Stage:           session.Stage,
		Outline:         session.Outline,
		OutlineText:     session.OutlineText,
		Style:           dto.NewStylePageViews(session.Style),
		Images:          session.Images,
		Messages:        session.Messages,
		AudioTranscript: session.AudioTranscript,
		HasReference:    session.ReferenceImagePath != "",
		ReferenceType:   session.ReferenceType,
		HasLogo:         session.CustomLogoPath != "",
	}, nil
}

func (s *deckService) ResetSession(ctx context.Context, sessionID string) (*dto.AckResponse, error) {
	s.sessions.Delete(sessionID)
	return &dto.AckResponse{Success: true, Message: "Session reset"}, nil
}

func (s *deckService) publish(ctx context.Context, evt events.Event) {
	if s.progress == nil {
		return
	}
	if err := s.progress.Publish(ctx, evt); err != nil {
		s.logger.Warn("DeckService", "Progress event dropped", map[string]interface{}{"type": evt.EventType(), "error": err.Error()})
	}
}

// recordGeneration persists a batch audit row. Persistence is optional, and
// a write failure never fails the generation itself.
func (s *deckService) recordGeneration(ctx context.Context, session *store.Session, results []dto.BatchPageResult) {
	if s.genRecords == nil {
		return
	}

	status := entity.GenerationStatusSucceeded
	failures := 0
	for _, r := range results {
		if !r.Success {
			failures++
		}
	}
	if failures == len(results) {
		status = entity.GenerationStatusFailed
	} else if failures > 0 {
		status = entity.GenerationStatusPartial
	}

	pages, err := json.Marshal(results)
	if err != nil {
		return
	}

	inviteCode, _ := ctx.Value(constant.ContextKeyInviteCode).(string)

	record := &entity.GenerationRecord{
		SessionID:  session.ID,
		InviteCode: inviteCode,
		Status:     status,
		PageCount:  len(results),
		Pages:      pages,
		CreatedAt:  time.Now(),
	}
	if err := s.genRecords.Create(ctx, record); err != nil {
		s.logger.Warn("DeckService", "Generation record write failed", map[string]interface{}{"session_id": session.ID, "error": err.Error()})
	}
}

func renderStyleSummary(pages []store.StylePage) string {
	var b strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&b, "Page %d - %s\n%s\n\n", p.Page, p.Theme, p.DesignConcept)
	}
	return strings.TrimRight(b.String(), "\n")
}

var filenameSanitizeRe = regexp.MustCompile(`[^\w\- ]+`)

func sanitizeFilename(name string) string {
	cleaned := filenameSanitizeRe.ReplaceAllString(name, "")
	cleaned = strings.ReplaceAll(strings.TrimSpace(cleaned), " ", "_")
	if cleaned == "" {
		return "page"
	}
	if len(cleaned) > 50 {
		cleaned = cleaned[:50]
	}
	return cleaned
}
