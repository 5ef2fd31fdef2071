package service

import (
	"context"
	"testing"

	"ai-deckgen-be/internal/dto"
	"ai-deckgen-be/internal/repository/contract"
	"ai-deckgen-be/internal/repository/memory"
	"ai-deckgen-be/pkg/deck/stage"
	"ai-deckgen-be/pkg/genai"
	"ai-deckgen-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type fakeTextGen struct {
	results []genai.TextResult
	prompts []string
}

func (f *fakeTextGen) GenerateText(_ context.Context, prompt string) genai.TextResult {
	f.prompts = append(f.prompts, prompt)
	if len(f.results) == 0 {
		return genai.TextResult{Advisory: "Generation failed after 3 attempts: no scripted result"}
	}
	res := f.results[0]
	f.results = f.results[1:]
	return res
}

type fakeImageGen struct {
	requests []genai.ImageRequest
	failPage func(call int) bool // nil means every call succeeds
}

func (f *fakeImageGen) GenerateImage(_ context.Context, req genai.ImageRequest) genai.ImageResult {
	call := len(f.requests)
	f.requests = append(f.requests, req)
	if f.failPage != nil && f.failPage(call) {
		return genai.ImageResult{Advisory: "Generation failed after 3 attempts: api returned status 500"}
	}
	return genai.ImageResult{OK: true, SavedPath: req.OutputPath}
}

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

// --- Fixtures ---

const outlineResponseText = "Here is the outline.\n```json\n" +
	`{"pages": [
		{"page": 1, "theme": "Cover", "title": "Launch", "content": "- brand"},
		{"page": 2, "theme": "Market", "title": "The Market", "content": "- sizing"}
	]}` + "\n```"

const styleResponseText = "Design plan follows.\n```json\n" +
	`{"pages": [
		{"page": 1, "theme": "Cover", "design_concept": "bold cover", "prompt": "render cover"},
		{"page": 2, "theme": "Market", "design_concept": "chart heavy", "prompt": "render market"}
	]}` + "\n```"

const pageRefineResponseText = "```json\n" +
	`{"page": 2, "theme": "Market", "design_concept": "darker chart", "prompt": "render market darker"}` + "\n```"

type deckFixture struct {
	svc      IDeckService
	sessions contract.SessionRepository
	textGen  *fakeTextGen
	imageGen *fakeImageGen
}

func newDeckFixture(t *testing.T) *deckFixture {
	t.Helper()
	sessions := memory.NewSessionRepository()
	textGen := &fakeTextGen{}
	imageGen := &fakeImageGen{}
	svc := NewDeckService(sessions, textGen, imageGen, stage.NewKeywordClassifier(), nil, nil, noopLogger{}, t.TempDir())
	return &deckFixture{svc: svc, sessions: sessions, textGen: textGen, imageGen: imageGen}
}

func (f *deckFixture) generateOutline(t *testing.T, sessionID string) {
	t.Helper()
	f.textGen.results = append(f.textGen.results, genai.TextResult{Text: outlineResponseText})
	res, err := f.svc.GenerateOutline(context.Background(), &dto.GenerateOutlineRequest{
		SessionID: sessionID,
		Content:   "A product launch deck",
	})
	require.NoError(t, err)
	require.True(t, res.Success)
}

func (f *deckFixture) confirmThroughStyle(t *testing.T, sessionID string) {
	t.Helper()
	f.generateOutline(t, sessionID)
	_, err := f.svc.ConfirmOutline(context.Background(), sessionID)
	require.NoError(t, err)
	f.textGen.results = append(f.textGen.results, genai.TextResult{Text: styleResponseText})
	styleRes, err := f.svc.GenerateStyle(context.Background(), sessionID)
	require.NoError(t, err)
	require.True(t, styleRes.Success)
	_, err = f.svc.ConfirmStyle(context.Background(), sessionID)
	require.NoError(t, err)
}

// --- Idea intake ---

func TestSubmitIdea(t *testing.T) {
	f := newDeckFixture(t)

	ack, err := f.svc.SubmitIdea(context.Background(), &dto.SubmitIdeaRequest{SessionID: "s1", Content: "quarterly strategy review"})
	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.Empty(t, f.textGen.prompts, "submitting the idea makes no model call")

	session, _ := f.sessions.Get("s1")
	assert.Equal(t, store.StageOutline, session.Stage)
	assert.Equal(t, "quarterly strategy review", session.UserInput)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, "quarterly strategy review", session.Messages[0].Content)
}

// --- Outline stage ---

func TestGenerateOutline(t *testing.T) {
	f := newDeckFixture(t)
	f.textGen.results = []genai.TextResult{{Text: outlineResponseText, Advisory: "Unstable endpoint: succeeded on attempt 2"}}

	res, err := f.svc.GenerateOutline(context.Background(), &dto.GenerateOutlineRequest{
		SessionID: "s1",
		Content:   "A product launch deck",
		PageCount: 2,
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Len(t, res.Outline, 2)
	assert.Contains(t, res.OutlineText, "Page 1: Cover")
	assert.Equal(t, "Unstable endpoint: succeeded on attempt 2", res.RetryInfo)

	session, _ := f.sessions.Get("s1")
	assert.Equal(t, store.StageOutlineRefine, session.Stage)
	assert.Equal(t, "A product launch deck", session.UserInput)
	assert.Len(t, session.Messages, 2) // user input + assistant outline
}

func TestGenerateOutlineProviderFailure(t *testing.T) {
	f := newDeckFixture(t)
	f.textGen.results = []genai.TextResult{{Advisory: "Generation failed after 3 attempts: request timed out"}}

	res, err := f.svc.GenerateOutline(context.Background(), &dto.GenerateOutlineRequest{SessionID: "s1", Content: "idea"})
	require.NoError(t, err, "provider failures surface as data, not errors")

	assert.False(t, res.Success)
	assert.Equal(t, "Generation failed after 3 attempts: request timed out", res.Message)

	session, _ := f.sessions.Get("s1")
	assert.Equal(t, store.StageOutline, session.Stage, "session stays in the outline stage for a retry")
}

func TestGenerateOutlineUnparseableResponse(t *testing.T) {
	f := newDeckFixture(t)
	f.textGen.results = []genai.TextResult{{Text: "I could not come up with an outline."}}

	res, err := f.svc.GenerateOutline(context.Background(), &dto.GenerateOutlineRequest{SessionID: "s1", Content: "idea"})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, "I could not come up with an outline.", res.RawResponse)
}

func TestRefineOutline(t *testing.T) {
	f := newDeckFixture(t)
	f.generateOutline(t, "s1")

	refined := "```json\n" + `{"pages": [{"page": 1, "theme": "Cover v2", "title": "Launch", "content": "- brand"}]}` + "\n```"
	f.textGen.results = append(f.textGen.results, genai.TextResult{Text: refined})

	res, err := f.svc.RefineOutline(context.Background(), &dto.RefineRequest{SessionID: "s1", Feedback: "merge the last two pages"})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.False(t, res.Confirmed)
	assert.Len(t, res.Outline, 1)
	assert.Equal(t, "Cover v2", res.Outline[0].Theme)
}

func TestRefineOutlineConfirmShortCircuits(t *testing.T) {
	f := newDeckFixture(t)
	f.generateOutline(t, "s1")
	promptsBefore := len(f.textGen.prompts)

	res, err := f.svc.RefineOutline(context.Background(), &dto.RefineRequest{SessionID: "s1", Feedback: "looks good"})
	require.NoError(t, err)

	assert.True(t, res.Confirmed)
	assert.Len(t, res.Outline, 2, "outline is returned unchanged")
	assert.Len(t, f.textGen.prompts, promptsBefore, "confirmation must not call the model")

	session, _ := f.sessions.Get("s1")
	assert.Equal(t, store.StageStyle, session.Stage, "confirming moves the session to the design step")
}

func TestRefineOutlineConfirmOnlyOnce(t *testing.T) {
	f := newDeckFixture(t)
	f.generateOutline(t, "s1")

	res, err := f.svc.RefineOutline(context.Background(), &dto.RefineRequest{SessionID: "s1", Feedback: "confirm"})
	require.NoError(t, err)
	require.True(t, res.Confirmed)

	// The session has left outline review; repeating the keyword is not
	// another outline confirmation.
	_, err = f.svc.RefineOutline(context.Background(), &dto.RefineRequest{SessionID: "s1", Feedback: "confirm"})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

func TestConfirmOutlineIsPureTransition(t *testing.T) {
	f := newDeckFixture(t)
	f.generateOutline(t, "s1")
	promptsBefore := len(f.textGen.prompts)

	ack, err := f.svc.ConfirmOutline(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.Len(t, f.textGen.prompts, promptsBefore, "the button confirm makes no model call")

	session, _ := f.sessions.Get("s1")
	assert.Equal(t, store.StageStyle, session.Stage)

	_, err = f.svc.ConfirmOutline(context.Background(), "s1")
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code, "a second confirm has nothing to confirm")
}

func TestRefineOutlineStageGuard(t *testing.T) {
	f := newDeckFixture(t)

	_, err := f.svc.RefineOutline(context.Background(), &dto.RefineRequest{SessionID: "missing", Feedback: "x"})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)

	f.sessions.GetOrCreate("s1") // still in input stage
	_, err = f.svc.RefineOutline(context.Background(), &dto.RefineRequest{SessionID: "s1", Feedback: "x"})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

func TestUpdateOutline(t *testing.T) {
	f := newDeckFixture(t)
	f.generateOutline(t, "s1")

	edited := []store.OutlinePage{{Page: 1, Theme: "Edited", Title: "Edited title", Content: "- new"}}
	res, err := f.svc.UpdateOutline(context.Background(), &dto.OutlineUpdateRequest{SessionID: "s1", Outline: edited})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Contains(t, res.OutlineText, "[Page 1] Edited title")

	session, _ := f.sessions.Get("s1")
	assert.Equal(t, "Edited", session.Outline[0].Theme)
}

func TestUpdateOutlineStageGuard(t *testing.T) {
	f := newDeckFixture(t)
	f.sessions.GetOrCreate("s1")

	_, err := f.svc.UpdateOutline(context.Background(), &dto.OutlineUpdateRequest{
		SessionID: "s1",
		Outline:   []store.OutlinePage{{Page: 1, Title: "x"}},
	})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

// --- Style stage ---

func TestGenerateStyle(t *testing.T) {
	f := newDeckFixture(t)
	f.generateOutline(t, "s1")
	f.textGen.results = append(f.textGen.results, genai.TextResult{Text: styleResponseText})

	res, err := f.svc.GenerateStyle(context.Background(), "s1")
	require.NoError(t, err)

	assert.True(t, res.Success)
	require.Len(t, res.Style, 2)
	assert.Equal(t, "bold cover", res.Style[0].DesignConcept)

	session, _ := f.sessions.Get("s1")
	assert.Equal(t, store.StageStyleRefine, session.Stage)
	assert.Equal(t, "render cover", session.Style[0].Prompt, "raw prompts stay on the session")
}

func TestGenerateStyleFailureRevertsStage(t *testing.T) {
	f := newDeckFixture(t)
	f.generateOutline(t, "s1")
	f.textGen.results = append(f.textGen.results, genai.TextResult{Advisory: "Generation failed after 3 attempts: connection failed"})

	res, err := f.svc.GenerateStyle(context.Background(), "s1")
	require.NoError(t, err)

	assert.False(t, res.Success)
	session, _ := f.sessions.Get("s1")
	assert.Equal(t, store.StageOutlineRefine, session.Stage, "failed design run returns the session to outline review")
}

func TestRefineStyleConfirmShortCircuits(t *testing.T) {
	f := newDeckFixture(t)
	f.generateOutline(t, "s1")
	f.textGen.results = append(f.textGen.results, genai.TextResult{Text: styleResponseText})
	_, err := f.svc.GenerateStyle(context.Background(), "s1")
	require.NoError(t, err)

	res, err := f.svc.RefineStyle(context.Background(), &dto.RefineRequest{SessionID: "s1", Feedback: "go ahead"})
	require.NoError(t, err)

	assert.True(t, res.Confirmed)
	require.Len(t, res.Style, 2)

	session, _ := f.sessions.Get("s1")
	assert.Equal(t, store.StageGenerate, session.Stage, "confirming the design opens the generation step")

	_, err = f.svc.RefineStyle(context.Background(), &dto.RefineRequest{SessionID: "s1", Feedback: "go ahead"})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

func TestConfirmStyleAdvancesToGenerate(t *testing.T) {
	f := newDeckFixture(t)
	f.confirmThroughStyle(t, "s1")

	session, _ := f.sessions.Get("s1")
	assert.Equal(t, store.StageGenerate, session.Stage)
}

// --- Image generation ---

func TestGenerateAllImages(t *testing.T) {
	f := newDeckFixture(t)
	f.confirmThroughStyle(t, "s1")

	res, err := f.svc.GenerateAllImages(context.Background(), "s1")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Succeeded)
	require.Len(t, res.Results, 2)
	assert.Contains(t, res.Results[0].Filename, "page_1_Cover")

	session, _ := f.sessions.Get("s1")
	assert.Equal(t, store.StageComplete, session.Stage)
	require.Len(t, session.Images, 2)
	assert.NotNil(t, session.Images[1])
}

func TestGenerateAllImagesPartialFailure(t *testing.T) {
	f := newDeckFixture(t)
	f.confirmThroughStyle(t, "s1")
	f.imageGen.failPage = func(call int) bool { return call == 0 } // first page fails

	res, err := f.svc.GenerateAllImages(context.Background(), "s1")
	require.NoError(t, err, "page failures never abort the batch")

	assert.False(t, res.Success)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Succeeded)
	assert.False(t, res.Results[0].Success)
	assert.Contains(t, res.Results[0].Error, "Generation failed")
	assert.True(t, res.Results[1].Success, "the second page still renders")

	session, _ := f.sessions.Get("s1")
	assert.Equal(t, store.StageComplete, session.Stage, "the deck completes even with failed pages")
	assert.Nil(t, session.Images[0])
	assert.NotNil(t, session.Images[1])
}

func TestGenerateAllImagesEmptyPromptPage(t *testing.T) {
	f := newDeckFixture(t)
	f.confirmThroughStyle(t, "s1")

	session, _ := f.sessions.Get("s1")
	session.Style[1].Prompt = ""
	f.sessions.Save(session)

	res, err := f.svc.GenerateAllImages(context.Background(), "s1")
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Succeeded)
	require.Len(t, res.Results, 2)
	assert.True(t, res.Results[0].Success)
	assert.False(t, res.Results[1].Success)
	assert.Contains(t, res.Results[1].Error, "no image prompt")
	assert.Len(t, f.imageGen.requests, 1, "the promptless page never reaches the provider")
}

func TestGenerateImageEmptyPrompt(t *testing.T) {
	f := newDeckFixture(t)
	f.confirmThroughStyle(t, "s1")

	session, _ := f.sessions.Get("s1")
	session.Style[0].Prompt = "   "
	f.sessions.Save(session)

	res, err := f.svc.GenerateImage(context.Background(), &dto.PageImageRequest{SessionID: "s1", PageIndex: 0})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "no image prompt")
	assert.Empty(t, f.imageGen.requests)
}

func TestGenerateImageSinglePage(t *testing.T) {
	f := newDeckFixture(t)
	f.confirmThroughStyle(t, "s1")

	res, err := f.svc.GenerateImage(context.Background(), &dto.PageImageRequest{SessionID: "s1", PageIndex: 1})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Page)
	assert.Contains(t, res.Filename, "page_2_Market")

	require.Len(t, f.imageGen.requests, 1)
	assert.Contains(t, f.imageGen.requests[0].Prompt, "render market")
}

func TestGenerateImageOutOfRange(t *testing.T) {
	f := newDeckFixture(t)
	f.confirmThroughStyle(t, "s1")

	res, err := f.svc.GenerateImage(context.Background(), &dto.PageImageRequest{SessionID: "s1", PageIndex: 9})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "out of range")
}

// --- Page refinement after completion ---

func generateCompleteDeck(t *testing.T, f *deckFixture) {
	t.Helper()
	f.confirmThroughStyle(t, "s1")
	_, err := f.svc.GenerateAllImages(context.Background(), "s1")
	require.NoError(t, err)
}

func TestRefinePage(t *testing.T) {
	f := newDeckFixture(t)
	generateCompleteDeck(t, f)
	f.textGen.results = append(f.textGen.results, genai.TextResult{Text: pageRefineResponseText})

	res, err := f.svc.RefinePage(context.Background(), &dto.RefinePageRequest{
		SessionID: "s1",
		PageIndex: 1,
		Feedback:  "make the chart darker",
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	require.NotNil(t, res.UpdatedStyle)
	assert.Equal(t, "darker chart", res.UpdatedStyle.DesignConcept)

	session, _ := f.sessions.Get("s1")
	assert.Equal(t, "render market darker", session.Style[1].Prompt)

	// The regeneration call carries the prior render as a refine reference.
	last := f.imageGen.requests[len(f.imageGen.requests)-1]
	assert.NotEmpty(t, last.ReferenceImagePath)
	assert.Contains(t, last.Prompt, "Refine mode")
}

func TestRefinePageStageGuard(t *testing.T) {
	f := newDeckFixture(t)
	f.confirmThroughStyle(t, "s1") // generate stage, not complete

	_, err := f.svc.RefinePage(context.Background(), &dto.RefinePageRequest{SessionID: "s1", PageIndex: 0, Feedback: "x"})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

// --- Chat routing ---

func TestChatInputStageGeneratesOutline(t *testing.T) {
	f := newDeckFixture(t)
	f.textGen.results = []genai.TextResult{{Text: outlineResponseText}}

	res, err := f.svc.Chat(context.Background(), &dto.ChatRequest{SessionID: "s1", Content: "A launch deck"})
	require.NoError(t, err)

	outline, ok := res.(*dto.OutlineResponse)
	require.True(t, ok, "input-stage chat returns the outline result, got %T", res)
	assert.True(t, outline.Success)
}

func TestChatOutlineConfirmRunsStyle(t *testing.T) {
	f := newDeckFixture(t)
	f.generateOutline(t, "s1")
	f.textGen.results = append(f.textGen.results, genai.TextResult{Text: styleResponseText})

	res, err := f.svc.Chat(context.Background(), &dto.ChatRequest{SessionID: "s1", Content: "ok, confirm"})
	require.NoError(t, err)

	style, ok := res.(*dto.StyleResponse)
	require.True(t, ok, "confirming the outline flows straight into design, got %T", res)
	assert.True(t, style.Success)
}

func TestChatStyleConfirmRunsGeneration(t *testing.T) {
	f := newDeckFixture(t)
	f.generateOutline(t, "s1")
	f.textGen.results = append(f.textGen.results, genai.TextResult{Text: styleResponseText})
	_, err := f.svc.GenerateStyle(context.Background(), "s1")
	require.NoError(t, err)

	res, err := f.svc.Chat(context.Background(), &dto.ChatRequest{SessionID: "s1", Content: "generate"})
	require.NoError(t, err)

	batch, ok := res.(*dto.GenerateAllResponse)
	require.True(t, ok, "confirming the design runs the full generation, got %T", res)
	assert.Equal(t, 2, batch.Succeeded)
}

func TestChatCompleteStageModifyPage(t *testing.T) {
	f := newDeckFixture(t)
	generateCompleteDeck(t, f)
	promptsBefore := len(f.textGen.prompts)
	imagesBefore := len(f.imageGen.requests)

	res, err := f.svc.Chat(context.Background(), &dto.ChatRequest{SessionID: "s1", Content: "modify page 2"})
	require.NoError(t, err)

	edit, ok := res.(*dto.EditPagePromptResponse)
	require.True(t, ok, "naming a page prompts for the concrete change, got %T", res)
	assert.Equal(t, 2, edit.EditingPage)
	assert.Contains(t, edit.Message, "page 2")

	// The bare page reference carries no instruction; nothing regenerates.
	assert.Len(t, f.textGen.prompts, promptsBefore)
	assert.Len(t, f.imageGen.requests, imagesBefore)
}

func TestChatCompleteStagePlainMessage(t *testing.T) {
	f := newDeckFixture(t)
	generateCompleteDeck(t, f)

	res, err := f.svc.Chat(context.Background(), &dto.ChatRequest{SessionID: "s1", Content: "thanks, great work"})
	require.NoError(t, err)

	ack, ok := res.(*dto.AckResponse)
	require.True(t, ok)
	assert.Contains(t, ack.Message, "modify page")
}

// --- Session info ---

func TestGetSession(t *testing.T) {
	f := newDeckFixture(t)
	f.generateOutline(t, "s1")

	info, err := f.svc.GetSession(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, "s1", info.SessionID)
	assert.Equal(t, store.StageOutlineRefine, info.Stage)
	assert.Len(t, info.Outline, 2)
	assert.False(t, info.HasReference)

	_, err = f.svc.GetSession(context.Background(), "missing")
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestResetSession(t *testing.T) {
	f := newDeckFixture(t)
	f.generateOutline(t, "s1")

	res, err := f.svc.ResetSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, res.Success)

	_, found := f.sessions.Get("s1")
	assert.False(t, found)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cover Page", "Cover_Page"},
		{"Q3/Q4 Results!", "Q3Q4_Results"},
		{"", "page"},
		{"///", "page"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
