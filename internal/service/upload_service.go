package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ai-deckgen-be/internal/constant"
	"ai-deckgen-be/internal/dto"
	"ai-deckgen-be/internal/pkg/logger"
	"ai-deckgen-be/internal/repository/contract"
	"ai-deckgen-be/pkg/asr"
	"ai-deckgen-be/pkg/docextract"
	"ai-deckgen-be/pkg/genai"
	"ai-deckgen-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

// StorageDirs groups the upload target directories.
type StorageDirs struct {
	Audio       string
	SupportDocs string
	Materials   string
	Reference   string
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

type IUploadService interface {
	UploadAudio(ctx context.Context, sessionID, filename string, data []byte) (*dto.AudioUploadResponse, error)
	UploadSupportDoc(ctx context.Context, sessionID, filename string, data []byte) (*dto.SupportDocUploadResponse, error)
	ClearSupportDocs(ctx context.Context, sessionID string) (*dto.AckResponse, error)
	ListSupportDocs(ctx context.Context, sessionID string) (*dto.ListSupportDocsResponse, error)
	UploadPageMaterial(ctx context.Context, sessionID string, pageIndex int, filename, description string, data []byte) (*dto.MaterialUploadResponse, error)
	AddTableText(ctx context.Context, req *dto.TableTextRequest) (*dto.MaterialUploadResponse, error)
	RemoveMaterial(ctx context.Context, req *dto.RemoveMaterialRequest) (*dto.AckResponse, error)
	ListMaterials(ctx context.Context, sessionID string) (*dto.ListMaterialsResponse, error)
	UploadReference(ctx context.Context, sessionID, refType, filename string, data []byte) (*dto.ReferenceUploadResponse, error)
	UploadLogo(ctx context.Context, sessionID, filename string, data []byte) (*dto.LogoUploadResponse, error)
}

type uploadService struct {
	sessions    contract.SessionRepository
	analyzer    genai.TemplateAnalyzer
	transcriber asr.Transcriber
	logger      logger.ILogger
	dirs        StorageDirs
}

func NewUploadService(
	sessions contract.SessionRepository,
	analyzer genai.TemplateAnalyzer,
	transcriber asr.Transcriber,
	log logger.ILogger,
	dirs StorageDirs,
) IUploadService {
	return &uploadService{
		sessions:    sessions,
		analyzer:    analyzer,
		transcriber: transcriber,
		logger:      log,
		dirs:        dirs,
	}
}

func (s *uploadService) saveFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (s *uploadService) UploadAudio(ctx context.Context, sessionID, filename string, data []byte) (*dto.AudioUploadResponse, error) {
	if s.transcriber == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Speech transcription is not configured")
	}
	session := s.sessions.GetOrCreate(sessionID)

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".mp3"
	}
	audioPath, err := s.saveFile(s.dirs.Audio, fmt.Sprintf("%s_audio%s", sessionID, ext), data)
	if err != nil {
		return nil, err
	}

	transcript, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		s.logger.Error("UploadService", "Transcription failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return &dto.AudioUploadResponse{Success: false, Message: fmt.Sprintf("Transcription failed: %v", err)}, nil
	}
	if strings.TrimSpace(transcript) == "" {
		return &dto.AudioUploadResponse{Success: false, Message: "Transcription came back empty, please check the audio file"}, nil
	}

	session.AudioTranscript = transcript
	s.sessions.Save(session)
	s.sessions.AppendMessage(sessionID, constant.ChatMessageRoleAssistant, "Audio transcription finished.\n\n"+transcript)

	return &dto.AudioUploadResponse{Success: true, Transcript: transcript}, nil
}

func (s *uploadService) UploadSupportDoc(ctx context.Context, sessionID, filename string, data []byte) (*dto.SupportDocUploadResponse, error) {
	session := s.sessions.GetOrCreate(sessionID)

	ext := strings.ToLower(filepath.Ext(filename))
	if !docextract.DocumentExtensions[ext] {
		return &dto.SupportDocUploadResponse{
			Success: false,
			Message: fmt.Sprintf("Unsupported document format: %s", ext),
		}, nil
	}

	path, err := s.saveFile(s.dirs.SupportDocs, fmt.Sprintf("%s_%d_%s", sessionID, time.Now().Unix(), filepath.Base(filename)), data)
	if err != nil {
		return nil, err
	}

	text, err := docextract.ExtractText(path, filename)
	if err != nil || strings.TrimSpace(text) == "" {
		return &dto.SupportDocUploadResponse{
			Success: false,
			Message: "Text extraction failed, please check the file",
		}, nil
	}

	text, truncated := docextract.Truncate(text, constant.SupportDocTextLimit)

	session.SupportDocsFiles = append(session.SupportDocsFiles, store.SupportDocFile{
		Filename:   filename,
		Path:       path,
		TextLength: len(text),
	})
	block := fmt.Sprintf("--- %s ---\n%s", filename, text)
	if session.SupportDocsText != "" {
		session.SupportDocsText += "\n\n" + block
	} else {
		session.SupportDocsText = block
	}
	s.sessions.Save(session)
	s.sessions.AppendMessage(sessionID, constant.ChatMessageRoleAssistant,
		fmt.Sprintf("Document %q uploaded, %d characters extracted", filename, len(text)))

	return &dto.SupportDocUploadResponse{
		Success:   true,
		Files:     session.SupportDocsFiles,
		CharCount: len(text),
		Truncated: truncated,
	}, nil
}

func (s *uploadService) ClearSupportDocs(ctx context.Context, sessionID string) (*dto.AckResponse, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	session.SupportDocsText = ""
	session.SupportDocsFiles = nil
	s.sessions.Save(session)
	return &dto.AckResponse{Success: true, Message: "Support documents cleared"}, nil
}

func (s *uploadService) ListSupportDocs(ctx context.Context, sessionID string) (*dto.ListSupportDocsResponse, error) {
	session := s.sessions.GetOrCreate(sessionID)
	return &dto.ListSupportDocsResponse{
		Success:         true,
		Files:           session.SupportDocsFiles,
		TotalTextLength: len(session.SupportDocsText),
	}, nil
}

func (s *uploadService) UploadPageMaterial(ctx context.Context, sessionID string, pageIndex int, filename, description string, data []byte) (*dto.MaterialUploadResponse, error) {
	session := s.sessions.GetOrCreate(sessionID)

	ext := strings.ToLower(filepath.Ext(filename))
	isImage := imageExtensions[ext]
	isTable := docextract.TableExtensions[ext]
	if !isImage && !isTable {
		return &dto.MaterialUploadResponse{
			Success: false,
			Message: "Supported material types: images (.png .jpg .jpeg .gif .webp) or tables (.xlsx .csv)",
		}, nil
	}

	if pageIndex < 0 || pageIndex >= len(session.Outline) {
		return &dto.MaterialUploadResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid page index, the outline has %d pages", len(session.Outline)),
		}, nil
	}

	path, err := s.saveFile(s.dirs.Materials,
		fmt.Sprintf("%s_page%d_%d_%s", sessionID, pageIndex, time.Now().Unix(), filepath.Base(filename)), data)
	if err != nil {
		return nil, err
	}

	material := store.PageMaterial{
		Filename:    filename,
		Path:        path,
		Description: strings.TrimSpace(description),
	}
	if isImage {
		material.Type = store.MaterialTypeImage
	} else {
		material.Type = store.MaterialTypeTable
		tableText, err := docextract.ExtractTable(path, filename, constant.TableTextLimit)
		if err != nil {
			return &dto.MaterialUploadResponse{Success: false, Message: fmt.Sprintf("Table extraction failed: %v", err)}, nil
		}
		material.TableText = tableText
	}

	s.appendMaterial(session, pageIndex, material)
	s.sessions.AppendMessage(sessionID, constant.ChatMessageRoleAssistant,
		fmt.Sprintf("%q added to page %d", filename, pageIndex+1))

	return &dto.MaterialUploadResponse{Success: true, PageIndex: pageIndex, Material: material}, nil
}

func (s *uploadService) AddTableText(ctx context.Context, req *dto.TableTextRequest) (*dto.MaterialUploadResponse, error) {
	session := s.sessions.GetOrCreate(req.SessionID)

	if req.PageIndex < 0 || req.PageIndex >= len(session.Outline) {
		return &dto.MaterialUploadResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid page index, the outline has %d pages", len(session.Outline)),
		}, nil
	}

	tableText, _ := docextract.Truncate(req.TableText, constant.TableTextLimit)
	material := store.PageMaterial{
		Filename:    "pasted table",
		Type:        store.MaterialTypeTableText,
		Description: strings.TrimSpace(req.Description),
		TableText:   tableText,
	}
	s.appendMaterial(session, req.PageIndex, material)

	return &dto.MaterialUploadResponse{Success: true, PageIndex: req.PageIndex, Material: material}, nil
}

func (s *uploadService) RemoveMaterial(ctx context.Context, req *dto.RemoveMaterialRequest) (*dto.AckResponse, error) {
	session, ok := s.sessions.Get(req.SessionID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	key := strconv.Itoa(req.PageIndex)
	materials := session.PageMaterials[key]
	if req.MaterialIndex < 0 || req.MaterialIndex >= len(materials) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Material index out of range")
	}

	removed := materials[req.MaterialIndex]
	session.PageMaterials[key] = append(materials[:req.MaterialIndex], materials[req.MaterialIndex+1:]...)
	if len(session.PageMaterials[key]) == 0 {
		delete(session.PageMaterials, key)
	}
	s.sessions.Save(session)

	if removed.Path != "" {
		if err := os.Remove(removed.Path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("UploadService", "Material file removal failed", map[string]interface{}{"path": removed.Path, "error": err.Error()})
		}
	}

	return &dto.AckResponse{Success: true, Message: "Material removed"}, nil
}

func (s *uploadService) ListMaterials(ctx context.Context, sessionID string) (*dto.ListMaterialsResponse, error) {
	session := s.sessions.GetOrCreate(sessionID)
	return &dto.ListMaterialsResponse{Success: true, Materials: session.PageMaterials}, nil
}

func (s *uploadService) UploadReference(ctx context.Context, sessionID, refType, filename string, data []byte) (*dto.ReferenceUploadResponse, error) {
	session := s.sessions.GetOrCreate(sessionID)

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".png"
	}
	if !imageExtensions[ext] {
		return &dto.ReferenceUploadResponse{
			Success: false,
			Message: fmt.Sprintf("Unsupported format %s. Upload a PNG/JPG/WebP/GIF screenshot of the slide, not a PPT/PPTX/EMF file.", ext),
		}, nil
	}
	if refType != store.ReferenceTypeReference && refType != store.ReferenceTypeTemplate {
		return nil, fiber.NewError(fiber.StatusBadRequest, "type must be 'reference' or 'template'")
	}

	path, err := s.saveFile(s.dirs.Reference, fmt.Sprintf("%s_reference%s", sessionID, ext), data)
	if err != nil {
		return nil, err
	}

	session.ReferenceImagePath = path
	session.ReferenceType = refType
	s.sessions.Save(session)

	resp := &dto.ReferenceUploadResponse{Success: true, ReferenceType: refType, Message: "Reference image uploaded"}

	// Templates get a one-shot design analysis; failure downgrades to the
	// qualitative template directive rather than failing the upload.
	if refType == store.ReferenceTypeTemplate && s.analyzer != nil {
		analysis, err := s.analyzer.AnalyzeTemplate(ctx, path)
		if err != nil {
			s.logger.Warn("UploadService", "Template analysis failed", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
			resp.Message = "Template uploaded; design analysis unavailable"
		} else {
			session.TemplateAnalysis = analysis
			s.sessions.Save(session)
			resp.Analysis = analysis
			resp.Message = "Template uploaded and analyzed"
		}
	}

	return resp, nil
}

func (s *uploadService) UploadLogo(ctx context.Context, sessionID, filename string, data []byte) (*dto.LogoUploadResponse, error) {
	session := s.sessions.GetOrCreate(sessionID)

	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExtensions[ext] {
		return &dto.LogoUploadResponse{
			Success: false,
			Message: fmt.Sprintf("Unsupported format %s. Upload a PNG/JPG/WebP/GIF image, not EMF/SVG.", ext),
		}, nil
	}

	path, err := s.saveFile(s.dirs.Reference, fmt.Sprintf("%s_logo%s", sessionID, ext), data)
	if err != nil {
		return nil, err
	}

	session.CustomLogoPath = path
	s.sessions.Save(session)

	return &dto.LogoUploadResponse{Success: true, Message: "Logo uploaded"}, nil
}

func (s *uploadService) appendMaterial(session *store.Session, pageIndex int, material store.PageMaterial) {
	if session.PageMaterials == nil {
		session.PageMaterials = map[string][]store.PageMaterial{}
	}
	key := strconv.Itoa(pageIndex)
	session.PageMaterials[key] = append(session.PageMaterials[key], material)
	s.sessions.Save(session)
}
