package service

import (
	"archive/zip"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ai-deckgen-be/internal/repository/contract"
	"ai-deckgen-be/pkg/store"

	"github.com/go-pdf/fpdf"
	"github.com/gofiber/fiber/v2"
)

type IExportService interface {
	// BuildZip packages every generated page image into a zip archive and
	// returns its path.
	BuildZip(ctx context.Context, sessionID string) (string, error)

	// BuildPDF merges the generated page images into one landscape PDF and
	// returns its path.
	BuildPDF(ctx context.Context, sessionID string) (string, error)

	// FindImage resolves a generated image filename to a path on disk.
	FindImage(ctx context.Context, filename string) (string, error)
}

type exportService struct {
	sessions  contract.SessionRepository
	outputDir string
}

func NewExportService(sessions contract.SessionRepository, outputDir string) IExportService {
	return &exportService{sessions: sessions, outputDir: outputDir}
}

func (s *exportService) generatedImages(sessionID string) ([]*store.GeneratedImage, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	var images []*store.GeneratedImage
	for _, img := range session.Images {
		if img == nil || img.ImagePath == "" {
			continue
		}
		if _, err := os.Stat(img.ImagePath); err != nil {
			continue
		}
		images = append(images, img)
	}
	if len(images) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No generated images to download")
	}
	return images, nil
}

func (s *exportService) BuildZip(ctx context.Context, sessionID string) (string, error) {
	images, err := s.generatedImages(sessionID)
	if err != nil {
		return "", err
	}

	zipPath := filepath.Join(s.outputDir, fmt.Sprintf("%s_deck.zip", sessionID))
	f, err := os.Create(zipPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, img := range images {
		src, err := os.Open(img.ImagePath)
		if err != nil {
			continue
		}
		entry, err := w.Create(img.Filename)
		if err != nil {
			src.Close()
			w.Close()
			return "", err
		}
		if _, err := io.Copy(entry, src); err != nil {
			src.Close()
			w.Close()
			return "", err
		}
		src.Close()
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return zipPath, nil
}

func (s *exportService) BuildPDF(ctx context.Context, sessionID string) (string, error) {
	images, err := s.generatedImages(sessionID)
	if err != nil {
		return "", err
	}

	// 16:9 landscape pages sized to the deck's aspect ratio.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: 297, Ht: 167.0625},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	added := 0
	for _, img := range images {
		imgType, err := sniffImageType(img.ImagePath)
		if err != nil {
			continue
		}
		pdf.AddPage()
		opts := fpdf.ImageOptions{ImageType: imgType, ReadDpi: false}
		pdf.ImageOptions(img.ImagePath, 0, 0, 297, 167.0625, false, opts, 0, "")
		added++
	}
	if added == 0 || pdf.Err() {
		return "", fiber.NewError(fiber.StatusBadRequest, "No readable images to merge into a PDF")
	}

	pdfPath := filepath.Join(s.outputDir, fmt.Sprintf("%s_deck.pdf", sessionID))
	if err := pdf.OutputFileAndClose(pdfPath); err != nil {
		return "", err
	}
	return pdfPath, nil
}

// FindImage first tries the exact filename under the output tree, then falls
// back to a substring match, mirroring how renders are looked up by partial
// name.
func (s *exportService) FindImage(ctx context.Context, filename string) (string, error) {
	exact := filepath.Join(s.outputDir, filename)
	if _, err := os.Stat(exact); err == nil {
		return exact, nil
	}

	var found string
	filepath.Walk(s.outputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || found != "" {
			return nil
		}
		if strings.Contains(filepath.Base(path), filename) {
			found = path
		}
		return nil
	})
	if found == "" {
		return "", fiber.NewError(fiber.StatusNotFound, "Image not found")
	}
	return found, nil
}

// sniffImageType decodes just the image header to learn the format name
// fpdf expects ("jpeg" or "png").
func sniffImageType(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", err
	}
	switch format {
	case "jpeg":
		return "JPG", nil
	case "png":
		return "PNG", nil
	default:
		return "", fmt.Errorf("unsupported image format %q", format)
	}
}
