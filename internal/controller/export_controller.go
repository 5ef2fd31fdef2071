package controller

import (
	"fmt"
	"time"

	"ai-deckgen-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IExportController interface {
	RegisterRoutes(r fiber.Router)
}

type exportController struct {
	exportService service.IExportService
}

func NewExportController(exportService service.IExportService) IExportController {
	return &exportController{
		exportService: exportService,
	}
}

func (c *exportController) RegisterRoutes(r fiber.Router) {
	r.Get("/download/:session_id", c.DownloadZip)
	r.Get("/download/:session_id/pdf", c.DownloadPDF)
	r.Get("/image/:filename", c.GetImage)
}

func (c *exportController) DownloadZip(ctx *fiber.Ctx) error {
	path, err := c.exportService.BuildZip(ctx.Context(), ctx.Params("session_id"))
	if err != nil {
		return err
	}
	return ctx.Download(path, fmt.Sprintf("Deck_%s.zip", time.Now().Format("20060102_150405")))
}

func (c *exportController) DownloadPDF(ctx *fiber.Ctx) error {
	path, err := c.exportService.BuildPDF(ctx.Context(), ctx.Params("session_id"))
	if err != nil {
		return err
	}
	return ctx.Download(path, fmt.Sprintf("Deck_%s.pdf", time.Now().Format("20060102_150405")))
}

func (c *exportController) GetImage(ctx *fiber.Ctx) error {
	path, err := c.exportService.FindImage(ctx.Context(), ctx.Params("filename"))
	if err != nil {
		return err
	}
	return ctx.SendFile(path)
}
