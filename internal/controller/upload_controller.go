package controller

import (
	"io"
	"strconv"

	"ai-deckgen-be/internal/dto"
	"ai-deckgen-be/internal/pkg/serverutils"
	"ai-deckgen-be/internal/service"
	"ai-deckgen-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
}

type uploadController struct {
	uploadService service.IUploadService
}

func NewUploadController(uploadService service.IUploadService) IUploadController {
	return &uploadController{
		uploadService: uploadService,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	r.Post("/audio/upload", c.UploadAudio)

	r.Post("/support-doc/upload", c.UploadSupportDoc)
	r.Delete("/support-doc/clear", c.ClearSupportDocs)
	r.Get("/support-doc/list/:session_id", c.ListSupportDocs)

	r.Post("/page-material/upload", c.UploadPageMaterial)
	r.Post("/page-material/add-table-text", c.AddTableText)
	r.Delete("/page-material/remove", c.RemoveMaterial)
	r.Get("/page-material/list/:session_id", c.ListMaterials)

	r.Post("/reference/upload", c.UploadReference)
	r.Post("/logo/upload", c.UploadLogo)
}

// readUpload pulls one multipart file into memory.
func readUpload(ctx *fiber.Ctx, field string) (string, []byte, error) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		return "", nil, fiber.NewError(fiber.StatusBadRequest, "Missing file")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fileHeader.Filename, data, nil
}

func requireSessionID(ctx *fiber.Ctx) (string, error) {
	sessionID := ctx.FormValue("session_id")
	if sessionID == "" {
		sessionID = ctx.Query("session_id")
	}
	if sessionID == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}
	return sessionID, nil
}

func (c *uploadController) UploadAudio(ctx *fiber.Ctx) error {
	sessionID, err := requireSessionID(ctx)
	if err != nil {
		return err
	}
	filename, data, err := readUpload(ctx, "file")
	if err != nil {
		return err
	}

	res, err := c.uploadService.UploadAudio(ctx.Context(), sessionID, filename, data)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *uploadController) UploadSupportDoc(ctx *fiber.Ctx) error {
	sessionID, err := requireSessionID(ctx)
	if err != nil {
		return err
	}
	filename, data, err := readUpload(ctx, "file")
	if err != nil {
		return err
	}

	res, err := c.uploadService.UploadSupportDoc(ctx.Context(), sessionID, filename, data)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *uploadController) ClearSupportDocs(ctx *fiber.Ctx) error {
	sessionID, err := requireSessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.uploadService.ClearSupportDocs(ctx.Context(), sessionID)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *uploadController) ListSupportDocs(ctx *fiber.Ctx) error {
	res, err := c.uploadService.ListSupportDocs(ctx.Context(), ctx.Params("session_id"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *uploadController) UploadPageMaterial(ctx *fiber.Ctx) error {
	sessionID, err := requireSessionID(ctx)
	if err != nil {
		return err
	}
	pageIndex, err := strconv.Atoi(ctx.FormValue("page_index", "-1"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "page_index must be a number")
	}
	filename, data, err := readUpload(ctx, "file")
	if err != nil {
		return err
	}

	res, err := c.uploadService.UploadPageMaterial(ctx.Context(), sessionID, pageIndex, filename, ctx.FormValue("description"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *uploadController) AddTableText(ctx *fiber.Ctx) error {
	var req dto.TableTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.uploadService.AddTableText(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *uploadController) RemoveMaterial(ctx *fiber.Ctx) error {
	var req dto.RemoveMaterialRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.uploadService.RemoveMaterial(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *uploadController) ListMaterials(ctx *fiber.Ctx) error {
	res, err := c.uploadService.ListMaterials(ctx.Context(), ctx.Params("session_id"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *uploadController) UploadReference(ctx *fiber.Ctx) error {
	sessionID, err := requireSessionID(ctx)
	if err != nil {
		return err
	}
	refType := ctx.FormValue("type", store.ReferenceTypeReference)
	filename, data, err := readUpload(ctx, "file")
	if err != nil {
		return err
	}

	res, err := c.uploadService.UploadReference(ctx.Context(), sessionID, refType, filename, data)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *uploadController) UploadLogo(ctx *fiber.Ctx) error {
	sessionID, err := requireSessionID(ctx)
	if err != nil {
		return err
	}
	filename, data, err := readUpload(ctx, "file")
	if err != nil {
		return err
	}

	res, err := c.uploadService.UploadLogo(ctx.Context(), sessionID, filename, data)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
