package controller

import (
	"ai-deckgen-be/internal/dto"
	"ai-deckgen-be/internal/pkg/serverutils"
	"ai-deckgen-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDeckController interface {
	RegisterRoutes(r fiber.Router)
}

type deckController struct {
	deckService service.IDeckService
}

func NewDeckController(deckService service.IDeckService) IDeckController {
	return &deckController{
		deckService: deckService,
	}
}

func (c *deckController) RegisterRoutes(r fiber.Router) {
	r.Post("/input", c.SubmitIdea)
	r.Post("/chat", c.Chat)

	r.Post("/outline/generate", c.GenerateOutline)
	r.Post("/outline/refine", c.RefineOutline)
	r.Post("/outline/confirm", c.ConfirmOutline)
	r.Post("/outline/update", c.UpdateOutline)

	r.Post("/style/generate", c.GenerateStyle)
	r.Post("/style/refine", c.RefineStyle)
	r.Post("/style/confirm", c.ConfirmStyle)

	r.Post("/page/refine-and-regenerate", c.RefinePage)
	r.Post("/image/generate", c.GenerateImage)
	r.Post("/image/generate-all", c.GenerateAllImages)

	r.Get("/session/:session_id", c.GetSession)
	r.Delete("/session/:session_id", c.ResetSession)
}

func (c *deckController) SubmitIdea(ctx *fiber.Ctx) error {
	var req dto.SubmitIdeaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.deckService.SubmitIdea(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *deckController) GenerateOutline(ctx *fiber.Ctx) error {
	var req dto.GenerateOutlineRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.deckService.GenerateOutline(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *deckController) RefineOutline(ctx *fiber.Ctx) error {
	var req dto.RefineRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.deckService.RefineOutline(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *deckController) ConfirmOutline(ctx *fiber.Ctx) error {
	var req dto.SessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.deckService.ConfirmOutline(ctx.Context(), req.SessionID)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *deckController) UpdateOutline(ctx *fiber.Ctx) error {
	var req dto.OutlineUpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.deckService.UpdateOutline(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *deckController) GenerateStyle(ctx *fiber.Ctx) error {
	var req dto.SessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.deckService.GenerateStyle(ctx.Context(), req.SessionID)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *deckController) RefineStyle(ctx *fiber.Ctx) error {
	var req dto.RefineRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.deckService.RefineStyle(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *deckController) ConfirmStyle(ctx *fiber.Ctx) error {
	var req dto.SessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.deckService.ConfirmStyle(ctx.Context(), req.SessionID)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *deckController) RefinePage(ctx *fiber.Ctx) error {
	var req dto.RefinePageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.deckService.RefinePage(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *deckController) GenerateImage(ctx *fiber.Ctx) error {
	var req dto.PageImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.deckService.GenerateImage(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *deckController) GenerateAllImages(ctx *fiber.Ctx) error {
	var req dto.SessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.deckService.GenerateAllImages(ctx.Context(), req.SessionID)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *deckController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.deckService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *deckController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.deckService.GetSession(ctx.Context(), ctx.Params("session_id"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *deckController) ResetSession(ctx *fiber.Ctx) error {
	res, err := c.deckService.ResetSession(ctx.Context(), ctx.Params("session_id"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
