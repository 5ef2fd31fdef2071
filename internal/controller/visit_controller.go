package controller

import (
	"ai-deckgen-be/internal/dto"
	"ai-deckgen-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IVisitController interface {
	RegisterRoutes(r fiber.Router)
}

type visitController struct {
	visitService service.IVisitService
}

func NewVisitController(visitService service.IVisitService) IVisitController {
	return &visitController{
		visitService: visitService,
	}
}

func (c *visitController) RegisterRoutes(r fiber.Router) {
	r.Get("/visit/count", c.GetCount)
	r.Post("/visit/increment", c.Increment)
}

func (c *visitController) GetCount(ctx *fiber.Ctx) error {
	count, err := c.visitService.Count(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(dto.VisitResponse{Success: true, Count: count})
}

func (c *visitController) Increment(ctx *fiber.Ctx) error {
	count, err := c.visitService.Increment(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(dto.VisitResponse{Success: true, Count: count})
}
