package controller

import (
	"ai-deckgen-be/internal/constant"
	"ai-deckgen-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
}

type healthController struct{}

func NewHealthController() IHealthController {
	return &healthController{}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Get("/defaults", c.Defaults)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("healthy", fiber.Map{
		"service": "ai-deckgen-be",
	}))
}

// Defaults exposes the built-in design settings so the frontend can prefill
// its configuration panel.
func (c *healthController) Defaults(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("defaults", fiber.Map{
		"design_principles": constant.DefaultDesignPrinciples,
		"color_scheme":      constant.DefaultColorSchemeSpec,
		"font_scheme":       constant.DefaultFontSchemeSpec,
		"colors": fiber.Map{
			"primary":   constant.DefaultColorPrimary,
			"secondary": constant.DefaultColorSecondary,
			"accent":    constant.DefaultColorAccent,
			"gray":      constant.DefaultColorGray,
		},
	}))
}
