package controller

import (
	"ai-deckgen-be/internal/dto"
	"ai-deckgen-be/internal/pkg/serverutils"
	"ai-deckgen-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
}

type authController struct {
	authService service.IAuthService
	jwtSecret   string
}

func NewAuthController(authService service.IAuthService, jwtSecret string) IAuthController {
	return &authController{
		authService: authService,
		jwtSecret:   jwtSecret,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Post("/login", c.Login)
	r.Post("/admin/login", c.AdminLogin)

	records := r.Group("/login/records")
	records.Use(serverutils.AdminMiddleware(c.jwtSecret))
	records.Get("", c.LoginRecords)
	records.Get("/download", c.DownloadLoginRecords)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.InviteLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.Context(), &req, ctx.IP(), ctx.Get(fiber.HeaderUserAgent))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *authController) AdminLogin(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.AdminLogin(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *authController) LoginRecords(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 0)
	res, err := c.authService.LoginRecords(ctx.Context(), limit)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *authController) DownloadLoginRecords(ctx *fiber.Ctx) error {
	data, err := c.authService.LoginRecordsCSV(ctx.Context())
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="login_records.csv"`)
	return ctx.Send(data)
}
