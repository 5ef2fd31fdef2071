package server

import (
	"log"
	"os"
	"path/filepath"

	"ai-deckgen-be/internal/bootstrap"
	"ai-deckgen-be/internal/config"
	"ai-deckgen-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // audio and document uploads
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Routes
	registerRoutes(app, container, cfg)

	// Frontend SPA, registered after the API so /api keeps priority.
	registerFrontend(app, cfg)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container, cfg *config.Config) {
	api := app.Group("/api")
	api.Use(serverutils.JwtMiddleware(cfg.Keys.JWTSecret))

	c.HealthController.RegisterRoutes(api)
	c.AuthController.RegisterRoutes(api)
	c.VisitController.RegisterRoutes(api)

	c.DeckController.RegisterRoutes(api)
	c.UploadController.RegisterRoutes(api)
	c.ExportController.RegisterRoutes(api)

	api.Get("/ws/progress", c.ProgressHandler.ServeWs)
}

func registerFrontend(app *fiber.App, cfg *config.Config) {
	buildDir := cfg.App.FrontendBuildDir
	if info, err := os.Stat(buildDir); err != nil || !info.IsDir() {
		log.Printf("⚠️  Frontend build directory not found: %s", buildDir)
		return
	}

	app.Static("/", buildDir)

	// SPA fallback: unknown paths serve index.html for client-side routing.
	index := filepath.Join(buildDir, "index.html")
	app.Get("/*", func(ctx *fiber.Ctx) error {
		return ctx.SendFile(index)
	})
	log.Printf("✅ Serving frontend from %s", buildDir)
}
