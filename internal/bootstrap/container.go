package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-deckgen-be/internal/config"
	"ai-deckgen-be/internal/controller"
	"ai-deckgen-be/internal/handler"
	"ai-deckgen-be/internal/pkg/logger"
	"ai-deckgen-be/internal/repository/contract"
	"ai-deckgen-be/internal/repository/implementation"
	"ai-deckgen-be/internal/repository/memory"
	"ai-deckgen-be/internal/service"
	"ai-deckgen-be/internal/websocket"
	"ai-deckgen-be/pkg/asr"
	"ai-deckgen-be/pkg/asr/xfyun"
	"ai-deckgen-be/pkg/deck/stage"
	"ai-deckgen-be/pkg/genai/gemini"
	"ai-deckgen-be/pkg/invite"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DeckController   controller.IDeckController
	UploadController controller.IUploadController
	ExportController controller.IExportController
	AuthController   controller.IAuthController
	VisitController  controller.IVisitController
	HealthController controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ProgressConsumer service.IProgressConsumerService

	// WebSockets
	ProgressHandler *handler.ProgressHandler
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Redis is optional; without it the hub stays single-instance and the
	// visit counter falls back to its file.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Generation backends
	geminiProvider := gemini.NewProvider(
		cfg.Gemini.APIBase,
		cfg.Keys.GoogleGemini,
		cfg.Gemini.MaxRetries,
		cfg.Gemini.RetryDelay,
		cfg.Gemini.TextTimeout,
		cfg.Gemini.ImageTimeout,
	)

	var transcriber asr.Transcriber
	if cfg.Xfyun.AppID != "" {
		transcriber = xfyun.NewClient(cfg.Xfyun.AppID, cfg.Xfyun.SecretKey, cfg.Xfyun.Host, 10*time.Minute)
		log.Printf("[INFO] Speech transcription enabled (xfyun)")
	} else {
		log.Printf("[WARN] XFYUN_APPID not set, audio upload disabled")
	}

	// Invite codes with hot reload
	inviteStore, err := invite.NewStore(cfg.Storage.InviteCodesFile)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load invite codes: %v", err)
	}
	if err := inviteStore.Watch(context.Background()); err != nil {
		log.Printf("[WARN] Invite code hot reload unavailable: %v", err)
	}

	// In-memory session storage
	sessionRepo := memory.NewSessionRepository()

	// Persistence is optional: without a database the service runs but skips
	// login and generation records.
	var loginRecords contract.LoginRecordRepository
	var generationRecords contract.GenerationRecordRepository
	if db != nil {
		loginRecords = implementation.NewLoginRecordRepository(db)
		generationRecords = implementation.NewGenerationRecordRepository(db)
	} else {
		log.Printf("[WARN] No database configured, audit records disabled")
	}

	// 4. Services
	progressPublisher := service.NewProgressPublisher(pubSub, cfg.App.ProgressTopicName)
	progressConsumer := service.NewProgressConsumerService(pubSub, cfg.App.ProgressTopicName, wsHub)

	deckService := service.NewDeckService(
		sessionRepo,
		geminiProvider,
		geminiProvider,
		stage.NewKeywordClassifier(),
		progressPublisher,
		generationRecords,
		sysLogger,
		cfg.Storage.OutputDir,
	)

	uploadService := service.NewUploadService(
		sessionRepo,
		geminiProvider,
		transcriber,
		sysLogger,
		service.StorageDirs{
			Audio:       cfg.Storage.AudioDir,
			SupportDocs: cfg.Storage.SupportDocsDir,
			Materials:   cfg.Storage.MaterialsDir,
			Reference:   cfg.Storage.ReferenceDir,
		},
	)

	exportService := service.NewExportService(sessionRepo, cfg.Storage.OutputDir)
	authService := service.NewAuthService(inviteStore, loginRecords, cfg.Keys.JWTSecret, cfg.Keys.AdminPasswordHash, sysLogger)
	visitService := service.NewVisitService(rdb, cfg.Storage.VisitCountFile)

	// 5. Controllers
	return &Container{
		ProgressHandler: handler.NewProgressHandler(wsHub, wsLogger),
		WebSocketHub:    wsHub,

		DeckController:   controller.NewDeckController(deckService),
		UploadController: controller.NewUploadController(uploadService),
		ExportController: controller.NewExportController(exportService),
		AuthController:   controller.NewAuthController(authService, cfg.Keys.JWTSecret),
		VisitController:  controller.NewVisitController(visitService),
		HealthController: controller.NewHealthController(),

		ProgressConsumer: progressConsumer,
	}
}
