package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	Xfyun    XfyunConfig
	Storage  StorageConfig
	Keys     APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	ProgressTopicName  string
	FrontendBuildDir   string
}

type DatabaseConfig struct {
	Connection string
}

type GeminiConfig struct {
	APIBase      string
	MaxRetries   int
	RetryDelay   time.Duration
	TextTimeout  time.Duration
	ImageTimeout time.Duration
}

type XfyunConfig struct {
	AppID     string
	SecretKey string
	Host      string
}

type StorageConfig struct {
	OutputDir       string
	AudioDir        string
	SupportDocsDir  string
	MaterialsDir    string
	ReferenceDir    string
	InviteCodesFile string
	VisitCountFile  string
}

type APIKeys struct {
	GoogleGemini      string
	JWTSecret         string
	AdminPasswordHash string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8001"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8001"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", ""),
			ProgressTopicName:  getEnv("PROGRESS_TOPIC_NAME", "DECK_PROGRESS"),
			FrontendBuildDir:   getEnv("FRONTEND_BUILD_DIR", "./frontend/build"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Gemini: GeminiConfig{
			APIBase:      getEnv("GEMINI_API_BASE", "https://generativelanguage.googleapis.com/v1beta"),
			MaxRetries:   getEnvAsInt("GEMINI_MAX_RETRIES", 3),
			RetryDelay:   getEnvAsDuration("GEMINI_RETRY_DELAY", 5*time.Second),
			TextTimeout:  getEnvAsDuration("GEMINI_TEXT_TIMEOUT", 120*time.Second),
			ImageTimeout: getEnvAsDuration("GEMINI_IMAGE_TIMEOUT", 180*time.Second),
		},
		Xfyun: XfyunConfig{
			AppID:     getEnv("XFYUN_APPID", ""),
			SecretKey: getEnv("XFYUN_SECRET_KEY", ""),
			Host:      getEnv("LFASR_HOST", ""),
		},
		Storage: StorageConfig{
			OutputDir:       getEnv("OUTPUT_DIR", "./data/output"),
			AudioDir:        getEnv("AUDIO_DIR", "./data/audio"),
			SupportDocsDir:  getEnv("SUPPORT_DOCS_DIR", "./data/support_docs"),
			MaterialsDir:    getEnv("MATERIALS_DIR", "./data/materials"),
			ReferenceDir:    getEnv("REFERENCE_DIR", "./data/reference"),
			InviteCodesFile: getEnv("INVITE_CODES_FILE", "./data/invite_codes.json"),
			VisitCountFile:  getEnv("VISIT_COUNT_FILE", "./data/visit_count.txt"),
		},
		Keys: APIKeys{
			GoogleGemini:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			JWTSecret:         getEnv("JWT_SECRET", ""),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
