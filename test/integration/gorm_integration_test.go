package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-deckgen-be/internal/entity"
	"ai-deckgen-be/internal/repository/implementation"
	"ai-deckgen-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestGormAuditRepositories(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")

	require.NoError(t, gormDB.AutoMigrate(&entity.LoginRecord{}, &entity.GenerationRecord{}))

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	ctx := context.Background()

	t.Run("Login records round-trip", func(t *testing.T) {
		repo := implementation.NewLoginRecordRepository(gormDB)
		code := "IT-" + uuid.NewString()[:8]

		err := repo.Create(ctx, &entity.LoginRecord{
			InviteCode: code,
			ClientIP:   "127.0.0.1",
			UserAgent:  "integration-test",
			CreatedAt:  time.Now(),
		})
		require.NoError(t, err)

		records, err := repo.FindAll(ctx, 50)
		require.NoError(t, err)

		found := false
		for _, r := range records {
			if r.InviteCode == code {
				found = true
				break
			}
		}
		assert.True(t, found, "freshly written login record should be listed")

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("Generation records round-trip", func(t *testing.T) {
		repo := implementation.NewGenerationRecordRepository(gormDB)
		sessionID := "it-" + uuid.NewString()

		err := repo.Create(ctx, &entity.GenerationRecord{
			SessionID: sessionID,
			Status:    entity.GenerationStatusSucceeded,
			PageCount: 2,
			Pages:     datatypes.JSON([]byte(`[{"page": 1, "success": true}, {"page": 2, "success": true}]`)),
			CreatedAt: time.Now(),
		})
		require.NoError(t, err)

		records, err := repo.FindBySession(ctx, sessionID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, entity.GenerationStatusSucceeded, records[0].Status)
		assert.Equal(t, 2, records[0].PageCount)
	})
}
