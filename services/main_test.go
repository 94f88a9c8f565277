package services

import (
	"fmt"
	"strings"
	"testing"

	"yoga-flashcards-api/config"
	"yoga-flashcards-api/models"
	"yoga-flashcards-api/repositories"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test. The shared-cache DSN
// keeps the schema alive across the pool's connections.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: strings.Split(email, "@")[0],
		Email:    email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newFlashcardService(db *gorm.DB) FlashcardService {
	return NewFlashcardService(
		repositories.NewFlashcardRepository(db),
		repositories.NewTagRepository(db),
	)
}
