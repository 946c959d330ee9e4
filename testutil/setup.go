package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"friendapp-api/database"
	"friendapp-api/models"
)

// SetupTestDB opens a private in-memory database and migrates the schema.
// It requires no external services and is safe to use in parallel tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "SetupTestDB: open")
	require.NoError(t, database.Migrate(db), "SetupTestDB: migrate")

	return db
}

// CreateUser inserts a user with sensible defaults for tests.
func CreateUser(t *testing.T, db *gorm.DB, handle string, mutate ...func(*models.User)) *models.User {
	t.Helper()

	user := &models.User{
		ID:     uuid.New().String(),
		Handle: handle,
		Email:  handle + "@test.com",
	}
	for _, fn := range mutate {
		fn(user)
	}
	require.NoError(t, db.Create(user).Error, "CreateUser: %s", handle)
	return user
}
