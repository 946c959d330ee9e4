package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"friendapp-api/logger"
	"friendapp-api/models"
)

func Initialize(databaseURL, appEnv string) (*gorm.DB, error) {
	logLevel := gormlogger.Error
	if appEnv == "development" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(logLevel),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.BlockedUser{},
		&models.Friendship{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}

// Seed creates the admin account and a handful of demo users. The demo
// users carry no external identity reference: their first token login
// adopts the row by email and binds the identity to it.
func Seed(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		logger.Info("Database already has users, skipping seed")
		return nil
	}

	seedUsers := []models.User{
		{
			ID:            uuid.New().String(),
			FirstName:     "Admin",
			LastName:      "User",
			Handle:        "admin",
			Email:         "admin@friendapp.com",
			EmailVerified: true,
			IsAdmin:       true,
		},
		{ID: uuid.New().String(), FirstName: "Ali", LastName: "Yılmaz", Handle: "ali", Email: "ali@test.com"},
		{ID: uuid.New().String(), FirstName: "Ayşe", LastName: "Demir", Handle: "ayse", Email: "ayse@test.com"},
		{ID: uuid.New().String(), FirstName: "Mehmet", LastName: "Kaya", Handle: "mehmet", Email: "mehmet@test.com"},
		{ID: uuid.New().String(), FirstName: "Zeynep", LastName: "Çelik", Handle: "zeynep", Email: "zeynep@test.com"},
		{ID: uuid.New().String(), FirstName: "Can", LastName: "Şahin", Handle: "can", Email: "can@test.com"},
	}

	for _, user := range seedUsers {
		if err := db.Create(&user).Error; err != nil {
			logger.Warn("Could not create seed user", "handle", user.Handle, "error", err)
		}
	}

	logger.Info("Database seeded with admin and demo users")
	return nil
}
