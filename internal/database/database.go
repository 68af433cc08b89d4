package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"yapyap/backend/internal/models"
)

// Connect opens the database connection and runs migrations. TranslateError
// is enabled so the unique index on users.name surfaces a concurrent
// duplicate registration as gorm.ErrDuplicatedKey instead of a raw pg error.
func Connect(dsn string) (*gorm.DB, error) {
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         customLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established.")

	err = db.AutoMigrate(
		&models.User{},
		&models.Friendship{},
		&models.Chat{},
		&models.Group{},
		&models.GroupMember{},
		&models.ChatMessage{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migrated successfully.")
	return db, nil
}
