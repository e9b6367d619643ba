package database

import (
	"log"
	"os"
	"time"

	"fitmatch/backend/internal/models"
	"fitmatch/backend/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) {
	var err error

	customLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         customLogger,
		TranslateError: true, // surface unique-index violations as gorm.ErrDuplicatedKey
	})
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	logger.Info("database connection established")

	if err := Migrate(DB); err != nil {
		logger.Fatal("failed to migrate database", "error", err)
	}

	logger.Info("database migrated successfully")
}

// Migrate runs schema migrations for all models. Split out so tests can
// migrate an in-memory database without connecting to postgres.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Relationship{},
		&models.Message{},
	)
}
