package db

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"devpress/models"
)

var (
	initOnce sync.Once
	conn     *gorm.DB
)

// Init initializes the global gorm connection and migrates the schema.
func Init() error {
	var initErr error
	initOnce.Do(func() {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			// Fallback for local docker-compose default
			dsn = fmt.Sprintf(
				"postgres://%s:%s@%s:%s/%s?sslmode=disable",
				envOr("POSTGRES_USER", "postgres"),
				envOr("POSTGRES_PASSWORD", "1234"),
				envOr("POSTGRES_HOST", "localhost"),
				envOr("POSTGRES_PORT", "5432"),
				envOr("POSTGRES_DB", "devpress"),
			)
		}

		gormLog := gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold:             1 * time.Second,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		)

		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
		if err != nil {
			initErr = fmt.Errorf("failed to connect to Postgres: %w", err)
			return
		}

		if err := Migrate(db); err != nil {
			initErr = err
			return
		}
		conn = db
		log.Println("Postgres connected and schema migrated")
	})
	return initErr
}

func Database() *gorm.DB { return conn }

// Migrate runs AutoMigrate for every entity.
// Slug uniqueness constraints live in the model tags, so migration is the
// only concurrency guard against duplicate creation races.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.Topic{},
		&models.Section{},
		&models.Lesson{},
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
