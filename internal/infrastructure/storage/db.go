package storage

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/foodlens/backend/internal/pkg/logger"
)

// Config selects the database driver and connection string
type Config struct {
	Driver string // "sqlite" or "postgres"
	DSN    string
}

// zapWriter routes gorm's log lines into the application logger
type zapWriter struct {
	log *logger.Logger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.log.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Open connects to the configured database and migrates the schema
func Open(cfg Config, logg *logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}

	gormLog := gormLogger.New(
		zapWriter{log: logg.With("component", "gorm")},
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == "sqlite" {
		// sqlite allows a single writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logg.Info("database ready", "driver", cfg.Driver)
	return db, nil
}

// AutoMigrate creates or updates every table used by the repositories
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&profileRow{},
		&trackedFoodRow{},
		&historyRow{},
		&favoriteRow{},
		&comparisonRow{},
	)
}
