package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutriplan/internal/config"
	applog "nutriplan/internal/log"
	"nutriplan/models"
)

var DB *gorm.DB

// ErrNotConfigured is returned by Ping when no database handle is available.
var ErrNotConfigured = errors.New("database not configured")

// dialectorFor picks the driver from the URL. "sqlite:" and "file:" URLs open
// a local sqlite database; anything else is handed to postgres.
func dialectorFor(url string) gorm.Dialector {
	switch {
	case strings.HasPrefix(url, "sqlite:"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite:"))
	case strings.HasPrefix(url, "file:"):
		return sqlite.Open(url)
	default:
		return postgres.Open(url)
	}
}

// Initialize opens the database described by cfg and applies pool limits.
func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, fmt.Errorf("database URL must not be empty")
	}

	dialector := dialectorFor(url)
	gormCfg := &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialector.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	applog.Debug(context.Background(), "database opened", "driver", dialector.Name())
	return db, nil
}

// AutoMigrate creates the account, profile, menu and weight log tables. The
// menu table carries the unique (created_by, target_date) index that backs
// plan upserts; the weight log is unique per (user_id, entry_date).
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.DailyMenu{},
		&models.WeightEntry{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if !db.Migrator().HasIndex(&models.DailyMenu{}, menuOwnerDateIndex) {
		return fmt.Errorf("auto migrate: missing index %s", menuOwnerDateIndex)
	}
	if !db.Migrator().HasIndex(&models.WeightEntry{}, weightUserDateIndex) {
		return fmt.Errorf("auto migrate: missing index %s", weightUserDateIndex)
	}
	return nil
}

// Configure opens and migrates the database and stores it as the package default.
func Configure(cfg config.DatabaseConfig) (*gorm.DB, error) {
	database, err := Initialize(cfg)
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(database); err != nil {
		return nil, err
	}

	DB = database
	return database, nil
}

func MustConfigure(cfg config.DatabaseConfig) *gorm.DB {
	database, err := Configure(cfg)
	if err != nil {
		panic(err)
	}
	return database
}

func Get() *gorm.DB {
	return DB
}

// Ping checks that the database still answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return ErrNotConfigured
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
