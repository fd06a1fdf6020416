package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shotam27/NoGambleMonsterBattle/internal/config"
	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
	"github.com/shotam27/NoGambleMonsterBattle/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenAndMigrate opens the sqlite database at dataSourceName and brings the
// battle schema up to date.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	if !strings.HasPrefix(dataSourceName, "file:") && dataSourceName != ":memory:" {
		if dir := filepath.Dir(dataSourceName); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
			}
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite serialises writers anyway; one connection also keeps
	// in-memory databases shared.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&game.Battle{}, &game.Side{}, &game.PartyMember{}, &game.PlayerProfile{}); err != nil {
		return nil, err
	}
	return db, nil
}

// Open returns the repository for the configured driver.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Repository, error) {
	logging.Info("opening battle store", logging.Fields{constants.LogFieldDriver: cfg.Driver})
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := OpenAndMigrate(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return NewSQLiteRepository(db), nil
	case config.DriverPostgres:
		if err := RunMigrations(ctx, cfg.DSN); err != nil {
			return nil, err
		}
		return NewPostgresRepository(ctx, cfg.DSN)
	}
	return nil, fmt.Errorf("unknown database driver '%s'", cfg.Driver)
}
