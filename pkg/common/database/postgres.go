package database

import (
	"fmt"

	"github.com/labelworks/labeler/pkg/common/config"
	"github.com/labelworks/labeler/pkg/common/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens a Postgres connection from the supplied config. Connections
// are injected into repositories by the caller rather than held in a
// package-level singleton, so tests can substitute their own stores.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.PostgresHost,
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.PostgresDB,
		cfg.PostgresPort,
		cfg.PostgresSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	logger.Log.Info("Connected to PostgreSQL")
	return db, nil
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
