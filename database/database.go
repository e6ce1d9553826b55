package database

import (
	"fmt"

	"estate-cms/internal/domain/content"
	"estate-cms/internal/domain/projects"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table AutoMigrate manages.
func Models() []any {
	return append(content.Models(), &projects.Project{})
}

// InitDB connects to postgres and migrates every model.
func InitDB(dsn string, log *logrus.Logger) (*gorm.DB, error) {
	gormLog := logger.Default.LogMode(logger.Warn)
	if log.IsLevelEnabled(logrus.DebugLevel) {
		gormLog = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// REQUIRED for UUID generation
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return nil, fmt.Errorf("enable pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	log.WithField("tables", len(Models())).Info("connected and migrated")
	return db, nil
}
