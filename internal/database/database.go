package database

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"expenis/internal/logger"
	"expenis/internal/models"
)

// Manager handles database operations
type Manager struct {
	db *gorm.DB
}

// NewManager opens the SQLite database at the given path and configures the
// connection pool. The bot and the API share one database file.
func NewManager(path string) (*Manager, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{db: db}, nil
}

// Migrate creates or updates the schema for all models.
func (m *Manager) Migrate() error {
	logger.Get().Info("Running database migrations...")

	if err := m.db.AutoMigrate(
		&models.Account{},
		&models.Category{},
		&models.Transaction{},
		&models.Session{},
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// Close closes the underlying connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}
