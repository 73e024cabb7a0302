// Package postgres opens the optional archive database. The archive receives
// completed orders and their feedback for later reporting; the dispatch core
// never reads it back.
package postgres

import (
	"errors"
	"fmt"

	"courierbot/internal/adapters/out/postgres/archiverepo"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotConfigured is returned by Open when no host is configured.
var ErrNotConfigured = errors.New("archive database is not configured")

// Config holds the connection settings of the archive database.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Enabled reports whether enough settings are present to connect.
func (c Config) Enabled() bool {
	return c.Host != "" && c.Name != ""
}

// DSN renders the settings as a libpq keyword/value connection string.
func (c Config) DSN() string {
	port := c.Port
	if port == "" {
		port = "5432"
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, port, c.User, c.Password, c.Name, sslMode)
}

// Open connects to the archive database and migrates its schema.
func Open(cfg Config) (*gorm.DB, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to archive database: %w", err)
	}

	if err = archiverepo.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate archive schema: %w", err)
	}

	return db, nil
}
