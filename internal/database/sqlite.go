package database

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Config holds database configuration
type Config struct {
	Path string
}

// busyTimeoutMs is how long a connection waits on a locked database
const busyTimeoutMs = 5000

// DSN builds the connection string. Pragmas go in the DSN so the driver
// applies them to every pooled connection, not only the first one.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", path, busyTimeoutMs)
}

// Open opens a sqlite database and applies the connection settings.
// The caller owns the returned handle and must close it.
func Open(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite", DSN(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithField("path", cfg.Path).Info("Database initialized successfully")
	return db, nil
}

// OpenAndMigrate opens the database and runs all pending migrations
func OpenAndMigrate(cfg Config) (*sql.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := NewMigrationManager(db).RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
