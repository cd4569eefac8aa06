package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the primary database. A dsn prefixed with sqlite:// opens a
// local SQLite file (the default for single-instance deployments); anything
// else is treated as a PostgreSQL DSN.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database dsn must not be empty")
	}

	var dialector gorm.Dialector
	if path, ok := strings.CutPrefix(dsn, "sqlite://"); ok {
		dialector = sqlite.Open(path)
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
