// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
)

// Open returns a fresh schema. The pool is pinned to one connection so the
// in-memory database lives as long as the test and writers serialize.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := dbpkg.GormConfig()
	cfg.PrepareStmt = false
	cfg.Logger = logger.Discard

	db, err := gorm.Open(sqlite.Open(":memory:"), cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
