// Package testutil содержит общие вспомогательные функции для тестов.
package testutil

import (
	"path/filepath"
	"testing"

	"itinerary/internal/config"
	"itinerary/internal/database"

	"github.com/jmoiron/sqlx"
)

// NewDB создает временную SQLite-базу с примененными миграциями.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()
	cfg := &config.Config{DBDriver: "sqlite3", DBPath: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("database.Open() failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ClosedDB возвращает базу, соединение с которой уже закрыто:
// любой запрос к ней завершается ошибкой.
func ClosedDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db := NewDB(t)
	db.Close()
	return db
}
