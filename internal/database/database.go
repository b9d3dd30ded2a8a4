package database

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"

	"itinerary/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL драйвер
	_ "github.com/mattn/go-sqlite3" // SQLite драйвер для локального запуска и тестов
)

//go:embed migrations
var migrationsFS embed.FS

// Open подключается к хранилищу, выбранному в конфигурации, и применяет миграции.
func Open(cfg *config.Config) (*sqlx.DB, error) {
	if cfg.DBDriver == "sqlite3" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать каталог базы: %w", err)
		}
	}
	db, err := sqlx.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}
	if cfg.DBDriver == "sqlite3" {
		// SQLite допускает только одного писателя
		db.SetMaxOpenConns(1)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate применяет встроенные миграции для диалекта db.
// Каждый файл выполняется в отдельной транзакции; миграции идемпотентны.
func Migrate(db *sqlx.DB) error {
	dir := path.Join("migrations", db.DriverName())
	files, err := fs.Glob(migrationsFS, dir+"/*.sql")
	if err != nil {
		return fmt.Errorf("ошибка чтения миграций: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("нет миграций для драйвера %q", db.DriverName())
	}
	sort.Strings(files)
	for _, file := range files {
		if err := applyFile(db, file); err != nil {
			return fmt.Errorf("миграция %s завершилась ошибкой: %w", file, err)
		}
		log.Printf("Миграция %s применена.", path.Base(file))
	}
	return nil
}

func applyFile(db *sqlx.DB, file string) error {
	content, err := migrationsFS.ReadFile(file)
	if err != nil {
		return err
	}
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(content)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
