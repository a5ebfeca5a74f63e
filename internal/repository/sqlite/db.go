// Package sqlite реализует хранилище задач и заметок поверх SQLite (modernc.org/sqlite, без cgo).
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout фиксированной ширины, чтобы сортировка по TEXT совпадала с хронологической
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DB обертка над *sql.DB с общими для таблиц настройками
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// Open открывает (или создает) файл базы данных и применяет схему.
// Путь ":memory:" допустим только для одного соединения, что и настраивается ниже.
func Open(ctx context.Context, path string) (*DB, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating data dir: %w", err)
			}
		}
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	if path == ":memory:" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// SQLite сериализует запись, одно соединение исключает SQLITE_BUSY между своими же запросами
	db.SetMaxOpenConns(1)

	d := &DB{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
	if err := d.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Migrate применяет схему. Идемпотентна.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

// Ping проверяет доступность базы данных
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close закрывает соединение
func (d *DB) Close() error {
	return d.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// scanner общий интерфейс для *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}
