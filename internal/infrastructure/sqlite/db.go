// Package sqlite implementa la persistencia sobre un único archivo SQLite
// (driver puro Go modernc.org/sqlite, vía database/sql). El archivo se crea
// bajo demanda y la base serializa las escrituras con su propio locking.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/facturacion-api/pkg/config"
)

// Querier abstrae *sql.DB y *sql.Tx para que los repositorios
// funcionen igual dentro o fuera de una transacción.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// Open crea (si hace falta) el directorio del archivo y abre la base.
// Una sola conexión: SQLite serializa las escrituras y así se evita SQLITE_BUSY
// entre goroutines del servidor.
func Open(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de datos: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("abrir base: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return db, nil
}
