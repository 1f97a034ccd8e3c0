package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// Cuentas semilla creadas en el primer bootstrap.
const (
	SeedAdminEmail       = "administrador@facturas.com"
	SeedAdminPassword    = "admin"
	SeedStandardEmail    = "usuario@facturas.com"
	SeedStandardPassword = "user"
)

// schema DDL completo. CREATE TABLE IF NOT EXISTS: idempotente en cada arranque.
// Los CHECK replican las reglas de negocio mínimas (precios y stock no negativos,
// cantidades positivas); los FK protegen la integridad factura↔cliente↔producto.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'standard',
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS customers (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	address    TEXT NOT NULL DEFAULT '',
	phone      TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	unit_price NUMERIC NOT NULL DEFAULT 0 CHECK (unit_price >= 0),
	stock      INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS invoices (
	id          TEXT PRIMARY KEY,
	customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE RESTRICT,
	number      TEXT NOT NULL UNIQUE,
	date        TIMESTAMP NOT NULL,
	total       NUMERIC NOT NULL DEFAULT 0 CHECK (total >= 0),
	created_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS invoice_details (
	id         TEXT PRIMARY KEY,
	invoice_id TEXT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
	product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
	quantity   INTEGER NOT NULL CHECK (quantity > 0),
	unit_price NUMERIC NOT NULL CHECK (unit_price >= 0),
	subtotal   NUMERIC NOT NULL CHECK (subtotal >= 0)
);

CREATE INDEX IF NOT EXISTS idx_invoices_customer ON invoices(customer_id);
CREATE INDEX IF NOT EXISTS idx_invoices_date     ON invoices(date);
CREATE INDEX IF NOT EXISTS idx_details_invoice   ON invoice_details(invoice_id);
CREATE INDEX IF NOT EXISTS idx_details_product   ON invoice_details(product_id);
`

// Bootstrap crea el esquema si no existe y siembra los datos iniciales.
// Un fallo aquí es fatal para el arranque (lo decide el caller).
func Bootstrap(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	if err := seed(ctx, db); err != nil {
		return fmt.Errorf("seed inicial: %w", err)
	}
	return nil
}

// seed inserta, si faltan, las dos cuentas semilla (admin y standard),
// un cliente demo y un producto demo. Idempotente.
func seed(ctx context.Context, db *sql.DB) error {
	now := time.Now()

	seedUsers := []struct {
		email, password, role string
	}{
		{SeedAdminEmail, SeedAdminPassword, entity.RoleAdmin},
		{SeedStandardEmail, SeedStandardPassword, entity.RoleStandard},
	}
	for _, su := range seedUsers {
		var exists int
		err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, su.email).Scan(&exists)
		if err != nil {
			return fmt.Errorf("consultar usuario semilla: %w", err)
		}
		if exists > 0 {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashear password semilla: %w", err)
		}
		_, err = db.ExecContext(ctx,
			`INSERT INTO users (id, email, password_hash, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), su.email, string(hash), su.role, now, now,
		)
		if err != nil {
			return fmt.Errorf("insertar usuario semilla: %w", err)
		}
	}

	var customers int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&customers); err != nil {
		return err
	}
	if customers == 0 {
		_, err := db.ExecContext(ctx,
			`INSERT INTO customers (id, name, address, phone, email, created_at, updated_at) VALUES (?, ?, '', '', ?, ?, ?)`,
			uuid.New().String(), "Cliente demo", "cliente@demo.com", now, now,
		)
		if err != nil {
			return fmt.Errorf("insertar cliente demo: %w", err)
		}
	}

	var products int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&products); err != nil {
		return err
	}
	if products == 0 {
		_, err := db.ExecContext(ctx,
			`INSERT INTO products (id, name, unit_price, stock, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), "Producto demo", decimal.NewFromInt(100), 10, now, now,
		)
		if err != nil {
			return fmt.Errorf("insertar producto demo: %w", err)
		}
	}
	return nil
}

// Reset borra los datos transaccionales conservando la tabla de usuarios.
// El orden respeta los FK (detalles → facturas → productos → clientes).
func Reset(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"invoice_details", "invoices", "products", "customers"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("limpiar %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}
