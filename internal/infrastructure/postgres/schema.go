package postgres

import "context"

// schema idempotente. seq da un orden estable a los listados "más reciente primero".
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		sku               TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		category          TEXT NOT NULL DEFAULT '',
		brand             TEXT NOT NULL DEFAULT '',
		purchase_price    NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (purchase_price >= 0),
		sale_price        NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (sale_price >= 0),
		stock             INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		reorder_threshold INTEGER NOT NULL DEFAULT 5 CHECK (reorder_threshold >= 0),
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_name ON products (name)`,
	`CREATE TABLE IF NOT EXISTS movements (
		seq            BIGSERIAL,
		id             UUID PRIMARY KEY,
		sku            TEXT NOT NULL REFERENCES products (sku),
		kind           TEXT NOT NULL CHECK (kind IN ('entrada', 'salida')),
		quantity       INTEGER NOT NULL CHECK (quantity > 0),
		reason         TEXT NOT NULL DEFAULT '',
		previous_stock INTEGER NOT NULL,
		new_stock      INTEGER NOT NULL CHECK (new_stock >= 0),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_recent ON movements (created_at DESC, seq DESC)`,
	`CREATE TABLE IF NOT EXISTS audit (
		seq        BIGSERIAL,
		id         UUID PRIMARY KEY,
		action     TEXT NOT NULL,
		detail     TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_recent ON audit (created_at DESC, seq DESC)`,
	`CREATE TABLE IF NOT EXISTS users (
		id             UUID PRIMARY KEY,
		username       TEXT NOT NULL UNIQUE,
		name           TEXT NOT NULL,
		role           TEXT NOT NULL CHECK (role IN ('admin', 'supervisor')),
		password_hash  TEXT NOT NULL,
		avatar         TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_access_at TIMESTAMPTZ
	)`,
}

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return storageErr("migrate", err)
		}
	}
	return nil
}
