package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema DDL del checkout. Idempotente: cmd/seed lo aplica en cada arranque.
const schema = `
CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price       NUMERIC(14,2) NOT NULL CHECK (price > 0),
	stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
	base_fee    NUMERIC(14,2) NOT NULL DEFAULT 0,
	image_url   TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS customers (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	phone      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS transactions (
	id                      TEXT PRIMARY KEY,
	customer_id             TEXT NOT NULL REFERENCES customers(id),
	product_id              TEXT NOT NULL REFERENCES products(id),
	product_amount          DOUBLE PRECISION NOT NULL,
	base_fee                DOUBLE PRECISION NOT NULL,
	delivery_fee            DOUBLE PRECISION NOT NULL,
	total_amount            DOUBLE PRECISION NOT NULL,
	status                  TEXT NOT NULL,
	payment_method          TEXT NOT NULL,
	provider_transaction_id TEXT,
	provider_reference      TEXT,
	card_last_four          TEXT,
	card_brand              TEXT,
	status_message          TEXT,
	created_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed_at            TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions (customer_id);
CREATE INDEX IF NOT EXISTS idx_transactions_provider ON transactions (provider_transaction_id);

CREATE TABLE IF NOT EXISTS deliveries (
	id             TEXT PRIMARY KEY,
	transaction_id TEXT NOT NULL UNIQUE REFERENCES transactions(id),
	address        TEXT NOT NULL,
	city           TEXT NOT NULL,
	postal_code    TEXT NOT NULL DEFAULT '',
	phone          TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	role          TEXT NOT NULL,
	status        TEXT NOT NULL DEFAULT 'active',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema crea las tablas del checkout si no existen.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("aplicar schema: %w", err)
	}
	return nil
}
