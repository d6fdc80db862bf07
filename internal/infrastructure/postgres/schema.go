package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL esquema mínimo de la aplicación. Idempotente: se aplica en cada
// arranque. La unicidad del SKU y la no-negatividad del stock viven aquí como
// verificación autoritativa; el cascade borra los movimientos de un producto.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS products (
	id         BIGSERIAL PRIMARY KEY,
	sku        VARCHAR(64)  NOT NULL UNIQUE,
	name       VARCHAR(200) NOT NULL,
	category   VARCHAR(100) NOT NULL DEFAULT '',
	supplier   VARCHAR(100) NOT NULL DEFAULT '',
	quantity   INTEGER      NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	min_stock  INTEGER      NOT NULL DEFAULT 0 CHECK (min_stock >= 0),
	cost       NUMERIC(12,2) NOT NULL DEFAULT 0,
	price      NUMERIC(12,2) NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ  NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS movements (
	id          BIGSERIAL PRIMARY KEY,
	product_id  BIGINT       NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	type        VARCHAR(10)  NOT NULL CHECK (type IN ('entry', 'exit')),
	quantity    INTEGER      NOT NULL CHECK (quantity >= 1),
	occurred_at TIMESTAMPTZ  NOT NULL DEFAULT now(),
	note        VARCHAR(500) NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_movements_product_recent
	ON movements (product_id, occurred_at DESC, id DESC);

CREATE TABLE IF NOT EXISTS notes (
	id         BIGSERIAL PRIMARY KEY,
	content    VARCHAR(500) NOT NULL,
	created_at TIMESTAMPTZ  NOT NULL DEFAULT now()
);
`

// Migrate aplica el esquema al arrancar (equivalente a un create-all).
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
