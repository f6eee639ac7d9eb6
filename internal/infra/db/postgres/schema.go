package postgres

// Schema is the full DDL for the order store. Statements are idempotent so
// applying it on every start is safe.
const Schema = `
CREATE TABLE IF NOT EXISTS orders (
    id             TEXT PRIMARY KEY,
    price          DOUBLE PRECISION NOT NULL,
    currency       TEXT NOT NULL,
    customer_name  TEXT NOT NULL DEFAULT '',
    customer_email TEXT NOT NULL DEFAULT '',
    status         TEXT NOT NULL DEFAULT 'pending',
    created_at     TIMESTAMPTZ NOT NULL,
    updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS order_notes (
    id         TEXT PRIMARY KEY,
    order_id   TEXT NOT NULL REFERENCES orders(id),
    note       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_order_notes_order_id ON order_notes(order_id);
`
