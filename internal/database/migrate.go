package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema bootstrap. Identifiers are short prefixed strings (BKI-XXXXXX etc.),
// money columns are NUMERIC so totals stay exact.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id     VARCHAR(10) PRIMARY KEY,
		full_name   VARCHAR(100) NOT NULL,
		email       VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		event_id    VARCHAR(10) PRIMARY KEY,
		event_name  VARCHAR(100) NOT NULL,
		description VARCHAR(255) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS venues (
		venue_id   VARCHAR(10) PRIMARY KEY,
		event_id   VARCHAR(10) NOT NULL UNIQUE REFERENCES events (event_id),
		location   VARCHAR(100) NOT NULL,
		maps_link  VARCHAR(255) NOT NULL DEFAULT '',
		capacity   INTEGER NOT NULL CHECK (capacity >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS ticket_prices (
		ticket_price_id VARCHAR(10) PRIMARY KEY,
		event_id        VARCHAR(10) NOT NULL REFERENCES events (event_id),
		category        VARCHAR(50) NOT NULL,
		price           NUMERIC(12,2) NOT NULL CHECK (price >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS wallets (
		wallet_id VARCHAR(10) PRIMARY KEY,
		user_id   VARCHAR(10) NOT NULL UNIQUE REFERENCES users (user_id),
		balance   NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (balance >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		booking_id   VARCHAR(10) PRIMARY KEY,
		event_id     VARCHAR(10) NOT NULL REFERENCES events (event_id),
		user_id      VARCHAR(10) NOT NULL REFERENCES users (user_id),
		booked_at    TIMESTAMPTZ NOT NULL,
		status       VARCHAR(20) NOT NULL,
		ticket_count INTEGER NOT NULL CHECK (ticket_count > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS booking_payments (
		payment_id VARCHAR(10) PRIMARY KEY,
		booking_id VARCHAR(10) NOT NULL UNIQUE REFERENCES bookings (booking_id),
		amount     NUMERIC(12,2) NOT NULL CHECK (amount >= 0),
		status     VARCHAR(20) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_event ON bookings (event_id)`,
}

// Migrate creates all tables if they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
