package main

import (
	"fmt"
	"log"

	"github.com/urfave/cli/v2"
)

// The unique index enforces the one-loss-per-ingredient-per-day rule in
// the database, so concurrent detection cycles cannot double-count an
// expired item.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		current_stock NUMERIC(20,4) NOT NULL DEFAULT 0,
		unit_price    NUMERIC(20,4) NOT NULL DEFAULT 0,
		unit          TEXT NOT NULL DEFAULT 'unit',
		expiry_date   TIMESTAMPTZ,
		category      TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS loss_events (
		id              BIGSERIAL PRIMARY KEY,
		ingredient_id   TEXT NOT NULL,
		ingredient_name TEXT NOT NULL,
		category        TEXT NOT NULL DEFAULT '',
		quantity        NUMERIC(20,4) NOT NULL CHECK (quantity >= 0),
		unit            TEXT NOT NULL DEFAULT 'unit',
		unit_price      NUMERIC(20,4) NOT NULL CHECK (unit_price >= 0),
		total_loss      NUMERIC(20,4) NOT NULL CHECK (total_loss >= 0),
		expiry_date     TIMESTAMPTZ NOT NULL,
		loss_date       TIMESTAMPTZ NOT NULL,
		reason          TEXT NOT NULL DEFAULT 'expiration'
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_loss_events_ingredient_day
		ON loss_events (ingredient_id, ((loss_date AT TIME ZONE 'UTC')::date))`,
	`CREATE INDEX IF NOT EXISTS idx_loss_events_loss_date
		ON loss_events (loss_date)`,
	`CREATE INDEX IF NOT EXISTS idx_loss_events_category
		ON loss_events (category)`,
}

func runSchema(c *cli.Context) error {
	db := dbFrom(c)

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(c.Context, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	log.Println("schema applied")
	return nil
}
