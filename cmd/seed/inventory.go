package main

import (
	"fmt"
	"log"
	"time"

	"github.com/urfave/cli/v2"
)

type seedItem struct {
	id         string
	name       string
	stock      float64
	unitPrice  float64
	unit       string
	expiryDays int // relative to now; negative means already expired
	perishable bool
	category   string
}

var demoItems = []seedItem{
	{"ing-001", "Saumon frais", 2, 28.5, "kg", -3, true, "Poissons"},
	{"ing-002", "Filet de boeuf", 4.5, 32.0, "kg", 5, true, "Viandes"},
	{"ing-003", "Creme fraiche", 6, 3.2, "l", -1, true, "Produits laitiers"},
	{"ing-004", "Tomates grappe", 12, 2.8, "kg", 2, true, "Legumes"},
	{"ing-005", "Burrata", 10, 4.5, "pcs", -2, true, "Produits laitiers"},
	{"ing-006", "Basilic frais", 0.4, 18.0, "kg", -1, true, "Herbes"},
	{"ing-007", "Huile d'olive", 8, 9.5, "l", 0, false, "Epicerie"},
	{"ing-008", "Farine T55", 25, 1.1, "kg", 180, true, "Epicerie"},
	{"ing-009", "Crevettes roses", 3, 22.0, "kg", -4, true, "Poissons"},
	{"ing-010", "Poulet fermier", 7, 11.5, "kg", 3, true, "Viandes"},
}

func runInventorySeed(c *cli.Context) error {
	db := dbFrom(c)
	expiredOnly := c.Bool("expired-only")

	query := `
		INSERT INTO inventory_items (id, name, current_stock, unit_price, unit, expiry_date, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			current_stock = EXCLUDED.current_stock,
			unit_price = EXCLUDED.unit_price,
			unit = EXCLUDED.unit,
			expiry_date = EXCLUDED.expiry_date,
			category = EXCLUDED.category
	`

	stmt, err := db.PrepareContext(c.Context, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	seeded := 0
	for _, item := range demoItems {
		if expiredOnly && item.expiryDays >= 0 {
			continue
		}

		var expiry interface{}
		if item.perishable {
			expiry = time.Now().AddDate(0, 0, item.expiryDays)
		}

		if _, err := stmt.ExecContext(
			c.Context,
			item.id,
			item.name,
			item.stock,
			item.unitPrice,
			item.unit,
			expiry,
			item.category,
		); err != nil {
			return fmt.Errorf("failed to seed item %s: %w", item.id, err)
		}
		seeded++
	}

	log.Printf("seeded %d inventory items", seeded)
	return nil
}
