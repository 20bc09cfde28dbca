package postgres

import (
	"context"

	"github.com/restodash/lossledger/internal/domain"
)

type inventoryRepository struct {
	db *DB
}

// NewInventoryRepository reads the inventory_items table owned by the
// inventory CRUD system. Read-only by contract.
func NewInventoryRepository(db *DB) *inventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Snapshot(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `
		SELECT id, name, current_stock, unit_price, unit, expiry_date, category
		FROM inventory_items
		ORDER BY name ASC
	`

	var items []domain.InventoryItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, domain.NewPersistenceError("inventory snapshot", err)
	}

	return items, nil
}
