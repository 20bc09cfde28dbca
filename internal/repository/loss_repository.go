package repository

import (
	"context"
	"time"

	"github.com/restodash/lossledger/internal/domain"
)

// LossRepository is the append-only store behind the loss ledger.
// Implementations must enforce the one-loss-per-ingredient-per-day rule
// and report violations as domain.ErrDuplicateLoss.
type LossRepository interface {
	// Append stores one event and fills in its assigned ID.
	Append(ctx context.Context, event *domain.LossEvent) error
	// EventsSince returns events with loss_date >= since, oldest first.
	EventsSince(ctx context.Context, since time.Time) ([]domain.LossEvent, error)
	// AllEvents returns the full ledger, oldest first.
	AllEvents(ctx context.Context) ([]domain.LossEvent, error)
	// AggregateByCategory groups events with loss_date >= since.
	AggregateByCategory(ctx context.Context, since time.Time) ([]domain.CategoryLoss, error)
	// HasEventOn reports whether an event exists for the ingredient on
	// the given UTC calendar day (YYYY-MM-DD).
	HasEventOn(ctx context.Context, ingredientID string, day string) (bool, error)
	// Reset clears the ledger atomically. Demo and test use only.
	Reset(ctx context.Context) error
}

// InventoryRepository reads snapshots of the inventory owned by the
// external CRUD system. The loss service never writes inventory.
type InventoryRepository interface {
	Snapshot(ctx context.Context) ([]domain.InventoryItem, error)
}
