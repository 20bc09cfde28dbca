// Package memory provides in-memory repository implementations used by
// tests and by the server's demo mode, where no database is attached.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/restodash/lossledger/internal/domain"
)

type LossRepository struct {
	mu     sync.RWMutex
	nextID int64
	events []domain.LossEvent
	byDay  map[string]struct{}
}

func NewLossRepository() *LossRepository {
	return &LossRepository{
		nextID: 1,
		byDay:  make(map[string]struct{}),
	}
}

func dedupKey(ingredientID, day string) string {
	return ingredientID + "|" + day
}

func (r *LossRepository) Append(ctx context.Context, event *domain.LossEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dedupKey(event.IngredientID, event.DedupDay())
	if _, ok := r.byDay[key]; ok {
		return domain.ErrDuplicateLoss
	}

	event.ID = r.nextID
	r.nextID++
	r.events = append(r.events, *event)
	r.byDay[key] = struct{}{}

	return nil
}

func (r *LossRepository) EventsSince(ctx context.Context, since time.Time) ([]domain.LossEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Copy-on-read so callers never observe a partially applied write.
	matched := make([]domain.LossEvent, 0)
	for _, e := range r.events {
		if !e.LossDate.Before(since) {
			matched = append(matched, e)
		}
	}

	return matched, nil
}

func (r *LossRepository) AllEvents(ctx context.Context) ([]domain.LossEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.LossEvent, len(r.events))
	copy(all, r.events)

	return all, nil
}

func (r *LossRepository) AggregateByCategory(ctx context.Context, since time.Time) ([]domain.CategoryLoss, error) {
	events, err := r.EventsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	buckets := make([]domain.CategoryLoss, 0)
	for _, e := range events {
		i, ok := index[e.Category]
		if !ok {
			i = len(buckets)
			index[e.Category] = i
			buckets = append(buckets, domain.CategoryLoss{Category: e.Category})
		}
		buckets[i].TotalLoss = buckets[i].TotalLoss.Add(e.TotalLoss)
		buckets[i].ItemCount++
	}

	return buckets, nil
}

func (r *LossRepository) HasEventOn(ctx context.Context, ingredientID string, day string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byDay[dedupKey(ingredientID, day)]
	return ok, nil
}

func (r *LossRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = nil
	r.byDay = make(map[string]struct{})

	return nil
}

// InventoryRepository serves a fixed snapshot.
type InventoryRepository struct {
	mu    sync.RWMutex
	items []domain.InventoryItem
}

func NewInventoryRepository(items []domain.InventoryItem) *InventoryRepository {
	return &InventoryRepository{items: items}
}

func (r *InventoryRepository) Snapshot(ctx context.Context) ([]domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.InventoryItem, len(r.items))
	copy(items, r.items)

	return items, nil
}

// SetItems replaces the snapshot, for demo-mode seeding.
func (r *InventoryRepository) SetItems(items []domain.InventoryItem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make([]domain.InventoryItem, len(items))
	copy(r.items, items)
}
