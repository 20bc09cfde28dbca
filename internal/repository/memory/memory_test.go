package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restodash/lossledger/internal/domain"
	"github.com/restodash/lossledger/internal/repository/memory"
)

func newEvent(id string, lossDate time.Time, total float64, category string) domain.LossEvent {
	return domain.LossEvent{
		IngredientID:   id,
		IngredientName: id,
		Category:       category,
		Quantity:       decimal.NewFromInt(1),
		UnitPrice:      decimal.NewFromFloat(total),
		TotalLoss:      decimal.NewFromFloat(total),
		ExpiryDate:     lossDate.AddDate(0, 0, -1),
		LossDate:       lossDate,
		Reason:         domain.LossReasonExpiration,
	}
}

func TestAppendAssignsSequentialIDs(t *testing.T) {
	repo := memory.NewLossRepository()
	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	first := newEvent("a", now, 10, "Poissons")
	second := newEvent("b", now, 20, "Viandes")

	require.NoError(t, repo.Append(context.Background(), &first))
	require.NoError(t, repo.Append(context.Background(), &second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestAppendEnforcesPerDayDedup(t *testing.T) {
	repo := memory.NewLossRepository()
	day := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	first := newEvent("a", day, 10, "Poissons")
	require.NoError(t, repo.Append(context.Background(), &first))

	sameDay := newEvent("a", day.Add(10*time.Hour), 10, "Poissons")
	assert.ErrorIs(t, repo.Append(context.Background(), &sameDay), domain.ErrDuplicateLoss)

	nextDay := newEvent("a", day.AddDate(0, 0, 1), 10, "Poissons")
	assert.NoError(t, repo.Append(context.Background(), &nextDay))

	exists, err := repo.HasEventOn(context.Background(), "a", "2024-02-01")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.HasEventOn(context.Background(), "a", "2024-02-03")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEventsSinceWindow(t *testing.T) {
	repo := memory.NewLossRepository()
	now := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	inWindow := newEvent("a", now.AddDate(0, 0, -5), 10, "Poissons")
	boundary := newEvent("b", now.AddDate(0, 0, -30), 20, "Viandes")
	outside := newEvent("c", now.AddDate(0, 0, -31), 30, "Legumes")

	require.NoError(t, repo.Append(context.Background(), &inWindow))
	require.NoError(t, repo.Append(context.Background(), &boundary))
	require.NoError(t, repo.Append(context.Background(), &outside))

	events, err := repo.EventsSince(context.Background(), now.AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Len(t, events, 2)

	ids := []string{events[0].IngredientID, events[1].IngredientID}
	assert.Contains(t, ids, "a")
	assert.Contains(t, ids, "b")
}

func TestAggregateByCategory(t *testing.T) {
	repo := memory.NewLossRepository()
	now := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	a := newEvent("a", now, 10, "Poissons")
	require.NoError(t, repo.Append(context.Background(), &a))
	b := newEvent("b", now, 15, "Poissons")
	require.NoError(t, repo.Append(context.Background(), &b))
	c := newEvent("c", now, 7, "Viandes")
	require.NoError(t, repo.Append(context.Background(), &c))

	buckets, err := repo.AggregateByCategory(context.Background(), now.AddDate(0, 0, -1))
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	byCategory := make(map[string]domain.CategoryLoss)
	for _, bucket := range buckets {
		byCategory[bucket.Category] = bucket
	}

	assert.True(t, byCategory["Poissons"].TotalLoss.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, 2, byCategory["Poissons"].ItemCount)
	assert.True(t, byCategory["Viandes"].TotalLoss.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, 1, byCategory["Viandes"].ItemCount)
}

func TestResetClearsEventsAndDedupIndex(t *testing.T) {
	repo := memory.NewLossRepository()
	now := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	a := newEvent("a", now, 10, "Poissons")
	require.NoError(t, repo.Append(context.Background(), &a))
	require.NoError(t, repo.Reset(context.Background()))

	events, err := repo.AllEvents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)

	// The dedup key must be released too.
	again := newEvent("a", now, 10, "Poissons")
	assert.NoError(t, repo.Append(context.Background(), &again))
}

func TestInventorySnapshotIsACopy(t *testing.T) {
	expiry := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	repo := memory.NewInventoryRepository([]domain.InventoryItem{
		{ID: "i1", Name: "Saumon", CurrentStock: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(28), Unit: "kg", ExpiryDate: &expiry, Category: "Poissons"},
	})

	snapshot, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot, 1)

	snapshot[0].Name = "mutated"

	fresh, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Saumon", fresh[0].Name)
}
