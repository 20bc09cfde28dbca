package detector_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restodash/lossledger/internal/detector"
	"github.com/restodash/lossledger/internal/domain"
)

func ptrTime(t time.Time) *time.Time {
	return &t
}

func TestDetectLosses(t *testing.T) {
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	expired := now.AddDate(0, 0, -4)

	tests := []struct {
		name  string
		items []domain.InventoryItem
		want  int
	}{
		{
			name: "expired item with stock is flagged",
			items: []domain.InventoryItem{
				{ID: "x1", Name: "Saumon frais", CurrentStock: decimal.NewFromInt(2), UnitPrice: decimal.NewFromFloat(28.5), Unit: "kg", ExpiryDate: ptrTime(expired), Category: "Poissons"},
			},
			want: 1,
		},
		{
			name: "item without expiry date is skipped",
			items: []domain.InventoryItem{
				{ID: "x2", Name: "Sel", CurrentStock: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(1), Unit: "kg", ExpiryDate: nil, Category: "Epicerie"},
			},
			want: 0,
		},
		{
			name: "item expiring exactly at scan time is not flagged",
			items: []domain.InventoryItem{
				{ID: "x3", Name: "Lait", CurrentStock: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(2), Unit: "l", ExpiryDate: ptrTime(now), Category: "Produits laitiers"},
			},
			want: 0,
		},
		{
			name: "item expiring in the future is not flagged",
			items: []domain.InventoryItem{
				{ID: "x4", Name: "Boeuf", CurrentStock: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(20), Unit: "kg", ExpiryDate: ptrTime(now.AddDate(0, 0, 2)), Category: "Viandes"},
			},
			want: 0,
		},
		{
			name: "zero stock never produces an event",
			items: []domain.InventoryItem{
				{ID: "x5", Name: "Crevettes", CurrentStock: decimal.Zero, UnitPrice: decimal.NewFromInt(22), Unit: "kg", ExpiryDate: ptrTime(expired), Category: "Poissons"},
			},
			want: 0,
		},
		{
			name: "zero price never produces an event",
			items: []domain.InventoryItem{
				{ID: "x6", Name: "Persil offert", CurrentStock: decimal.NewFromInt(1), UnitPrice: decimal.Zero, Unit: "kg", ExpiryDate: ptrTime(expired), Category: "Herbes"},
			},
			want: 0,
		},
		{
			name:  "empty snapshot",
			items: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detector.DetectLosses(tt.items, now)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestDetectLossesCandidateValues(t *testing.T) {
	now := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	items := []domain.InventoryItem{
		{
			ID:           "x1",
			Name:         "Saumon frais",
			CurrentStock: decimal.NewFromInt(2),
			UnitPrice:    decimal.NewFromFloat(28.5),
			Unit:         "kg",
			ExpiryDate:   &expiry,
			Category:     "Poissons",
		},
	}

	got := detector.DetectLosses(items, now)
	require.Len(t, got, 1)

	event := got[0]
	assert.Equal(t, "x1", event.IngredientID)
	assert.Equal(t, "Saumon frais", event.IngredientName)
	assert.Equal(t, "Poissons", event.Category)
	assert.Equal(t, "kg", event.Unit)
	assert.True(t, event.TotalLoss.Equal(decimal.NewFromFloat(57.0)), "total loss = %s", event.TotalLoss)
	assert.Equal(t, expiry, event.ExpiryDate)
	assert.Equal(t, now, event.LossDate)
	assert.Equal(t, domain.LossReasonExpiration, event.Reason)
	assert.NoError(t, event.Validate())
}

func TestDetectLossesIsPure(t *testing.T) {
	now := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 0, -1)

	items := []domain.InventoryItem{
		{ID: "x1", Name: "Burrata", CurrentStock: decimal.NewFromInt(10), UnitPrice: decimal.NewFromFloat(4.5), Unit: "pcs", ExpiryDate: &expiry, Category: "Produits laitiers"},
	}

	first := detector.DetectLosses(items, now)
	second := detector.DetectLosses(items, now)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.True(t, first[0].TotalLoss.Equal(second[0].TotalLoss))
	assert.Equal(t, first[0].IngredientID, second[0].IngredientID)
}
