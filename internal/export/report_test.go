package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restodash/lossledger/internal/domain"
)

func TestRenderCSV(t *testing.T) {
	events := []domain.LossEvent{
		{
			IngredientID:   "x1",
			IngredientName: "Saumon frais",
			Category:       "Poissons",
			Quantity:       decimal.NewFromInt(2),
			Unit:           "kg",
			UnitPrice:      decimal.NewFromFloat(28.5),
			TotalLoss:      decimal.NewFromFloat(57.0),
			ExpiryDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			LossDate:       time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
			Reason:         domain.LossReasonExpiration,
		},
	}

	payload, err := renderCSV(events)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(payload))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Ingredient", records[0][0])
	assert.Equal(t, []string{"Saumon frais", "Poissons", "2", "kg", "28.50", "57.00", "2024-01-01", "2024-01-05", "expiration"}, records[1])
}

func TestRenderCSVEmptyLedger(t *testing.T) {
	payload, err := renderCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(payload))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
