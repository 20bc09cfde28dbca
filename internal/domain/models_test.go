package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/restodash/lossledger/internal/domain"
)

func validEvent() domain.LossEvent {
	return domain.LossEvent{
		IngredientID:   "x1",
		IngredientName: "Saumon frais",
		Category:       "Poissons",
		Quantity:       decimal.NewFromInt(2),
		Unit:           "kg",
		UnitPrice:      decimal.NewFromFloat(28.5),
		TotalLoss:      decimal.NewFromFloat(57.0),
		ExpiryDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		LossDate:       time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Reason:         domain.LossReasonExpiration,
	}
}

func TestLossEventValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*domain.LossEvent)
		wantField string
	}{
		{"valid", func(e *domain.LossEvent) {}, ""},
		{"missing ingredient id", func(e *domain.LossEvent) { e.IngredientID = "" }, "ingredient_id"},
		{"missing name", func(e *domain.LossEvent) { e.IngredientName = "" }, "ingredient_name"},
		{"zero loss date", func(e *domain.LossEvent) { e.LossDate = time.Time{} }, "loss_date"},
		{"negative quantity", func(e *domain.LossEvent) { e.Quantity = decimal.NewFromInt(-1) }, "quantity"},
		{"negative unit price", func(e *domain.LossEvent) { e.UnitPrice = decimal.NewFromInt(-1) }, "unit_price"},
		{"negative total loss", func(e *domain.LossEvent) { e.TotalLoss = decimal.NewFromInt(-1) }, "total_loss"},
		{"missing reason", func(e *domain.LossEvent) { e.Reason = "" }, "reason"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := validEvent()
			tt.mutate(&event)

			err := event.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var vErr *domain.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestDedupDayUsesUTCCalendarDay(t *testing.T) {
	event := validEvent()
	assert.Equal(t, "2024-01-05", event.DedupDay())

	// 23:30 in UTC+2 is still the previous UTC day.
	loc := time.FixedZone("UTC+2", 2*60*60)
	event.LossDate = time.Date(2024, 1, 6, 1, 30, 0, 0, loc)
	assert.Equal(t, "2024-01-05", event.DedupDay())
}
