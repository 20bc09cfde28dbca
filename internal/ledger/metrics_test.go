package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/restodash/lossledger/internal/domain"
	"github.com/restodash/lossledger/internal/ledger"
)

func event(total float64) domain.LossEvent {
	return domain.LossEvent{
		IngredientID:   "x",
		IngredientName: "x",
		TotalLoss:      decimal.NewFromFloat(total),
		LossDate:       time.Now(),
		Reason:         domain.LossReasonExpiration,
	}
}

func TestProjectMetricsEmptyLedger(t *testing.T) {
	m := ledger.ProjectMetrics(decimal.NewFromInt(1000), decimal.NewFromFloat(68.5), nil)

	assert.True(t, m.TotalRevenue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, m.TotalLosses.IsZero())
	assert.True(t, m.LossPercentage.IsZero())
	assert.True(t, m.GrossMargin.Equal(decimal.NewFromFloat(68.5)))
}

func TestProjectMetricsSingleLoss(t *testing.T) {
	m := ledger.ProjectMetrics(decimal.NewFromInt(1000), decimal.NewFromInt(70), []domain.LossEvent{event(100)})

	assert.True(t, m.TotalRevenue.Equal(decimal.NewFromInt(900)), "revenue = %s", m.TotalRevenue)
	assert.True(t, m.TotalLosses.Equal(decimal.NewFromInt(100)))
	// 100 / (900 + 100) * 100 = 10.00
	assert.True(t, m.LossPercentage.Equal(decimal.NewFromInt(10)), "loss pct = %s", m.LossPercentage)
	// 70 - 100/900*100 = 58.89 after rounding
	assert.Equal(t, "58.89", m.GrossMargin.StringFixed(2))
}

func TestProjectMetricsLossesAreAdditive(t *testing.T) {
	events := []domain.LossEvent{event(10), event(25.5), event(0.25), event(100)}

	m := ledger.ProjectMetrics(decimal.NewFromInt(5000), decimal.NewFromInt(70), events)

	assert.True(t, m.TotalLosses.Equal(decimal.NewFromFloat(135.75)), "losses = %s", m.TotalLosses)
}

func TestProjectMetricsRevenueNeverNegative(t *testing.T) {
	events := []domain.LossEvent{event(400), event(400), event(400), event(400)}

	m := ledger.ProjectMetrics(decimal.NewFromInt(1000), decimal.NewFromInt(70), events)

	assert.False(t, m.TotalRevenue.IsNegative())
	assert.True(t, m.TotalRevenue.IsZero())
	assert.True(t, m.TotalLosses.Equal(decimal.NewFromInt(1600)))
	// Everything was lost, margin collapses to zero.
	assert.True(t, m.GrossMargin.IsZero())
	assert.Equal(t, "100", m.LossPercentage.String())
}

func TestProjectMetricsMarginNeverNegative(t *testing.T) {
	// One loss large enough to push the margin formula below zero.
	m := ledger.ProjectMetrics(decimal.NewFromInt(1000), decimal.NewFromInt(20), []domain.LossEvent{event(500)})

	assert.False(t, m.GrossMargin.IsNegative())
	assert.True(t, m.GrossMargin.IsZero())
}

func TestProjectMetricsLossPercentageRounded(t *testing.T) {
	m := ledger.ProjectMetrics(decimal.NewFromInt(1000), decimal.NewFromInt(70), []domain.LossEvent{event(1)})

	// 1 / (999 + 1) * 100 = 0.1
	assert.Equal(t, "0.10", m.LossPercentage.StringFixed(2))
}
