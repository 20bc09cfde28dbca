package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/restodash/lossledger/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ProjectMetrics folds recorded losses over the configured revenue and
// gross-margin baseline. Metrics are never stored: every read replays
// the ledger, so they can never drift from it. Events must arrive in
// canonical ledger order (loss date, then id), which makes the
// margin fold deterministic.
//
// Per event, in order:
//  1. revenue is reduced by the loss, floored at zero
//  2. cumulative losses grow by the loss
//  3. gross margin shrinks by the loss relative to the reduced revenue,
//     floored at zero
//
// The loss percentage is losses / (revenue + losses) * 100, rounded to
// two decimals for display.
func ProjectMetrics(baseRevenue, baseMargin decimal.Decimal, events []domain.LossEvent) domain.FinancialMetrics {
	revenue := baseRevenue
	margin := baseMargin
	losses := decimal.Zero

	for _, e := range events {
		revenue = revenue.Sub(e.TotalLoss)
		if revenue.IsNegative() {
			revenue = decimal.Zero
		}

		losses = losses.Add(e.TotalLoss)

		if revenue.IsPositive() {
			margin = margin.Sub(e.TotalLoss.Div(revenue).Mul(hundred))
		} else {
			// Revenue fully consumed by losses; there is no margin left.
			margin = decimal.Zero
		}
		if margin.IsNegative() {
			margin = decimal.Zero
		}
	}

	return domain.FinancialMetrics{
		TotalRevenue:   revenue,
		TotalLosses:    losses,
		LossPercentage: lossPercentage(revenue, losses),
		GrossMargin:    margin.Round(2),
	}
}

func lossPercentage(revenue, losses decimal.Decimal) decimal.Decimal {
	base := revenue.Add(losses)
	if !base.IsPositive() {
		return decimal.Zero
	}
	return losses.Div(base).Mul(hundred).Round(2)
}
