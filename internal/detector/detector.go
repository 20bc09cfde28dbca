// Package detector flags expired inventory and prices the write-off.
// It is a pure scan: it never touches the ledger.
package detector

import (
	"time"

	"github.com/restodash/lossledger/internal/domain"
)

// DetectLosses scans an inventory snapshot and returns a loss event
// candidate for every item whose expiry date lies strictly before now
// and that still has sellable stock. Items without an expiry date are
// skipped. Zero-stock and zero-priced items produce no candidate, so the
// ledger never fills up with zero-value noise.
//
// The result carries no ordering guarantee; callers must treat it as a
// set. Recording and deduplication are the caller's job.
func DetectLosses(items []domain.InventoryItem, now time.Time) []domain.LossEvent {
	candidates := make([]domain.LossEvent, 0)

	for _, item := range items {
		if item.ExpiryDate == nil {
			continue
		}
		// Strict before: an item expiring exactly at the scan instant is
		// still sellable.
		if !item.ExpiryDate.Before(now) {
			continue
		}
		if !item.CurrentStock.IsPositive() || !item.UnitPrice.IsPositive() {
			continue
		}

		candidates = append(candidates, domain.LossEvent{
			IngredientID:   item.ID,
			IngredientName: item.Name,
			Category:       item.Category,
			Quantity:       item.CurrentStock,
			Unit:           item.Unit,
			UnitPrice:      item.UnitPrice,
			TotalLoss:      item.CurrentStock.Mul(item.UnitPrice),
			ExpiryDate:     *item.ExpiryDate,
			LossDate:       now,
			Reason:         domain.LossReasonExpiration,
		})
	}

	return candidates
}
