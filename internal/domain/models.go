package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LossReason classifies why inventory value was written off.
type LossReason string

const (
	// LossReasonExpiration is the only reason produced today; the enum
	// leaves room for breakage/theft write-offs later.
	LossReasonExpiration LossReason = "expiration"
)

// InventoryItem is a read-only snapshot row supplied by the inventory
// system. ExpiryDate is nil for non-perishables; those items are never
// flagged by the detector.
type InventoryItem struct {
	ID           string          `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	CurrentStock decimal.Decimal `json:"current_stock" db:"current_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price" db:"unit_price"`
	Unit         string          `json:"unit" db:"unit"`
	ExpiryDate   *time.Time      `json:"expiry_date" db:"expiry_date"`
	Category     string          `json:"category" db:"category"`
}

// LossEvent is an immutable record of one detected loss. Name, category
// and unit price are denormalized at detection time so later inventory
// edits never rewrite history. TotalLoss is computed once and stored.
type LossEvent struct {
	ID             int64           `json:"id" db:"id"`
	IngredientID   string          `json:"ingredient_id" db:"ingredient_id"`
	IngredientName string          `json:"ingredient_name" db:"ingredient_name"`
	Category       string          `json:"category" db:"category"`
	Quantity       decimal.Decimal `json:"quantity" db:"quantity"`
	Unit           string          `json:"unit" db:"unit"`
	UnitPrice      decimal.Decimal `json:"unit_price" db:"unit_price"`
	TotalLoss      decimal.Decimal `json:"total_loss" db:"total_loss"`
	ExpiryDate     time.Time       `json:"expiry_date" db:"expiry_date"`
	LossDate       time.Time       `json:"loss_date" db:"loss_date"`
	Reason         LossReason      `json:"reason" db:"reason"`
}

// DedupDay returns the UTC calendar day the event counts against for the
// one-loss-per-ingredient-per-day rule.
func (e LossEvent) DedupDay() string {
	return e.LossDate.UTC().Format("2006-01-02")
}

// Validate checks the fields a ledger append requires.
func (e LossEvent) Validate() error {
	if e.IngredientID == "" {
		return NewValidationError("ingredient_id", "must not be empty")
	}
	if e.IngredientName == "" {
		return NewValidationError("ingredient_name", "must not be empty")
	}
	if e.LossDate.IsZero() {
		return NewValidationError("loss_date", "must be set")
	}
	if e.Quantity.IsNegative() {
		return NewValidationError("quantity", "must not be negative")
	}
	if e.UnitPrice.IsNegative() {
		return NewValidationError("unit_price", "must not be negative")
	}
	if e.TotalLoss.IsNegative() {
		return NewValidationError("total_loss", "must not be negative")
	}
	if e.Reason == "" {
		return NewValidationError("reason", "must be set")
	}
	return nil
}

// CategoryLoss is a per-category aggregation bucket.
type CategoryLoss struct {
	Category  string          `json:"category" db:"category"`
	TotalLoss decimal.Decimal `json:"total_loss" db:"total_loss"`
	ItemCount int             `json:"item_count" db:"item_count"`
}

// FinancialMetrics is a derived projection over the ledger. It is never
// stored; it is recomputed from the recorded events plus the configured
// revenue/margin baseline on every read.
type FinancialMetrics struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalLosses    decimal.Decimal `json:"total_losses"`
	LossPercentage decimal.Decimal `json:"loss_percentage"`
	GrossMargin    decimal.Decimal `json:"gross_margin"`
}

// LossStatistics is the aggregate reporting consumers render.
type LossStatistics struct {
	TotalLoss          decimal.Decimal `json:"total_loss"`
	LossCount          int             `json:"loss_count"`
	AverageLossPerItem decimal.Decimal `json:"average_loss_per_item"`
	CategoriesLoss     []CategoryLoss  `json:"categories_loss"`
	LossPercentage     decimal.Decimal `json:"loss_percentage"`
}

// DetectionResult summarizes one detection cycle.
type DetectionResult struct {
	Candidates int             `json:"candidates"`
	Recorded   int             `json:"recorded"`
	Skipped    int             `json:"skipped"`
	TotalLoss  decimal.Decimal `json:"total_loss"`
	RunAt      time.Time       `json:"run_at"`
	Events     []LossEvent     `json:"events,omitempty"`
}
