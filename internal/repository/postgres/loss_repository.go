package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/restodash/lossledger/internal/domain"
)

type lossRepository struct {
	db *DB
}

func NewLossRepository(db *DB) *lossRepository {
	return &lossRepository{db: db}
}

// Schema is created by cmd/seed. The unique index on
// (ingredient_id, loss_date::date) enforces the per-day dedup rule even
// under concurrent detection cycles.
const uniqueViolation = "23505"

func (r *lossRepository) Append(ctx context.Context, event *domain.LossEvent) error {
	query := `
		INSERT INTO loss_events (
			ingredient_id, ingredient_name, category, quantity, unit,
			unit_price, total_loss, expiry_date, loss_date, reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(
			ctx,
			query,
			event.IngredientID,
			event.IngredientName,
			event.Category,
			event.Quantity,
			event.Unit,
			event.UnitPrice,
			event.TotalLoss,
			event.ExpiryDate,
			event.LossDate,
			event.Reason,
		).Scan(&event.ID)
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return domain.ErrDuplicateLoss
		}
		return domain.NewPersistenceError("append", err)
	}

	return nil
}

func (r *lossRepository) EventsSince(ctx context.Context, since time.Time) ([]domain.LossEvent, error) {
	query := `
		SELECT id, ingredient_id, ingredient_name, category, quantity, unit,
		       unit_price, total_loss, expiry_date, loss_date, reason
		FROM loss_events
		WHERE loss_date >= $1
		ORDER BY loss_date ASC, id ASC
	`

	var events []domain.LossEvent
	if err := r.db.SelectContext(ctx, &events, query, since); err != nil {
		return nil, domain.NewPersistenceError("query", err)
	}

	return events, nil
}

func (r *lossRepository) AllEvents(ctx context.Context) ([]domain.LossEvent, error) {
	query := `
		SELECT id, ingredient_id, ingredient_name, category, quantity, unit,
		       unit_price, total_loss, expiry_date, loss_date, reason
		FROM loss_events
		ORDER BY loss_date ASC, id ASC
	`

	var events []domain.LossEvent
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, domain.NewPersistenceError("query", err)
	}

	return events, nil
}

func (r *lossRepository) AggregateByCategory(ctx context.Context, since time.Time) ([]domain.CategoryLoss, error) {
	query := `
		SELECT category,
		       COALESCE(SUM(total_loss), 0) AS total_loss,
		       COUNT(*) AS item_count
		FROM loss_events
		WHERE loss_date >= $1
		GROUP BY category
		ORDER BY total_loss DESC
	`

	var buckets []domain.CategoryLoss
	if err := r.db.SelectContext(ctx, &buckets, query, since); err != nil {
		return nil, domain.NewPersistenceError("aggregate", err)
	}

	return buckets, nil
}

func (r *lossRepository) HasEventOn(ctx context.Context, ingredientID string, day string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM loss_events
			WHERE ingredient_id = $1
			  AND (loss_date AT TIME ZONE 'UTC')::date = $2::date
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, ingredientID, day); err != nil {
		return false, domain.NewPersistenceError("lookup", err)
	}

	return exists, nil
}

func (r *lossRepository) Reset(ctx context.Context) error {
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM loss_events`)
		return err
	})
	if err != nil {
		return domain.NewPersistenceError("reset", err)
	}

	return nil
}
