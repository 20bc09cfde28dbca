// Package ledger owns the append-only loss ledger and everything
// derived from it: windowed queries, category aggregation, statistics
// and the financial metrics projection.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/restodash/lossledger/internal/cache"
	"github.com/restodash/lossledger/internal/config"
	"github.com/restodash/lossledger/internal/detector"
	"github.com/restodash/lossledger/internal/domain"
	"github.com/restodash/lossledger/internal/repository"
)

type Service struct {
	losses    repository.LossRepository
	inventory repository.InventoryRepository
	stats     cache.StatsCache

	baseRevenue decimal.Decimal
	baseMargin  decimal.Decimal

	now func() time.Time
}

type Option func(*Service)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(
	losses repository.LossRepository,
	inventory repository.InventoryRepository,
	stats cache.StatsCache,
	finance config.FinanceConfig,
	opts ...Option,
) *Service {
	s := &Service{
		losses:      losses,
		inventory:   inventory,
		stats:       stats,
		baseRevenue: decimal.NewFromFloat(finance.BaseRevenue),
		baseMargin:  decimal.NewFromFloat(finance.BaseMarginPct),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record validates and appends one event. Duplicates for the same
// ingredient and calendar day surface as domain.ErrDuplicateLoss; the
// database unique index backs the same rule for concurrent writers.
func (s *Service) Record(ctx context.Context, event *domain.LossEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	exists, err := s.losses.HasEventOn(ctx, event.IngredientID, event.DedupDay())
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateLoss
	}

	if err := s.losses.Append(ctx, event); err != nil {
		return err
	}

	if err := s.stats.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate statistics cache")
	}

	return nil
}

// DetectAndRecord runs one detection cycle: snapshot the inventory, scan
// for expired items, record what is new. Invalid or already-recorded
// candidates are skipped so one bad item never aborts the cycle; storage
// failures do abort it.
func (s *Service) DetectAndRecord(ctx context.Context, now time.Time) (*domain.DetectionResult, error) {
	items, err := s.inventory.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory snapshot: %w", err)
	}

	candidates := detector.DetectLosses(items, now)
	result := &domain.DetectionResult{
		Candidates: len(candidates),
		TotalLoss:  decimal.Zero,
		RunAt:      now,
	}

	for i := range candidates {
		event := candidates[i]
		err := s.Record(ctx, &event)
		switch {
		case err == nil:
			result.Recorded++
			result.TotalLoss = result.TotalLoss.Add(event.TotalLoss)
			result.Events = append(result.Events, event)
		case errors.Is(err, domain.ErrDuplicateLoss):
			result.Skipped++
		default:
			var vErr *domain.ValidationError
			if errors.As(err, &vErr) {
				log.Warn().Err(err).Str("ingredient_id", event.IngredientID).Msg("skipping invalid loss candidate")
				result.Skipped++
				continue
			}
			return nil, err
		}
	}

	return result, nil
}

// Query returns events whose loss date falls within the last sinceDays
// days, inclusive. No ordering is promised to callers.
func (s *Service) Query(ctx context.Context, sinceDays int) ([]domain.LossEvent, error) {
	return s.losses.EventsSince(ctx, s.windowStart(sinceDays))
}

// AggregateByCategory groups the window's events per category.
func (s *Service) AggregateByCategory(ctx context.Context, sinceDays int) ([]domain.CategoryLoss, error) {
	return s.losses.AggregateByCategory(ctx, s.windowStart(sinceDays))
}

// Statistics derives the reporting aggregate for the window. Reads go
// through the cache when one is configured; the ledger stays the single
// source of truth.
func (s *Service) Statistics(ctx context.Context, sinceDays int) (*domain.LossStatistics, error) {
	if cached, ok, err := s.stats.Get(ctx, sinceDays); err != nil {
		log.Warn().Err(err).Msg("statistics cache read failed")
	} else if ok {
		return cached, nil
	}

	events, err := s.Query(ctx, sinceDays)
	if err != nil {
		return nil, err
	}

	categories, err := s.AggregateByCategory(ctx, sinceDays)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, e := range events {
		total = total.Add(e.TotalLoss)
	}

	average := decimal.Zero
	if len(events) > 0 {
		average = total.Div(decimal.NewFromInt(int64(len(events)))).Round(2)
	}

	metrics, err := s.Metrics(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.LossStatistics{
		TotalLoss:          total,
		LossCount:          len(events),
		AverageLossPerItem: average,
		CategoriesLoss:     categories,
		LossPercentage:     metrics.LossPercentage,
	}

	if err := s.stats.Set(ctx, sinceDays, stats); err != nil {
		log.Warn().Err(err).Msg("statistics cache write failed")
	}

	return stats, nil
}

// Metrics replays the whole ledger through the projection fold.
func (s *Service) Metrics(ctx context.Context) (*domain.FinancialMetrics, error) {
	events, err := s.losses.AllEvents(ctx)
	if err != nil {
		return nil, err
	}

	metrics := ProjectMetrics(s.baseRevenue, s.baseMargin, events)
	return &metrics, nil
}

// Inventory exposes the read-only snapshot for dashboard consumers.
func (s *Service) Inventory(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.inventory.Snapshot(ctx)
}

// Reset clears the ledger and the derived caches. Demo and test data
// only; production ledgers are append-only.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.losses.Reset(ctx); err != nil {
		return err
	}

	if err := s.stats.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate statistics cache after reset")
	}

	return nil
}

func (s *Service) windowStart(sinceDays int) time.Time {
	if sinceDays <= 0 {
		sinceDays = 30
	}
	return s.now().AddDate(0, 0, -sinceDays)
}
