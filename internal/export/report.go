// Package export renders loss reports as CSV and ships them to object
// storage for the accounting handoff.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/restodash/lossledger/internal/domain"
	"github.com/restodash/lossledger/internal/ledger"
	"github.com/restodash/lossledger/internal/storage"
)

type ReportExporter struct {
	service *ledger.Service
	store   storage.ObjectStorage
}

func NewReportExporter(service *ledger.Service, store storage.ObjectStorage) *ReportExporter {
	return &ReportExporter{
		service: service,
		store:   store,
	}
}

// Export renders the window's events to CSV and uploads the report under
// losses/report_<date>.csv. It returns the object key.
func (e *ReportExporter) Export(ctx context.Context, sinceDays int) (string, error) {
	events, err := e.service.Query(ctx, sinceDays)
	if err != nil {
		return "", fmt.Errorf("failed to load events for export: %w", err)
	}

	payload, err := renderCSV(events)
	if err != nil {
		return "", fmt.Errorf("failed to render loss report: %w", err)
	}

	key := fmt.Sprintf("losses/report_%s.csv", time.Now().UTC().Format("20060102"))
	if err := e.store.UploadObject(ctx, key, payload, "text/csv"); err != nil {
		return "", fmt.Errorf("failed to upload loss report: %w", err)
	}

	log.Info().Str("key", key).Int("events", len(events)).Msg("loss report exported")
	return key, nil
}

func renderCSV(events []domain.LossEvent) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"Ingredient", "Category", "Quantity", "Unit", "Unit Price", "Total Loss", "Expiry Date", "Loss Date", "Reason"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, event := range events {
		record := []string{
			event.IngredientName,
			event.Category,
			event.Quantity.String(),
			event.Unit,
			event.UnitPrice.StringFixed(2),
			event.TotalLoss.StringFixed(2),
			event.ExpiryDate.UTC().Format(time.DateOnly),
			event.LossDate.UTC().Format(time.DateOnly),
			string(event.Reason),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
