// Package notify pushes loss alerts to an external webhook so the
// dashboard (or a chat integration) can surface new write-offs without
// polling.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/restodash/lossledger/internal/config"
	"github.com/restodash/lossledger/internal/domain"
)

type Notifier interface {
	NotifyLosses(ctx context.Context, result *domain.DetectionResult) error
}

type lossAlertPayload struct {
	RecordedCount int    `json:"recorded_count"`
	TotalLoss     string `json:"total_loss"`
	RunAt         string `json:"run_at"`
}

type WebhookNotifier struct {
	client *resty.Client
	url    string
}

// NewWebhookNotifier returns nil when no webhook URL is configured;
// callers treat a nil notifier as disabled.
func NewWebhookNotifier(cfg config.NotifyConfig) *WebhookNotifier {
	if cfg.WebhookURL == "" {
		return nil
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &WebhookNotifier{
		client: client,
		url:    cfg.WebhookURL,
	}
}

func (n *WebhookNotifier) NotifyLosses(ctx context.Context, result *domain.DetectionResult) error {
	payload := lossAlertPayload{
		RecordedCount: result.Recorded,
		TotalLoss:     result.TotalLoss.String(),
		RunAt:         result.RunAt.UTC().Format(time.RFC3339),
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("failed to post loss alert: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("loss alert webhook returned status %d", resp.StatusCode())
	}

	return nil
}
