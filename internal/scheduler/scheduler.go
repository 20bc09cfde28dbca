// Package scheduler runs the periodic expiry detection cycle.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/restodash/lossledger/internal/config"
	"github.com/restodash/lossledger/internal/ledger"
	"github.com/restodash/lossledger/internal/notify"
)

type Scheduler struct {
	cron     *cron.Cron
	service  *ledger.Service
	notifier notify.Notifier
	cfg      config.SchedulerConfig
}

func NewScheduler(cfg config.SchedulerConfig, service *ledger.Service, notifier notify.Notifier) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		service:  service,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Start registers the detection job and starts the cron loop. A failed
// cycle logs and waits for the next tick; the dashboard reads stale
// statistics rather than seeing the service fall over.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.CronSpec, s.runDetectionCycle); err != nil {
		return err
	}

	log.Info().Str("cron", s.cfg.CronSpec).Msg("starting detection scheduler")
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runDetectionCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := s.service.DetectAndRecord(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("detection cycle failed, no new losses recorded")
		return
	}

	log.Info().
		Int("candidates", result.Candidates).
		Int("recorded", result.Recorded).
		Int("skipped", result.Skipped).
		Str("total_loss", result.TotalLoss.String()).
		Msg("detection cycle finished")

	if result.Recorded == 0 || s.notifier == nil {
		return
	}

	if err := s.notifier.NotifyLosses(ctx, result); err != nil {
		log.Warn().Err(err).Msg("loss alert notification failed")
	}
}
