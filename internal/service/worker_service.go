package service

import (
	"context"
	"time"

	"hospital-inventory-dashboard/internal/repository"

	"github.com/rs/zerolog"
)

// AuditPruner is the background worker that drops session events past
// their retention period.
type AuditPruner struct {
	auditRepo *repository.AuditRepository
	retention time.Duration
	interval  time.Duration
	logger    zerolog.Logger
}

func NewAuditPruner(auditRepo *repository.AuditRepository, retention, interval time.Duration, logger zerolog.Logger) *AuditPruner {
	return &AuditPruner{
		auditRepo: auditRepo,
		retention: retention,
		interval:  interval,
		logger:    logger,
	}
}

// Start prunes once immediately, then on every tick until ctx is done
func (w *AuditPruner) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Dur("retention", w.retention).Msg("audit pruner started")
	w.Prune(time.Now())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("audit pruner stopped")
			return
		case now := <-ticker.C:
			w.Prune(now)
		}
	}
}

// Prune deletes events older than now minus the retention period
func (w *AuditPruner) Prune(now time.Time) int64 {
	deleted, err := w.auditRepo.DeleteOlderThan(now.UTC().Add(-w.retention))
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to prune audit logs")
		return 0
	}
	if deleted > 0 {
		w.logger.Info().Int64("deleted", deleted).Msg("pruned audit logs")
	}
	return deleted
}
