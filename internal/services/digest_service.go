package services

import (
	"context"
	"time"

	"github.com/estatehq/sales-service/internal/repositories"
	"github.com/estatehq/sales-service/internal/utils"
)

// DigestService produces the daily CRM digest the cron scheduler runs each
// morning: how many leads came in and how many units changed status over
// the last 24 hours. Read-only; the digest goes to the structured log where
// the ops alerting picks it up.
type DigestService struct {
	leadRepo repositories.LeadRepository
	unitRepo repositories.UnitRepository
}

func NewDigestService(leadRepo repositories.LeadRepository, unitRepo repositories.UnitRepository) *DigestService {
	return &DigestService{leadRepo: leadRepo, unitRepo: unitRepo}
}

func (s *DigestService) Run(ctx context.Context) {
	since := time.Now().UTC().Add(-24 * time.Hour)

	leads, err := s.leadRepo.CountSince(ctx, since)
	if err != nil {
		utils.Logger.WithError(err).Error("Digest: lead count failed")
		return
	}
	statusChanges, err := s.unitRepo.CountStatusChangedSince(ctx, since)
	if err != nil {
		utils.Logger.WithError(err).Error("Digest: status-change count failed")
		return
	}

	utils.Logger.WithField("new_leads", leads).
		WithField("unit_status_changes", statusChanges).
		Info("Daily CRM digest")
}
