package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// auditPurger is the part of AuditService the retention sweep needs.
type auditPurger interface {
	Purge(ctx context.Context, before time.Time) (int64, error)
}

type JobService struct {
	audit     auditPurger
	retention time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewJobService(audit auditPurger, retentionDays int, logger zerolog.Logger) *JobService {
	return &JobService{
		audit:     audit,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger,
		now:       time.Now,
	}
}

// PurgeExpiredAudit removes audit entries older than the retention window.
// A zero window keeps everything.
func (s *JobService) PurgeExpiredAudit(ctx context.Context) error {
	if s.retention <= 0 {
		return nil
	}
	cutoff := s.now().Add(-s.retention)
	s.logger.Info().Time("cutoff", cutoff).Msg("Cron job: purging audit entries")

	n, err := s.audit.Purge(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("cron job: failed to purge audit entries: %w", err)
	}
	s.logger.Info().Int64("deleted", n).Msg("Cron job: audit purge complete")
	return nil
}

// Start schedules the sweep and starts the scheduler. Stop the returned
// cron to end it.
func (s *JobService) Start(schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.PurgeExpiredAudit(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Audit retention sweep failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling audit sweep %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
