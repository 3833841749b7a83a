// File: internal/jobs/orphan_report.go
package jobs

import (
	"context"
	"time"

	"adventure_backend/internal/audit"
	"adventure_backend/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OrphanReportJob periodically lists accounts whose profile write failed during
// registration. Such accounts can sign in but have no profile document.
type OrphanReportJob struct {
	recorder      audit.Recorder
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
	now           func() time.Time
}

// NewOrphanReportJob creates a new OrphanReportJob.
func NewOrphanReportJob(recorder audit.Recorder, logger *zap.Logger, cfg *config.Config) *OrphanReportJob {
	scheduler := cron.New(
		cron.WithLogger(NewCronLogger(logger.Named("cron"))),
		cron.WithChain(cron.SkipIfStillRunning(NewCronLogger(logger.Named("cron")))),
	)
	return &OrphanReportJob{
		recorder:      recorder,
		logger:        logger.Named("OrphanReportJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
		now:           time.Now,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *OrphanReportJob) SetupAndStart() error {
	jobSpec := j.cfg.OrphanReportJobSchedule
	if jobSpec == "" {
		j.logger.Warn("Orphan report schedule not defined (ORPHAN_REPORT_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule orphan report job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Orphan report job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *OrphanReportJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := j.Report(ctx); err != nil {
		j.logger.Error("Orphan report job run failed", zap.Error(err))
	}
}

// Report logs one warning per orphaned uid seen within the configured window and returns
// the distinct uids.
func (j *OrphanReportJob) Report(ctx context.Context) ([]string, error) {
	window := j.cfg.OrphanReportWindow
	if window <= 0 {
		window = 24 * time.Hour
	}
	since := j.now().Add(-window)

	events, err := j.recorder.ListSince(ctx, audit.KindRegistrationProfileFailed, since)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(events))
	var uids []string
	for _, e := range events {
		if _, dup := seen[e.UID]; dup || e.UID == "" {
			continue
		}
		seen[e.UID] = struct{}{}
		uids = append(uids, e.UID)
		j.logger.Warn("Account has no profile document",
			zap.String("uid", e.UID),
			zap.String("email", e.Email),
			zap.Time("failedAt", e.CreatedAt),
			zap.String("detail", e.Detail),
		)
	}
	j.logger.Info("Orphan report job run completed", zap.Int("orphaned_accounts", len(uids)), zap.Time("since", since))
	return uids, nil
}

// Stop gracefully stops the cron scheduler.
func (j *OrphanReportJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	j.logger.Info("Stopping orphan report job scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Orphan report job scheduler stopped gracefully.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Orphan report job scheduler stop timed out.")
	}
}
