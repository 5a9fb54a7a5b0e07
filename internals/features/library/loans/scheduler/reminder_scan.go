package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	loanService "library_backend/internals/features/library/loans/service"
	"library_backend/internals/metrics"
)

// RunReminderScanOnce classifies open issues and publishes the gauges.
func RunReminderScanOnce(ctx context.Context, svc *loanService.LoanService) (loanService.ScanResult, error) {
	res, err := svc.ScanDueDates(ctx, svc.Today())
	if err != nil {
		log.Error().Err(err).Msg("[REMINDERS] scan failed")
		return res, err
	}
	metrics.SetReminderGauges(res.Overdue, res.DueSoon)
	log.Info().Int("outstanding", res.Outstanding).Int("overdue", res.Overdue).
		Int("due_soon", res.DueSoon).Msg("[REMINDERS] scan done")
	return res, nil
}

// StartReminderScanScheduler scans once right away and then every interval
// until ctx is cancelled. A non-positive interval disables it.
// Overlapping runs are skipped.
func StartReminderScanScheduler(ctx context.Context, svc *loanService.LoanService, interval time.Duration) {
	if interval <= 0 {
		log.Info().Msg("[REMINDERS] scheduler disabled")
		return
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	c.Schedule(cron.Every(interval), cron.FuncJob(func() {
		_, _ = RunReminderScanOnce(ctx, svc)
	}))
	c.Start()
	log.Info().Dur("interval", interval).Msg("[REMINDERS] scheduler started")

	go func() {
		_, _ = RunReminderScanOnce(ctx, svc)
		<-ctx.Done()
		<-c.Stop().Done()
		log.Info().Msg("[REMINDERS] scheduler stopped")
	}()
}
