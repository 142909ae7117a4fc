package jobs

import (
	"context"
	"time"

	"roomkeeper/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// ExpiryScanJob drives the expiry notifier on a fixed interval. The scan
// itself is idempotent, so interval drift or an overlapping manual run is
// harmless.
type ExpiryScanJob struct {
	notifier *services.ExpiryNotifierService
	interval time.Duration
	log      logger.Logger
}

func NewExpiryScanJob(notifier *services.ExpiryNotifierService, interval time.Duration) *ExpiryScanJob {
	return &ExpiryScanJob{
		notifier: notifier,
		interval: interval,
		log:      logger.New("expiryScanJob"),
	}
}

func (j *ExpiryScanJob) Name() string {
	return "RoomExpiryScan"
}

func (j *ExpiryScanJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	created, err := j.notifier.ScanAndNotify(ctx, time.Now())
	if err != nil {
		return log.Err("expiry scan failed", err)
	}

	if created > 0 {
		log.Info("expiry scan created notifications", "count", created)
	}
	return nil
}

func (j *ExpiryScanJob) Interval() time.Duration {
	return j.interval
}
