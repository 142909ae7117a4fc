package jobs

import (
	"time"

	"roomkeeper/config"
	"roomkeeper/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	notifier *services.ExpiryNotifierService,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")
	log.Info("Registering jobs")

	interval := time.Duration(config.ExpiryScanMinutes) * time.Minute
	expiryScanJob := NewExpiryScanJob(notifier, interval)
	if err := schedulerService.AddJob(expiryScanJob); err != nil {
		return log.Err("failed to register expiry scan job", err)
	}
	log.Info("Registered expiry scan job", "interval", interval)

	return nil
}
