// File: internal/jobs/session_refresh.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"caricom_connects_backend/internal/config"
	"caricom_connects_backend/internal/session"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionRefreshJob periodically re-runs the session check so a
// provider-side revocation or a freshly verified email is noticed without
// waiting for a user action. CheckSession never fails, so a run can only
// move the machine to a defined state.
type SessionRefreshJob struct {
	sessions      session.Service
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewSessionRefreshJob creates a new SessionRefreshJob.
func NewSessionRefreshJob(
	sessions session.Service,
	cfg *config.Config,
	logger *zap.Logger,
) *SessionRefreshJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &SessionRefreshJob{
		sessions:      sessions,
		logger:        logger.Named("SessionRefreshJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *SessionRefreshJob) SetupAndStart() error {
	jobSpec := j.cfg.SessionRefreshSchedule // e.g. "@every 5m", "*/10 * * * *"
	if jobSpec == "" {
		j.logger.Warn("Session refresh schedule not defined (SESSION_REFRESH_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule session refresh job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Session refresh job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *SessionRefreshJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	snap := j.sessions.CheckSession(ctx)
	j.logger.Debug("Session refresh run completed", zap.String("state", string(snap.State)))
}

// Stop gracefully stops the cron scheduler.
func (j *SessionRefreshJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping session refresh job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Session refresh job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Session refresh job scheduler stop timed out.")
		}
	}
}

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cronFields(keysAndValues)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	cl.zl.Error(msg, append(cronFields(keysAndValues), zap.Error(err))...)
}

func cronFields(kv []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		value := interface{}("MISSING_VALUE")
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		fields = append(fields, zap.Any(fmt.Sprintf("%v", kv[i]), value))
	}
	return fields
}
