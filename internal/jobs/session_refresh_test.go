// File: internal/jobs/session_refresh_test.go
package jobs

import (
	"context"
	"testing"

	"caricom_connects_backend/internal/config"
	"caricom_connects_backend/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingService struct {
	checks int
	snap   session.Snapshot
}

func (s *countingService) CheckSession(ctx context.Context) session.Snapshot {
	s.checks++
	return s.snap
}
func (s *countingService) Login(ctx context.Context, email, password string) (*session.User, error) {
	return nil, nil
}
func (s *countingService) Register(ctx context.Context, in session.RegisterInput) error { return nil }
func (s *countingService) Logout(ctx context.Context)                                   {}
func (s *countingService) Snapshot() session.Snapshot                                   { return s.snap }
func (s *countingService) Subscribe(fn func(session.Snapshot)) func()                   { return func() {} }

func TestSessionRefreshJob_SetupAndStart(t *testing.T) {
	t.Run("empty schedule disables the job", func(t *testing.T) {
		job := NewSessionRefreshJob(&countingService{}, &config.Config{}, zap.NewNop())
		require.NoError(t, job.SetupAndStart())
		job.Stop()
	})

	t.Run("invalid spec is an error", func(t *testing.T) {
		cfg := &config.Config{SessionRefreshSchedule: "not a cron spec"}
		job := NewSessionRefreshJob(&countingService{}, cfg, zap.NewNop())
		assert.Error(t, job.SetupAndStart())
	})

	t.Run("valid spec schedules and stops", func(t *testing.T) {
		cfg := &config.Config{SessionRefreshSchedule: "@every 1h"}
		job := NewSessionRefreshJob(&countingService{}, cfg, zap.NewNop())
		require.NoError(t, job.SetupAndStart())
		job.Stop()
	})
}

func TestSessionRefreshJob_RunInvokesCheck(t *testing.T) {
	svc := &countingService{snap: session.Snapshot{State: session.StateAnonymous}}
	job := NewSessionRefreshJob(svc, &config.Config{}, zap.NewNop())

	job.runJob()
	assert.Equal(t, 1, svc.checks)
}

func TestCronFields(t *testing.T) {
	fields := cronFields([]interface{}{"now", "then", "entry"})
	require.Len(t, fields, 2)
	assert.Equal(t, "now", fields[0].Key)
	assert.Equal(t, "entry", fields[1].Key)
}
