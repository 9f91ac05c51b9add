// File: internal/verification/flow.go
package verification

import (
	"context"
	"strings"

	"caricom_connects_backend/internal/common"
	"caricom_connects_backend/internal/notify"
	"caricom_connects_backend/internal/provider"

	"go.uber.org/zap"
)

// Status is the terminal state of one verification attempt.
type Status string

const (
	StatusVerifying Status = "verifying"
	StatusVerified  Status = "verified"
	StatusFailed    Status = "failed"
)

// Result is the outcome of a verification attempt. NextPath is the manual
// follow-up action offered to the user; there is no automatic redirect after
// a settled attempt.
type Result struct {
	Status   Status `json:"status"`
	Reason   string `json:"reason,omitempty"`
	NextPath string `json:"next_path"`
}

// Flow redeems emailed verification links. Each link is tried exactly once;
// an invalid or expired token is terminal and never retried here.
type Flow struct {
	client     provider.Client
	dispatcher *notify.Dispatcher
	logger     *zap.Logger
}

// NewFlow creates a verification Flow.
func NewFlow(client provider.Client, dispatcher *notify.Dispatcher, logger *zap.Logger) *Flow {
	return &Flow{
		client:     client,
		dispatcher: dispatcher,
		logger:     logger.Named("VerificationFlow"),
	}
}

// Confirm submits the (userID, secret) pair from a verification link to the
// provider. A link missing either parameter fails locally without any
// provider call.
func (f *Flow) Confirm(ctx context.Context, userID, secret string) Result {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(secret) == "" {
		f.logger.Warn("Verification link missing userId or secret")
		f.dispatcher.Dispatch(notify.Auth.VerificationFailure("Invalid verification link"))
		return Result{
			Status:   StatusFailed,
			Reason:   "invalid verification link",
			NextPath: common.PathLogin,
		}
	}

	if err := f.client.ConfirmVerification(ctx, userID, secret); err != nil {
		f.logger.Warn("Verification confirmation rejected",
			zap.String("kind", string(provider.Kind(err))),
			zap.Error(err),
		)
		f.dispatcher.Dispatch(notify.Auth.VerificationFailure("Verification failed"))
		return Result{
			Status:   StatusFailed,
			Reason:   "verification failed",
			NextPath: common.PathLogin,
		}
	}

	f.dispatcher.Dispatch(notify.Auth.VerificationSuccess())
	return Result{Status: StatusVerified, NextPath: common.PathLogin}
}
