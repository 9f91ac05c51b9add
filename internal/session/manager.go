// File: internal/session/manager.go
package session

import (
	"context"
	"sync"

	"caricom_connects_backend/internal/common"
	"caricom_connects_backend/internal/config"
	"caricom_connects_backend/internal/notify"
	"caricom_connects_backend/internal/provider"

	"go.uber.org/zap"
)

// Manager implements Service over the identity provider client. It is the
// single owner of the session value; operations settle in arrival order and
// the last settlement wins.
type Manager struct {
	client     provider.Client
	dispatcher *notify.Dispatcher
	cfg        *config.Config
	logger     *zap.Logger

	mu    sync.RWMutex
	state State
	user  *User

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewManager creates a Manager in the Unknown state.
func NewManager(
	client provider.Client,
	dispatcher *notify.Dispatcher,
	cfg *config.Config,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		client:     client,
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     logger.Named("SessionManager"),
		state:      StateUnknown,
		subs:       make(map[int]func(Snapshot)),
	}
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{State: m.state}
	if m.user != nil {
		u := *m.user
		snap.User = &u
	}
	return snap
}

// Subscribe registers an observer for state transitions.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

// setState replaces the session value and notifies subscribers. Subscribers
// run outside the state lock so they may call Snapshot.
func (m *Manager) setState(state State, user *User) Snapshot {
	m.mu.Lock()
	m.state = state
	m.user = user
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.subMu.Lock()
	observers := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		observers = append(observers, fn)
	}
	m.subMu.Unlock()
	for _, fn := range observers {
		fn(snap)
	}
	return snap
}

// CheckSession queries the provider for an existing session. Any failure,
// including the provider being unreachable, resolves to Anonymous; the error
// is logged, never returned. Session notifications fire only on transitions
// so a periodic refresh does not flood the feed.
func (m *Manager) CheckSession(ctx context.Context) Snapshot {
	prev := m.Snapshot().State

	if _, err := m.client.GetSession(ctx); err != nil {
		m.logger.Debug("No active provider session", zap.Error(err))
		return m.resolveAnonymous(prev)
	}

	account, err := m.client.GetAccount(ctx)
	if err != nil {
		m.logger.Warn("Session exists but account fetch failed", zap.Error(err))
		return m.resolveAnonymous(prev)
	}

	u := userFromAccount(account)
	if !account.EmailVerified {
		snap := m.setState(StatePendingVerification, u)
		if prev != StatePendingVerification {
			m.dispatcher.Dispatch(notify.Auth.VerificationRequired(u.Email))
		}
		return snap
	}

	snap := m.setState(StateAuthenticated, u)
	if prev != StateAuthenticated {
		name := u.Name
		m.dispatcher.DispatchLocated(ctx, func(location string) notify.Message {
			return notify.Auth.SessionActive(name, location)
		})
	}
	return snap
}

func (m *Manager) resolveAnonymous(prev State) Snapshot {
	snap := m.setState(StateAnonymous, nil)
	if prev != StateAnonymous && prev != StateUnknown {
		m.dispatcher.Dispatch(notify.Auth.SessionInactive())
	}
	return snap
}

// Login creates an email/password session with the provider. An unverified
// account is a soft denial: the provider session is torn down again, the
// machine parks in PendingVerification and ErrEmailNotVerified is returned.
func (m *Manager) Login(ctx context.Context, email, password string) (*User, error) {
	if _, err := m.client.CreateEmailSession(ctx, email, password); err != nil {
		m.logger.Info("Login rejected by provider",
			zap.String("kind", string(provider.Kind(err))),
		)
		m.setState(StateAnonymous, nil)
		m.dispatchLoginFailure(err)
		return nil, err
	}

	account, err := m.client.GetAccount(ctx)
	if err != nil {
		m.logger.Warn("Account fetch failed after login", zap.Error(err))
		m.teardownSession(ctx)
		m.setState(StateAnonymous, nil)
		m.dispatchLoginFailure(err)
		return nil, err
	}

	u := userFromAccount(account)
	if !account.EmailVerified {
		// The provider created a session, but it is not promoted to the
		// application state: tear it down and park pending verification.
		m.teardownSession(ctx)
		m.setState(StatePendingVerification, u)
		m.dispatcher.Dispatch(notify.Auth.VerificationRequired(u.Email))
		return nil, ErrEmailNotVerified
	}

	snap := m.setState(StateAuthenticated, u)
	name := u.Name
	m.dispatcher.DispatchLocated(ctx, func(location string) notify.Message {
		return notify.Auth.LoginSuccess(name, location)
	})
	return snap.User, nil
}

// dispatchLoginFailure picks the failure notification by error kind. Exactly
// one message is dispatched per failed login.
func (m *Manager) dispatchLoginFailure(err error) {
	switch provider.Kind(err) {
	case provider.KindRateLimited:
		m.dispatcher.Dispatch(notify.System.RateLimited())
	case provider.KindSessionConflict:
		m.dispatcher.Dispatch(notify.System.SessionConflict())
	case provider.KindUnavailable:
		m.dispatcher.Dispatch(notify.System.NetworkError())
	default:
		m.dispatcher.Dispatch(notify.Auth.LoginFailure())
	}
}

// Register runs the account creation sequence: create account, open a
// temporary session to set profile attributes, send the verification email,
// then drop the temporary session so the caller is never implicitly
// authenticated before verifying. A step failure aborts the remaining steps;
// already-completed provider writes are not rolled back.
func (m *Manager) Register(ctx context.Context, in RegisterInput) error {
	if !ValidRole(in.Role) {
		m.dispatcher.Dispatch(notify.Form.InvalidInput("role"))
		return ErrInvalidRole
	}

	if _, err := m.client.CreateAccount(ctx, in.Email, in.Password); err != nil {
		return m.failRegistration(ctx, StepCreateAccount, err, false)
	}

	if _, err := m.client.CreateEmailSession(ctx, in.Email, in.Password); err != nil {
		return m.failRegistration(ctx, StepCreateSession, err, false)
	}

	if _, err := m.client.UpdateName(ctx, in.FullName); err != nil {
		return m.failRegistration(ctx, StepUpdateName, err, true)
	}

	if _, err := m.client.UpdatePrefs(ctx, map[string]string{"role": in.Role}); err != nil {
		return m.failRegistration(ctx, StepUpdatePrefs, err, true)
	}

	if err := m.client.CreateVerification(ctx, m.cfg.PublicOrigin+common.PathVerify); err != nil {
		return m.failRegistration(ctx, StepSendVerification, err, true)
	}

	if err := m.client.DeleteSession(ctx); err != nil {
		m.logger.Warn("Temporary registration session delete failed", zap.Error(err))
		m.dispatcher.Dispatch(notify.Auth.RegistrationFailure())
		return &RegisterError{Step: StepDeleteSession, Err: err}
	}

	m.dispatcher.Dispatch(notify.Auth.RegistrationSuccess())
	return nil
}

func (m *Manager) failRegistration(ctx context.Context, step string, err error, hasSession bool) error {
	m.logger.Warn("Registration step failed", zap.String("step", step), zap.Error(err))
	if hasSession {
		m.teardownSession(ctx)
	}
	m.dispatcher.Dispatch(notify.Auth.RegistrationFailure())
	return &RegisterError{Step: step, Err: err}
}

// Logout destroys the provider session and resolves to Anonymous. A failed
// provider delete is logged and swallowed; calling Logout while already
// Anonymous is harmless.
func (m *Manager) Logout(ctx context.Context) {
	prev := m.Snapshot()

	m.teardownSession(ctx)
	m.setState(StateAnonymous, nil)

	if prev.User != nil {
		m.dispatcher.Dispatch(notify.Auth.LogoutSuccess(prev.User.Name))
	} else {
		m.dispatcher.Dispatch(notify.Auth.SessionInactive())
	}
}

func (m *Manager) teardownSession(ctx context.Context) {
	if err := m.client.DeleteSession(ctx); err != nil {
		m.logger.Warn("Provider session delete failed", zap.Error(err))
	}
}
