// File: internal/session/manager_test.go
package session

import (
	"context"
	"strings"
	"sync"
	"testing"

	"caricom_connects_backend/internal/config"
	"caricom_connects_backend/internal/notify"
	"caricom_connects_backend/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubClient is an in-memory provider.Client that records every call and
// fails on demand.
type stubClient struct {
	mu    sync.Mutex
	calls []string

	account *provider.Account

	createAccountErr      error
	createSessionErr      error
	getSessionErr         error
	getAccountErr         error
	deleteSessionErr      error
	updateNameErr         error
	updatePrefsErr        error
	createVerificationErr error
	locale                *provider.Locale
	localeErr             error
}

func (s *stubClient) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *stubClient) callNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *stubClient) CreateAccount(ctx context.Context, email, password string) (*provider.Account, error) {
	s.record("CreateAccount")
	if s.createAccountErr != nil {
		return nil, s.createAccountErr
	}
	return s.account, nil
}

func (s *stubClient) CreateEmailSession(ctx context.Context, email, password string) (*provider.Session, error) {
	s.record("CreateEmailSession")
	if s.createSessionErr != nil {
		return nil, s.createSessionErr
	}
	return &provider.Session{ID: "sess-1", UserID: "user-1"}, nil
}

func (s *stubClient) GetSession(ctx context.Context) (*provider.Session, error) {
	s.record("GetSession")
	if s.getSessionErr != nil {
		return nil, s.getSessionErr
	}
	return &provider.Session{ID: "sess-1", UserID: "user-1"}, nil
}

func (s *stubClient) GetAccount(ctx context.Context) (*provider.Account, error) {
	s.record("GetAccount")
	if s.getAccountErr != nil {
		return nil, s.getAccountErr
	}
	return s.account, nil
}

func (s *stubClient) DeleteSession(ctx context.Context) error {
	s.record("DeleteSession")
	return s.deleteSessionErr
}

func (s *stubClient) UpdateName(ctx context.Context, name string) (*provider.Account, error) {
	s.record("UpdateName")
	if s.updateNameErr != nil {
		return nil, s.updateNameErr
	}
	return s.account, nil
}

func (s *stubClient) UpdatePrefs(ctx context.Context, prefs map[string]string) (*provider.Account, error) {
	s.record("UpdatePrefs")
	if s.updatePrefsErr != nil {
		return nil, s.updatePrefsErr
	}
	return s.account, nil
}

func (s *stubClient) OAuth2URL(providerName, successURL, failureURL string) (string, error) {
	s.record("OAuth2URL")
	return "https://provider.test/oauth", nil
}

func (s *stubClient) CreateVerification(ctx context.Context, redirectURL string) error {
	s.record("CreateVerification")
	return s.createVerificationErr
}

func (s *stubClient) ConfirmVerification(ctx context.Context, userID, secret string) error {
	s.record("ConfirmVerification")
	return nil
}

func (s *stubClient) GetLocale(ctx context.Context) (*provider.Locale, error) {
	s.record("GetLocale")
	if s.localeErr != nil {
		return nil, s.localeErr
	}
	if s.locale != nil {
		return s.locale, nil
	}
	return &provider.Locale{Country: "Barbados", CountryCode: "BB"}, nil
}

// messageRecorder captures dispatched toast and modal messages.
type messageRecorder struct {
	mu     sync.Mutex
	toasts []notify.Message
	modals []notify.Message
}

func (r *messageRecorder) Toast(msg notify.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, msg)
}

func (r *messageRecorder) Modal(msg notify.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modals = append(r.modals, msg)
}

func (r *messageRecorder) toastMessages() []notify.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Message(nil), r.toasts...)
}

type stubGeo struct {
	location string
	err      error
}

func (g *stubGeo) Locate(ctx context.Context) (string, error) {
	return g.location, g.err
}

func verifiedAccount() *provider.Account {
	return &provider.Account{
		ID:            "user-1",
		Name:          "John Doe",
		Email:         "user@example.com",
		EmailVerified: true,
		Prefs:         map[string]string{"role": RoleBuyer},
	}
}

func newTestManager(client *stubClient) (*Manager, *messageRecorder) {
	recorder := &messageRecorder{}
	dispatcher := notify.NewDispatcher(zap.NewNop(), &stubGeo{location: "Barbados"}, recorder, recorder)
	cfg := &config.Config{PublicOrigin: "http://localhost:8080"}
	return NewManager(client, dispatcher, cfg, zap.NewNop()), recorder
}

func TestManager_InitialStateIsUnknown(t *testing.T) {
	m, _ := newTestManager(&stubClient{})
	snap := m.Snapshot()
	assert.Equal(t, StateUnknown, snap.State)
	assert.Nil(t, snap.User)
	assert.False(t, snap.IsAuthenticated())
}

func TestManager_Login_Success(t *testing.T) {
	client := &stubClient{account: verifiedAccount()}
	m, recorder := newTestManager(client)

	u, err := m.Login(context.Background(), "user@example.com", "Password123!")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "John Doe", u.Name)
	assert.Equal(t, RoleBuyer, u.Role)

	snap := m.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.True(t, snap.IsAuthenticated())

	toasts := recorder.toastMessages()
	require.Len(t, toasts, 1)
	assert.Contains(t, toasts[0].Title, "John Doe")
	assert.Contains(t, toasts[0].Description, "Barbados")
}

func TestManager_Login_RejectedCredentials(t *testing.T) {
	client := &stubClient{
		createSessionErr: &provider.Error{Kind: provider.KindInvalidCredentials, StatusCode: 401},
	}
	m, recorder := newTestManager(client)

	u, err := m.Login(context.Background(), "user@example.com", "wrong")
	require.Error(t, err)
	assert.Nil(t, u)
	assert.True(t, provider.IsKind(err, provider.KindInvalidCredentials))

	snap := m.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.False(t, snap.IsAuthenticated())

	// Exactly one failure message.
	toasts := recorder.toastMessages()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Login Failed", toasts[0].Title)
}

func TestManager_Login_RateLimited(t *testing.T) {
	client := &stubClient{
		createSessionErr: &provider.Error{Kind: provider.KindRateLimited, StatusCode: 429},
	}
	m, recorder := newTestManager(client)

	_, err := m.Login(context.Background(), "user@example.com", "Password123!")
	require.Error(t, err)

	toasts := recorder.toastMessages()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Too Many Attempts", toasts[0].Title)
}

func TestManager_Login_UnverifiedEmail(t *testing.T) {
	account := verifiedAccount()
	account.EmailVerified = false
	client := &stubClient{account: account}
	m, _ := newTestManager(client)

	u, err := m.Login(context.Background(), "user@example.com", "Password123!")
	require.ErrorIs(t, err, ErrEmailNotVerified)
	assert.Nil(t, u)

	snap := m.Snapshot()
	assert.Equal(t, StatePendingVerification, snap.State)
	assert.False(t, snap.IsAuthenticated())
	require.NotNil(t, snap.User)
	assert.Equal(t, "user@example.com", snap.User.Email)

	// The provider session created for the attempt must be torn down.
	assert.Contains(t, client.callNames(), "DeleteSession")
}

func TestManager_Logout_ThenCheckSessionStaysAnonymous(t *testing.T) {
	client := &stubClient{account: verifiedAccount()}
	m, _ := newTestManager(client)

	_, err := m.Login(context.Background(), "user@example.com", "Password123!")
	require.NoError(t, err)
	require.Equal(t, StateAuthenticated, m.Snapshot().State)

	m.Logout(context.Background())
	assert.Equal(t, StateAnonymous, m.Snapshot().State)

	// The provider no longer has a session either.
	client.getSessionErr = &provider.Error{Kind: provider.KindSessionNotFound, StatusCode: 401}
	snap := m.CheckSession(context.Background())
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
}

func TestManager_Logout_WhenAnonymousIsHarmless(t *testing.T) {
	client := &stubClient{
		deleteSessionErr: &provider.Error{Kind: provider.KindSessionNotFound, StatusCode: 401},
	}
	m, _ := newTestManager(client)

	m.Logout(context.Background())
	assert.Equal(t, StateAnonymous, m.Snapshot().State)
}

func TestManager_CheckSession_ProviderUnreachable(t *testing.T) {
	client := &stubClient{
		getSessionErr: &provider.Error{Kind: provider.KindUnavailable},
	}
	m, _ := newTestManager(client)

	snap := m.CheckSession(context.Background())
	assert.Equal(t, StateAnonymous, snap.State)
}

func TestManager_CheckSession_UnverifiedParksPending(t *testing.T) {
	account := verifiedAccount()
	account.EmailVerified = false
	client := &stubClient{account: account}
	m, _ := newTestManager(client)

	snap := m.CheckSession(context.Background())
	assert.Equal(t, StatePendingVerification, snap.State)
	assert.False(t, snap.IsAuthenticated())
}

func TestManager_Register_InvalidRoleMakesNoProviderCall(t *testing.T) {
	client := &stubClient{account: verifiedAccount()}
	m, _ := newTestManager(client)

	err := m.Register(context.Background(), RegisterInput{
		FullName: "Jane Roe",
		Email:    "jane@example.com",
		Password: "Secure123!",
		Role:     "admin",
	})
	require.ErrorIs(t, err, ErrInvalidRole)
	assert.Empty(t, client.callNames())
}

func TestManager_Register_Success(t *testing.T) {
	client := &stubClient{account: verifiedAccount()}
	m, recorder := newTestManager(client)

	err := m.Register(context.Background(), RegisterInput{
		FullName: "Jane Roe",
		Email:    "jane@example.com",
		Password: "Secure123!",
		Role:     RoleSeller,
	})
	require.NoError(t, err)

	// Full sequence in order, temporary session dropped at the end.
	assert.Equal(t, []string{
		"CreateAccount",
		"CreateEmailSession",
		"UpdateName",
		"UpdatePrefs",
		"CreateVerification",
		"DeleteSession",
	}, client.callNames())

	// The caller is not implicitly authenticated.
	assert.NotEqual(t, StateAuthenticated, m.Snapshot().State)

	toasts := recorder.toastMessages()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Registration Successful", toasts[0].Title)
}

func TestManager_Register_FailsAtPrefsStep(t *testing.T) {
	client := &stubClient{
		account:        verifiedAccount(),
		updatePrefsErr: &provider.Error{Kind: provider.KindInternal, StatusCode: 500},
	}
	m, recorder := newTestManager(client)

	err := m.Register(context.Background(), RegisterInput{
		FullName: "Jane Roe",
		Email:    "jane@example.com",
		Password: "Secure123!",
		Role:     RoleSeller,
	})
	require.Error(t, err)

	var stepErr *RegisterError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepUpdatePrefs, stepErr.Step)

	// Remaining steps aborted, temporary session torn down.
	calls := client.callNames()
	assert.NotContains(t, calls, "CreateVerification")
	assert.Contains(t, calls, "DeleteSession")

	assert.NotEqual(t, StateAuthenticated, m.Snapshot().State)

	toasts := recorder.toastMessages()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Registration Failed", toasts[0].Title)
}

func TestManager_Subscribe(t *testing.T) {
	client := &stubClient{account: verifiedAccount()}
	m, _ := newTestManager(client)

	var (
		mu     sync.Mutex
		states []State
	)
	unsubscribe := m.Subscribe(func(snap Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, snap.State)
	})

	_, err := m.Login(context.Background(), "user@example.com", "Password123!")
	require.NoError(t, err)
	m.Logout(context.Background())

	mu.Lock()
	got := append([]State(nil), states...)
	mu.Unlock()
	assert.Equal(t, []State{StateAuthenticated, StateAnonymous}, got)

	unsubscribe()
	m.Logout(context.Background())
	mu.Lock()
	assert.Len(t, states, len(got))
	mu.Unlock()
}

func TestRegisterError_Message(t *testing.T) {
	err := &RegisterError{Step: StepUpdateName, Err: assert.AnError}
	assert.True(t, strings.Contains(err.Error(), StepUpdateName))
	assert.ErrorIs(t, err, assert.AnError)
}
