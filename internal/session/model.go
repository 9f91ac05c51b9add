// File: internal/session/model.go
package session

import (
	"context"
	"errors"
	"fmt"

	"caricom_connects_backend/internal/provider"
)

// State is the machine's belief about who is logged in.
type State string

const (
	// StateUnknown is the initial state before the first session check.
	// Route guards must treat it as "still loading", never as Anonymous.
	StateUnknown State = "unknown"
	StateAnonymous State = "anonymous"
	// StatePendingVerification means a provider session or account exists
	// but the email is unverified. Not authenticated for routing purposes.
	StatePendingVerification State = "pending_verification"
	StateAuthenticated       State = "authenticated"
)

// Roles a user picks at registration.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// ValidRole reports whether role is one of the registration roles.
func ValidRole(role string) bool {
	return role == RoleBuyer || role == RoleSeller
}

// User is the local identity record derived from the provider account.
type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Role          string `json:"role"`
}

func userFromAccount(a *provider.Account) *User {
	return &User{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		EmailVerified: a.EmailVerified,
		Role:          a.Prefs["role"],
	}
}

// Snapshot is an immutable view of the machine at one point in time.
type Snapshot struct {
	State State `json:"state"`
	User  *User `json:"user,omitempty"`
}

// IsAuthenticated is the single gate route guards consume: a user must exist
// AND have a verified email.
func (s Snapshot) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.User != nil && s.User.EmailVerified
}

var (
	// ErrEmailNotVerified is returned by Login when the provider accepted
	// the credentials but the account's email is unverified. The session
	// created by the provider is not kept authoritative.
	ErrEmailNotVerified = errors.New("email not verified")
	// ErrInvalidRole is returned by Register before any provider call when
	// the requested role is not a registration role.
	ErrInvalidRole = errors.New("role must be buyer or seller")
)

// Registration step names used in RegisterError.
const (
	StepCreateAccount    = "create account"
	StepCreateSession    = "create session"
	StepUpdateName       = "update name"
	StepUpdatePrefs      = "update preferences"
	StepSendVerification = "send verification email"
	StepDeleteSession    = "delete temporary session"
)

// RegisterError reports which step of the registration sequence failed.
// Earlier steps are not rolled back; an account created before a later step
// failed stays on the provider, unverified.
type RegisterError struct {
	Step string
	Err  error
}

func (e *RegisterError) Error() string {
	return fmt.Sprintf("register: %s: %v", e.Step, e.Err)
}

func (e *RegisterError) Unwrap() error {
	return e.Err
}

// RegisterInput carries the registration form fields. Field validation
// (password policy, email format) happens at the HTTP boundary; the manager
// re-checks only the role, which gates the provider call sequence.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Role     string
}

// Service is the single authority for "who is logged in". All state
// transitions go through it; consumers receive updates through Subscribe
// rather than any ambient shared context.
type Service interface {
	// CheckSession queries the provider for an existing session and always
	// resolves to a defined state. It never returns an error.
	CheckSession(ctx context.Context) Snapshot
	// Login exchanges credentials for an authenticated state. An account
	// with an unverified email is treated as a failure even though the
	// provider created a session.
	Login(ctx context.Context, email, password string) (*User, error)
	// Register runs the account creation sequence. It never promotes the
	// temporary session it uses to set profile attributes.
	Register(ctx context.Context, in RegisterInput) error
	// Logout destroys the provider session unconditionally. Idempotent.
	Logout(ctx context.Context)
	// Snapshot returns the current state without touching the provider.
	Snapshot() Snapshot
	// Subscribe registers fn to be called after every state transition.
	// The returned function cancels the subscription.
	Subscribe(fn func(Snapshot)) (unsubscribe func())
}
