// File: internal/provider/client.go
package provider

import (
	"context"
	"time"
)

// Account is the provider's user record for the current session holder.
type Account struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	EmailVerified bool              `json:"emailVerification"`
	Prefs         map[string]string `json:"prefs"`
	RegisteredAt  time.Time         `json:"registration"`
}

// Session is the provider-issued session descriptor. The session secret
// itself travels in a cookie owned by the provider HTTP client; this struct
// only carries the metadata the application reads.
type Session struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Provider string    `json:"provider"`
	Expire   time.Time `json:"expire"`
}

// Locale describes where the provider believes the current request came from.
type Locale struct {
	IP          string `json:"ip"`
	CountryCode string `json:"countryCode"`
	Country     string `json:"country"`
	Continent   string `json:"continent"`
	Currency    string `json:"currency"`
}

// Client is the boundary to the external identity provider. Every durable
// identity fact (credentials, verification tokens, OAuth handshakes) lives on
// the provider side; this interface only brokers operations against it.
type Client interface {
	// CreateAccount registers a new account with the given credentials.
	// The account starts unverified.
	CreateAccount(ctx context.Context, email, password string) (*Account, error)
	// CreateEmailSession exchanges credentials for a provider session bound
	// to this client instance.
	CreateEmailSession(ctx context.Context, email, password string) (*Session, error)
	// GetSession returns the current session, or an error of kind
	// KindSessionNotFound when none is active.
	GetSession(ctx context.Context) (*Session, error)
	// GetAccount returns the account of the current session holder.
	GetAccount(ctx context.Context) (*Account, error)
	// DeleteSession destroys the current session on the provider.
	DeleteSession(ctx context.Context) error
	// UpdateName sets the display name of the current account.
	UpdateName(ctx context.Context, name string) (*Account, error)
	// UpdatePrefs replaces the preferences map of the current account.
	UpdatePrefs(ctx context.Context, prefs map[string]string) (*Account, error)
	// OAuth2URL builds the provider's OAuth redirect URL for the named
	// upstream provider with explicit success and failure landing URLs.
	// No network call is made.
	OAuth2URL(providerName, successURL, failureURL string) (string, error)
	// CreateVerification asks the provider to email a verification link to
	// the current session holder; the link lands on redirectURL with
	// userId and secret query parameters appended by the provider.
	CreateVerification(ctx context.Context, redirectURL string) error
	// ConfirmVerification redeems an emailed verification token.
	ConfirmVerification(ctx context.Context, userID, secret string) error
	// GetLocale returns the provider's geo lookup for the current request.
	GetLocale(ctx context.Context) (*Locale, error)
}
