// File: internal/provider/http.go
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"caricom_connects_backend/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	projectHeader   = "X-Connect-Project"
	requestIDHeader = "X-Request-ID"
)

// HTTPClient talks to the identity provider's JSON account API. The provider
// issues its session secret as a cookie; the cookie jar scopes that secret to
// this client instance, which is what makes the process hold at most one
// provider session at a time.
type HTTPClient struct {
	endpoint  string
	projectID string
	http      *http.Client
	logger    *zap.Logger
}

// NewHTTPClient creates a provider client from the application configuration.
func NewHTTPClient(cfg *config.Config, logger *zap.Logger) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("error creating provider cookie jar: %w", err)
	}
	return &HTTPClient{
		endpoint:  strings.TrimRight(cfg.ProviderEndpoint, "/"),
		projectID: cfg.ProviderProjectID,
		http: &http.Client{
			Timeout: cfg.ProviderTimeout,
			Jar:     jar,
		},
		logger: logger.Named("ProviderClient"),
	}, nil
}

// apiErrorBody is the provider's error envelope.
type apiErrorBody struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// do performs one JSON request against the provider. A non-nil out is
// populated from a 2xx body; every failure comes back as a *Error.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return newError(KindInternal, "encoding request body", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reqBody)
	if err != nil {
		return newError(KindInternal, "building request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(projectHeader, c.projectID)
	req.Header.Set(requestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Provider request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return newError(KindUnavailable, "identity provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope apiErrorBody
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if unmarshalErr := json.Unmarshal(respBody, &envelope); unmarshalErr != nil {
			envelope.Message = http.StatusText(resp.StatusCode)
		}
		kind := kindForResponse(resp.StatusCode, envelope.Type)
		c.logger.Debug("Provider returned an error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("provider_type", envelope.Type),
			zap.String("kind", string(kind)),
		)
		return &Error{
			Kind:         kind,
			StatusCode:   resp.StatusCode,
			ProviderType: envelope.Type,
			Message:      envelope.Message,
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return newError(KindInternal, "decoding provider response", err)
		}
	}
	return nil
}

func (c *HTTPClient) CreateAccount(ctx context.Context, email, password string) (*Account, error) {
	req := map[string]string{
		"userId":   uuid.NewString(),
		"email":    email,
		"password": password,
	}
	var account Account
	if err := c.do(ctx, http.MethodPost, "/account", req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *HTTPClient) CreateEmailSession(ctx context.Context, email, password string) (*Session, error) {
	req := map[string]string{
		"email":    email,
		"password": password,
	}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/account/sessions/email", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HTTPClient) GetSession(ctx context.Context) (*Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodGet, "/account/sessions/current", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HTTPClient) GetAccount(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.do(ctx, http.MethodGet, "/account", nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *HTTPClient) DeleteSession(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/account/sessions/current", nil, nil)
}

func (c *HTTPClient) UpdateName(ctx context.Context, name string) (*Account, error) {
	var account Account
	if err := c.do(ctx, http.MethodPatch, "/account/name", map[string]string{"name": name}, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *HTTPClient) UpdatePrefs(ctx context.Context, prefs map[string]string) (*Account, error) {
	var account Account
	req := map[string]interface{}{"prefs": prefs}
	if err := c.do(ctx, http.MethodPatch, "/account/prefs", req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// OAuth2URL builds the browser redirect for a provider-brokered OAuth login.
// The handshake itself happens entirely on the provider side; the browser
// lands back on successURL or failureURL.
func (c *HTTPClient) OAuth2URL(providerName, successURL, failureURL string) (string, error) {
	if strings.TrimSpace(providerName) == "" {
		return "", newError(KindUnknown, "oauth provider name must not be empty", nil)
	}
	q := url.Values{}
	q.Set("project", c.projectID)
	q.Set("success", successURL)
	q.Set("failure", failureURL)
	return fmt.Sprintf("%s/account/sessions/oauth2/%s?%s",
		c.endpoint, url.PathEscape(providerName), q.Encode()), nil
}

func (c *HTTPClient) CreateVerification(ctx context.Context, redirectURL string) error {
	return c.do(ctx, http.MethodPost, "/account/verification", map[string]string{"url": redirectURL}, nil)
}

func (c *HTTPClient) ConfirmVerification(ctx context.Context, userID, secret string) error {
	req := map[string]string{
		"userId": userID,
		"secret": secret,
	}
	return c.do(ctx, http.MethodPut, "/account/verification", req, nil)
}

func (c *HTTPClient) GetLocale(ctx context.Context) (*Locale, error) {
	var locale Locale
	if err := c.do(ctx, http.MethodGet, "/locale", nil, &locale); err != nil {
		return nil, err
	}
	return &locale, nil
}
