// File: internal/guard/guard_test.go
package guard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"caricom_connects_backend/internal/common"
	"caricom_connects_backend/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fixedSessions serves a fixed snapshot; the guards only consume Snapshot.
type fixedSessions struct {
	snap session.Snapshot
}

func (f fixedSessions) CheckSession(ctx context.Context) session.Snapshot { return f.snap }
func (f fixedSessions) Login(ctx context.Context, email, password string) (*session.User, error) {
	return nil, nil
}
func (f fixedSessions) Register(ctx context.Context, in session.RegisterInput) error { return nil }
func (f fixedSessions) Logout(ctx context.Context)                                   {}
func (f fixedSessions) Snapshot() session.Snapshot                                   { return f.snap }
func (f fixedSessions) Subscribe(fn func(session.Snapshot)) func()                   { return func() {} }

func authenticatedSnapshot() session.Snapshot {
	return session.Snapshot{
		State: session.StateAuthenticated,
		User:  &session.User{ID: "user-1", Name: "John Doe", EmailVerified: true, Role: session.RoleBuyer},
	}
}

func pendingSnapshot() session.Snapshot {
	return session.Snapshot{
		State: session.StatePendingVerification,
		User:  &session.User{ID: "user-1", Email: "user@example.com"},
	}
}

func runGuard(t *testing.T, mw gin.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET(path, mw, func(c *gin.Context) {
		c.String(http.StatusOK, "view")
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestPublicOnly(t *testing.T) {
	tests := []struct {
		name         string
		snap         session.Snapshot
		wantStatus   int
		wantLocation string
	}{
		{
			name:       "unknown state answers loading, not the view",
			snap:       session.Snapshot{State: session.StateUnknown},
			wantStatus: http.StatusAccepted,
		},
		{
			name:         "authenticated user redirected to dashboard",
			snap:         authenticatedSnapshot(),
			wantStatus:   http.StatusSeeOther,
			wantLocation: common.PathDashboard,
		},
		{
			name:       "anonymous user passes through",
			snap:       session.Snapshot{State: session.StateAnonymous},
			wantStatus: http.StatusOK,
		},
		{
			name:       "pending verification passes through",
			snap:       pendingSnapshot(),
			wantStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := PublicOnly(fixedSessions{snap: tt.snap}, zap.NewNop())
			w := runGuard(t, mw, common.PathLogin)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			}
		})
	}
}

func TestPrivateOnly(t *testing.T) {
	tests := []struct {
		name         string
		snap         session.Snapshot
		wantStatus   int
		wantLocation string
	}{
		{
			name:       "unknown state answers loading, not a redirect",
			snap:       session.Snapshot{State: session.StateUnknown},
			wantStatus: http.StatusAccepted,
		},
		{
			name:       "authenticated user passes through",
			snap:       authenticatedSnapshot(),
			wantStatus: http.StatusOK,
		},
		{
			name:         "pending verification sent to check-email",
			snap:         pendingSnapshot(),
			wantStatus:   http.StatusSeeOther,
			wantLocation: common.PathCheckEmail,
		},
		{
			name:         "anonymous user sent to login",
			snap:         session.Snapshot{State: session.StateAnonymous},
			wantStatus:   http.StatusSeeOther,
			wantLocation: common.PathLogin,
		},
		{
			name: "authenticated state without verified email is not trusted",
			snap: session.Snapshot{
				State: session.StateAuthenticated,
				User:  &session.User{ID: "user-1", EmailVerified: false},
			},
			wantStatus:   http.StatusSeeOther,
			wantLocation: common.PathLogin,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := PrivateOnly(fixedSessions{snap: tt.snap}, zap.NewNop())
			w := runGuard(t, mw, common.PathDashboard)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			}
		})
	}
}
