// File: internal/guard/guard.go
package guard

import (
	"net/http"

	"caricom_connects_backend/internal/common"
	"caricom_connects_backend/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// The guards re-evaluate the session snapshot on every request; nothing is
// cached. While the state is still Unknown they answer with a loading
// placeholder instead of guessing Anonymous, so a freshly started instance
// never flash-redirects a private route to the login view.

// PublicOnly wraps views that only make sense for logged-out users (login,
// register). An authenticated user is redirected to the dashboard.
func PublicOnly(sessions session.Service, logger *zap.Logger) gin.HandlerFunc {
	l := logger.Named("PublicGuard")
	return func(c *gin.Context) {
		snap := sessions.Snapshot()
		switch {
		case snap.State == session.StateUnknown:
			respondLoading(c)
		case snap.IsAuthenticated():
			l.Debug("Authenticated user on public-only route, redirecting",
				zap.String("path", c.Request.URL.Path),
			)
			c.Redirect(http.StatusSeeOther, common.PathDashboard)
			c.Abort()
		default:
			c.Next()
		}
	}
}

// PrivateOnly wraps views that require an authenticated, email-verified user.
// A user pending verification is sent to the check-email view; everyone else
// unauthenticated goes to login.
func PrivateOnly(sessions session.Service, logger *zap.Logger) gin.HandlerFunc {
	l := logger.Named("PrivateGuard")
	return func(c *gin.Context) {
		snap := sessions.Snapshot()
		switch {
		case snap.State == session.StateUnknown:
			respondLoading(c)
		case snap.IsAuthenticated():
			c.Next()
		case snap.State == session.StatePendingVerification:
			l.Debug("Unverified user on private route, redirecting to check-email",
				zap.String("path", c.Request.URL.Path),
			)
			c.Redirect(http.StatusSeeOther, common.PathCheckEmail)
			c.Abort()
		default:
			l.Debug("Anonymous user on private route, redirecting to login",
				zap.String("path", c.Request.URL.Path),
			)
			c.Redirect(http.StatusSeeOther, common.PathLogin)
			c.Abort()
		}
	}
}

func respondLoading(c *gin.Context) {
	common.RespondAccepted(c, "Session check in progress.", gin.H{"view": "loading"})
	c.Abort()
}
