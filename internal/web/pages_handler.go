// File: internal/web/pages_handler.go
package web

import (
	"net/http"

	"caricom_connects_backend/internal/common"
	"caricom_connects_backend/internal/session"
	"caricom_connects_backend/internal/verification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PagesHandler serves the browser route surface as JSON view descriptors.
// Presentation is the frontend's concern; these endpoints only decide which
// view renders and with what data, which is exactly what the route guards
// gate.
type PagesHandler struct {
	sessions session.Service
	flow     *verification.Flow
	logger   *zap.Logger
}

// NewPagesHandler creates a new pages handler.
func NewPagesHandler(sessions session.Service, flow *verification.Flow, logger *zap.Logger) *PagesHandler {
	return &PagesHandler{
		sessions: sessions,
		flow:     flow,
		logger:   logger.Named("PagesHandler"),
	}
}

// RegisterRoutes wires the page routes with their guards. Login and register
// are public-only; the dashboard is private-only; the rest are reachable in
// any session state.
func (h *PagesHandler) RegisterRoutes(router gin.IRouter, publicOnly, privateOnly gin.HandlerFunc) {
	router.GET(common.PathHome, h.home)
	router.GET(common.PathLogin, publicOnly, h.login)
	router.GET(common.PathRegister, publicOnly, h.register)
	router.GET(common.PathDashboard, privateOnly, h.dashboard)
	router.GET(common.PathCheckEmail, h.checkEmail)
	router.GET(common.PathVerify, h.verify)
	router.GET(common.PathSuccess, h.oauthSuccess)
	router.GET(common.PathFailed, h.oauthFailed)
}

func (h *PagesHandler) home(c *gin.Context) {
	common.RespondOK(c, "", gin.H{
		"view":    "home",
		"session": ToSessionResponse(h.sessions.Snapshot()),
	})
}

func (h *PagesHandler) login(c *gin.Context) {
	common.RespondOK(c, "", gin.H{"view": "login"})
}

func (h *PagesHandler) register(c *gin.Context) {
	common.RespondOK(c, "", gin.H{
		"view":  "register",
		"roles": []string{session.RoleBuyer, session.RoleSeller},
	})
}

func (h *PagesHandler) dashboard(c *gin.Context) {
	common.RespondOK(c, "", gin.H{
		"view":    "dashboard",
		"session": ToSessionResponse(h.sessions.Snapshot()),
	})
}

func (h *PagesHandler) checkEmail(c *gin.Context) {
	data := gin.H{"view": "check-email"}
	if snap := h.sessions.Snapshot(); snap.User != nil {
		data["email"] = snap.User.Email
	}
	common.RespondOK(c, "", data)
}

// verify is the landing page for emailed verification links. A link missing
// either parameter fails locally and sends the browser straight back to
// login; otherwise the confirmation result renders with a manual follow-up
// action, no auto-redirect.
func (h *PagesHandler) verify(c *gin.Context) {
	userID := c.Query("userId")
	secret := c.Query("secret")

	if userID == "" || secret == "" {
		// Confirm dispatches the failure notification without a provider
		// call before we bounce the browser.
		h.flow.Confirm(c.Request.Context(), userID, secret)
		c.Redirect(http.StatusSeeOther, common.PathLogin)
		return
	}

	result := h.flow.Confirm(c.Request.Context(), userID, secret)
	common.RespondOK(c, "", gin.H{
		"view":   "verify",
		"result": result,
	})
}

// oauthSuccess is the landing page after a provider-brokered OAuth login.
// The session is re-checked so the freshly issued provider session is
// adopted before the view renders.
func (h *PagesHandler) oauthSuccess(c *gin.Context) {
	snap := h.sessions.CheckSession(c.Request.Context())
	common.RespondOK(c, "", gin.H{
		"view":    "success",
		"session": ToSessionResponse(snap),
	})
}

func (h *PagesHandler) oauthFailed(c *gin.Context) {
	common.RespondOK(c, "", gin.H{
		"view":  "failed",
		"retry": common.PathLogin,
	})
}
