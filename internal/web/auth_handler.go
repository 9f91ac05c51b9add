// File: internal/web/auth_handler.go
package web

import (
	"errors"
	"net/http"

	"caricom_connects_backend/internal/common"
	"caricom_connects_backend/internal/config"
	"caricom_connects_backend/internal/provider"
	"caricom_connects_backend/internal/session"
	"caricom_connects_backend/internal/verification"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AuthHandler exposes the session operations as a JSON API.
type AuthHandler struct {
	sessions session.Service
	flow     *verification.Flow
	client   provider.Client
	cfg      *config.Config
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(
	sessions session.Service,
	flow *verification.Flow,
	client provider.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		flow:     flow,
		client:   client,
		cfg:      cfg,
		logger:   logger.Named("AuthHandler"),
	}
}

// RegisterRoutes sets up the routes for authentication operations.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.POST("/logout", h.logout)
		authGroup.GET("/session", h.session)
		authGroup.GET("/oauth/:provider", h.oauthRedirect)
		authGroup.POST("/verify", h.verify)
		authGroup.POST("/verification", h.resendVerification)
	}
}

func (h *AuthHandler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Login: invalid request body", zap.Error(err))
		respondBindingError(c, err)
		return
	}

	u, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrEmailNotVerified) {
			// Soft denial: the account exists but must verify first.
			apiErr := common.NewAPIError(http.StatusForbidden, "EMAIL_NOT_VERIFIED",
				"Your email address has not been verified yet.")
			common.RespondWithError(c, apiErr.WithDetails(gin.H{"redirect": common.PathCheckEmail}))
			return
		}
		common.RespondWithError(c, apiErrorForProvider(err))
		return
	}

	common.RespondOK(c, "Login successful.", gin.H{
		"user":     ToUserResponse(u),
		"remember": req.Remember,
	})
}

func (h *AuthHandler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Register: invalid request body", zap.Error(err))
		respondBindingError(c, err)
		return
	}

	in := session.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
	if err := h.sessions.Register(c.Request.Context(), in); err != nil {
		if errors.Is(err, session.ErrInvalidRole) {
			common.RespondWithError(c, common.NewValidationAPIError(
				map[string]string{"role": "The role field must be one of the following values: buyer seller."}))
			return
		}
		var stepErr *session.RegisterError
		if errors.As(err, &stepErr) {
			h.logger.Warn("Registration sequence aborted", zap.String("step", stepErr.Step))
		}
		common.RespondWithError(c, apiErrorForProvider(err))
		return
	}

	common.RespondCreated(c, "Registration successful. Check your email to verify your address.",
		gin.H{"redirect": common.PathCheckEmail})
}

func (h *AuthHandler) logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context())
	common.RespondOK(c, "Logged out.", ToSessionResponse(h.sessions.Snapshot()))
}

// session re-checks the provider session and returns the resolved snapshot.
// It never fails: an unreachable provider resolves to an anonymous state.
func (h *AuthHandler) session(c *gin.Context) {
	snap := h.sessions.CheckSession(c.Request.Context())
	common.RespondOK(c, "Session resolved.", ToSessionResponse(snap))
}

// oauthRedirect sends the browser to the provider's OAuth broker for the
// named upstream provider. Success and failure land back on this origin.
func (h *AuthHandler) oauthRedirect(c *gin.Context) {
	name := c.Param("provider")
	authURL, err := h.client.OAuth2URL(
		name,
		h.cfg.PublicOrigin+common.PathSuccess,
		h.cfg.PublicOrigin+common.PathFailed,
	)
	if err != nil {
		h.logger.Warn("OAuth redirect rejected", zap.String("provider", name), zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Unknown OAuth provider."))
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (h *AuthHandler) verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	result := h.flow.Confirm(c.Request.Context(), req.UserID, req.Secret)
	if result.Status != verification.StatusVerified {
		apiErr := common.NewAPIError(http.StatusUnprocessableEntity, "VERIFICATION_FAILED",
			"Email verification failed.")
		common.RespondWithError(c, apiErr.WithDetails(result))
		return
	}
	common.RespondOK(c, "Email verified.", result)
}

// resendVerification re-sends the verification email. The provider only
// mails the current session holder, so this briefly opens a session with the
// supplied credentials and drops it again afterwards.
func (h *AuthHandler) resendVerification(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.client.CreateEmailSession(ctx, req.Email, req.Password); err != nil {
		common.RespondWithError(c, apiErrorForProvider(err))
		return
	}
	verifyErr := h.client.CreateVerification(ctx, h.cfg.PublicOrigin+common.PathVerify)
	if err := h.client.DeleteSession(ctx); err != nil {
		h.logger.Warn("Temporary session delete failed after resend", zap.Error(err))
	}
	if verifyErr != nil {
		common.RespondWithError(c, apiErrorForProvider(verifyErr))
		return
	}
	common.RespondOK(c, "Verification email sent.", gin.H{"redirect": common.PathCheckEmail})
}

// respondBindingError converts gin binding failures into the standard
// validation error shape.
func respondBindingError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
		return
	}
	common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
}

// apiErrorForProvider maps classified provider errors onto the API error
// taxonomy. Raw provider message text never reaches the response.
func apiErrorForProvider(err error) *common.APIError {
	switch provider.Kind(err) {
	case provider.KindInvalidCredentials:
		return common.ErrUnauthorized.WithDetails("Invalid email or password.")
	case provider.KindUserAlreadyExists:
		return common.ErrConflict.WithDetails("An account with this email already exists.")
	case provider.KindUserNotFound:
		return common.ErrNotFound.WithDetails("No account found for this email.")
	case provider.KindSessionNotFound:
		return common.ErrUnauthorized.WithDetails("No active session.")
	case provider.KindSessionConflict:
		return common.NewAPIError(http.StatusConflict, "SESSION_CONFLICT",
			"Another session is already in progress.")
	case provider.KindRateLimited:
		return common.ErrTooManyRequests
	case provider.KindInvalidToken:
		return common.NewAPIError(http.StatusUnprocessableEntity, "INVALID_TOKEN",
			"The token is invalid or has expired.")
	case provider.KindUnavailable:
		return common.ErrServiceUnavailable
	default:
		return common.ErrInternalServer
	}
}
