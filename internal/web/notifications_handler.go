// File: internal/web/notifications_handler.go
package web

import (
	"strconv"

	"caricom_connects_backend/internal/common"
	"caricom_connects_backend/internal/notify"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultNotificationLimit = 20

// NotificationsHandler exposes the notification feed so the browser can
// render toasts and re-render the active modal.
type NotificationsHandler struct {
	feed   *notify.Feed
	logger *zap.Logger
}

// NewNotificationsHandler creates a new notifications handler.
func NewNotificationsHandler(feed *notify.Feed, logger *zap.Logger) *NotificationsHandler {
	return &NotificationsHandler{
		feed:   feed,
		logger: logger.Named("NotificationsHandler"),
	}
}

// RegisterRoutes sets up the notification feed routes.
func (h *NotificationsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/modal", h.modal)
}

func (h *NotificationsHandler) list(c *gin.Context) {
	limit := defaultNotificationLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("limit must be a positive integer."))
			return
		}
		limit = parsed
	}
	common.RespondOK(c, "", gin.H{"notifications": h.feed.Recent(limit)})
}

func (h *NotificationsHandler) modal(c *gin.Context) {
	entry, ok := h.feed.LastModal()
	if !ok {
		common.RespondOK(c, "", gin.H{"modal": nil})
		return
	}
	common.RespondOK(c, "", gin.H{"modal": entry})
}
