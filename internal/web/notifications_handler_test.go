// File: internal/web/notifications_handler_test.go
package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"caricom_connects_backend/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newNotificationsRouter(t *testing.T) (*gin.Engine, *notify.Feed) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	feed := notify.NewFeed()
	handler := NewNotificationsHandler(feed, zap.NewNop())
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1/notifications"))
	return router, feed
}

func TestNotificationsHandler_List(t *testing.T) {
	router, feed := newNotificationsRouter(t)
	feed.Toast(notify.Auth.LoginFailure())
	feed.Toast(notify.Auth.SessionInactive())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?limit=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	entries := data["notifications"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	msg := entry["message"].(map[string]interface{})
	assert.Equal(t, "Session Inactive", msg["title"])
}

func TestNotificationsHandler_ListRejectsBadLimit(t *testing.T) {
	router, _ := newNotificationsRouter(t)

	for _, limit := range []string{"0", "-3", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?limit="+limit, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, limit)
	}
}

func TestNotificationsHandler_Modal(t *testing.T) {
	router, feed := newNotificationsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/modal", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Nil(t, data["modal"])

	feed.Modal(notify.System.SessionConflict())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	data = body["data"].(map[string]interface{})
	modal := data["modal"].(map[string]interface{})
	msg := modal["message"].(map[string]interface{})
	assert.Equal(t, "Session In Progress", msg["title"])
}
