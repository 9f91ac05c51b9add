// File: internal/middleware/error.go
package middleware

import (
	"caricom_connects_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler converts errors attached to the gin context into the APIError
// response shape. Unmatched routes are handled by the router's NoRoute and
// NoMethod handlers, not here.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}
		if apiErr, ok := common.IsAPIError(last.Err); ok {
			c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
			return
		}
		logger.Error("Unhandled application error",
			zap.Error(last.Err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(RequestIDContextKey)),
		)
		resp := common.ErrInternalServer.WithDetails("An unexpected error occurred.")
		if gin.Mode() == gin.DebugMode {
			resp = common.ErrInternalServer.WithDetails(last.Err.Error())
		}
		c.AbortWithStatusJSON(resp.StatusCode, resp)
	}
}
