package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"job-recommender/internal/shared/metrics"
	"job-recommender/internal/shared/server/respond"
	"job-recommender/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 and counts it per route.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			route := c.FullPath()
			metrics.IncPanic(route)
			telemetry.Error("http.panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"route":      route,
				"method":     c.Request.Method,
				"error":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
			})
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Something went wrong. Please try again.", nil)
		}()
		c.Next()
	}
}
