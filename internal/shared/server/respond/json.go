package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes payload with status. Bodies carry resume-derived text and are never cached.
func JSON(c *gin.Context, status int, payload any) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, payload)
}

// OK writes a 200 response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}
