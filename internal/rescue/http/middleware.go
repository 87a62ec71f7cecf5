package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/errors"
)

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// authMiddleware enforces a static bearer token on the synchronous RPC
// endpoint. An empty token disables the check.
func authMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		if c.GetHeader("Authorization") != "Bearer "+token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errors.New(
				errors.KindValidation, "unauthorized", nil, http.StatusUnauthorized,
			))
			return
		}

		c.Next()
	}
}
