package web

import (
	"net/http"
	"strings"
	"time"

	"matchbook/domain/interfaces"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const sessionKey = "session"

// requestLogger logs each request with its status and latency.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("Request handled")
	}
}

// requireAuth verifies the bearer token and stores the session in the
// request context.
func requireAuth(identity interfaces.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		session, err := identity.VerifySession(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "invalid or expired session"})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// requireAdmin rejects sessions without the admin flag. Must run after
// requireAuth.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentSession(c).IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: "admin access required"})
			return
		}
		c.Next()
	}
}

// currentSession returns the session stored by requireAuth.
func currentSession(c *gin.Context) *interfaces.Session {
	return c.MustGet(sessionKey).(*interfaces.Session)
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
