package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tastebook-backend/internal/platform/ctxutil"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
	"github.com/yungbote/tastebook-backend/internal/services"
)

// AuthMiddleware resolves bearer tokens into request identity.
type AuthMiddleware struct {
	log  *logger.Logger
	auth *services.AuthService
}

func NewAuthMiddleware(baseLog *logger.Logger, auth *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: baseLog.With("middleware", "Auth"), auth: auth}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Require rejects requests without a valid access token.
func (m *AuthMiddleware) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "missing_token",
				"message": "authorization required",
			})
			return
		}
		userID, err := m.auth.VerifyAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token",
				"message": "authorization required",
			})
			return
		}
		rd := &ctxutil.RequestData{TokenString: token, UserID: userID}
		c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

// Optional attaches identity when a valid token is present and lets
// anonymous requests through. Read endpoints use it for viewer-relative
// flags.
func (m *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			if userID, err := m.auth.VerifyAccess(token); err == nil {
				rd := &ctxutil.RequestData{TokenString: token, UserID: userID}
				c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
			} else {
				m.log.Debug("Ignoring invalid token on optional route", "error", errors.Unwrap(err))
			}
		}
		c.Next()
	}
}
