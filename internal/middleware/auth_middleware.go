package middleware

import (
	"net/http"
	"strings"

	"github.com/HovVathana/shoppink-backend/config"
	apperrors "github.com/HovVathana/shoppink-backend/internal/errors"
	"github.com/HovVathana/shoppink-backend/pkg/logger"
	"github.com/HovVathana/shoppink-backend/pkg/redis"
	"github.com/HovVathana/shoppink-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth.
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
)

// RequireAuth validates the Bearer token and loads the caller's identity into
// the request context. Revoked tokens are rejected.
func RequireAuth(jwtCfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthUnauthorized, "Authorization token required")
			c.Abort()
			return
		}

		if revoked, err := redis.IsTokenBlacklisted(c.Request.Context(), token); err == nil && revoked {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenRevoked, "Token has been revoked")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(token, jwtCfg.Secret)
		if err != nil {
			code := apperrors.AuthTokenInvalid
			message := "Invalid token"
			if err == util.ErrExpiredToken {
				code = apperrors.AuthTokenExpired
				message = "Token has expired"
			}
			apperrors.RespondWithError(c, http.StatusUnauthorized, code, message)
			c.Abort()
			return
		}
		if claims.TokenType != "access" {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Invalid token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole allows only the listed roles; it must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(UserRoleKey)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		logger.Warn("Access denied by role", map[string]interface{}{
			"user_id": c.GetUint(UserIDKey),
			"role":    role,
			"path":    c.Request.URL.Path,
		})
		apperrors.Forbidden(c, "You do not have permission to access this resource")
		c.Abort()
	}
}

// RequireOperator restricts a route to dashboard roles.
func RequireOperator() gin.HandlerFunc {
	return RequireRole("staff", "admin")
}

// RequireAdmin restricts a route to admins.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("admin")
}

// CurrentUserID reads the authenticated user id set by RequireAuth.
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(UserIDKey)
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
