package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Principal is the authenticated caller resolved from a portal token.
type Principal struct {
	SessionID    string
	UserID       string
	Role         string
	Name         string
	Email        string
	BackendToken string
}

// TokenResolver turns a portal access token into the session behind it.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (Principal, error)
}

var errTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)

func AuthMiddleware(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.AbortWithError(c, errTokenNotFound)
			return
		}

		p, err := resolver.ResolveToken(c.Request.Context(), tokenString)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		c.Set("session_id", p.SessionID)
		c.Set("user_id", p.UserID)
		c.Set("role", p.Role)

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, p.UserID)
		ctx = contextutil.WithRole(ctx, p.Role)
		ctx = contextutil.WithBackendToken(ctx, p.BackendToken)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, zap.L()).With(zap.String("user_id", p.UserID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("role")
		for _, role := range allowedRoles {
			if strings.EqualFold(userRole, role) {
				c.Next()
				return
			}
		}
		response.AbortWithError(c, apperror.ErrForbidden)
	}
}
