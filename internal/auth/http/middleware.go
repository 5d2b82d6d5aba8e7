// Package http provides HTTP handlers and middleware for authentication.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/paservices/auth-service/internal/auth/usecase"
	apperrors "github.com/paservices/auth-service/internal/errors"
	"github.com/paservices/auth-service/internal/httputil"
)

// AuthenticationMiddleware authenticates requests via a Bearer JWT in the
// Authorization header.
//
// The middleware extracts the Bearer token (case-insensitive prefix), verifies
// it through tokenUseCase.Verify, and stores the verified claims in the request
// context for downstream handlers via GetClaims().
//
// Error handling:
//   - Missing Authorization header → 401 Unauthorized
//   - Malformed Authorization header → 401 Unauthorized
//   - Invalid/expired/mismatched token → 401 Unauthorized (from TokenUseCase.Verify)
func AuthenticationMiddleware(
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := authHeader[len(bearerPrefix):]
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		claims, err := tokenUseCase.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithClaims(c.Request.Context(), claims)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("client_id", claims.Subject))

		c.Next()
	}
}

// RequirePermission authorizes authenticated requests against a named
// permission from the verified token claims.
//
// This middleware MUST be used after AuthenticationMiddleware. It returns
// 401 Unauthorized if no claims are present in the context and 403 Forbidden
// if the token does not carry the required permission.
func RequirePermission(permission string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok || claims == nil {
			logger.Debug("authorization failed: no verified claims in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !claims.HasPermission(permission) {
			logger.Debug("authorization failed: insufficient permissions",
				slog.String("client_id", claims.Subject),
				slog.String("permission", permission))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		logger.Debug("authorization successful",
			slog.String("client_id", claims.Subject),
			slog.String("permission", permission))

		c.Next()
	}
}
