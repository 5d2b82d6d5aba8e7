package http

import (
	"context"

	authService "github.com/paservices/auth-service/internal/auth/service"
)

// claimsContextKey is the context key for storing the verified token claims.
type claimsContextKey struct{}

// WithClaims returns a new context with the verified access token claims attached.
func WithClaims(ctx context.Context, claims *authService.AccessTokenClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// GetClaims retrieves the verified access token claims from the context.
// Returns the claims and true if present, nil and false otherwise.
func GetClaims(ctx context.Context) (*authService.AccessTokenClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*authService.AccessTokenClaims)
	return claims, ok
}
