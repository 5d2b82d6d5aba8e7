package domain

import (
	"github.com/paservices/auth-service/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrClientNotFound indicates a client with the specified ID was not found.
	// Internal signal only: the token endpoint maps it to ErrInvalidCredentials
	// so callers cannot probe for registered client ids.
	ErrClientNotFound = errors.Wrap(errors.ErrNotFound, "client not found")

	// ErrRoleNotFound indicates a role with the specified name was not found.
	ErrRoleNotFound = errors.Wrap(errors.ErrNotFound, "role not found")

	// ErrPermissionNotFound indicates a permission with the specified name was not found.
	ErrPermissionNotFound = errors.Wrap(errors.ErrNotFound, "permission not found")

	// ErrInvalidCredentials is returned for both unknown client ids and wrong
	// secrets. The two causes are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid client credentials")

	// ErrClientInactive indicates the secret was valid but the client is
	// deactivated. Distinguishable from ErrInvalidCredentials because the
	// caller has already proven knowledge of the secret.
	ErrClientInactive = errors.Wrap(errors.ErrUnauthorized, "client is inactive")
)

// Token verification errors. Verification checks run in a fixed order
// (structure, signature, expiry, issuer/audience) and report the first failure.
var (
	ErrTokenMalformed        = errors.Wrap(errors.ErrUnauthorized, "token is malformed")
	ErrTokenInvalidSignature = errors.Wrap(errors.ErrUnauthorized, "token signature is invalid")
	ErrTokenExpired          = errors.Wrap(errors.ErrUnauthorized, "token is expired")
	ErrTokenIssuerMismatch   = errors.Wrap(errors.ErrUnauthorized, "token issuer mismatch")
	ErrTokenAudienceMismatch = errors.Wrap(errors.ErrUnauthorized, "token audience mismatch")
	ErrTokenWrongType        = errors.Wrap(errors.ErrUnauthorized, "token is not an m2m access token")
)
