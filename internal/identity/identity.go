// Package identity integrates with the external identity provider that owns
// end-user accounts. This service only provisions privileged accounts during
// bootstrap; login, registration, and session flows stay with the provider.
package identity

import (
	"context"
	"time"

	"github.com/paservices/auth-service/internal/errors"
)

// ErrIdentityNotFound indicates no account matched the lookup.
var ErrIdentityNotFound = errors.Wrap(errors.ErrNotFound, "identity not found")

// Identity is the provider's view of an account. Only the fields this service
// consumes are mapped.
type Identity struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Provider abstracts the identity service's admin API.
type Provider interface {
	// CreateAccount provisions a new account with a confirmed email.
	// Returns ErrConflict-wrapped errors when the email is already registered.
	CreateAccount(ctx context.Context, email, password string) (*Identity, error)

	// FindAccountByEmail looks up an account by email.
	// Returns ErrIdentityNotFound when no account matches.
	FindAccountByEmail(ctx context.Context, email string) (*Identity, error)
}
