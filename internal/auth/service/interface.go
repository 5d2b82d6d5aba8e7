// Package service provides technical services for authentication operations.
//
// This package implements reusable services for client secret generation,
// hashing, and validation, and for signing and verifying machine-to-machine
// access tokens.
package service

import (
	"time"

	"github.com/google/uuid"
)

// SecretService defines operations for client secret generation and validation.
// Implementations must use cryptographically secure random generation and
// industry-standard hashing algorithms (e.g., bcrypt, argon2).
type SecretService interface {
	// GenerateSecret creates a new cryptographically secure random secret.
	// Returns both the plain text secret (to be shared with the client) and
	// the hashed version (to be stored in the database).
	//
	// The plain secret should be treated as sensitive data and only displayed
	// once to the client during creation.
	GenerateSecret() (plainSecret string, hashedSecret string, error error)

	// HashSecret hashes a plain text secret using a secure hashing algorithm.
	// Each call salts freshly, so hashing the same secret twice produces
	// different strings; callers must not compare hashes for equality.
	HashSecret(plainSecret string) (hashedSecret string, error error)

	// CompareSecret compares a plain text secret against a hashed secret.
	// Returns true if the plain secret matches the hash, false otherwise,
	// including on malformed hash input (fails closed). This is constant-time
	// to prevent timing attacks.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// JWTService signs and verifies machine-to-machine access tokens. The signing
// key is dedicated to M2M tokens, read-only after load, and safe to share
// across concurrent issuances and verifications without synchronization.
type JWTService interface {
	// Issue builds and signs an access token for the client with the given
	// resolved roles and permissions. Claim sets are sorted so the same
	// assignments always produce the same claims (ignoring exp/iat/jti).
	// Returns the encoded token and its lifetime in seconds.
	Issue(clientID uuid.UUID, roles, permissions []string, now time.Time) (token string, expiresIn int64, err error)

	// Verify decodes and validates a presented token. Checks run in order:
	// structure, signature, expiry, issuer, audience, token type; the first
	// failure is returned as the matching domain error. Verification touches
	// no shared state beyond the signing key, so it needs no database.
	Verify(token string, now time.Time) (*AccessTokenClaims, error)
}
