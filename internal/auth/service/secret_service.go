package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/paservices/auth-service/internal/errors"
)

// secretService hashes and verifies client secrets with Argon2id.
type secretService struct {
	hasher *pwdhash.PasswordHasher
}

// GenerateSecret produces a fresh 256-bit client secret. Returns the
// URL-safe base64 plaintext, shown to the caller exactly once, alongside
// the Argon2id hash that gets persisted.
func (s *secretService) GenerateSecret() (plainSecret string, hashedSecret string, error error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random secret")
	}

	plainSecret = base64.URLEncoding.EncodeToString(randomBytes)

	hashedSecret, err := s.HashSecret(plainSecret)
	if err != nil {
		return "", "", err
	}

	return plainSecret, hashedSecret, nil
}

// HashSecret derives an Argon2id hash from a plaintext secret.
func (s *secretService) HashSecret(plainSecret string) (hashedSecret string, error error) {
	hashedSecret, err := s.hasher.Hash([]byte(plainSecret))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash secret")
	}
	return hashedSecret, nil
}

// CompareSecret reports whether plainSecret matches hashedSecret.
// A hash that cannot be parsed counts as a mismatch.
func (s *secretService) CompareSecret(plainSecret string, hashedSecret string) bool {
	ok, err := s.hasher.Verify([]byte(plainSecret), hashedSecret)
	if err != nil {
		return false
	}
	return ok
}

// NewSecretService builds a SecretService with the moderate Argon2id policy.
func NewSecretService() SecretService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// pwdhash only rejects invalid policies
		panic(err)
	}

	return &secretService{
		hasher: hasher,
	}
}
