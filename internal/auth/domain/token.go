package domain

import (
	"github.com/google/uuid"
)

const (
	// GrantTypeClientCredentials is the only grant type the token endpoint accepts.
	GrantTypeClientCredentials = "client_credentials"

	// TokenTypeBearer is the token_type value returned with every issued token.
	TokenTypeBearer = "Bearer"
)

// IssueTokenInput contains the credentials presented to the token endpoint.
type IssueTokenInput struct {
	ClientID     uuid.UUID
	ClientSecret string
}

// IssueTokenOutput contains the signed access token and its lifetime in
// seconds, so callers can cache and refresh proactively.
type IssueTokenOutput struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
}
