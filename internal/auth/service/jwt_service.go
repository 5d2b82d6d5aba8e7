package service

import (
	stderrors "errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/paservices/auth-service/internal/auth/domain"
	apperrors "github.com/paservices/auth-service/internal/errors"
)

// TokenTypeM2M is the value of the token_type claim embedded in every access
// token issued by this service. Verification rejects any other value, so a
// token minted by a different flow cannot be replayed against M2M endpoints.
const TokenTypeM2M = "m2m_access"

// minSigningKeyBytes is the minimum signing key size for HS256. Shorter keys
// weaken the HMAC below the hash output size.
const minSigningKeyBytes = 32

// AccessTokenClaims carries the registered claims plus the resolved access
// sets for the authenticated client.
type AccessTokenClaims struct {
	jwt.RegisteredClaims

	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	TokenType   string   `json:"token_type"`
}

// ClientID parses the subject claim back into the client identifier.
func (c *AccessTokenClaims) ClientID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(domain.ErrTokenMalformed, "subject is not a valid client id")
	}
	return id, nil
}

// HasPermission reports whether the token grants the given permission.
func (c *AccessTokenClaims) HasPermission(permission string) bool {
	return slices.Contains(c.Permissions, permission)
}

// jwtService implements JWTService using HMAC-SHA256 signatures with a single
// shared signing key.
type jwtService struct {
	signingKey []byte
	issuer     string
	audience   string
	tokenTTL   time.Duration
}

// NewJWTService creates a JWTService signing with HS256. The signing key must
// be at least 32 bytes; a shorter key is a configuration error and fails here
// so the process refuses to start rather than issuing weak tokens.
func NewJWTService(signingKey []byte, issuer, audience string, tokenTTL time.Duration) (JWTService, error) {
	if len(signingKey) < minSigningKeyBytes {
		return nil, apperrors.New("jwt signing key must be at least 32 bytes")
	}
	if issuer == "" || audience == "" {
		return nil, apperrors.New("jwt issuer and audience must be set")
	}
	if tokenTTL <= 0 {
		return nil, apperrors.New("jwt token ttl must be positive")
	}

	return &jwtService{
		signingKey: signingKey,
		issuer:     issuer,
		audience:   audience,
		tokenTTL:   tokenTTL,
	}, nil
}

// Issue signs an access token for the client. Roles and permissions are
// copied and sorted so identical assignments always serialize to identical
// claim sets, and empty sets encode as [] rather than null.
func (s *jwtService) Issue(clientID uuid.UUID, roles, permissions []string, now time.Time) (string, int64, error) {
	sortedRoles := append([]string{}, roles...)
	sortedPermissions := append([]string{}, permissions...)
	slices.Sort(sortedRoles)
	slices.Sort(sortedPermissions)

	expiresAt := now.Add(s.tokenTTL)
	claims := AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   clientID.String(),
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.Must(uuid.NewV7()).String(),
		},
		Roles:       sortedRoles,
		Permissions: sortedPermissions,
		TokenType:   TokenTypeM2M,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", 0, apperrors.Wrap(err, "failed to sign access token")
	}

	return token, int64(s.tokenTTL.Seconds()), nil
}

// Verify decodes the token and validates it against this service's issuer,
// audience, and token type. Claim checks run after the signature check, so a
// forged token is rejected before any of its claims are trusted.
func (s *jwtService) Verify(tokenStr string, now time.Time) (*AccessTokenClaims, error) {
	// Claims validation is done manually below to keep a fixed check order
	// and map each failure to its own domain error.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &AccessTokenClaims{}, func(t *jwt.Token) (any, error) {
		return s.signingKey, nil
	})
	if err != nil {
		switch {
		case stderrors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenInvalidSignature
		case stderrors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		default:
			return nil, apperrors.Wrap(domain.ErrTokenMalformed, err.Error())
		}
	}

	claims, ok := token.Claims.(*AccessTokenClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	if claims.ExpiresAt == nil || !now.Before(claims.ExpiresAt.Time) {
		return nil, domain.ErrTokenExpired
	}
	if claims.Issuer != s.issuer {
		return nil, domain.ErrTokenIssuerMismatch
	}
	if !slices.Contains(claims.Audience, s.audience) {
		return nil, domain.ErrTokenAudienceMismatch
	}
	if claims.TokenType != TokenTypeM2M {
		return nil, domain.ErrTokenWrongType
	}

	return claims, nil
}
