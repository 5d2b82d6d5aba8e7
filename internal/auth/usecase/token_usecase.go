package usecase

import (
	"context"
	"errors"
	"time"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	authService "github.com/paservices/auth-service/internal/auth/service"
)

// tokenUseCase implements TokenUseCase for the client credentials flow.
type tokenUseCase struct {
	clientRepo    ClientRepository
	accessUseCase AccessUseCase
	secretService authService.SecretService
	jwtService    authService.JWTService
}

// Issue authenticates a client and signs a new access token.
//
// This method:
// 1. Loads the client by ID
// 2. Verifies the presented secret against the stored hash
// 3. Checks the client is active
// 4. Resolves the client's roles and permission union
// 5. Signs a token embedding the resolved sets
//
// Security Notes:
//   - Returns ErrInvalidCredentials for both non-existent clients and wrong
//     secrets to prevent client id enumeration
//   - Returns ErrClientInactive only after the secret has been proven, so an
//     unauthenticated caller cannot probe activation status
//   - An inactive client fails before any role resolution happens
func (t *tokenUseCase) Issue(
	ctx context.Context,
	issueTokenInput *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	client, err := t.clientRepo.Get(ctx, issueTokenInput.ClientID)
	if err != nil {
		// If client not found, return generic error to prevent enumeration
		if errors.Is(err, authDomain.ErrClientNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !t.secretService.CompareSecret(issueTokenInput.ClientSecret, client.Secret) {
		return nil, authDomain.ErrInvalidCredentials
	}

	if !client.IsActive {
		return nil, authDomain.ErrClientInactive
	}

	access, err := t.accessUseCase.Resolve(ctx, client.ID)
	if err != nil {
		return nil, err
	}

	accessToken, expiresIn, err := t.jwtService.Issue(
		client.ID,
		access.Roles,
		access.Permissions,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	return &authDomain.IssueTokenOutput{
		AccessToken: accessToken,
		TokenType:   authDomain.TokenTypeBearer,
		ExpiresIn:   expiresIn,
	}, nil
}

// Verify validates a presented access token and returns its claims. No
// database access happens here; verification holds with the signing key alone.
func (t *tokenUseCase) Verify(_ context.Context, token string) (*authService.AccessTokenClaims, error) {
	return t.jwtService.Verify(token, time.Now().UTC())
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	clientRepo ClientRepository,
	accessUseCase AccessUseCase,
	secretService authService.SecretService,
	jwtService authService.JWTService,
) TokenUseCase {
	return &tokenUseCase{
		clientRepo:    clientRepo,
		accessUseCase: accessUseCase,
		secretService: secretService,
		jwtService:    jwtService,
	}
}
