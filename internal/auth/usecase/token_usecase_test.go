package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	authService "github.com/paservices/auth-service/internal/auth/service"
	apperrors "github.com/paservices/auth-service/internal/errors"
)

func TestTokenUseCase_Issue(t *testing.T) {
	ctx := context.Background()

	clientID := uuid.Must(uuid.NewV7())
	clientSecret := "test-client-secret-abc123"                //nolint:gosec // test fixture, not a real credential
	hashedSecret := "$argon2id$v=19$m=65536,t=3,p=4$test-hash" //nolint:gosec // test fixture, not a real credential

	activeClient := func() *authDomain.Client {
		return &authDomain.Client{
			ID:       clientID,
			Secret:   hashedSecret,
			Name:     "acme-admin",
			IsActive: true,
		}
	}

	issueInput := &authDomain.IssueTokenInput{
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}

	t.Run("Success_IssueTokenWithResolvedAccess", func(t *testing.T) {
		mockClientRepo := &mockClientRepository{}
		mockSecretSvc := &mockSecretService{}
		mockJWTSvc := &mockJWTService{}
		mockAccess := &mockAccessUseCase{}

		access := authDomain.NewAccess(
			[]string{"admin", "service"},
			[]string{"users:read", "users:write", "roles:read"},
		)

		mockClientRepo.On("Get", ctx, clientID).Return(activeClient(), nil).Once()
		mockSecretSvc.On("CompareSecret", clientSecret, hashedSecret).Return(true).Once()
		mockAccess.On("Resolve", ctx, clientID).Return(access, nil).Once()
		mockJWTSvc.On("Issue", clientID, access.Roles, access.Permissions, mock.AnythingOfType("time.Time")).
			Return("signed-token", int64(1800), nil).
			Once()

		uc := NewTokenUseCase(mockClientRepo, mockAccess, mockSecretSvc, mockJWTSvc)
		output, err := uc.Issue(ctx, issueInput)

		assert.NoError(t, err)
		assert.NotNil(t, output)
		assert.Equal(t, "signed-token", output.AccessToken)
		assert.Equal(t, authDomain.TokenTypeBearer, output.TokenType)
		assert.Equal(t, int64(1800), output.ExpiresIn)
		mockClientRepo.AssertExpectations(t)
		mockSecretSvc.AssertExpectations(t)
		mockAccess.AssertExpectations(t)
		mockJWTSvc.AssertExpectations(t)
	})

	t.Run("Error_ClientNotFoundMapsToInvalidCredentials", func(t *testing.T) {
		mockClientRepo := &mockClientRepository{}
		mockSecretSvc := &mockSecretService{}
		mockJWTSvc := &mockJWTService{}
		mockAccess := &mockAccessUseCase{}

		mockClientRepo.On("Get", ctx, clientID).Return(nil, authDomain.ErrClientNotFound).Once()

		uc := NewTokenUseCase(mockClientRepo, mockAccess, mockSecretSvc, mockJWTSvc)
		output, err := uc.Issue(ctx, issueInput)

		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, authDomain.ErrClientNotFound)
		assert.Nil(t, output)
		mockClientRepo.AssertExpectations(t)
		mockSecretSvc.AssertNotCalled(t, "CompareSecret", mock.Anything, mock.Anything)
	})

	t.Run("Error_WrongSecretMapsToInvalidCredentials", func(t *testing.T) {
		mockClientRepo := &mockClientRepository{}
		mockSecretSvc := &mockSecretService{}
		mockJWTSvc := &mockJWTService{}
		mockAccess := &mockAccessUseCase{}

		mockClientRepo.On("Get", ctx, clientID).Return(activeClient(), nil).Once()
		mockSecretSvc.On("CompareSecret", clientSecret, hashedSecret).Return(false).Once()

		uc := NewTokenUseCase(mockClientRepo, mockAccess, mockSecretSvc, mockJWTSvc)
		output, err := uc.Issue(ctx, issueInput)

		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.Nil(t, output)
		mockAccess.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	})

	t.Run("Error_InactiveClientStopsBeforeResolution", func(t *testing.T) {
		mockClientRepo := &mockClientRepository{}
		mockSecretSvc := &mockSecretService{}
		mockJWTSvc := &mockJWTService{}
		mockAccess := &mockAccessUseCase{}

		inactive := activeClient()
		inactive.IsActive = false

		mockClientRepo.On("Get", ctx, clientID).Return(inactive, nil).Once()
		mockSecretSvc.On("CompareSecret", clientSecret, hashedSecret).Return(true).Once()

		uc := NewTokenUseCase(mockClientRepo, mockAccess, mockSecretSvc, mockJWTSvc)
		output, err := uc.Issue(ctx, issueInput)

		assert.ErrorIs(t, err, authDomain.ErrClientInactive)
		assert.Nil(t, output)
		mockAccess.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
		mockJWTSvc.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_ResolveFailurePropagates", func(t *testing.T) {
		mockClientRepo := &mockClientRepository{}
		mockSecretSvc := &mockSecretService{}
		mockJWTSvc := &mockJWTService{}
		mockAccess := &mockAccessUseCase{}

		resolveErr := apperrors.Wrap(apperrors.ErrUnavailable, "database gone")

		mockClientRepo.On("Get", ctx, clientID).Return(activeClient(), nil).Once()
		mockSecretSvc.On("CompareSecret", clientSecret, hashedSecret).Return(true).Once()
		mockAccess.On("Resolve", ctx, clientID).Return(nil, resolveErr).Once()

		uc := NewTokenUseCase(mockClientRepo, mockAccess, mockSecretSvc, mockJWTSvc)
		output, err := uc.Issue(ctx, issueInput)

		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		assert.NotErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.Nil(t, output)
	})

	t.Run("Error_UnexpectedRepoErrorIsNotMasked", func(t *testing.T) {
		mockClientRepo := &mockClientRepository{}
		mockSecretSvc := &mockSecretService{}
		mockJWTSvc := &mockJWTService{}
		mockAccess := &mockAccessUseCase{}

		dbErr := errors.New("connection reset")

		mockClientRepo.On("Get", ctx, clientID).Return(nil, dbErr).Once()

		uc := NewTokenUseCase(mockClientRepo, mockAccess, mockSecretSvc, mockJWTSvc)
		output, err := uc.Issue(ctx, issueInput)

		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, output)
	})
}

func TestTokenUseCase_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DelegatesToJWTService", func(t *testing.T) {
		mockJWTSvc := &mockJWTService{}

		claims := &authService.AccessTokenClaims{
			Roles:       []string{"admin"},
			Permissions: []string{"users:read"},
			TokenType:   authService.TokenTypeM2M,
		}

		mockJWTSvc.On("Verify", "signed-token", mock.AnythingOfType("time.Time")).
			Return(claims, nil).
			Once()

		uc := NewTokenUseCase(&mockClientRepository{}, &mockAccessUseCase{}, &mockSecretService{}, mockJWTSvc)
		got, err := uc.Verify(ctx, "signed-token")

		assert.NoError(t, err)
		assert.Equal(t, claims, got)
		mockJWTSvc.AssertExpectations(t)
	})

	t.Run("Error_VerificationFailurePropagates", func(t *testing.T) {
		mockJWTSvc := &mockJWTService{}

		mockJWTSvc.On("Verify", "bad-token", mock.AnythingOfType("time.Time")).
			Return(nil, authDomain.ErrTokenExpired).
			Once()

		uc := NewTokenUseCase(&mockClientRepository{}, &mockAccessUseCase{}, &mockSecretService{}, mockJWTSvc)
		got, err := uc.Verify(ctx, "bad-token")

		assert.ErrorIs(t, err, authDomain.ErrTokenExpired)
		assert.Nil(t, got)
	})
}
