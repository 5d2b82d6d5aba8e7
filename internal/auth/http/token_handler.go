package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	"github.com/paservices/auth-service/internal/auth/http/dto"
	authUseCase "github.com/paservices/auth-service/internal/auth/usecase"
	"github.com/paservices/auth-service/internal/httputil"
	customValidation "github.com/paservices/auth-service/internal/validation"
)

// TokenHandler handles HTTP requests for token operations.
// It coordinates token issuance and introspection with the TokenUseCase.
type TokenHandler struct {
	tokenUseCase authUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// IssueTokenHandler exchanges client credentials for a signed access token.
// POST /auth/token - No authentication required (this is the authentication endpoint).
// Returns 200 OK with the access token, token type, and expiration in seconds.
func (h *TokenHandler) IssueTokenHandler(c *gin.Context) {
	var req dto.IssueTokenRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Only the client credentials grant is supported
	if !req.SupportsGrantType() {
		httputil.HandleBadRequestGin(c,
			fmt.Errorf("unsupported grant_type: only %q is supported", authDomain.GrantTypeClientCredentials),
			h.logger)
		return
	}

	// An unparseable client id gets the same generic response as unknown
	// credentials so the endpoint never hints at id formats.
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		httputil.HandleErrorGin(c, authDomain.ErrInvalidCredentials, h.logger)
		return
	}

	input := &authDomain.IssueTokenInput{
		ClientID:     clientID,
		ClientSecret: req.ClientSecret,
	}

	output, err := h.tokenUseCase.Issue(c.Request.Context(), input)
	if err != nil {
		// Inactive clients are told so; the secret was already proven
		// correct, so this discloses nothing about the credentials.
		if errors.Is(err, authDomain.ErrClientInactive) {
			h.logger.Warn("token issuance refused for inactive client",
				slog.String("client_id", clientID.String()))
			c.JSON(http.StatusUnauthorized, httputil.ErrorResponse{
				Error:   "unauthorized",
				Message: "Client is inactive",
			})
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIssueTokenOutputToResponse(*output))
}
