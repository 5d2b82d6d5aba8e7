package http

import (
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

// ClientHandler handles HTTP requests for client management operations.
type ClientHandler struct {
	clientUseCase authUseCase.ClientUseCase
	accessUseCase authUseCase.AccessUseCase
	logger        *slog.Logger
}

// NewClientHandler creates a new client handler with required dependencies.
func NewClientHandler(
	clientUseCase authUseCase.ClientUseCase,
	accessUseCase authUseCase.AccessUseCase,
	logger *slog.Logger,
) *ClientHandler {
	return &ClientHandler{
		clientUseCase: clientUseCase,
		accessUseCase: accessUseCase,
		logger:        logger,
	}
}

// CreateHandler creates a new authentication client with optional role assignments.
// POST /admin/clients - Requires the role:admin_manage permission.
// Returns 201 Created with the ID and plain text secret.
func (h *ClientHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateClientRequest

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

	input := &authDomain.CreateClientInput{
		Name:     req.Name,
		IsActive: req.IsActive,
		Roles:    req.Roles,
	}

	output, err := h.clientUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// The plain secret appears only in this response.
	response := dto.CreateClientResponse{
		ID:     output.ID,
		Secret: output.PlainSecret,
	}

	c.JSON(http.StatusCreated, response)
}

// GetHandler retrieves a client by ID.
// GET /admin/clients/:id - Requires the role:admin_manage permission.
// Returns 200 OK with client data (no secret).
func (h *ClientHandler) GetHandler(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid client ID format: must be a valid UUID"),
			h.logger)
		return
	}

	client, err := h.clientUseCase.Get(c.Request.Context(), clientID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClientToResponse(client))
}

// UpdateHandler updates an existing client's name and active status.
// PUT /admin/clients/:id - Requires the role:admin_manage permission.
// Returns 200 OK with updated client data (no secret).
func (h *ClientHandler) UpdateHandler(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid client ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.UpdateClientRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authDomain.UpdateClientInput{
		Name:     req.Name,
		IsActive: req.IsActive,
	}

	if err := h.clientUseCase.Update(c.Request.Context(), clientID, input); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	client, err := h.clientUseCase.Get(c.Request.Context(), clientID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClientToResponse(client))
}

// ListHandler retrieves clients with pagination support.
// GET /admin/clients?offset=0&limit=50 - Requires the role:admin_manage permission.
// Returns 200 OK with paginated client list.
func (h *ClientHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	clients, err := h.clientUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.ClientListResponse{
		Clients: dto.MapClientsToResponse(clients),
		Offset:  offset,
		Limit:   limit,
	}
	c.JSON(http.StatusOK, response)
}

// AssignRoleHandler grants an existing role to a client.
// POST /admin/clients/:id/roles - Requires the role:admin_manage permission.
// Returns 200 OK with the client's resolved roles and permissions.
func (h *ClientHandler) AssignRoleHandler(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid client ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.AssignRoleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.clientUseCase.AssignRole(c.Request.Context(), clientID, req.Role); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	access, err := h.accessUseCase.Resolve(c.Request.Context(), clientID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccessToResponse(access))
}

// GetAccessHandler reports the resolved roles and permissions for a client.
// GET /admin/clients/:id/access - Requires the role:admin_manage permission.
// Returns 200 OK with the deduplicated role and permission sets.
func (h *ClientHandler) GetAccessHandler(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid client ID format: must be a valid UUID"),
			h.logger)
		return
	}

	access, err := h.accessUseCase.Resolve(c.Request.Context(), clientID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccessToResponse(access))
}
