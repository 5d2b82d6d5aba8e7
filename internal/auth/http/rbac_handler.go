package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paservices/auth-service/internal/auth/http/dto"
	authUseCase "github.com/paservices/auth-service/internal/auth/usecase"
	"github.com/paservices/auth-service/internal/httputil"
)

// RBACHandler handles HTTP requests for browsing the role and permission catalog.
type RBACHandler struct {
	accessUseCase authUseCase.AccessUseCase
	logger        *slog.Logger
}

// NewRBACHandler creates a new RBAC catalog handler.
func NewRBACHandler(accessUseCase authUseCase.AccessUseCase, logger *slog.Logger) *RBACHandler {
	return &RBACHandler{
		accessUseCase: accessUseCase,
		logger:        logger,
	}
}

// ListRolesHandler retrieves roles with pagination support.
// GET /admin/roles?offset=0&limit=50 - Requires the roles:read permission.
func (h *RBACHandler) ListRolesHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	roles, err := h.accessUseCase.ListRoles(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.RoleListResponse{
		Roles:  dto.MapRolesToResponse(roles),
		Offset: offset,
		Limit:  limit,
	}
	c.JSON(http.StatusOK, response)
}

// ListPermissionsHandler retrieves permissions with pagination support.
// GET /admin/permissions?offset=0&limit=50 - Requires the permissions:read permission.
func (h *RBACHandler) ListPermissionsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	permissions, err := h.accessUseCase.ListPermissions(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.PermissionListResponse{
		Permissions: dto.MapPermissionsToResponse(permissions),
		Offset:      offset,
		Limit:       limit,
	}
	c.JSON(http.StatusOK, response)
}
