package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	authService "github.com/paservices/auth-service/internal/auth/service"
	"github.com/paservices/auth-service/internal/metrics"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for token issuance operations.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	issueTokenInput *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Issue(ctx, issueTokenInput)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "token_issue", status)
	t.metrics.RecordDuration(ctx, "auth", "token_issue", time.Since(start), status)

	return output, err
}

// Verify records metrics for token verification operations.
func (t *tokenUseCaseWithMetrics) Verify(
	ctx context.Context,
	token string,
) (*authService.AccessTokenClaims, error) {
	start := time.Now()
	claims, err := t.next.Verify(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "token_verify", status)
	t.metrics.RecordDuration(ctx, "auth", "token_verify", time.Since(start), status)

	return claims, err
}

// accessUseCaseWithMetrics decorates AccessUseCase with metrics instrumentation.
type accessUseCaseWithMetrics struct {
	next    AccessUseCase
	metrics metrics.BusinessMetrics
}

// NewAccessUseCaseWithMetrics wraps an AccessUseCase with metrics recording.
func NewAccessUseCaseWithMetrics(useCase AccessUseCase, m metrics.BusinessMetrics) AccessUseCase {
	return &accessUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Resolve records metrics for access resolution operations.
func (a *accessUseCaseWithMetrics) Resolve(
	ctx context.Context,
	clientID uuid.UUID,
) (*authDomain.Access, error) {
	start := time.Now()
	access, err := a.next.Resolve(ctx, clientID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "access_resolve", status)
	a.metrics.RecordDuration(ctx, "auth", "access_resolve", time.Since(start), status)

	return access, err
}

// ListRoles records metrics for role list operations.
func (a *accessUseCaseWithMetrics) ListRoles(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.Role, error) {
	start := time.Now()
	roles, err := a.next.ListRoles(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "role_list", status)
	a.metrics.RecordDuration(ctx, "auth", "role_list", time.Since(start), status)

	return roles, err
}

// ListPermissions records metrics for permission list operations.
func (a *accessUseCaseWithMetrics) ListPermissions(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.Permission, error) {
	start := time.Now()
	permissions, err := a.next.ListPermissions(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "permission_list", status)
	a.metrics.RecordDuration(ctx, "auth", "permission_list", time.Since(start), status)

	return permissions, err
}

// clientUseCaseWithMetrics decorates ClientUseCase with metrics instrumentation.
type clientUseCaseWithMetrics struct {
	next    ClientUseCase
	metrics metrics.BusinessMetrics
}

// NewClientUseCaseWithMetrics wraps a ClientUseCase with metrics recording.
func NewClientUseCaseWithMetrics(useCase ClientUseCase, m metrics.BusinessMetrics) ClientUseCase {
	return &clientUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for client creation operations.
func (c *clientUseCaseWithMetrics) Create(
	ctx context.Context,
	createClientInput *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	start := time.Now()
	output, err := c.next.Create(ctx, createClientInput)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "auth", "client_create", status)
	c.metrics.RecordDuration(ctx, "auth", "client_create", time.Since(start), status)

	return output, err
}

// Update records metrics for client update operations.
func (c *clientUseCaseWithMetrics) Update(
	ctx context.Context,
	clientID uuid.UUID,
	updateClientInput *authDomain.UpdateClientInput,
) error {
	start := time.Now()
	err := c.next.Update(ctx, clientID, updateClientInput)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "auth", "client_update", status)
	c.metrics.RecordDuration(ctx, "auth", "client_update", time.Since(start), status)

	return err
}

// Get records metrics for client retrieval operations.
func (c *clientUseCaseWithMetrics) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	start := time.Now()
	client, err := c.next.Get(ctx, clientID)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "auth", "client_get", status)
	c.metrics.RecordDuration(ctx, "auth", "client_get", time.Since(start), status)

	return client, err
}

// List records metrics for client list operations.
func (c *clientUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.Client, error) {
	start := time.Now()
	clients, err := c.next.List(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "auth", "client_list", status)
	c.metrics.RecordDuration(ctx, "auth", "client_list", time.Since(start), status)

	return clients, err
}

// AssignRole records metrics for role assignment operations.
func (c *clientUseCaseWithMetrics) AssignRole(ctx context.Context, clientID uuid.UUID, roleName string) error {
	start := time.Now()
	err := c.next.AssignRole(ctx, clientID, roleName)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "auth", "client_assign_role", status)
	c.metrics.RecordDuration(ctx, "auth", "client_assign_role", time.Since(start), status)

	return err
}

// bootstrapUseCaseWithMetrics decorates BootstrapUseCase with metrics instrumentation.
type bootstrapUseCaseWithMetrics struct {
	next    BootstrapUseCase
	metrics metrics.BusinessMetrics
}

// NewBootstrapUseCaseWithMetrics wraps a BootstrapUseCase with metrics recording.
func NewBootstrapUseCaseWithMetrics(useCase BootstrapUseCase, m metrics.BusinessMetrics) BootstrapUseCase {
	return &bootstrapUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Seed records metrics for bootstrap seeding operations.
func (b *bootstrapUseCaseWithMetrics) Seed(ctx context.Context) error {
	start := time.Now()
	err := b.next.Seed(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	b.metrics.RecordOperation(ctx, "auth", "bootstrap_seed", status)
	b.metrics.RecordDuration(ctx, "auth", "bootstrap_seed", time.Since(start), status)

	return err
}
