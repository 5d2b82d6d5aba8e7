package app

import (
	"fmt"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	authHTTP "github.com/paservices/auth-service/internal/auth/http"
	authRepository "github.com/paservices/auth-service/internal/auth/repository"
	authService "github.com/paservices/auth-service/internal/auth/service"
	authUseCase "github.com/paservices/auth-service/internal/auth/usecase"
	"github.com/paservices/auth-service/internal/identity"
)

// SecretService returns the secret hashing service.
func (c *Container) SecretService() authService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = authService.NewSecretService()
	})
	return c.secretService
}

// JWTService returns the token signing and verification service.
func (c *Container) JWTService() (authService.JWTService, error) {
	var err error
	c.jwtServiceInit.Do(func() {
		c.jwtService, err = c.initJWTService()
		if err != nil {
			c.initErrors["jwtService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["jwtService"]; exists {
		return nil, storedErr
	}
	return c.jwtService, nil
}

// IdentityProvider returns the external identity provider client, or nil when
// no provider is configured.
func (c *Container) IdentityProvider() identity.Provider {
	c.identityProviderInit.Do(func() {
		if c.config.IdentityBaseURL == "" {
			return
		}
		c.identityProvider = identity.NewGoTrueProvider(
			c.config.IdentityBaseURL,
			c.config.IdentityServiceKey,
			nil,
		)
	})
	return c.identityProvider
}

// ClientRepository returns the client repository based on the database driver.
func (c *Container) ClientRepository() (authUseCase.ClientRepository, error) {
	var err error
	c.clientRepositoryInit.Do(func() {
		c.clientRepository, err = c.initClientRepository()
		if err != nil {
			c.initErrors["clientRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientRepository"]; exists {
		return nil, storedErr
	}
	return c.clientRepository, nil
}

// RBACRepository returns the RBAC repository based on the database driver.
func (c *Container) RBACRepository() (authUseCase.RBACRepository, error) {
	var err error
	c.rbacRepositoryInit.Do(func() {
		c.rbacRepository, err = c.initRBACRepository()
		if err != nil {
			c.initErrors["rbacRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rbacRepository"]; exists {
		return nil, storedErr
	}
	return c.rbacRepository, nil
}

// AccessUseCase returns the access resolution use case.
func (c *Container) AccessUseCase() (authUseCase.AccessUseCase, error) {
	var err error
	c.accessUseCaseInit.Do(func() {
		c.accessUseCase, err = c.initAccessUseCase()
		if err != nil {
			c.initErrors["accessUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accessUseCase"]; exists {
		return nil, storedErr
	}
	return c.accessUseCase, nil
}

// TokenUseCase returns the token use case.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// ClientUseCase returns the client management use case.
func (c *Container) ClientUseCase() (authUseCase.ClientUseCase, error) {
	var err error
	c.clientUseCaseInit.Do(func() {
		c.clientUseCase, err = c.initClientUseCase()
		if err != nil {
			c.initErrors["clientUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientUseCase"]; exists {
		return nil, storedErr
	}
	return c.clientUseCase, nil
}

// BootstrapUseCase returns the bootstrap seeding use case.
func (c *Container) BootstrapUseCase() (authUseCase.BootstrapUseCase, error) {
	var err error
	c.bootstrapUseCaseInit.Do(func() {
		c.bootstrapUseCase, err = c.initBootstrapUseCase()
		if err != nil {
			c.initErrors["bootstrapUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["bootstrapUseCase"]; exists {
		return nil, storedErr
	}
	return c.bootstrapUseCase, nil
}

// TokenHandler returns the token HTTP handler.
func (c *Container) TokenHandler() (*authHTTP.TokenHandler, error) {
	var err error
	c.tokenHandlerInit.Do(func() {
		c.tokenHandler, err = c.initTokenHandler()
		if err != nil {
			c.initErrors["tokenHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}

// ClientHandler returns the client management HTTP handler.
func (c *Container) ClientHandler() (*authHTTP.ClientHandler, error) {
	var err error
	c.clientHandlerInit.Do(func() {
		c.clientHandler, err = c.initClientHandler()
		if err != nil {
			c.initErrors["clientHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientHandler"]; exists {
		return nil, storedErr
	}
	return c.clientHandler, nil
}

// RBACHandler returns the RBAC catalog HTTP handler.
func (c *Container) RBACHandler() (*authHTTP.RBACHandler, error) {
	var err error
	c.rbacHandlerInit.Do(func() {
		c.rbacHandler, err = c.initRBACHandler()
		if err != nil {
			c.initErrors["rbacHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rbacHandler"]; exists {
		return nil, storedErr
	}
	return c.rbacHandler, nil
}

// initJWTService creates the JWT service from the configured signing key.
func (c *Container) initJWTService() (authService.JWTService, error) {
	if err := c.config.ValidateSigningKey(); err != nil {
		return nil, err
	}

	return authService.NewJWTService(
		[]byte(c.config.M2MSigningKey),
		c.config.M2MIssuer,
		c.config.M2MAudience,
		c.config.M2MTokenExpiration,
	)
}

// initClientRepository creates the client repository based on the database driver.
func (c *Container) initClientRepository() (authUseCase.ClientRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for client repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLClientRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLClientRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRBACRepository creates the RBAC repository based on the database driver.
func (c *Container) initRBACRepository() (authUseCase.RBACRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for rbac repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLRBACRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLRBACRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAccessUseCase creates the access use case with all its dependencies.
func (c *Container) initAccessUseCase() (authUseCase.AccessUseCase, error) {
	clientRepository, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for access use case: %w", err)
	}

	rbacRepository, err := c.RBACRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get rbac repository for access use case: %w", err)
	}

	baseUseCase := authUseCase.NewAccessUseCase(clientRepository, rbacRepository)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for access use case: %w", err)
		}
		return authUseCase.NewAccessUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTokenUseCase creates the token use case with all its dependencies.
func (c *Container) initTokenUseCase() (authUseCase.TokenUseCase, error) {
	clientRepository, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for token use case: %w", err)
	}

	accessUseCase, err := c.AccessUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get access use case for token use case: %w", err)
	}

	jwtService, err := c.JWTService()
	if err != nil {
		return nil, fmt.Errorf("failed to get jwt service for token use case: %w", err)
	}

	baseUseCase := authUseCase.NewTokenUseCase(
		clientRepository,
		accessUseCase,
		c.SecretService(),
		jwtService,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return authUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initClientUseCase creates the client use case with all its dependencies.
func (c *Container) initClientUseCase() (authUseCase.ClientUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for client use case: %w", err)
	}

	clientRepository, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for client use case: %w", err)
	}

	rbacRepository, err := c.RBACRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get rbac repository for client use case: %w", err)
	}

	baseUseCase := authUseCase.NewClientUseCase(txManager, clientRepository, rbacRepository, c.SecretService())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for client use case: %w", err)
		}
		return authUseCase.NewClientUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initBootstrapUseCase creates the bootstrap use case with all its dependencies.
func (c *Container) initBootstrapUseCase() (authUseCase.BootstrapUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for bootstrap use case: %w", err)
	}

	clientRepository, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for bootstrap use case: %w", err)
	}

	rbacRepository, err := c.RBACRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get rbac repository for bootstrap use case: %w", err)
	}

	baseUseCase := authUseCase.NewBootstrapUseCase(
		c.config,
		txManager,
		clientRepository,
		rbacRepository,
		c.SecretService(),
		c.IdentityProvider(),
		authDomain.DefaultSeedConfig(),
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for bootstrap use case: %w", err)
		}
		return authUseCase.NewBootstrapUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTokenHandler creates the token HTTP handler.
func (c *Container) initTokenHandler() (*authHTTP.TokenHandler, error) {
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
	}

	return authHTTP.NewTokenHandler(tokenUseCase, c.Logger()), nil
}

// initClientHandler creates the client management HTTP handler.
func (c *Container) initClientHandler() (*authHTTP.ClientHandler, error) {
	clientUseCase, err := c.ClientUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get client use case for client handler: %w", err)
	}

	accessUseCase, err := c.AccessUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get access use case for client handler: %w", err)
	}

	return authHTTP.NewClientHandler(clientUseCase, accessUseCase, c.Logger()), nil
}

// initRBACHandler creates the RBAC catalog HTTP handler.
func (c *Container) initRBACHandler() (*authHTTP.RBACHandler, error) {
	accessUseCase, err := c.AccessUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get access use case for rbac handler: %w", err)
	}

	return authHTTP.NewRBACHandler(accessUseCase, c.Logger()), nil
}
