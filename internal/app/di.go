// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/go-pwdhash"

	apikeyHTTP "github.com/allisson/identity/internal/apikey/http"
	apikeyRepository "github.com/allisson/identity/internal/apikey/repository"
	apikeyUsecase "github.com/allisson/identity/internal/apikey/usecase"
	authHTTP "github.com/allisson/identity/internal/auth/http"
	authService "github.com/allisson/identity/internal/auth/service"
	authUsecase "github.com/allisson/identity/internal/auth/usecase"
	"github.com/allisson/identity/internal/config"
	"github.com/allisson/identity/internal/database"
	directoryHTTP "github.com/allisson/identity/internal/directory/http"
	directoryRepository "github.com/allisson/identity/internal/directory/repository"
	directoryUsecase "github.com/allisson/identity/internal/directory/usecase"
	"github.com/allisson/identity/internal/http"
	identityHTTP "github.com/allisson/identity/internal/identity/http"
	identityRepository "github.com/allisson/identity/internal/identity/repository"
	identityUsecase "github.com/allisson/identity/internal/identity/usecase"
	"github.com/allisson/identity/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	txManager database.TxManager

	// Repositories
	domainRepo   directoryUsecase.DomainRepository
	roleRepo     directoryUsecase.RoleRepository
	identityRepo identityUsecase.IdentityRepository
	apiKeyRepo   apikeyUsecase.APIKeyRepository

	// Use Cases and Services
	domainUseCase   *directoryUsecase.DomainUseCase
	roleUseCase     *directoryUsecase.RoleUseCase
	identityUseCase *identityUsecase.IdentityUseCase
	apiKeyUseCase   *apikeyUsecase.APIKeyUseCase
	tokenService    *authService.TokenService
	authSvc         authUsecase.AuthService
	setupUseCase    *authUsecase.SetupUseCase

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	domainRepoInit      sync.Once
	roleRepoInit        sync.Once
	identityRepoInit    sync.Once
	apiKeyRepoInit      sync.Once
	domainUseCaseInit   sync.Once
	roleUseCaseInit     sync.Once
	identityUseCaseInit sync.Once
	apiKeyUseCaseInit   sync.Once
	tokenServiceInit    sync.Once
	authSvcInit         sync.Once
	setupUseCaseInit    sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// DomainRepository returns the domain repository instance.
func (c *Container) DomainRepository() (directoryUsecase.DomainRepository, error) {
	var err error
	c.domainRepoInit.Do(func() {
		c.domainRepo, err = c.initDomainRepository()
		if err != nil {
			c.initErrors["domainRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["domainRepo"]; exists {
		return nil, storedErr
	}
	return c.domainRepo, nil
}

// RoleRepository returns the role repository instance.
func (c *Container) RoleRepository() (directoryUsecase.RoleRepository, error) {
	var err error
	c.roleRepoInit.Do(func() {
		c.roleRepo, err = c.initRoleRepository()
		if err != nil {
			c.initErrors["roleRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["roleRepo"]; exists {
		return nil, storedErr
	}
	return c.roleRepo, nil
}

// IdentityRepository returns the identity repository instance.
func (c *Container) IdentityRepository() (identityUsecase.IdentityRepository, error) {
	var err error
	c.identityRepoInit.Do(func() {
		c.identityRepo, err = c.initIdentityRepository()
		if err != nil {
			c.initErrors["identityRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["identityRepo"]; exists {
		return nil, storedErr
	}
	return c.identityRepo, nil
}

// APIKeyRepository returns the API key repository instance.
func (c *Container) APIKeyRepository() (apikeyUsecase.APIKeyRepository, error) {
	var err error
	c.apiKeyRepoInit.Do(func() {
		c.apiKeyRepo, err = c.initAPIKeyRepository()
		if err != nil {
			c.initErrors["apiKeyRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["apiKeyRepo"]; exists {
		return nil, storedErr
	}
	return c.apiKeyRepo, nil
}

// DomainUseCase returns the domain use case instance.
func (c *Container) DomainUseCase() (*directoryUsecase.DomainUseCase, error) {
	var err error
	c.domainUseCaseInit.Do(func() {
		c.domainUseCase, err = c.initDomainUseCase()
		if err != nil {
			c.initErrors["domainUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["domainUseCase"]; exists {
		return nil, storedErr
	}
	return c.domainUseCase, nil
}

// RoleUseCase returns the role use case instance.
func (c *Container) RoleUseCase() (*directoryUsecase.RoleUseCase, error) {
	var err error
	c.roleUseCaseInit.Do(func() {
		c.roleUseCase, err = c.initRoleUseCase()
		if err != nil {
			c.initErrors["roleUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["roleUseCase"]; exists {
		return nil, storedErr
	}
	return c.roleUseCase, nil
}

// IdentityUseCase returns the identity use case instance.
func (c *Container) IdentityUseCase() (*identityUsecase.IdentityUseCase, error) {
	var err error
	c.identityUseCaseInit.Do(func() {
		c.identityUseCase, err = c.initIdentityUseCase()
		if err != nil {
			c.initErrors["identityUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["identityUseCase"]; exists {
		return nil, storedErr
	}
	return c.identityUseCase, nil
}

// APIKeyUseCase returns the API key use case instance.
func (c *Container) APIKeyUseCase() (*apikeyUsecase.APIKeyUseCase, error) {
	var err error
	c.apiKeyUseCaseInit.Do(func() {
		c.apiKeyUseCase, err = c.initAPIKeyUseCase()
		if err != nil {
			c.initErrors["apiKeyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["apiKeyUseCase"]; exists {
		return nil, storedErr
	}
	return c.apiKeyUseCase, nil
}

// TokenService returns the token signing service instance.
func (c *Container) TokenService() (*authService.TokenService, error) {
	var err error
	c.tokenServiceInit.Do(func() {
		c.tokenService, err = c.initTokenService()
		if err != nil {
			c.initErrors["tokenService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// AuthService returns the authentication service instance, decorated with
// metrics when metrics are enabled.
func (c *Container) AuthService() (authUsecase.AuthService, error) {
	var err error
	c.authSvcInit.Do(func() {
		c.authSvc, err = c.initAuthService()
		if err != nil {
			c.initErrors["authService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authService"]; exists {
		return nil, storedErr
	}
	return c.authSvc, nil
}

// SetupUseCase returns the startup provisioning use case instance.
func (c *Container) SetupUseCase() (*authUsecase.SetupUseCase, error) {
	var err error
	c.setupUseCaseInit.Do(func() {
		c.setupUseCase, err = c.initSetupUseCase()
		if err != nil {
			c.initErrors["setupUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["setupUseCase"]; exists {
		return nil, storedErr
	}
	return c.setupUseCase, nil
}

// MetricsProvider returns the metrics provider instance.
// Returns nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
// Returns a no-op implementation when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the HTTP server instance with the router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance.
// Returns nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown HTTP server if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	// Shutdown metrics server if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Shutdown metrics provider if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Close database connection if initialized
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initDomainRepository creates the domain repository instance.
func (c *Container) initDomainRepository() (directoryUsecase.DomainRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for domain repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return directoryRepository.NewMySQLDomainRepository(db), nil
	case "postgres":
		return directoryRepository.NewPostgreSQLDomainRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRoleRepository creates the role repository instance.
func (c *Container) initRoleRepository() (directoryUsecase.RoleRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for role repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return directoryRepository.NewMySQLRoleRepository(db), nil
	case "postgres":
		return directoryRepository.NewPostgreSQLRoleRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initIdentityRepository creates the identity repository instance.
func (c *Container) initIdentityRepository() (identityUsecase.IdentityRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for identity repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return identityRepository.NewMySQLIdentityRepository(db), nil
	case "postgres":
		return identityRepository.NewPostgreSQLIdentityRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAPIKeyRepository creates the API key repository instance.
func (c *Container) initAPIKeyRepository() (apikeyUsecase.APIKeyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for api key repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return apikeyRepository.NewMySQLAPIKeyRepository(db), nil
	case "postgres":
		return apikeyRepository.NewPostgreSQLAPIKeyRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initDomainUseCase creates the domain use case with all its dependencies.
func (c *Container) initDomainUseCase() (*directoryUsecase.DomainUseCase, error) {
	domainRepo, err := c.DomainRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get domain repository for domain use case: %w", err)
	}

	return directoryUsecase.NewDomainUseCase(domainRepo, c.Logger()), nil
}

// initRoleUseCase creates the role use case with all its dependencies.
func (c *Container) initRoleUseCase() (*directoryUsecase.RoleUseCase, error) {
	roleRepo, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for role use case: %w", err)
	}

	domainRepo, err := c.DomainRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get domain repository for role use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for role use case: %w", err)
	}

	return directoryUsecase.NewRoleUseCase(roleRepo, domainRepo, txManager, c.Logger()), nil
}

// initIdentityUseCase creates the identity use case with all its dependencies.
func (c *Container) initIdentityUseCase() (*identityUsecase.IdentityUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for identity use case: %w", err)
	}

	identityRepo, err := c.IdentityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity repository for identity use case: %w", err)
	}

	roleRepo, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for identity use case: %w", err)
	}

	useCase, err := identityUsecase.NewIdentityUseCase(
		txManager,
		identityRepo,
		roleRepo,
		c.config.IdentifierValidation,
		c.Logger(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity use case: %w", err)
	}

	return useCase, nil
}

// initAPIKeyUseCase creates the API key use case with all its dependencies.
func (c *Container) initAPIKeyUseCase() (*apikeyUsecase.APIKeyUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for api key use case: %w", err)
	}

	apiKeyRepo, err := c.APIKeyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get api key repository for api key use case: %w", err)
	}

	return apikeyUsecase.NewAPIKeyUseCase(txManager, apiKeyRepo, c.Logger()), nil
}

// initTokenService creates the token signing service. A weak secret or an
// invalid lifetime fails startup here.
func (c *Container) initTokenService() (*authService.TokenService, error) {
	tokenService, err := authService.NewTokenService(
		c.config.JWTSecret,
		c.config.JWTIssuer,
		c.config.JWTLifetime,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	return tokenService, nil
}

// initAuthService creates the authentication service with all its dependencies.
func (c *Container) initAuthService() (authUsecase.AuthService, error) {
	identityRepo, err := c.IdentityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity repository for auth service: %w", err)
	}

	apiKeyRepo, err := c.APIKeyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get api key repository for auth service: %w", err)
	}

	roleRepo, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for auth service: %w", err)
	}

	domainRepo, err := c.DomainRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get domain repository for auth service: %w", err)
	}

	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for auth service: %w", err)
	}

	passwordVerifier, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, fmt.Errorf("failed to create password verifier for auth service: %w", err)
	}

	claimsService := authService.NewClaimsService(roleRepo, domainRepo)

	useCase := authUsecase.NewAuthUseCase(
		identityRepo,
		apiKeyRepo,
		claimsService,
		tokenService,
		passwordVerifier,
		c.Logger(),
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for auth service: %w", err)
	}

	return authUsecase.NewAuthServiceWithMetrics(useCase, businessMetrics), nil
}

// initSetupUseCase creates the startup provisioning use case.
func (c *Container) initSetupUseCase() (*authUsecase.SetupUseCase, error) {
	domainRepo, err := c.DomainRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get domain repository for setup use case: %w", err)
	}

	roleRepo, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for setup use case: %w", err)
	}

	identityUC, err := c.IdentityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity use case for setup use case: %w", err)
	}

	setupConfig := authUsecase.SetupConfig{
		CreateAdminIfMissing: c.config.AdminCreateIfMissing,
		AdminIdentifier:      c.config.AdminIdentifier,
		AdminPassword:        c.config.AdminPassword,
	}

	return authUsecase.NewSetupUseCase(domainRepo, roleRepo, identityUC, setupConfig, c.Logger()), nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	if !c.config.MetricsEnabled {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	return businessMetrics, nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	authSvc, err := c.AuthService()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth service for http server: %w", err)
	}

	domainUseCase, err := c.DomainUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get domain use case for http server: %w", err)
	}

	roleUseCase, err := c.RoleUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get role use case for http server: %w", err)
	}

	identityUC, err := c.IdentityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity use case for http server: %w", err)
	}

	apiKeyUseCase, err := c.APIKeyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get api key use case for http server: %w", err)
	}

	routerConfig := http.RouterConfig{
		GinMode:          c.config.GetGinMode(),
		CORSEnabled:      c.config.CORSEnabled,
		CORSAllowOrigins: c.config.CORSAllowOrigins,
		AuthService:      authSvc,
		Authorizer:       authUsecase.NewDefaultAuthorizer(),
		AuthHandler:      authHTTP.NewAuthHandler(authSvc, logger),
		DomainHandler:    directoryHTTP.NewDomainHandler(domainUseCase, logger),
		RoleHandler:      directoryHTTP.NewRoleHandler(roleUseCase, logger),
		IdentityHandler:  identityHTTP.NewIdentityHandler(identityUC, logger),
		APIKeyHandler:    apikeyHTTP.NewAPIKeyHandler(apiKeyUseCase, logger),
	}

	if c.config.RateLimitAuthEnabled {
		routerConfig.AuthRateLimitMiddleware = authHTTP.AuthRateLimitMiddleware(
			c.config.RateLimitAuthRequestsPerSec,
			c.config.RateLimitAuthBurst,
			logger,
		)
	}

	if c.config.MetricsEnabled {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
		routerConfig.MetricsMiddleware = metrics.HTTPMetricsMiddleware(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
		)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(routerConfig)

	return server, nil
}

// initMetricsServer creates the metrics server with its provider.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
