package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apikeyhttp "github.com/allisson/identity/internal/apikey/http"
	authdomain "github.com/allisson/identity/internal/auth/domain"
	authhttp "github.com/allisson/identity/internal/auth/http"
	authusecase "github.com/allisson/identity/internal/auth/usecase"
	directoryhttp "github.com/allisson/identity/internal/directory/http"
	identityhttp "github.com/allisson/identity/internal/identity/http"
)

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	logger *slog.Logger
	router *gin.Engine
	server *http.Server
}

// NewServer creates a new HTTP server. SetupRouter must be called before
// Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries the handlers and middleware SetupRouter wires into the
// route tree. Nil middleware entries are skipped.
type RouterConfig struct {
	GinMode                 string
	CORSEnabled             bool
	CORSAllowOrigins        string
	MetricsMiddleware       gin.HandlerFunc
	AuthRateLimitMiddleware gin.HandlerFunc

	AuthService authusecase.AuthService
	Authorizer  *authusecase.Authorizer

	AuthHandler     *authhttp.AuthHandler
	DomainHandler   *directoryhttp.DomainHandler
	RoleHandler     *directoryhttp.RoleHandler
	IdentityHandler *identityhttp.IdentityHandler
	APIKeyHandler   *apikeyhttp.APIKeyHandler
}

// SetupRouter builds the route tree. Authentication endpoints are public
// (optionally rate limited); every management endpoint requires a verified
// token plus the permission matching the operation.
func (s *Server) SetupRouter(cfg RouterConfig) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	if cfg.AuthRateLimitMiddleware != nil {
		auth.Use(cfg.AuthRateLimitMiddleware)
	}
	auth.POST("/identity", cfg.AuthHandler.AuthenticateIdentityHandler)
	auth.POST("/api-key", cfg.AuthHandler.AuthenticateAPIKeyHandler)
	auth.POST("/refresh", cfg.AuthHandler.RefreshTokenHandler)

	protected := v1.Group("")
	protected.Use(authhttp.AuthenticationMiddleware(cfg.AuthService, s.logger))

	require := func(permission string) gin.HandlerFunc {
		return authhttp.RequirePermission(cfg.Authorizer, permission, s.logger)
	}

	domains := protected.Group("/domains")
	domains.GET("", require(authdomain.PermissionDomainsGet), cfg.DomainHandler.ListDomainsHandler)
	domains.POST("", require(authdomain.PermissionDomainsCreate), cfg.DomainHandler.CreateDomainHandler)
	domains.GET("/:id", require(authdomain.PermissionDomainsGet), cfg.DomainHandler.GetDomainHandler)
	domains.PUT("/:id", require(authdomain.PermissionDomainsUpdate), cfg.DomainHandler.UpdateDomainHandler)
	domains.DELETE("/:id", require(authdomain.PermissionDomainsDelete), cfg.DomainHandler.DeleteDomainHandler)

	roles := protected.Group("/roles")
	roles.GET("", require(authdomain.PermissionRolesGet), cfg.RoleHandler.ListRolesHandler)
	roles.POST("", require(authdomain.PermissionRolesCreate), cfg.RoleHandler.CreateRoleHandler)
	roles.GET("/:id", require(authdomain.PermissionRolesGet), cfg.RoleHandler.GetRoleHandler)
	roles.PUT("/:id", require(authdomain.PermissionRolesUpdate), cfg.RoleHandler.UpdateRoleHandler)
	roles.DELETE("/:id", require(authdomain.PermissionRolesDelete), cfg.RoleHandler.DeleteRoleHandler)

	identities := protected.Group("/identities")
	identities.GET("", require(authdomain.PermissionIdentitiesGet), cfg.IdentityHandler.ListIdentitiesHandler)
	identities.POST("", require(authdomain.PermissionIdentitiesCreate), cfg.IdentityHandler.CreateIdentityHandler)
	identities.GET("/:id", require(authdomain.PermissionIdentitiesGet), cfg.IdentityHandler.GetIdentityHandler)
	identities.PUT("/:id/status", require(authdomain.PermissionIdentitiesUpdate), cfg.IdentityHandler.UpdateIdentityStatusHandler)
	identities.PUT("/:id/password", require(authdomain.PermissionIdentitiesUpdate), cfg.IdentityHandler.ChangePasswordHandler)
	identities.DELETE("/:id", require(authdomain.PermissionIdentitiesDelete), cfg.IdentityHandler.DeleteIdentityHandler)
	identities.GET("/:id/roles", require(authdomain.PermissionIdentitiesGetRoles), cfg.IdentityHandler.GetIdentityRolesHandler)
	identities.PUT("/:id/roles", require(authdomain.PermissionIdentitiesSetRoles), cfg.IdentityHandler.SetIdentityRolesHandler)

	apiKeys := protected.Group("/api-keys")
	apiKeys.GET("", require(authdomain.PermissionAPIKeysGet), cfg.APIKeyHandler.ListAPIKeysHandler)
	apiKeys.POST("", require(authdomain.PermissionAPIKeysCreate), cfg.APIKeyHandler.CreateAPIKeyHandler)
	apiKeys.GET("/:id", require(authdomain.PermissionAPIKeysGet), cfg.APIKeyHandler.GetAPIKeyHandler)
	apiKeys.PUT("/:id", require(authdomain.PermissionAPIKeysUpdate), cfg.APIKeyHandler.UpdateAPIKeyHandler)
	apiKeys.DELETE("/:id", require(authdomain.PermissionAPIKeysDelete), cfg.APIKeyHandler.DeleteAPIKeyHandler)
	apiKeys.GET("/:id/permissions", require(authdomain.PermissionAPIKeysGetPermissions), cfg.APIKeyHandler.GetAPIKeyPermissionsHandler)
	apiKeys.PUT("/:id/permissions", require(authdomain.PermissionAPIKeysSetPermissions), cfg.APIKeyHandler.SetAPIKeyPermissionsHandler)

	protected.GET("/permissions", require(authdomain.PermissionAPIKeysGetPermissions), cfg.APIKeyHandler.ListPermissionCatalogHandler)

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic. The database
// must be reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.String("error", err.Error()))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
