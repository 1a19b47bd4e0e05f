package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	addonusecases "github.com/sentra-pos/sentra/internal/application/addon/usecases"
	"github.com/sentra-pos/sentra/internal/application/entitlement"
	outletusecases "github.com/sentra-pos/sentra/internal/application/outlet/usecases"
	subscriptionusecases "github.com/sentra-pos/sentra/internal/application/subscription/usecases"
	tenantusecases "github.com/sentra-pos/sentra/internal/application/tenant/usecases"
	userusecases "github.com/sentra-pos/sentra/internal/application/user/usecases"
	"github.com/sentra-pos/sentra/internal/infrastructure/auth"
	"github.com/sentra-pos/sentra/internal/infrastructure/authz"
	"github.com/sentra-pos/sentra/internal/infrastructure/config"
	"github.com/sentra-pos/sentra/internal/infrastructure/plancatalog"
	"github.com/sentra-pos/sentra/internal/infrastructure/ratelimit"
	"github.com/sentra-pos/sentra/internal/infrastructure/repository"
	"github.com/sentra-pos/sentra/internal/interfaces/http/handlers"
	"github.com/sentra-pos/sentra/internal/interfaces/http/middleware"
	"github.com/sentra-pos/sentra/internal/shared/clock"
	"github.com/sentra-pos/sentra/internal/shared/db"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// loginRateLimit throttles credential guessing; the window is shared across
// instances through Redis.
var loginRateLimit = ratelimit.Config{
	RequestsPerMinute: 10,
	RequestsPerHour:   100,
}

// Router wires repositories, the entitlement engine, use cases, and handlers
// into a Gin engine.
type Router struct {
	engine *gin.Engine
	cfg    *config.Config

	healthHandler       *handlers.HealthHandler
	authHandler         *handlers.AuthHandler
	tenantHandler       *handlers.TenantHandler
	subscriptionHandler *handlers.SubscriptionHandler
	addonHandler        *handlers.AddonHandler
	userHandler         *handlers.UserHandler
	outletHandler       *handlers.OutletHandler

	authMiddleware        *middleware.AuthMiddleware
	entitlementMiddleware *middleware.EntitlementMiddleware
	permissionMiddleware  *middleware.PermissionMiddleware
	rateLimitMiddleware   *middleware.RateLimitMiddleware

	logger logger.Interface
}

// NewRouter builds the full dependency graph on top of the given database
// and Redis connections.
func NewRouter(gdb *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	clk := clock.System()

	tenantRepo := repository.NewTenantRepository(gdb, log)
	periodRepo := repository.NewSubscriptionPeriodRepository(gdb, log)
	historyRepo := repository.NewSubscriptionHistoryRepository(gdb, log)
	addonRepo := repository.NewAddonGrantRepository(gdb, log)
	userRepo := repository.NewUserRepository(gdb, log)
	outletRepo := repository.NewOutletRepository(gdb, log)
	txRunner := db.NewTransactionManager(gdb)

	catalog, err := plancatalog.Load(cfg.Entitlement.PlanCatalogPath, outletRepo, userRepo, addonRepo, clk, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan catalog: %w", err)
	}

	cascade := entitlement.NewCascadeActivator(userRepo, log)
	reconciler := entitlement.NewReconciler(tenantRepo, periodRepo, historyRepo, catalog, cascade, txRunner, clk, log).
		WithMaxRetries(cfg.Entitlement.ReconcileMaxRetries)
	guard := entitlement.NewGuard(reconciler, clk, log)
	usage := entitlement.NewRepositoryUsageCounter(outletRepo, userRepo)
	limits := entitlement.NewLimitChecker(addonRepo, tenantRepo, catalog, usage, clk, log)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	enforcer, err := authz.NewEnforcer(gdb, cfg.Authz.ModelPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize authorization enforcer: %w", err)
	}
	if err := enforcer.SeedDefaultPolicies(log); err != nil {
		return nil, fmt.Errorf("failed to seed authorization policies: %w", err)
	}

	limiter := ratelimit.NewRedisLimiter(redisClient)

	createTenantUC := tenantusecases.NewCreateTenantUseCase(tenantRepo, log)
	getTenantUC := tenantusecases.NewGetTenantUseCase(tenantRepo, log)
	listTenantsUC := tenantusecases.NewListTenantsUseCase(tenantRepo, log)
	setTenantActiveUC := tenantusecases.NewSetTenantActiveUseCase(tenantRepo, cascade, log)

	grantSubscriptionUC := subscriptionusecases.NewGrantSubscriptionUseCase(
		tenantRepo, periodRepo, historyRepo, catalog, cascade, txRunner, clk, log)
	temporaryUpgradeUC := subscriptionusecases.NewTemporaryUpgradeUseCase(
		tenantRepo, periodRepo, historyRepo, reconciler, catalog, txRunner, clk, log)
	extendSubscriptionUC := subscriptionusecases.NewExtendSubscriptionUseCase(
		tenantRepo, periodRepo, historyRepo, reconciler, cascade, txRunner, clk, log)
	getSubscriptionStatusUC := subscriptionusecases.NewGetSubscriptionStatusUseCase(reconciler, periodRepo, clk, log)
	listHistoryUC := subscriptionusecases.NewListSubscriptionHistoryUseCase(historyRepo, log)

	grantAddonUC := addonusecases.NewGrantAddonUseCase(addonRepo, tenantRepo, clk, log)
	revokeAddonUC := addonusecases.NewRevokeAddonUseCase(addonRepo, log)
	listAddonsUC := addonusecases.NewListAddonsUseCase(addonRepo, log)

	createUserUC := userusecases.NewCreateUserUseCase(userRepo, limits, hasher, log)
	setUserActiveUC := userusecases.NewSetUserActiveUseCase(userRepo, log)
	listUsersUC := userusecases.NewListUsersUseCase(userRepo, log)
	loginUC := userusecases.NewLoginWithPasswordUseCase(userRepo, hasher, jwtService, log)

	createOutletUC := outletusecases.NewCreateOutletUseCase(outletRepo, limits, log)
	listOutletsUC := outletusecases.NewListOutletsUseCase(outletRepo, log)

	return &Router{
		engine: gin.New(),
		cfg:    cfg,

		healthHandler:       handlers.NewHealthHandler(gdb),
		authHandler:         handlers.NewAuthHandler(loginUC),
		tenantHandler:       handlers.NewTenantHandler(createTenantUC, getTenantUC, listTenantsUC, setTenantActiveUC),
		subscriptionHandler: handlers.NewSubscriptionHandler(grantSubscriptionUC, temporaryUpgradeUC, extendSubscriptionUC, getSubscriptionStatusUC, listHistoryUC),
		addonHandler:        handlers.NewAddonHandler(grantAddonUC, revokeAddonUC, listAddonsUC),
		userHandler:         handlers.NewUserHandler(createUserUC, setUserActiveUC, listUsersUC),
		outletHandler:       handlers.NewOutletHandler(createOutletUC, listOutletsUC),

		authMiddleware:        middleware.NewAuthMiddleware(jwtService, log),
		entitlementMiddleware: middleware.NewEntitlementMiddleware(guard, log),
		permissionMiddleware:  middleware.NewPermissionMiddleware(enforcer, log),
		rateLimitMiddleware:   middleware.NewRateLimitMiddleware(limiter, loginRateLimit, log),

		logger: log,
	}, nil
}

// SetupRoutes registers all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", r.healthHandler.HealthCheck)
	r.engine.GET("/version", r.healthHandler.Version)

	api := r.engine.Group("/api")

	api.POST("/auth/login", r.rateLimitMiddleware.Limit("login"), r.authHandler.Login)

	perm := r.permissionMiddleware

	// Platform administration. Subscription and addon writes stay open for
	// inactive or lapsed tenants; granting a plan is how a lapsed tenant
	// comes back.
	admin := api.Group("/admin", r.authMiddleware.RequireAuth())
	{
		tenants := admin.Group("/tenants")
		tenants.POST("", perm.Require("tenants", "write"), r.tenantHandler.CreateTenant)
		tenants.GET("", perm.Require("tenants", "read"), r.tenantHandler.ListTenants)
		tenants.GET("/:id", perm.Require("tenants", "read"), r.tenantHandler.GetTenant)
		tenants.PATCH("/:id/active", perm.Require("tenants", "write"), r.tenantHandler.SetTenantActive)

		tenants.POST("/:id/subscription", perm.Require("subscriptions", "write"), r.subscriptionHandler.GrantSubscription)
		tenants.POST("/:id/subscription/temporary-upgrade", perm.Require("subscriptions", "write"), r.subscriptionHandler.TemporaryUpgrade)
		tenants.POST("/:id/subscription/extend", perm.Require("subscriptions", "write"), r.subscriptionHandler.ExtendSubscription)
		tenants.GET("/:id/subscription", perm.Require("subscriptions", "read"), r.subscriptionHandler.GetSubscriptionStatus)
		tenants.GET("/:id/subscription/history", perm.Require("subscriptions", "read"), r.subscriptionHandler.ListSubscriptionHistory)

		tenants.POST("/:id/addons", perm.Require("addons", "write"), r.addonHandler.GrantAddon)
		tenants.GET("/:id/addons", perm.Require("addons", "read"), r.addonHandler.ListAddons)
		tenants.DELETE("/:id/addons/:grant_id", perm.Require("addons", "write"), r.addonHandler.RevokeAddon)
	}

	// Tenant-scoped operations require a live entitlement; checking it is
	// also what triggers lazy reconciliation on every request.
	entitled := api.Group("", r.authMiddleware.RequireAuth(), r.entitlementMiddleware.RequireEntitlement())
	{
		users := entitled.Group("/users")
		users.POST("", perm.Require("users", "write"), r.userHandler.CreateUser)
		users.GET("", perm.Require("users", "read"), r.userHandler.ListUsers)

		outlets := entitled.Group("/outlets")
		outlets.POST("", perm.Require("outlets", "write"), r.outletHandler.CreateOutlet)
		outlets.GET("", perm.Require("outlets", "read"), r.outletHandler.ListOutlets)
	}

	// Manual status edits carry a marker the activation cascade respects, and
	// the entitlement guard snapshots the actor when it runs. The marker has
	// to be in place first, so this route assembles its chain explicitly
	// instead of inheriting the entitled group's.
	api.PATCH("/users/:id/active",
		r.authMiddleware.RequireAuth(),
		middleware.MarkManualUserEdit(),
		r.entitlementMiddleware.RequireEntitlement(),
		perm.Require("users", "write"),
		r.userHandler.SetUserActive,
	)
}

// GetEngine returns the Gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
