package handlers

import (
	"net/http"

	"github.com/SscSPs/expense_tracker/cmd/docs"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/SscSPs/expense_tracker/internal/platform/config"
	"github.com/SscSPs/expense_tracker/internal/platform/metrics"
	"github.com/SscSPs/expense_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteOptions carries the optional pieces routes are wrapped with. Zero values disable them.
type RouteOptions struct {
	SignInLimiter  *limiter.Limiter
	ReceiptLimiter *limiter.Limiter
	Metrics        *metrics.Metrics
	Posthog        *utils.PosthogClientWrapper
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts RouteOptions,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	requireAuth := middleware.AuthMiddleware(cfg.JWTSecret, middleware.WithRevocationCheck(services.Auth.IsRevoked))
	receipts := newReceiptHandler(services.Receipt, services.Expense, opts.Posthog)

	// Public and session routes outside /api/v1, kept at the paths the web and mobile pages call
	registerAuthRoutes(r, services.Auth, limitChain(opts.SignInLimiter), requireAuth)
	registerReceiptRoutes(r, receipts, limitChain(opts.ReceiptLimiter))
	registerShopifyRoutes(r, services.Shopify)
	registerSpeechRoutes(r, services.Speech, requireAuth)
	registerDiagnosticsRoutes(r, services.Diagnostics)

	setupAPIV1Routes(r, services, requireAuth, receipts)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	service *portssvc.ServiceContainer,
	requireAuth gin.HandlerFunc,
	receipts *receiptHandler,
) {
	v1 := r.Group("/api/v1", requireAuth)

	registerExpenseRoutes(v1, service.Expense)
	registerVendorRoutes(v1, service.Vendor)
	registerAnalyticsRoutes(v1, service.Analytics)
	registerSettingsRoutes(v1, service.Settings)
	registerInventoryRoutes(v1, service.Shopify)
	registerReceiptConversionRoutes(v1, receipts)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// limitChain returns a fresh chain holding the rate limit middleware, or an empty one without a limiter.
func limitChain(lim *limiter.Limiter) gin.HandlersChain {
	if lim == nil {
		return gin.HandlersChain{}
	}
	return gin.HandlersChain{middleware.RateLimit(lim)}
}
