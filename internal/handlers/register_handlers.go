package handlers

import (
	"net/http"

	"github.com/SscSPs/boutique_ops/cmd/docs"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/middleware"
	"github.com/SscSPs/boutique_ops/internal/platform/config"
	"github.com/SscSPs/boutique_ops/internal/platform/metrics"
	"github.com/SscSPs/boutique_ops/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Extras are the optional cross-cutting collaborators of the API group. Nil fields disable the
// corresponding middleware.
type Extras struct {
	Metrics *metrics.Metrics
	Limiter *limiter.Limiter
	Posthog *utils.PosthogClientWrapper
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	extras Extras,
) {
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if extras.Metrics != nil {
		r.GET("/metrics", gin.WrapH(extras.Metrics.Handler()))
	}

	setupAPIV1Routes(r, cfg, services, extras)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	extras Extras,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	if extras.Limiter != nil {
		v1.Use(middleware.RateLimit(extras.Limiter))
	}
	if extras.Posthog != nil {
		v1.Use(middleware.PosthogMiddleware(extras.Posthog))
	}

	registerScopeRoutes(v1, services.Scope)
	registerScheduleRoutes(v1, services.Schedule)
	registerTargetRoutes(v1, services.Target)
	registerSalesRoutes(v1, services.Sales)
	registerLeaveRoutes(v1, services.Leave)
	registerTaskRoutes(v1, services.Task)
	registerEmployeeRoutes(v1, services.Employee)
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
